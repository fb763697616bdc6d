package job

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is a geofenced job site workers clock in against.
type Job struct {
	ID           string
	CompanyID    string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	HourlyRate   *decimal.Decimal
	IsArchived   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

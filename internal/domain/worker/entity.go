package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role determines what a user can do inside their company.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// Type tags how a worker's time is paid out.
type Type string

const (
	TypeHourly     Type = "HOURLY"
	TypeSalaried   Type = "SALARIED"
	TypeContractor Type = "CONTRACTOR"
	TypeVolunteer  Type = "VOLUNTEER"
)

type Worker struct {
	ID                string
	CompanyID         string
	FullName          string
	Email             string
	Role              Role
	WorkerType        Type
	HourlyRate        *decimal.Decimal
	ReferencePhotoURL *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// JobRate is a per-worker override of a job's pay rate.
type JobRate struct {
	WorkerID   string
	JobID      string
	HourlyRate decimal.Decimal
}

// Actor identifies who is performing an operation. Handlers build it from the
// verified JWT claims; services never read identity out of the request context
// themselves.
type Actor struct {
	WorkerID  string
	CompanyID string
	Role      Role
}

func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}

// IsAdmin reports whether the actor holds admin privileges (owners included).
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleOwner
}

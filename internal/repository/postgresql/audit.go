package postgresql

import (
	"context"
	"fmt"

	"github.com/punchd-app/punchd-backend-go/internal/domain/audit"
	"github.com/punchd-app/punchd-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// NewAuditRecorder returns an audit.Recorder writing to the audit_events
// table. Details is stored as jsonb.
func NewAuditRecorder(db *database.DB) audit.Recorder {
	return &auditRepository{db: db}
}

// Record implements audit.Recorder. The insert deliberately uses the pool,
// never the caller's transaction: an audit row should survive even when the
// surrounding operation rolls back after the fact, and a failed audit write
// must not abort the operation.
func (r *auditRepository) Record(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (company_id, actor_id, action, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		event.CompanyID, event.ActorID, event.Action,
		event.TargetType, event.TargetID, event.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

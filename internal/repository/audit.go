package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/VendorDesk/internal/models"
)

// PostgresAuditRepository stores login attempts in the login_audit table.
type PostgresAuditRepository struct {
	DB *sql.DB
}

// NewPostgresAuditRepository creates a new PostgresAuditRepository.
func NewPostgresAuditRepository(db *sql.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{DB: db}
}

// RecordAttempt inserts one login attempt. The submitted password is never stored.
func (r *PostgresAuditRepository) RecordAttempt(ctx context.Context, a models.LoginAudit) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO login_audit (attempt_id, email, outcome, created_at)
		VALUES ($1, $2, $3, $4)
	`, a.AttemptID, a.Email, a.Outcome, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("record login attempt: %w", err)
	}
	return nil
}

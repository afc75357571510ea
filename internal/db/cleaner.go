package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartAuditCleaner removes login audit rows older than retention every interval
// until ctx is cancelled.
func StartAuditCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM login_audit
                     WHERE created_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean login audit", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned login audit", zap.Int64("removed", rows))
				}
			}
		}
	}()
}

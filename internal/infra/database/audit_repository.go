package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rafaelmp/fitcrm/internal/infra/queue"
)

type ImportAuditRepository struct {
	DB *sql.DB
}

func NewImportAuditRepository(db *sql.DB) *ImportAuditRepository {
	return &ImportAuditRepository{DB: db}
}

func (r *ImportAuditRepository) SaveImportSummary(ctx context.Context, payload queue.ImportSummaryPayload) error {
	failures, err := json.Marshal(payload.Failures)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO import_audit (batch_id, total_processed, success_count, updated_count, error_count, failures, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.DB.ExecContext(ctx, query,
		payload.BatchID,
		payload.TotalProcessed,
		payload.SuccessCount,
		payload.UpdatedCount,
		payload.ErrorCount,
		failures,
		payload.StartedAt,
		payload.FinishedAt,
	)
	return err
}

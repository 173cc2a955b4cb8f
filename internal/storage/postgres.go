package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"recording-logs/internal/domain"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) ListByCreatedRange(ctx context.Context, start, end time.Time) ([]domain.ConversionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, agent_name, form_name, program, case_number, app_number,
		       case_uuid, documentum_id, created_on, updated_at, status, failure_message
		FROM recording_logs
		WHERE created_on BETWEEN $1 AND $2
		ORDER BY created_on DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.ConversionRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *PostgresStore) GetRecord(ctx context.Context, taskID string) (domain.ConversionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT task_id, agent_name, form_name, program, case_number, app_number,
		       case_uuid, documentum_id, created_on, updated_at, status, failure_message
		FROM recording_logs
		WHERE task_id = $1
	`, taskID)
	return scanRecord(row)
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, taskID string, status domain.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recording_logs
		SET status = $2, updated_at = NOW()
		WHERE task_id = $1
	`, taskID, status)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresStore) PutRecord(ctx context.Context, rec domain.ConversionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recording_logs (
			task_id, agent_name, form_name, program, case_number, app_number,
			case_uuid, documentum_id, created_on, updated_at, status, failure_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (task_id) DO UPDATE SET
			agent_name = EXCLUDED.agent_name,
			form_name = EXCLUDED.form_name,
			program = EXCLUDED.program,
			case_number = EXCLUDED.case_number,
			app_number = EXCLUDED.app_number,
			case_uuid = EXCLUDED.case_uuid,
			documentum_id = EXCLUDED.documentum_id,
			updated_at = EXCLUDED.updated_at,
			status = EXCLUDED.status,
			failure_message = EXCLUDED.failure_message
	`, rec.TaskID, rec.AgentName, rec.FormName, rec.Program, rec.CaseNumber, rec.AppNumber,
		rec.CaseUUID, rec.DocumentumID, rec.CreatedOn.UTC(), rec.UpdatedAt.UTC(),
		rec.Status, nullableString(rec.FailureMessage))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.ConversionRecord, error) {
	var rec domain.ConversionRecord
	var failureMessage sql.NullString
	if err := row.Scan(
		&rec.TaskID,
		&rec.AgentName,
		&rec.FormName,
		&rec.Program,
		&rec.CaseNumber,
		&rec.AppNumber,
		&rec.CaseUUID,
		&rec.DocumentumID,
		&rec.CreatedOn,
		&rec.UpdatedAt,
		&rec.Status,
		&failureMessage,
	); err != nil {
		return domain.ConversionRecord{}, err
	}
	if failureMessage.Valid {
		rec.FailureMessage = failureMessage.String
	}
	rec.CreatedOn = rec.CreatedOn.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

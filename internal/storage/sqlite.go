package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"recording-logs/internal/domain"
)

// SQLiteStore backs the record store with a local SQLite file for development
// and tests. Timestamps are stored as UTC ISO-8601 text at second precision
// so range comparisons stay total under text ordering.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLiteStore{db: db}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) applyMigrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recording_logs (
			task_id TEXT PRIMARY KEY,
			agent_name TEXT NOT NULL DEFAULT '',
			form_name TEXT NOT NULL DEFAULT '',
			program TEXT NOT NULL DEFAULT '',
			case_number TEXT NOT NULL DEFAULT '',
			app_number TEXT NOT NULL DEFAULT '',
			case_uuid TEXT NOT NULL DEFAULT '',
			documentum_id TEXT NOT NULL DEFAULT '',
			created_on TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 4,
			failure_message TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_recording_logs_created_on ON recording_logs (created_on);
	`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) ListByCreatedRange(ctx context.Context, start, end time.Time) ([]domain.ConversionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, agent_name, form_name, program, case_number, app_number,
		       case_uuid, documentum_id, created_on, updated_at, status, failure_message
		FROM recording_logs
		WHERE created_on BETWEEN ? AND ?
		ORDER BY created_on DESC
	`, formatInstant(start), formatInstant(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.ConversionRecord, 0)
	for rows.Next() {
		rec, err := scanTextRecord(rows)
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

func (s *SQLiteStore) GetRecord(ctx context.Context, taskID string) (domain.ConversionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT task_id, agent_name, form_name, program, case_number, app_number,
		       case_uuid, documentum_id, created_on, updated_at, status, failure_message
		FROM recording_logs
		WHERE task_id = ?
	`, taskID)
	return scanTextRecord(row)
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, taskID string, status domain.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE recording_logs
		SET status = ?, updated_at = ?
		WHERE task_id = ?
	`, status, formatInstant(time.Now()), taskID)
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

func (s *SQLiteStore) PutRecord(ctx context.Context, rec domain.ConversionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recording_logs (
			task_id, agent_name, form_name, program, case_number, app_number,
			case_uuid, documentum_id, created_on, updated_at, status, failure_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (task_id) DO UPDATE SET
			agent_name = excluded.agent_name,
			form_name = excluded.form_name,
			program = excluded.program,
			case_number = excluded.case_number,
			app_number = excluded.app_number,
			case_uuid = excluded.case_uuid,
			documentum_id = excluded.documentum_id,
			updated_at = excluded.updated_at,
			status = excluded.status,
			failure_message = excluded.failure_message
	`, rec.TaskID, rec.AgentName, rec.FormName, rec.Program, rec.CaseNumber, rec.AppNumber,
		rec.CaseUUID, rec.DocumentumID, formatInstant(rec.CreatedOn), formatInstant(rec.UpdatedAt),
		rec.Status, nullableString(rec.FailureMessage))
	return err
}

func formatInstant(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func scanTextRecord(row rowScanner) (domain.ConversionRecord, error) {
	var rec domain.ConversionRecord
	var createdOn, updatedAt string
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
		&createdOn,
		&updatedAt,
		&rec.Status,
		&failureMessage,
	); err != nil {
		return domain.ConversionRecord{}, err
	}

	var err error
	rec.CreatedOn, err = time.Parse(time.RFC3339, createdOn)
	if err != nil {
		return domain.ConversionRecord{}, fmt.Errorf("parse created_on: %w", err)
	}
	rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return domain.ConversionRecord{}, fmt.Errorf("parse updated_at: %w", err)
	}
	if failureMessage.Valid {
		rec.FailureMessage = failureMessage.String
	}
	return rec, nil
}

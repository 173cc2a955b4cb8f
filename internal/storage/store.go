package storage

import (
	"context"
	"time"

	"recording-logs/internal/domain"
)

// RecordStore is the conversion-log table. Implementations report a missing
// task as sql.ErrNoRows so callers can branch with errors.Is.
type RecordStore interface {
	// ListByCreatedRange returns every record whose CreatedOn falls inside
	// [start, end], inclusive at both ends.
	ListByCreatedRange(ctx context.Context, start, end time.Time) ([]domain.ConversionRecord, error)
	GetRecord(ctx context.Context, taskID string) (domain.ConversionRecord, error)
	UpdateStatus(ctx context.Context, taskID string, status domain.Status) error
	PutRecord(ctx context.Context, rec domain.ConversionRecord) error
	Ping(ctx context.Context) error
	Close() error
}

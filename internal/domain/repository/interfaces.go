package repository

import (
	"context"

	"SajuPulse/internal/domain/models"
)

// PeriodStore persists the timeline of completed scans.
type PeriodStore interface {
	Init(ctx context.Context) error // ensure tables
	SaveReport(ctx context.Context, report *models.ScanReport) error
	History(ctx context.Context, subjectID string, event models.EventType, limit int) ([]models.HistoryEntry, error)
	Health(ctx context.Context) error
	Close() error
}

// ReportPublisher emits completed scan reports to downstream consumers.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report *models.ScanReport) error
	Close() error
}

// ReportCache memoizes reports by request.
type ReportCache interface {
	Key(kind string, req any) (string, error)
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

type Metrics interface {
	RecordScan(event, outcome string)
	RecordPeriod(event string, bucket models.Bucket)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

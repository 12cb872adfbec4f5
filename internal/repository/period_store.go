package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"SajuPulse/internal/domain/models"
	domrepo "SajuPulse/internal/domain/repository"
	applogger "SajuPulse/pkg/logger"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

const periodColumns = "report_id, subject_id, event_type, year, month, month_ganji, sibsin, stage, score, grade, bucket, recorded_at"

// ClickHousePeriodStore keeps one row per scanned month of every complete
// report.
type ClickHousePeriodStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewClickHousePeriodStore creates the store over an open ClickHouse pool.
func NewClickHousePeriodStore(db *sql.DB, table string, l *applogger.Logger) (*ClickHousePeriodStore, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &ClickHousePeriodStore{db: db, table: table, l: l}, nil
}

func (s *ClickHousePeriodStore) schema() string {
	return fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            report_id   String,
            subject_id  String,
            event_type  LowCardinality(String),
            year        UInt16,
            month       UInt8,
            month_ganji String,
            sibsin      LowCardinality(String),
            stage       LowCardinality(String),
            score       Float64,
            grade       LowCardinality(String),
            bucket      LowCardinality(String),
            recorded_at DateTime64(3, 'UTC')
        ) ENGINE = MergeTree
        ORDER BY (subject_id, event_type, year, month, recorded_at)
    `, s.table)
}

// Init creates the table when missing.
func (s *ClickHousePeriodStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.schema()); err != nil {
		return fmt.Errorf("init %s: %w", s.table, err)
	}
	return nil
}

// SaveReport inserts the report timeline as one batch.
func (s *ClickHousePeriodStore) SaveReport(ctx context.Context, report *models.ScanReport) error {
	rows := periodRows(report)
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s)", s.table, periodColumns))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare batch: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	s.l.Debug("clickhouse report stored",
		applogger.String("table", s.table),
		applogger.String("report_id", report.ID),
		applogger.Int("rows", len(rows)),
		applogger.Duration("took", time.Since(start)),
	)
	return nil
}

// periodRows flattens a report into insert rows in periodColumns order.
func periodRows(report *models.ScanReport) [][]any {
	if report == nil {
		return nil
	}
	recorded := report.GeneratedAt.UTC()
	rows := make([][]any, 0, len(report.Timeline))
	for _, sp := range report.Timeline {
		rows = append(rows, []any{
			report.ID,
			report.SubjectID,
			string(report.EventType),
			uint16(sp.Year),
			uint8(sp.Month),
			sp.MonthGanji.String(),
			string(sp.Sibsin),
			string(sp.Stage),
			sp.Result.Score,
			string(sp.Grade),
			string(sp.Bucket),
			recorded,
		})
	}
	return rows
}

// historyQuery builds the newest-first history lookup. An empty event
// matches all event types.
func historyQuery(table, subjectID string, event models.EventType, limit int) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s WHERE subject_id = ?", periodColumns, table)
	args := []any{subjectID}
	if event != "" {
		b.WriteString(" AND event_type = ?")
		args = append(args, string(event))
	}
	b.WriteString(" ORDER BY recorded_at DESC, year ASC, month ASC LIMIT ?")
	args = append(args, limit)
	return b.String(), args
}

// History lists stored months of a subject, most recent report first.
func (s *ClickHousePeriodStore) History(ctx context.Context, subjectID string, event models.EventType, limit int) ([]models.HistoryEntry, error) {
	q, args := historyQuery(s.table, subjectID, event, limit)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.l.Error("clickhouse history query error",
			applogger.String("table", s.table),
			applogger.String("subject", subjectID),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			h                                       models.HistoryEntry
			year                                    uint16
			month                                   uint8
			eventType, sibsin, stage, grade, bucket string
		)
		if err := rows.Scan(&h.ReportID, &h.SubjectID, &eventType, &year, &month, &h.MonthGanji,
			&sibsin, &stage, &h.Score, &grade, &bucket, &h.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		h.EventType = models.EventType(eventType)
		h.Year, h.Month = int(year), int(month)
		h.Sibsin, h.Stage = models.Sibsin(sibsin), models.Stage(stage)
		h.Grade, h.Bucket = models.Grade(grade), models.Bucket(bucket)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *ClickHousePeriodStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the pool belongs to pkg/clickhouse.Client.
func (s *ClickHousePeriodStore) Close() error {
	return nil
}

var _ domrepo.PeriodStore = (*ClickHousePeriodStore)(nil)

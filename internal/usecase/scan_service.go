package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"SajuPulse/internal/domain/models"
	domrepo "SajuPulse/internal/domain/repository"
	xhttp "SajuPulse/pkg/http"
	"SajuPulse/pkg/logger"
)

func init() {
	xhttp.RegisterValidation("ganji", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseGanji(fl.Field().String())
		return ok
	})
}

// ScanParamsFromRequest converts a validated request into scanner params.
func ScanParamsFromRequest(req models.ScanRequest) (ScanParams, error) {
	profile, err := ProfileFromInput(req.Profile)
	if err != nil {
		return ScanParams{}, err
	}
	event, ok := models.ParseEventType(req.EventType)
	if !ok {
		return ScanParams{}, fmt.Errorf("%w: %q", models.ErrUnknownEventType, req.EventType)
	}
	return ScanParams{
		Profile:          profile,
		Event:            event,
		StartYear:        req.StartYear,
		StartMonth:       req.StartMonth,
		Months:           req.Months,
		OptimalThreshold: req.OptimalThreshold,
		AvoidThreshold:   req.AvoidThreshold,
		UseAstrology:     req.UseAstrology,
	}, nil
}

// ScanService runs a scan and hands the report to storage and downstream
// consumers. Both sinks are optional.
type ScanService struct {
	scanner   *TimingScanner
	store     domrepo.PeriodStore
	publisher domrepo.ReportPublisher
	metrics   domrepo.Metrics
	log       *logger.Logger
}

func NewScanService(scanner *TimingScanner, store domrepo.PeriodStore, publisher domrepo.ReportPublisher,
	metrics domrepo.Metrics, l *logger.Logger,
) *ScanService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if l == nil {
		l = logger.Nop()
	}
	return &ScanService{scanner: scanner, store: store, publisher: publisher, metrics: metrics, log: l}
}

// Run scans and, for complete reports, persists and publishes them. Sink
// failures are logged and do not fail the scan.
func (s *ScanService) Run(ctx context.Context, p ScanParams) (*models.ScanReport, error) {
	report, err := s.scanner.Scan(ctx, p)
	if err != nil {
		return nil, err
	}
	if report.Partial {
		return report, nil
	}
	// Sinks ignore request cancellation and carry their own deadline.
	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if s.store != nil && report.SubjectID != "" {
		start := time.Now()
		if err := s.store.SaveReport(sinkCtx, report); err != nil {
			s.metrics.RecordError("store_report")
			s.log.Error("store report failed", logger.String("report_id", report.ID), logger.Error(err))
		}
		s.metrics.RecordLatency("store_report", time.Since(start).Seconds())
	}
	if s.publisher != nil {
		if err := s.publisher.PublishReport(sinkCtx, report); err != nil {
			s.metrics.RecordError("publish_report")
			s.log.Error("publish report failed", logger.String("report_id", report.ID), logger.Error(err))
		}
	}
	return report, nil
}

// History lists stored months for a subject, newest first.
func (s *ScanService) History(ctx context.Context, subjectID string, event models.EventType, limit int) ([]models.HistoryEntry, error) {
	if s.store == nil {
		return []models.HistoryEntry{}, nil
	}
	return s.store.History(ctx, subjectID, event, limit)
}

// Scanner exposes the underlying scanner for streaming callers.
func (s *ScanService) Scanner() *TimingScanner { return s.scanner }

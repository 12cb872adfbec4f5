package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SajuPulse/internal/domain/models"
	domrepo "SajuPulse/internal/domain/repository"
	xhttp "SajuPulse/pkg/http"
	pkgkafka "SajuPulse/pkg/kafka"
	"SajuPulse/pkg/logger"
)

// KafkaScanHandler consumes scan requests and runs them through the scan service.
type KafkaScanHandler struct {
	topic   string
	service *ScanService
	metrics domrepo.Metrics
	log     *logger.Logger
}

func NewKafkaScanHandler(topic string, service *ScanService, metrics domrepo.Metrics, l *logger.Logger) *KafkaScanHandler {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if l == nil {
		l = logger.Nop()
	}
	return &KafkaScanHandler{topic: topic, service: service, metrics: metrics, log: l}
}

func (h *KafkaScanHandler) Topic() string { return h.topic }

// incoming message schema: models.ScanRequest as JSON
//
// Malformed and invalid requests fail permanently. A scan cut short by the
// scan timeout fails with models.ErrScanIncomplete so the consumer retries it.
func (h *KafkaScanHandler) Handle(ctx context.Context, b []byte) error {
	var req models.ScanRequest
	if err := json.Unmarshal(b, &req); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return pkgkafka.Permanent(fmt.Errorf("decode scan request: %w", err))
	}
	if err := xhttp.ValidateStruct(ctx, &req); err != nil {
		h.metrics.RecordError("consumer_validate")
		return pkgkafka.Permanent(fmt.Errorf("validate scan request: %w", err))
	}
	params, err := ScanParamsFromRequest(req)
	if err != nil {
		h.metrics.RecordError("consumer_validate")
		return pkgkafka.Permanent(err)
	}

	start := time.Now()
	report, err := h.service.Run(ctx, params)
	h.metrics.RecordLatency("consumer_scan", time.Since(start).Seconds())
	if err != nil {
		if invalidInput(err) {
			h.metrics.RecordError("consumer_validate")
			return pkgkafka.Permanent(err)
		}
		return err
	}
	if report.Partial {
		h.metrics.RecordError("consumer_partial")
		return fmt.Errorf("%w: scanned %d of %d months", models.ErrScanIncomplete, report.Scanned, report.Months)
	}
	h.log.Info("scan request handled",
		logger.String("report_id", report.ID),
		logger.String("subject", report.SubjectID),
		logger.String("event", string(report.EventType)),
		logger.Int("optimal", report.Statistics.OptimalCount),
	)
	return nil
}

func invalidInput(err error) bool {
	for _, target := range []error{
		models.ErrUnknownEventType,
		models.ErrInvalidHorizon,
		models.ErrInvalidProfile,
		models.ErrInvalidThresholds,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var _ pkgkafka.MessageHandler = (*KafkaScanHandler)(nil)

package repository

import (
	"context"

	"SajuPulse/internal/domain/models"
	domrepo "SajuPulse/internal/domain/repository"
)

type publisher interface {
	PublishWithHeaders(ctx context.Context, topic string, key []byte, value interface{}, headers map[string]string) error
	Close() error
}

// KafkaReportPublisher emits completed reports keyed by subject, so one
// subject's reports stay on one partition in order.
type KafkaReportPublisher struct {
	producer publisher
	topic    string
}

// NewKafkaReportPublisher creates Kafka publisher. producer is usually a
// *pkg/kafka.Producer.
func NewKafkaReportPublisher(producer publisher, topic string) *KafkaReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func reportKey(r *models.ScanReport) []byte {
	if r.SubjectID != "" {
		return []byte(r.SubjectID)
	}
	return []byte(r.ID)
}

func (p *KafkaReportPublisher) PublishReport(ctx context.Context, r *models.ScanReport) error {
	return p.producer.PublishWithHeaders(ctx, p.topic, reportKey(r), r, map[string]string{
		"event_type": string(r.EventType),
		"report_id":  r.ID,
	})
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ domrepo.ReportPublisher = (*KafkaReportPublisher)(nil)

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SajuPulse/internal/domain/models"
)

func sampleReport(t *testing.T) *models.ScanReport {
	t.Helper()
	g, ok := models.ParseGanji("경인")
	require.True(t, ok)
	return &models.ScanReport{
		ID:          "r-1",
		SubjectID:   "s-1",
		EventType:   models.EventCareer,
		GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("KST", 9*3600)),
		Timeline: []models.ScannedPeriod{
			{
				Period: models.Period{Year: 2025, Month: 3, MonthGanji: g, Sibsin: models.SibsinJeonggwan, Stage: models.StageGeollok},
				Result: models.ScoringResult{Score: 87},
				Bucket: models.BucketOptimal,
				Grade:  models.GradeS,
			},
			{
				Period: models.Period{Year: 2025, Month: 4, MonthGanji: g},
				Result: models.ScoringResult{Score: 50},
				Bucket: models.BucketNone,
				Grade:  models.GradeD,
			},
		},
	}
}

func TestPeriodRows(t *testing.T) {
	rows := periodRows(sampleReport(t))
	require.Len(t, rows, 2)
	assert.Equal(t, []any{
		"r-1", "s-1", "career", uint16(2025), uint8(3), "경인", "정관", "건록", 87.0, "S", "optimal",
		time.Date(2025, 1, 1, 18, 4, 5, 0, time.UTC),
	}, rows[0])
	assert.Len(t, rows[1], 12)
	assert.Nil(t, periodRows(nil))
}

func TestHistoryQuery(t *testing.T) {
	q, args := historyQuery("classified_periods", "s-1", models.EventMove, 50)
	assert.Contains(t, q, "FROM classified_periods WHERE subject_id = ? AND event_type = ?")
	assert.Contains(t, q, "ORDER BY recorded_at DESC")
	assert.Equal(t, []any{"s-1", "move", 50}, args)

	q, args = historyQuery("classified_periods", "s-1", "", 10)
	assert.NotContains(t, q, "event_type = ?")
	assert.Equal(t, []any{"s-1", 10}, args)
}

func TestNewClickHousePeriodStoreRejectsBadTable(t *testing.T) {
	for _, name := range []string{"", "periods; DROP TABLE x", "1abc", "a.b.c"} {
		_, err := NewClickHousePeriodStore(nil, name, nil)
		assert.Error(t, err, name)
	}
	s, err := NewClickHousePeriodStore(nil, "sajupulse.classified_periods", nil)
	require.NoError(t, err)
	assert.Contains(t, s.schema(), "CREATE TABLE IF NOT EXISTS sajupulse.classified_periods")
}

type capturePublisher struct {
	topic   string
	key     string
	value   interface{}
	headers map[string]string
	closed  bool
}

func (c *capturePublisher) PublishWithHeaders(_ context.Context, topic string, key []byte, value interface{}, headers map[string]string) error {
	c.topic, c.key, c.value, c.headers = topic, string(key), value, headers
	return nil
}

func (c *capturePublisher) Close() error {
	c.closed = true
	return nil
}

func TestKafkaReportPublisher(t *testing.T) {
	cp := &capturePublisher{}
	p := NewKafkaReportPublisher(cp, "saju.scan.reports")
	r := sampleReport(t)

	require.NoError(t, p.PublishReport(context.Background(), r))
	assert.Equal(t, "saju.scan.reports", cp.topic)
	assert.Equal(t, "s-1", cp.key)
	assert.Same(t, r, cp.value)
	assert.Equal(t, "career", cp.headers["event_type"])

	r.SubjectID = ""
	require.NoError(t, p.PublishReport(context.Background(), r))
	assert.Equal(t, "r-1", cp.key)

	require.NoError(t, p.Close())
	assert.True(t, cp.closed)
}

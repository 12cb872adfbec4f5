package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"SajuPulse/internal/domain/models"
	domrepo "SajuPulse/internal/domain/repository"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/classifier"
	"SajuPulse/pkg/logger"
	"SajuPulse/pkg/util"
)

const (
	defaultScanWorkers = 4
	maxScanMonths      = 120
)

// ScanParams describes one horizon scan.
type ScanParams struct {
	Profile          models.BirthProfile
	Event            models.EventType
	StartYear        int
	StartMonth       int
	Months           int
	OptimalThreshold float64
	AvoidThreshold   float64
	UseAstrology     bool

	// OnPeriod, when set, receives every scanned month in chronological order
	// as soon as it is classified.
	OnPeriod func(models.ScannedPeriod)
}

// TimingScanner scores a horizon month by month and classifies the results.
type TimingScanner struct {
	calc    domsvc.PeriodCalculator
	scorer  domsvc.EventScorer
	astro   domsvc.AstrologyProvider
	metrics domrepo.Metrics
	log     *logger.Logger

	workers   int
	maxMonths int
	timeout   time.Duration
	optimal   float64
	avoid     float64
	now       func() time.Time
}

type ScannerOption func(*TimingScanner)

func WithAstrology(p domsvc.AstrologyProvider) ScannerOption {
	return func(s *TimingScanner) { s.astro = p }
}

func WithScanWorkers(n int) ScannerOption {
	return func(s *TimingScanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithMaxMonths(n int) ScannerOption {
	return func(s *TimingScanner) {
		if n > 0 && n <= maxScanMonths {
			s.maxMonths = n
		}
	}
}

// WithScanTimeout bounds every scan; the partial report is returned on expiry.
func WithScanTimeout(d time.Duration) ScannerOption {
	return func(s *TimingScanner) { s.timeout = d }
}

// WithDefaultThresholds sets the thresholds used when a scan leaves both at zero.
func WithDefaultThresholds(optimal, avoid float64) ScannerOption {
	return func(s *TimingScanner) {
		if avoid > 0 && avoid < optimal && optimal <= 100 {
			s.optimal, s.avoid = optimal, avoid
		}
	}
}

func WithScannerMetrics(m domrepo.Metrics) ScannerOption {
	return func(s *TimingScanner) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithScannerLogger(l *logger.Logger) ScannerOption {
	return func(s *TimingScanner) { s.log = l }
}

func NewTimingScanner(calc domsvc.PeriodCalculator, scorer domsvc.EventScorer, opts ...ScannerOption) *TimingScanner {
	s := &TimingScanner{
		calc:      calc,
		scorer:    scorer,
		metrics:   noopMetrics{},
		log:       logger.Nop(),
		workers:   defaultScanWorkers,
		maxMonths: maxScanMonths,
		optimal:   classifier.DefaultOptimalThreshold,
		avoid:     classifier.DefaultAvoidThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks params and fills default thresholds.
func (s *TimingScanner) Validate(p *ScanParams) error {
	if !p.Event.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownEventType, p.Event)
	}
	if p.Months < 1 || p.Months > s.maxMonths {
		return fmt.Errorf("%w: months must be within 1..%d, got %d", models.ErrInvalidHorizon, s.maxMonths, p.Months)
	}
	if p.StartMonth < 1 || p.StartMonth > 12 {
		return fmt.Errorf("%w: start month %d", models.ErrInvalidHorizon, p.StartMonth)
	}
	if !p.Profile.DayPillar.Stem.Valid() || !p.Profile.DayPillar.Branch.Valid() {
		return models.ErrInvalidProfile
	}
	if p.OptimalThreshold == 0 && p.AvoidThreshold == 0 {
		p.OptimalThreshold, p.AvoidThreshold = s.optimal, s.avoid
	}
	if p.AvoidThreshold <= 0 || p.AvoidThreshold >= p.OptimalThreshold || p.OptimalThreshold > 100 {
		return fmt.Errorf("%w: optimal %v, avoid %v", models.ErrInvalidThresholds, p.OptimalThreshold, p.AvoidThreshold)
	}
	return nil
}

type slot struct {
	period models.Period
	result models.ScoringResult
	done   chan struct{}
}

func closed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Scan scores every month of the horizon in parallel and feeds the results,
// in chronological order, into one classifier. When ctx ends first the months
// classified so far are returned with Partial set; that is not an error.
func (s *TimingScanner) Scan(ctx context.Context, p ScanParams) (*models.ScanReport, error) {
	if err := s.Validate(&p); err != nil {
		s.metrics.RecordError("scan_invalid")
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()

	var natal *models.NatalSnapshot
	if p.UseAstrology && s.astro != nil {
		natal = s.fetchNatal(ctx, p.Profile, p.StartYear, p.StartMonth)
	}

	slots := make([]slot, p.Months)
	for i := range slots {
		slots[i].done = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := range slots {
			if gctx.Err() != nil {
				break
			}
			year, month := util.AddMonths(p.StartYear, p.StartMonth, i)
			sl := &slots[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				period, result, err := s.scoreMonth(gctx, p, natal, year, month)
				if err != nil {
					return err
				}
				sl.period, sl.result = period, result
				close(sl.done)
				return nil
			})
		}
		_ = g.Wait()
	}()

	clf := classifier.New(p.OptimalThreshold, p.AvoidThreshold)
	timeline := make([]models.ScannedPeriod, 0, p.Months)
	scores := make([]float64, 0, p.Months)
feed:
	for i := range slots {
		select {
		case <-slots[i].done:
		case <-ctx.Done():
			if !closed(slots[i].done) {
				break feed
			}
		case <-finished:
			if !closed(slots[i].done) {
				break feed
			}
		}
		sp := models.ScannedPeriod{
			Period: slots[i].period,
			Result: slots[i].result,
			Bucket: clf.AddPeriod(slots[i].period, slots[i].result),
			Grade:  classifier.GradeOf(slots[i].result.Score),
		}
		timeline = append(timeline, sp)
		scores = append(scores, sp.Result.Score)
		s.metrics.RecordPeriod(string(p.Event), sp.Bucket)
		if p.OnPeriod != nil {
			p.OnPeriod(sp)
		}
	}
	<-finished

	report := &models.ScanReport{
		ID:          uuid.NewString(),
		SubjectID:   p.Profile.SubjectID,
		EventType:   p.Event,
		StartYear:   p.StartYear,
		StartMonth:  p.StartMonth,
		Months:      p.Months,
		Scanned:     len(timeline),
		Partial:     len(timeline) < p.Months,
		Result:      clf.Result(),
		Statistics:  clf.Statistics(),
		Summary:     summarize(scores),
		Timeline:    timeline,
		GeneratedAt: s.now().UTC(),
	}

	outcome := "complete"
	if report.Partial {
		outcome = "partial"
		s.log.Warn("scan stopped early",
			logger.String("report_id", report.ID),
			logger.Int("scanned", report.Scanned),
			logger.Int("months", p.Months),
			logger.Error(ctx.Err()),
		)
	}
	s.metrics.RecordScan(string(p.Event), outcome)
	s.metrics.RecordLatency("scan", time.Since(start).Seconds())
	s.log.Debug("scan finished",
		logger.String("report_id", report.ID),
		logger.String("event", string(p.Event)),
		logger.Int("optimal", report.Statistics.OptimalCount),
		logger.Duration("took", time.Since(start)),
	)
	return report, nil
}

// scoreMonth scores one month against the natal snapshot fetched for the
// whole scan; only the transit is fetched per month.
func (s *TimingScanner) scoreMonth(ctx context.Context, p ScanParams, natal *models.NatalSnapshot, year, month int) (models.Period, models.ScoringResult, error) {
	period := s.calc.ComputePeriod(p.Profile, year, month)
	var transit *models.TransitSnapshot
	if p.UseAstrology && s.astro != nil {
		transit = s.fetchTransit(ctx, p.Profile, year, month)
		if err := ctx.Err(); err != nil {
			return models.Period{}, models.ScoringResult{}, err
		}
	}
	return period, s.scorer.ScoreEvent(period, p.Event, natal, transit), nil
}

// fetchNatal and fetchTransit degrade to Saju-only scoring: a failed snapshot
// is logged and left nil.
func (s *TimingScanner) fetchNatal(ctx context.Context, profile models.BirthProfile, year, month int) *models.NatalSnapshot {
	natal, err := s.astro.Natal(ctx, profile, year, month)
	if err != nil {
		s.metrics.RecordError("ephemeris_natal")
		s.log.Warn("natal snapshot unavailable", logger.String("subject", profile.SubjectID), logger.Error(err))
		return nil
	}
	return natal
}

func (s *TimingScanner) fetchTransit(ctx context.Context, profile models.BirthProfile, year, month int) *models.TransitSnapshot {
	transit, err := s.astro.Transit(ctx, profile, year, month)
	if err != nil {
		s.metrics.RecordError("ephemeris_transit")
		s.log.Warn("transit snapshot unavailable", logger.Int("year", year), logger.Int("month", month), logger.Error(err))
		return nil
	}
	return transit
}

func summarize(scores []float64) models.ScoreSummary {
	if len(scores) == 0 {
		return models.ScoreSummary{}
	}
	data := stats.Float64Data(scores)
	mean, _ := data.Mean()
	median, _ := data.Median()
	sd, _ := data.StandardDeviation()
	lo, _ := data.Min()
	hi, _ := data.Max()
	return models.ScoreSummary{Mean: mean, Median: median, StdDev: sd, Min: lo, Max: hi}
}

type noopMetrics struct{}

func (noopMetrics) RecordScan(string, string)          {}
func (noopMetrics) RecordPeriod(string, models.Bucket) {}
func (noopMetrics) RecordError(string)                 {}
func (noopMetrics) RecordLatency(string, float64)      {}

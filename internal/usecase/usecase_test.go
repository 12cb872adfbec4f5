package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SajuPulse/internal/domain/models"
	"SajuPulse/internal/services/attribution"
	"SajuPulse/internal/services/relations"
	"SajuPulse/internal/services/scoring"
	"SajuPulse/internal/services/temporal"
)

// fixedCalc labels every month with the same pillar, sibsin and stage.
type fixedCalc struct{ p models.Period }

func (c fixedCalc) ComputePeriod(_ models.BirthProfile, year, month int) models.Period {
	p := c.p
	p.Year, p.Month = year, month
	return p
}

type fakeMetrics struct {
	mu      sync.Mutex
	scans   map[string]int
	periods map[models.Bucket]int
	errors  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{scans: map[string]int{}, periods: map[models.Bucket]int{}, errors: map[string]int{}}
}

func (m *fakeMetrics) RecordScan(_, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans[outcome]++
}

func (m *fakeMetrics) RecordPeriod(_ string, b models.Bucket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.periods[b]++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

// funcProvider lets each test script the astrology provider.
type funcProvider struct {
	natal   func(ctx context.Context, year, month int) (*models.NatalSnapshot, error)
	transit func(ctx context.Context, year, month int) (*models.TransitSnapshot, error)
}

func (f funcProvider) Natal(ctx context.Context, _ models.BirthProfile, year, month int) (*models.NatalSnapshot, error) {
	if f.natal == nil {
		return nil, nil
	}
	return f.natal(ctx, year, month)
}

func (f funcProvider) Transit(ctx context.Context, _ models.BirthProfile, year, month int) (*models.TransitSnapshot, error) {
	if f.transit == nil {
		return nil, nil
	}
	return f.transit(ctx, year, month)
}

func mustProfile(t *testing.T) models.BirthProfile {
	t.Helper()
	p, err := ProfileFromInput(models.ProfileInput{SubjectID: "s1", BirthYear: 1990, BirthMonth: 6, BirthDay: 15, DayPillar: "갑자"})
	require.NoError(t, err)
	return p
}

func jeonggwanGeollok(t *testing.T) models.Period {
	t.Helper()
	g, ok := models.ParseGanji("경인")
	require.True(t, ok)
	return models.Period{MonthGanji: g, YearGanji: g, Sibsin: models.SibsinJeonggwan, Stage: models.StageGeollok, Age: 35}
}

func TestProfileFromInput(t *testing.T) {
	p := mustProfile(t)
	assert.Equal(t, "경오", p.YearPillar.String())
	assert.Equal(t, "갑자", p.DayPillar.String())

	p, err := ProfileFromInput(models.ProfileInput{BirthYear: 1990, BirthMonth: 6, DayPillar: "갑자", YearPillar: "신미"})
	require.NoError(t, err)
	assert.Equal(t, "신미", p.YearPillar.String())

	_, err = ProfileFromInput(models.ProfileInput{BirthYear: 1990, BirthMonth: 6, DayPillar: "xx"})
	assert.ErrorIs(t, err, models.ErrInvalidProfile)
	_, err = ProfileFromInput(models.ProfileInput{BirthYear: 1990, BirthMonth: 13, DayPillar: "갑자"})
	assert.ErrorIs(t, err, models.ErrInvalidProfile)
}

func TestScanChronologicalAndConsistent(t *testing.T) {
	var streamed []models.ScannedPeriod
	m := newFakeMetrics()
	s := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithScanWorkers(3), WithScannerMetrics(m))
	report, err := s.Scan(context.Background(), ScanParams{
		Profile:    mustProfile(t),
		Event:      models.EventCareer,
		StartYear:  2024,
		StartMonth: 11,
		Months:     24,
		OnPeriod:   func(sp models.ScannedPeriod) { streamed = append(streamed, sp) },
	})
	require.NoError(t, err)

	assert.False(t, report.Partial)
	assert.Equal(t, 24, report.Scanned)
	assert.NotEmpty(t, report.ID)
	require.Len(t, report.Timeline, 24)
	assert.Equal(t, report.Timeline, streamed)

	assert.Equal(t, 2024, report.Timeline[0].Year)
	assert.Equal(t, 11, report.Timeline[0].Month)
	assert.Equal(t, 2025, report.Timeline[2].Year)
	assert.Equal(t, 1, report.Timeline[2].Month)
	for i := 1; i < len(report.Timeline); i++ {
		prev, cur := report.Timeline[i-1], report.Timeline[i]
		assert.Less(t, prev.Year*12+prev.Month, cur.Year*12+cur.Month)
	}

	st := report.Statistics
	assert.Equal(t, st.OptimalCount+st.CandidateCount+st.AvoidCount, st.TotalPeriods)
	counted := map[models.Bucket]int{}
	for _, sp := range report.Timeline {
		counted[sp.Bucket]++
	}
	assert.Equal(t, st.OptimalCount, counted[models.BucketOptimal])
	assert.Equal(t, st.AvoidCount, counted[models.BucketAvoid])
	assert.Equal(t, counted, m.periods)
	assert.Equal(t, 1, m.scans["complete"])

	assert.LessOrEqual(t, report.Summary.Min, report.Summary.Mean)
	assert.LessOrEqual(t, report.Summary.Mean, report.Summary.Max)
}

func TestScanResultIndependentOfWorkers(t *testing.T) {
	params := ScanParams{Profile: mustProfile(t), Event: models.EventMarriage, StartYear: 2025, StartMonth: 1, Months: 60}
	one, err := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithScanWorkers(1)).Scan(context.Background(), params)
	require.NoError(t, err)
	many, err := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithScanWorkers(16)).Scan(context.Background(), params)
	require.NoError(t, err)

	opts := cmpopts.IgnoreFields(models.ScanReport{}, "ID", "GeneratedAt")
	if diff := cmp.Diff(one, many, opts); diff != "" {
		t.Fatalf("worker count changed the report (-1 worker +16 workers):\n%s", diff)
	}
}

func TestScanValidation(t *testing.T) {
	s := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{})
	base := ScanParams{Profile: mustProfile(t), Event: models.EventCareer, StartYear: 2025, StartMonth: 1, Months: 12}

	cases := []struct {
		name   string
		mutate func(*ScanParams)
		want   error
	}{
		{"zero months", func(p *ScanParams) { p.Months = 0 }, models.ErrInvalidHorizon},
		{"too many months", func(p *ScanParams) { p.Months = 121 }, models.ErrInvalidHorizon},
		{"bad start month", func(p *ScanParams) { p.StartMonth = 13 }, models.ErrInvalidHorizon},
		{"unknown event", func(p *ScanParams) { p.Event = "party" }, models.ErrUnknownEventType},
		{"inverted thresholds", func(p *ScanParams) { p.OptimalThreshold, p.AvoidThreshold = 40, 70 }, models.ErrInvalidThresholds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			_, err := s.Scan(context.Background(), p)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestScanCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newFakeMetrics()
	s := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithScannerMetrics(m))
	report, err := s.Scan(ctx, ScanParams{Profile: mustProfile(t), Event: models.EventCareer, StartYear: 2025, StartMonth: 1, Months: 12})
	require.NoError(t, err)
	assert.True(t, report.Partial)
	assert.Less(t, report.Scanned, 12)
	assert.Equal(t, 1, m.scans["partial"])
}

func TestScanCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	provider := funcProvider{
		transit: func(ctx context.Context, year, month int) (*models.TransitSnapshot, error) {
			if month == 5 {
				cancel()
				return nil, ctx.Err()
			}
			return &models.TransitSnapshot{}, nil
		},
	}
	s := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithScanWorkers(1), WithAstrology(provider))
	report, err := s.Scan(ctx, ScanParams{
		Profile: mustProfile(t), Event: models.EventCareer,
		StartYear: 2025, StartMonth: 2, Months: 12, UseAstrology: true,
	})
	require.NoError(t, err)
	assert.True(t, report.Partial)
	assert.Equal(t, 3, report.Scanned)
	require.Len(t, report.Timeline, 3)
	assert.Equal(t, 4, report.Timeline[2].Month)
	assert.Equal(t, report.Statistics.TotalPeriods, len(report.Result.Optimal)+len(report.Result.Candidate)+len(report.Result.Avoid))
}

func TestScanFallsBackToSajuOnProviderError(t *testing.T) {
	failing := funcProvider{
		natal: func(context.Context, int, int) (*models.NatalSnapshot, error) {
			return nil, errors.New("ephemeris down")
		},
		transit: func(context.Context, int, int) (*models.TransitSnapshot, error) {
			return nil, errors.New("ephemeris down")
		},
	}
	m := newFakeMetrics()
	params := ScanParams{Profile: mustProfile(t), Event: models.EventInvestment, StartYear: 2025, StartMonth: 1, Months: 6}

	withAstro := params
	withAstro.UseAstrology = true
	degraded, err := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithAstrology(failing), WithScannerMetrics(m)).
		Scan(context.Background(), withAstro)
	require.NoError(t, err)
	sajuOnly, err := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}).Scan(context.Background(), params)
	require.NoError(t, err)

	assert.False(t, degraded.Partial)
	assert.Equal(t, sajuOnly.Timeline, degraded.Timeline)
	assert.Equal(t, 1, m.errors["ephemeris_natal"])
	assert.Equal(t, 6, m.errors["ephemeris_transit"])
}

func TestScanFetchesNatalOncePerScan(t *testing.T) {
	var mu sync.Mutex
	var natalCalls, transitCalls int
	var natalAt [2]int
	provider := funcProvider{
		natal: func(_ context.Context, year, month int) (*models.NatalSnapshot, error) {
			mu.Lock()
			defer mu.Unlock()
			natalCalls++
			natalAt = [2]int{year, month}
			return &models.NatalSnapshot{MoonPhase: models.MoonNew}, nil
		},
		transit: func(context.Context, int, int) (*models.TransitSnapshot, error) {
			mu.Lock()
			defer mu.Unlock()
			transitCalls++
			return &models.TransitSnapshot{}, nil
		},
	}
	s := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithScanWorkers(4), WithAstrology(provider))
	report, err := s.Scan(context.Background(), ScanParams{
		Profile: mustProfile(t), Event: models.EventCareer,
		StartYear: 2025, StartMonth: 7, Months: 18, UseAstrology: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 18, report.Scanned)
	assert.Equal(t, 1, natalCalls)
	assert.Equal(t, [2]int{2025, 7}, natalAt)
	assert.Equal(t, 18, transitCalls)
}

func TestScanUsesAstrologySnapshots(t *testing.T) {
	provider := funcProvider{
		natal: func(context.Context, int, int) (*models.NatalSnapshot, error) {
			return &models.NatalSnapshot{MoonPhase: models.MoonNew}, nil
		},
	}
	params := ScanParams{Profile: mustProfile(t), Event: models.EventCareer, StartYear: 2025, StartMonth: 1, Months: 3, UseAstrology: true}
	report, err := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithAstrology(provider)).Scan(context.Background(), params)
	require.NoError(t, err)

	params.UseAstrology = false
	plain, err := NewTimingScanner(temporal.Calculator{}, scoring.Scorer{}, WithAstrology(provider)).Scan(context.Background(), params)
	require.NoError(t, err)
	for i := range report.Timeline {
		assert.InDelta(t, min(plain.Timeline[i].Result.Score+4, 100), report.Timeline[i].Result.Score, 1e-9)
	}
}

func TestCareerJeonggwanGeollokIsOptimal(t *testing.T) {
	calc := fixedCalc{jeonggwanGeollok(t)}
	s := NewTimingScanner(calc, scoring.Scorer{})
	report, err := s.Scan(context.Background(), ScanParams{
		Profile: mustProfile(t), Event: models.EventCareer, StartYear: 2025, StartMonth: 3, Months: 1,
	})
	require.NoError(t, err)
	require.Len(t, report.Result.Optimal, 1)
	opt := report.Result.Optimal[0]
	assert.InDelta(t, 87.0, opt.Score, 1e-9)
	assert.Equal(t, models.GradeS, opt.Grade)
	assert.Equal(t, "2025-03-01", opt.StartDate)
	assert.Equal(t, "2025-03-31", opt.EndDate)
	assert.NotEmpty(t, opt.Advice)

	reporter := NewCategoryReporter(NewEvaluator(calc, scoring.Scorer{}, nil, nil), relations.Detector{}, attribution.Analyzer{})
	cats, err := reporter.Report(context.Background(), CategoryParams{Profile: mustProfile(t), Year: 2025, Month: 3})
	require.NoError(t, err)
	career := cats.Categories[models.CategoryCareer]
	assert.InDelta(t, 87.0, career.Score, 1e-9)
	require.GreaterOrEqual(t, len(career.Factors), 2)
	assert.True(t, strings.HasPrefix(career.Factors[0], "정관: "), career.Factors[0])
	assert.True(t, strings.HasPrefix(career.Factors[1], "건록: "), career.Factors[1])
}

func TestCategoryReport(t *testing.T) {
	eval := NewEvaluator(temporal.Calculator{}, scoring.Scorer{}, nil, nil)
	reporter := NewCategoryReporter(eval, relations.Detector{}, attribution.Analyzer{})

	report, err := reporter.Report(context.Background(), CategoryParams{
		Profile:      mustProfile(t),
		Year:         2026,
		Month:        6,
		SolarTerm:    "소만",
		LunarMansion: "없는수",
	})
	require.NoError(t, err)
	assert.Len(t, report.Categories, 6)
	assert.Len(t, report.Scores, 6)
	require.NotNil(t, report.SolarTerm)
	assert.Equal(t, "소만", report.SolarTerm.Name)
	assert.Nil(t, report.LunarMansion)
	assert.Equal(t, "갑오", report.Period.MonthGanji.String())
	assert.Contains(t, factorNames(report.Factors), "자오충")

	for c, a := range report.Categories {
		assert.LessOrEqual(t, len(a.Factors), attribution.MaxFactors, c)
		assert.LessOrEqual(t, len(a.WhyHappened), attribution.MaxWhyHappened, c)
		assert.Equal(t, report.Scores[c], a.Score)
	}

	supplied, err := reporter.Report(context.Background(), CategoryParams{
		Profile: mustProfile(t), Year: 2026, Month: 6,
		Scores: map[models.Category]float64{models.CategoryHealth: 90},
	})
	require.NoError(t, err)
	assert.Equal(t, 90.0, supplied.Categories[models.CategoryHealth].Score)
	assert.Zero(t, supplied.Categories[models.CategoryCareer].Score)

	_, err = reporter.Report(context.Background(), CategoryParams{Profile: mustProfile(t), Year: 2026, Month: 0})
	assert.ErrorIs(t, err, models.ErrInvalidHorizon)
}

func TestEvaluatorScore(t *testing.T) {
	eval := NewEvaluator(fixedCalc{jeonggwanGeollok(t)}, scoring.Scorer{}, funcProvider{
		natal: func(context.Context, int, int) (*models.NatalSnapshot, error) {
			return &models.NatalSnapshot{MoonPhase: models.MoonNew}, nil
		},
	}, nil)

	_, res, err := eval.Score(context.Background(), ScoreParams{Profile: mustProfile(t), Year: 2025, Month: 3, Event: models.EventCareer})
	require.NoError(t, err)
	assert.InDelta(t, 87.0, res.Score, 1e-9)

	_, res, err = eval.Score(context.Background(), ScoreParams{
		Profile: mustProfile(t), Year: 2025, Month: 3, Event: models.EventCareer, UseAstrology: true,
	})
	require.NoError(t, err)
	assert.InDelta(t, 91.0, res.Score, 1e-9)

	_, _, err = eval.Score(context.Background(), ScoreParams{Profile: mustProfile(t), Year: 2025, Month: 3, Event: "party"})
	assert.ErrorIs(t, err, models.ErrUnknownEventType)
}

func factorNames(fs []models.CausalFactor) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

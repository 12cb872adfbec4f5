package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"SajuPulse/internal/domain/models"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/knowledge"
)

// CategoryParams asks for a category breakdown of one month. Scores, when
// non-empty, replace the proxy-event scores; Factors are appended after the
// detected ones.
type CategoryParams struct {
	Profile      models.BirthProfile
	Year         int
	Month        int
	Scores       map[models.Category]float64
	Factors      []models.CausalFactor
	SolarTerm    string
	LunarMansion string
	UseAstrology bool
}

// CategoryReporter explains a month per life category.
type CategoryReporter struct {
	eval     *Evaluator
	detector domsvc.FactorDetector
	analyzer domsvc.CategoryAnalyzer
}

func NewCategoryReporter(eval *Evaluator, detector domsvc.FactorDetector, analyzer domsvc.CategoryAnalyzer) *CategoryReporter {
	return &CategoryReporter{eval: eval, detector: detector, analyzer: analyzer}
}

func (r *CategoryReporter) Report(ctx context.Context, p CategoryParams) (*models.CategoryReport, error) {
	period, err := r.eval.Period(p.Profile, p.Year, p.Month)
	if err != nil {
		return nil, err
	}

	scores := p.Scores
	if len(scores) == 0 {
		if scores, err = r.proxyScores(ctx, p, period); err != nil {
			return nil, err
		}
	}

	factors := r.detector.Detect(p.Profile, period)
	factors = append(factors, p.Factors...)

	report := &models.CategoryReport{
		Period:  period,
		Scores:  scores,
		Factors: factors,
	}
	if t, ok := knowledge.SolarTermByName(p.SolarTerm); ok {
		report.SolarTerm = &t
	}
	if m, ok := knowledge.LunarMansionByName(p.LunarMansion); ok {
		report.LunarMansion = &m
	}
	report.Categories = r.analyzer.AnalyzeCategories(scores, factors, period.Sibsin, period.Stage,
		report.SolarTerm, report.LunarMansion)
	return report, nil
}

// proxyScores scores each category's stand-in event type concurrently.
func (r *CategoryReporter) proxyScores(ctx context.Context, p CategoryParams, period models.Period) (map[models.Category]float64, error) {
	var (
		natal   *models.NatalSnapshot
		transit *models.TransitSnapshot
	)
	if p.UseAstrology {
		natal, transit = r.eval.snapshots(ctx, p.Profile, p.Year, p.Month, nil, nil)
	}

	results := make([]float64, len(models.AllCategories))
	var g errgroup.Group
	for i, c := range models.AllCategories {
		event, ok := c.ProxyEvent()
		if !ok {
			continue
		}
		g.Go(func() error {
			results[i] = r.eval.scorer.ScoreEvent(period, event, natal, transit).Score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scores := make(map[models.Category]float64, len(results))
	for i, c := range models.AllCategories {
		scores[c] = results[i]
	}
	return scores, nil
}

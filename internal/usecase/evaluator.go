package usecase

import (
	"context"
	"fmt"

	"SajuPulse/internal/domain/models"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/temporal"
	"SajuPulse/pkg/logger"
)

// ProfileFromInput parses the pillars of a request profile. The year pillar is
// derived from the birth month when the caller leaves it empty.
func ProfileFromInput(in models.ProfileInput) (models.BirthProfile, error) {
	day, ok := models.ParseGanji(in.DayPillar)
	if !ok {
		return models.BirthProfile{}, fmt.Errorf("%w: day pillar %q", models.ErrInvalidProfile, in.DayPillar)
	}
	if in.BirthMonth < 1 || in.BirthMonth > 12 {
		return models.BirthProfile{}, fmt.Errorf("%w: birth month %d", models.ErrInvalidProfile, in.BirthMonth)
	}
	p := temporal.NewProfile(in.SubjectID, in.BirthYear, in.BirthMonth, in.BirthDay, day)
	if in.YearPillar != "" {
		year, ok := models.ParseGanji(in.YearPillar)
		if !ok {
			return models.BirthProfile{}, fmt.Errorf("%w: year pillar %q", models.ErrInvalidProfile, in.YearPillar)
		}
		p.YearPillar = year
	}
	return p, nil
}

func validMonth(year, month int) error {
	if month < 1 || month > 12 || year < 1 {
		return fmt.Errorf("%w: %d-%02d", models.ErrInvalidHorizon, year, month)
	}
	return nil
}

// Evaluator answers single-month questions: the period labels and one event score.
type Evaluator struct {
	calc   domsvc.PeriodCalculator
	scorer domsvc.EventScorer
	astro  domsvc.AstrologyProvider
	log    *logger.Logger
}

func NewEvaluator(calc domsvc.PeriodCalculator, scorer domsvc.EventScorer, astro domsvc.AstrologyProvider, l *logger.Logger) *Evaluator {
	if l == nil {
		l = logger.Nop()
	}
	return &Evaluator{calc: calc, scorer: scorer, astro: astro, log: l}
}

func (e *Evaluator) Period(profile models.BirthProfile, year, month int) (models.Period, error) {
	if err := validMonth(year, month); err != nil {
		return models.Period{}, err
	}
	return e.calc.ComputePeriod(profile, year, month), nil
}

// ScoreParams scores one month for one event. Snapshots supplied by the caller
// take precedence over the astrology provider.
type ScoreParams struct {
	Profile      models.BirthProfile
	Year         int
	Month        int
	Event        models.EventType
	Natal        *models.NatalSnapshot
	Transit      *models.TransitSnapshot
	UseAstrology bool
}

func (e *Evaluator) Score(ctx context.Context, p ScoreParams) (models.Period, models.ScoringResult, error) {
	if !p.Event.Valid() {
		return models.Period{}, models.ScoringResult{}, fmt.Errorf("%w: %q", models.ErrUnknownEventType, p.Event)
	}
	period, err := e.Period(p.Profile, p.Year, p.Month)
	if err != nil {
		return models.Period{}, models.ScoringResult{}, err
	}
	natal, transit := p.Natal, p.Transit
	if p.UseAstrology {
		natal, transit = e.snapshots(ctx, p.Profile, p.Year, p.Month, natal, transit)
	}
	return period, e.scorer.ScoreEvent(period, p.Event, natal, transit), nil
}

// snapshots fills whichever snapshot is missing from the provider. Provider
// failures leave it nil.
func (e *Evaluator) snapshots(ctx context.Context, profile models.BirthProfile, year, month int,
	natal *models.NatalSnapshot, transit *models.TransitSnapshot,
) (*models.NatalSnapshot, *models.TransitSnapshot) {
	if e.astro == nil {
		return natal, transit
	}
	var err error
	if natal == nil {
		if natal, err = e.astro.Natal(ctx, profile, year, month); err != nil {
			e.log.Warn("natal snapshot unavailable", logger.Error(err))
			natal = nil
		}
	}
	if transit == nil {
		if transit, err = e.astro.Transit(ctx, profile, year, month); err != nil {
			e.log.Warn("transit snapshot unavailable", logger.Error(err))
			transit = nil
		}
	}
	return natal, transit
}

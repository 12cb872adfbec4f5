// Package classifier buckets scored periods into optimal, candidate and avoid lists.
package classifier

import (
	"cmp"
	"slices"
	"strings"

	"github.com/montanaflynn/stats"

	"SajuPulse/internal/domain/models"
	"SajuPulse/pkg/util"
)

const (
	DefaultOptimalThreshold = 70.0
	DefaultAvoidThreshold   = 40.0
	// CandidateFloor is the lowest score still worth proposing. Scores in
	// [avoid, CandidateFloor) are unremarkable and dropped.
	CandidateFloor = 60.0
)

const warningSeparator = " / "

const defaultWarning = "주의가 필요한 시기입니다. 중요한 결정은 신중하게 내리세요."

// Classifier accumulates periods into three buckets. Not safe for concurrent use.
type Classifier struct {
	optimalThreshold float64
	avoidThreshold   float64

	optimal   []models.OptimalPeriod
	candidate []models.CandidatePeriod
	avoid     []models.AvoidPeriod
}

// New returns a classifier with the given thresholds.
func New(optimal, avoid float64) *Classifier {
	return &Classifier{optimalThreshold: optimal, avoidThreshold: avoid}
}

// NewDefault returns a classifier with thresholds 70/40.
func NewDefault() *Classifier {
	return New(DefaultOptimalThreshold, DefaultAvoidThreshold)
}

// Thresholds returns the optimal and avoid thresholds.
func (c *Classifier) Thresholds() (float64, float64) {
	return c.optimalThreshold, c.avoidThreshold
}

// AddPeriod classifies one scored period and returns the bucket it landed in.
func (c *Classifier) AddPeriod(p models.Period, r models.ScoringResult) models.Bucket {
	b := c.BucketOf(r.Score)
	if b == models.BucketNone {
		return b
	}
	start, end := util.MonthRange(p.Year, p.Month)
	base := models.ClassifiedPeriod{
		Period:    p,
		Score:     r.Score,
		Grade:     GradeOf(r.Score),
		StartDate: start,
		EndDate:   end,
		Reasons:   slices.Clone(r.Reasons),
	}
	switch b {
	case models.BucketOptimal:
		c.optimal = append(c.optimal, models.OptimalPeriod{ClassifiedPeriod: base, Advice: Advice(r.Score)})
	case models.BucketCandidate:
		c.candidate = append(c.candidate, models.CandidatePeriod{ClassifiedPeriod: base, Advice: Advice(r.Score)})
	case models.BucketAvoid:
		c.avoid = append(c.avoid, models.AvoidPeriod{
			ClassifiedPeriod: base,
			AvoidReasons:     slices.Clone(r.AvoidReasons),
			Warning:          Warning(r.AvoidReasons),
		})
	}
	return b
}

// BucketOf returns the bucket a score falls in under this classifier's thresholds.
func (c *Classifier) BucketOf(s float64) models.Bucket {
	switch {
	case s >= c.optimalThreshold:
		return models.BucketOptimal
	case s >= CandidateFloor:
		return models.BucketCandidate
	case s < c.avoidThreshold:
		return models.BucketAvoid
	}
	return models.BucketNone
}

// OptimalPeriods returns the optimal bucket, highest score first.
func (c *Classifier) OptimalPeriods() []models.OptimalPeriod {
	out := slices.Clone(c.optimal)
	slices.SortStableFunc(out, func(a, b models.OptimalPeriod) int { return cmp.Compare(b.Score, a.Score) })
	return nonNil(out)
}

// CandidatePeriods returns the candidate bucket, highest score first.
func (c *Classifier) CandidatePeriods() []models.CandidatePeriod {
	out := slices.Clone(c.candidate)
	slices.SortStableFunc(out, func(a, b models.CandidatePeriod) int { return cmp.Compare(b.Score, a.Score) })
	return nonNil(out)
}

// AvoidPeriods returns the avoid bucket, lowest score first.
func (c *Classifier) AvoidPeriods() []models.AvoidPeriod {
	out := slices.Clone(c.avoid)
	slices.SortStableFunc(out, func(a, b models.AvoidPeriod) int { return cmp.Compare(a.Score, b.Score) })
	return nonNil(out)
}

// Result returns the three sorted buckets.
func (c *Classifier) Result() models.ClassificationResult {
	return models.ClassificationResult{
		Optimal:   c.OptimalPeriods(),
		Candidate: c.CandidatePeriods(),
		Avoid:     c.AvoidPeriods(),
	}
}

// Statistics counts the buckets. TotalPeriods counts classified periods only;
// gap-zone periods are not retained.
func (c *Classifier) Statistics() models.ClassificationStatistics {
	st := models.ClassificationStatistics{
		OptimalCount:   len(c.optimal),
		CandidateCount: len(c.candidate),
		AvoidCount:     len(c.avoid),
	}
	st.TotalPeriods = st.OptimalCount + st.CandidateCount + st.AvoidCount
	if len(c.optimal) > 0 {
		scores := make(stats.Float64Data, len(c.optimal))
		for i, p := range c.optimal {
			scores[i] = p.Score
		}
		if mean, err := stats.Mean(scores); err == nil {
			st.AverageOptimalScore = mean
		}
	}
	return st
}

// Reset empties every bucket. Thresholds are kept.
func (c *Classifier) Reset() {
	c.optimal = nil
	c.candidate = nil
	c.avoid = nil
}

// GradeOf maps a score to its letter grade.
func GradeOf(s float64) models.Grade {
	switch {
	case s >= 85:
		return models.GradeS
	case s >= 75:
		return models.GradeA
	case s >= 65:
		return models.GradeB
	case s >= 55:
		return models.GradeC
	}
	return models.GradeD
}

// Advice returns the tiered recommendation for an optimal or candidate score.
func Advice(s float64) string {
	switch {
	case s >= 85:
		return "최고의 시기입니다. 망설이지 말고 적극적으로 추진하세요."
	case s >= 75:
		return "매우 좋은 시기입니다. 계획한 일을 자신 있게 진행하세요."
	case s >= 65:
		return "좋은 시기입니다. 준비된 일부터 차근차근 진행하세요."
	}
	return "무난한 시기입니다. 충분히 검토한 뒤 신중하게 진행하세요."
}

// Warning joins the avoid reasons, or falls back to a general caution.
func Warning(avoidReasons []string) string {
	if len(avoidReasons) == 0 {
		return defaultWarning
	}
	return strings.Join(avoidReasons, warningSeparator)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package classifier

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SajuPulse/internal/domain/models"
)

func scored(year, month int, score float64, avoid ...string) (models.Period, models.ScoringResult) {
	return models.Period{Year: year, Month: month},
		models.ScoringResult{Score: score, Reasons: []string{"reason"}, AvoidReasons: avoid}
}

func TestBucketBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Bucket
	}{
		{100, models.BucketOptimal},
		{70, models.BucketOptimal},
		{69, models.BucketCandidate},
		{60, models.BucketCandidate},
		{59.9, models.BucketNone},
		{40, models.BucketNone},
		{39, models.BucketAvoid},
		{0, models.BucketAvoid},
	}
	for _, tc := range cases {
		c := NewDefault()
		p, r := scored(2025, 5, tc.score)
		assert.Equal(t, tc.want, c.AddPeriod(p, r), "score %v", tc.score)
		st := c.Statistics()
		if tc.want == models.BucketNone {
			assert.Zero(t, st.TotalPeriods)
		} else {
			assert.Equal(t, 1, st.TotalPeriods)
		}
	}
}

func TestScoreSeventyIsOptimalGradeB(t *testing.T) {
	c := NewDefault()
	p, r := scored(2025, 5, 70)
	c.AddPeriod(p, r)
	opt := c.OptimalPeriods()
	require.Len(t, opt, 1)
	assert.Equal(t, models.GradeB, opt[0].Grade)
}

func TestGradeOf(t *testing.T) {
	assert.Equal(t, models.GradeS, GradeOf(85))
	assert.Equal(t, models.GradeA, GradeOf(84.999))
	assert.Equal(t, models.GradeA, GradeOf(75))
	assert.Equal(t, models.GradeB, GradeOf(70))
	assert.Equal(t, models.GradeB, GradeOf(65))
	assert.Equal(t, models.GradeC, GradeOf(55))
	assert.Equal(t, models.GradeD, GradeOf(54.9))
	assert.Equal(t, models.GradeD, GradeOf(0))
}

func TestDateRanges(t *testing.T) {
	c := New(0, 0)
	for _, ym := range [][2]int{{2024, 2}, {2023, 2}, {2024, 1}, {2100, 2}} {
		p, r := scored(ym[0], ym[1], 90)
		c.AddPeriod(p, r)
	}
	got := map[string]string{}
	for _, o := range c.OptimalPeriods() {
		got[o.StartDate] = o.EndDate
	}
	want := map[string]string{
		"2024-02-01": "2024-02-29",
		"2023-02-01": "2023-02-28",
		"2024-01-01": "2024-01-31",
		"2100-02-01": "2100-02-28",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("date ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestAdviceTiers(t *testing.T) {
	tiers := []string{Advice(90), Advice(80), Advice(70), Advice(61)}
	for i := range tiers {
		for j := i + 1; j < len(tiers); j++ {
			assert.NotEqual(t, tiers[i], tiers[j])
		}
	}
	assert.Equal(t, Advice(85), Advice(99))
	assert.Equal(t, Advice(75), Advice(84))
}

func TestWarning(t *testing.T) {
	assert.Equal(t, defaultWarning, Warning(nil))
	assert.Equal(t, "a / b", Warning([]string{"a", "b"}))

	c := NewDefault()
	p, r := scored(2025, 1, 20, "충돌", "역행")
	c.AddPeriod(p, r)
	avoid := c.AvoidPeriods()
	require.Len(t, avoid, 1)
	assert.Equal(t, "충돌 / 역행", avoid[0].Warning)
	assert.Equal(t, []string{"충돌", "역행"}, avoid[0].AvoidReasons)
}

func TestSortOrderIndependentOfInput(t *testing.T) {
	scores := []float64{95, 72, 88, 61, 65, 10, 35, 20, 79, 5, 69}
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		rng.Shuffle(len(scores), func(i, j int) { scores[i], scores[j] = scores[j], scores[i] })
		c := NewDefault()
		for i, s := range scores {
			p, r := scored(2025, i%12+1, s)
			c.AddPeriod(p, r)
		}
		res := c.Result()

		var opt, cand, avoid []float64
		for _, o := range res.Optimal {
			opt = append(opt, o.Score)
		}
		for _, o := range res.Candidate {
			cand = append(cand, o.Score)
		}
		for _, o := range res.Avoid {
			avoid = append(avoid, o.Score)
		}
		assert.Equal(t, []float64{95, 88, 79, 72}, opt)
		assert.Equal(t, []float64{69, 65, 61}, cand)
		assert.Equal(t, []float64{5, 10, 20, 35}, avoid)
	}
}

func TestStatistics(t *testing.T) {
	c := NewDefault()
	assert.Equal(t, models.ClassificationStatistics{}, c.Statistics())

	for i, s := range []float64{85, 75, 65, 30} {
		p, r := scored(2025, i+1, s)
		c.AddPeriod(p, r)
	}
	st := c.Statistics()
	assert.Equal(t, 4, st.TotalPeriods)
	assert.Equal(t, 2, st.OptimalCount)
	assert.Equal(t, 1, st.CandidateCount)
	assert.Equal(t, 1, st.AvoidCount)
	assert.Equal(t, 80.0, st.AverageOptimalScore)
}

func TestResetBehavesLikeFresh(t *testing.T) {
	feed := func(c *Classifier) {
		for i, s := range []float64{91, 45, 62, 12, 77} {
			p, r := scored(2026, i+1, s, "x")
			c.AddPeriod(p, r)
		}
	}
	used := New(75, 30)
	feed(used)
	feed(used)
	used.Reset()
	assert.Equal(t, models.ClassificationStatistics{}, used.Statistics())
	feed(used)

	fresh := New(75, 30)
	feed(fresh)

	if diff := cmp.Diff(fresh.Result(), used.Result()); diff != "" {
		t.Fatalf("reset classifier differs from fresh (-fresh +used):\n%s", diff)
	}
	assert.Equal(t, fresh.Statistics(), used.Statistics())
}

func TestAddPeriodDoesNotAliasInput(t *testing.T) {
	c := NewDefault()
	p, r := scored(2025, 3, 90)
	c.AddPeriod(p, r)
	r.Reasons[0] = "changed"
	assert.Equal(t, []string{"reason"}, c.OptimalPeriods()[0].Reasons)
}

func TestEmptyResultHasEmptyLists(t *testing.T) {
	res := NewDefault().Result()
	assert.NotNil(t, res.Optimal)
	assert.NotNil(t, res.Candidate)
	assert.NotNil(t, res.Avoid)
	assert.Empty(t, res.Optimal)
}

package relations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SajuPulse/internal/domain/models"
	"SajuPulse/internal/services/temporal"
)

func ganji(t *testing.T, s string) models.Ganji {
	t.Helper()
	g, ok := models.ParseGanji(s)
	require.True(t, ok, s)
	return g
}

func names(fs []models.CausalFactor) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

func TestDetectClashAndCombination(t *testing.T) {
	profile := models.BirthProfile{DayPillar: ganji(t, "갑자"), YearPillar: ganji(t, "경오")}
	period := models.Period{MonthGanji: ganji(t, "경오"), YearGanji: ganji(t, "기해")}

	got := Detect(profile, period)
	assert.Equal(t, []string{"갑경충", "갑기합토", "자오충"}, names(got))
	assert.InDelta(t, 0.72, got[0].Strength, 1e-9)
	assert.InDelta(t, 0.6, got[1].Strength, 1e-9)
	assert.Contains(t, got[2].AffectedAreas, "이동")
}

func TestDetectSpecialStars(t *testing.T) {
	profile := models.BirthProfile{DayPillar: ganji(t, "갑자"), YearPillar: ganji(t, "경오")}

	noble := Detect(profile, models.Period{MonthGanji: ganji(t, "을축"), YearGanji: ganji(t, "계묘")})
	assert.Contains(t, names(noble), "자축육합")
	assert.Contains(t, names(noble), "천을귀인")

	peach := Detect(profile, models.Period{MonthGanji: ganji(t, "정묘"), YearGanji: ganji(t, "갑진")})
	assert.Contains(t, names(peach), "자묘 무례지형")
	assert.Contains(t, names(peach), "도화살")
}

func TestDetectNothingReturnsEmptySlice(t *testing.T) {
	profile := models.BirthProfile{DayPillar: ganji(t, "무진"), YearPillar: ganji(t, "무진")}
	got := Detector{}.Detect(profile, models.Period{MonthGanji: ganji(t, "무오"), YearGanji: ganji(t, "무오")})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetectStrengthInUnitRange(t *testing.T) {
	profile := temporal.NewProfile("", 1988, 11, 3, ganji(t, "신유"))
	for y := 2025; y < 2030; y++ {
		for m := 1; m <= 12; m++ {
			for _, f := range Detect(profile, temporal.ComputePeriod(profile, y, m)) {
				assert.True(t, f.Strength > 0 && f.Strength <= 1, "%s strength %v", f.Name, f.Strength)
				assert.NotEmpty(t, f.AffectedAreas)
				assert.NotEmpty(t, f.Description)
			}
		}
	}
}

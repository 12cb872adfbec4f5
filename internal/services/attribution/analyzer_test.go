package attribution

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SajuPulse/internal/domain/models"
	"SajuPulse/internal/services/knowledge"
)

func TestAnalyzeCategoriesSibsinAndStageFirst(t *testing.T) {
	scores := map[models.Category]float64{models.CategoryCareer: 82}
	out := AnalyzeCategories(scores, nil, models.SibsinJeonggwan, models.StageGeollok, nil, nil)

	require.Len(t, out, 6)
	career := out[models.CategoryCareer]
	assert.Equal(t, 82.0, career.Score)
	require.Len(t, career.Factors, 2)
	assert.Contains(t, career.Factors[0], "정관")
	assert.Contains(t, career.Factors[1], "건록")
	assert.Empty(t, career.WhyHappened)

	assert.Equal(t, 0.0, out[models.CategoryTravel].Score)
	assert.NotNil(t, out[models.CategoryTravel].Factors)
}

func TestAnalyzeCategoriesMatchesFactorsByKeyword(t *testing.T) {
	factors := []models.CausalFactor{
		{Name: "자오충", Description: "이동과 변동이 잦아짐", AffectedAreas: []string{"이동", "건강"}},
		{Name: "편재 유입", Description: "재물 흐름이 커짐", AffectedAreas: []string{"재물운"}},
	}
	out := AnalyzeCategories(nil, factors, "", "", nil, nil)

	assert.Equal(t, []string{"자오충"}, out[models.CategoryTravel].Factors)
	assert.Equal(t, []string{"이동과 변동이 잦아짐"}, out[models.CategoryTravel].WhyHappened)
	assert.Equal(t, []string{"자오충"}, out[models.CategoryHealth].Factors)
	assert.Equal(t, []string{"편재 유입"}, out[models.CategoryFinance].Factors)
	assert.Empty(t, out[models.CategoryEducation].Factors)
}

func TestAnalyzeCategoriesTruncates(t *testing.T) {
	var factors []models.CausalFactor
	for i := 0; i < 8; i++ {
		factors = append(factors, models.CausalFactor{
			Name:          fmt.Sprintf("factor-%d", i),
			Description:   fmt.Sprintf("why-%d", i),
			AffectedAreas: []string{"승진"},
		})
	}
	out := AnalyzeCategories(nil, factors, models.SibsinJeonggwan, models.StageGeollok, nil, nil)
	career := out[models.CategoryCareer]

	require.Len(t, career.Factors, MaxFactors)
	assert.Contains(t, career.Factors[0], "정관")
	assert.Contains(t, career.Factors[1], "건록")
	assert.Equal(t, "factor-0", career.Factors[2])
	assert.Equal(t, []string{"why-0", "why-1", "why-2"}, career.WhyHappened)
}

func TestAnalyzeCategoriesSolarTermOnlyForHealth(t *testing.T) {
	term, ok := knowledge.SolarTermByName("춘분")
	require.True(t, ok)
	out := AnalyzeCategories(nil, nil, "", "", &term, nil)

	require.Len(t, out[models.CategoryHealth].Factors, 1)
	assert.Contains(t, out[models.CategoryHealth].Factors[0], "춘분")
	assert.Empty(t, out[models.CategoryCareer].Factors)

	unstable, ok := knowledge.SolarTermByName("대서")
	require.True(t, ok)
	out = AnalyzeCategories(nil, nil, "", "", &unstable, nil)
	assert.Empty(t, out[models.CategoryHealth].Factors)
}

func TestAnalyzeCategoriesLunarMansionOnlyForRelationship(t *testing.T) {
	m, ok := knowledge.LunarMansionByName("각")
	require.True(t, ok)
	out := Analyzer{}.AnalyzeCategories(nil, nil, "", "", nil, &m)

	require.Len(t, out[models.CategoryRelationship].Factors, 1)
	assert.Contains(t, out[models.CategoryRelationship].Factors[0], "각")
	assert.Empty(t, out[models.CategoryHealth].Factors)

	other, ok := knowledge.LunarMansionByName("항")
	require.True(t, ok)
	out = AnalyzeCategories(nil, nil, "", "", nil, &other)
	assert.Empty(t, out[models.CategoryRelationship].Factors)
}

func TestAnalyzeCategoriesUnknownLabelsAreIgnored(t *testing.T) {
	out := AnalyzeCategories(nil, nil, "없음", "없음", nil, nil)
	for _, c := range models.AllCategories {
		assert.Empty(t, out[c].Factors, c)
	}
}

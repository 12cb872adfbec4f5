// Package attribution explains category scores with symbolic factors.
package attribution

import (
	"fmt"
	"strings"

	"SajuPulse/internal/domain/models"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/knowledge"
)

const (
	// MaxFactors caps the factor list per category.
	MaxFactors = 5
	// MaxWhyHappened caps the narrative list per category.
	MaxWhyHappened = 3
)

// AnalyzeCategories builds a CategoryAnalysis for each of the six categories.
// A category missing from scores is reported with score 0. term and mansion are optional.
func AnalyzeCategories(scores map[models.Category]float64, factors []models.CausalFactor,
	sibsin models.Sibsin, stage models.Stage, term *models.SolarTerm, mansion *models.LunarMansion,
) map[models.Category]models.CategoryAnalysis {
	out := make(map[models.Category]models.CategoryAnalysis, len(models.AllCategories))
	for _, c := range models.AllCategories {
		out[c] = analyze(c, scores[c], factors, sibsin, stage, term, mansion)
	}
	return out
}

func analyze(c models.Category, score float64, factors []models.CausalFactor,
	sibsin models.Sibsin, stage models.Stage, term *models.SolarTerm, mansion *models.LunarMansion,
) models.CategoryAnalysis {
	names := []string{}
	why := []string{}

	if e, ok := knowledge.SibsinEffect(sibsin, c); ok {
		names = append(names, fmt.Sprintf("%s: %s", sibsin, e))
	}
	if e, ok := knowledge.StageEffect(stage, c); ok {
		names = append(names, fmt.Sprintf("%s: %s", stage, e))
	}

	keywords := knowledge.CategoryKeywords(c)
	for _, f := range factors {
		if !touches(f.AffectedAreas, keywords) {
			continue
		}
		names = append(names, f.Name)
		if f.Description != "" {
			why = append(why, f.Description)
		}
	}

	if c == models.CategoryHealth && term != nil && term.Stabilizing {
		names = append(names, fmt.Sprintf("%s 절기의 안정 기운: %s", term.Name, term.Effect))
	}
	if c == models.CategoryRelationship && mansion != nil &&
		(mansion.Favors(models.EventMarriage) || mansion.Favors(models.EventRelationship)) {
		names = append(names, fmt.Sprintf("%s수의 인연 기운: %s", mansion.Name, mansion.Effect))
	}

	return models.CategoryAnalysis{
		Score:       score,
		Factors:     truncate(names, MaxFactors),
		WhyHappened: truncate(why, MaxWhyHappened),
	}
}

// touches reports whether any affected area mentions one of the category keywords.
func touches(areas, keywords []string) bool {
	for _, a := range areas {
		for _, k := range keywords {
			if strings.Contains(a, k) {
				return true
			}
		}
	}
	return false
}

func truncate(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Analyzer adapts AnalyzeCategories to the domain interface.
type Analyzer struct{}

var _ domsvc.CategoryAnalyzer = Analyzer{}

func (Analyzer) AnalyzeCategories(scores map[models.Category]float64, factors []models.CausalFactor,
	sibsin models.Sibsin, stage models.Stage, term *models.SolarTerm, mansion *models.LunarMansion,
) map[models.Category]models.CategoryAnalysis {
	return AnalyzeCategories(scores, factors, sibsin, stage, term, mansion)
}

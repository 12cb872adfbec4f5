// Package relations detects stem and branch interactions between a natal chart
// and a period, producing causal factors for attribution.
package relations

import (
	"fmt"

	"SajuPulse/internal/domain/models"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/knowledge"
)

// Affected areas per relation kind. Words are drawn from the category keyword sets.
var (
	combinationAreas = []string{"인연", "결혼", "대인관계", "사업"}
	clashAreas       = []string{"이동", "이사", "직장", "건강"}
	harmonyAreas     = []string{"인연", "재물", "대인관계"}
	trineAreas       = []string{"사업", "재물", "승진"}
	punishmentAreas  = []string{"건강", "질병", "문서"}
)

// Strength by which pillars meet. The day pillar is the self and weighs most.
const (
	dayMonthStrength   = 0.8
	dayYearStrength    = 0.6
	yearYearStrength   = 0.5
	clashDiscount      = 0.9
	punishmentDiscount = 0.7
)

type pairing struct {
	label    string
	natal    models.Ganji
	period   models.Ganji
	strength float64
}

// Detect lists the relations between profile and period, stems first, then
// branches, then special stars.
func Detect(profile models.BirthProfile, period models.Period) []models.CausalFactor {
	pairs := []pairing{
		{"일주와 월주", profile.DayPillar, period.MonthGanji, dayMonthStrength},
		{"일주와 세운", profile.DayPillar, period.YearGanji, dayYearStrength},
		{"연주와 세운", profile.YearPillar, period.YearGanji, yearYearStrength},
	}
	out := []models.CausalFactor{}
	for _, p := range pairs {
		out = append(out, stemFactors(p)...)
	}
	for _, p := range pairs {
		out = append(out, branchFactors(p)...)
	}
	out = append(out, starFactors(profile, period)...)
	return out
}

func stemFactors(p pairing) []models.CausalFactor {
	a, b := p.natal.Stem, p.period.Stem
	var out []models.CausalFactor
	if c, ok := knowledge.StemCombinationOf(a, b); ok {
		out = append(out, models.CausalFactor{
			Name:          fmt.Sprintf("%s%s합%s", c.A, c.B, c.Element),
			Description:   fmt.Sprintf("%s의 천간 %s과 %s이 합하여 %s 기운으로 묶임", p.label, a, b, c.Element),
			Strength:      p.strength,
			AffectedAreas: combinationAreas,
		})
	}
	if knowledge.StemsClash(a, b) {
		out = append(out, models.CausalFactor{
			Name:          fmt.Sprintf("%s%s충", a, b),
			Description:   fmt.Sprintf("%s의 천간 %s과 %s이 부딪혀 계획에 변동이 생김", p.label, a, b),
			Strength:      p.strength * clashDiscount,
			AffectedAreas: clashAreas,
		})
	}
	return out
}

func branchFactors(p pairing) []models.CausalFactor {
	a, b := p.natal.Branch, p.period.Branch
	var out []models.CausalFactor
	if c, ok := knowledge.SixCombinationOf(a, b); ok {
		out = append(out, models.CausalFactor{
			Name:          fmt.Sprintf("%s%s육합", a, b),
			Description:   fmt.Sprintf("%s의 지지 %s과 %s이 육합하여 %s 기운이 생김", p.label, a, b, c.Element),
			Strength:      p.strength,
			AffectedAreas: harmonyAreas,
		})
	}
	if g, ok := knowledge.PartialTrineOf(a, b); ok {
		out = append(out, models.CausalFactor{
			Name:          fmt.Sprintf("%s%s반합", a, b),
			Description:   fmt.Sprintf("%s의 지지 %s과 %s이 반합하여 %s 국을 이룸", p.label, a, b, g.Element),
			Strength:      p.strength,
			AffectedAreas: trineAreas,
		})
	}
	if knowledge.BranchesClash(a, b) {
		out = append(out, models.CausalFactor{
			Name:          fmt.Sprintf("%s%s충", a, b),
			Description:   fmt.Sprintf("%s의 지지 %s과 %s이 충돌하여 이동과 변화가 많아짐", p.label, a, b),
			Strength:      p.strength * clashDiscount,
			AffectedAreas: clashAreas,
		})
	}
	if kind, ok := knowledge.PunishmentOf(a, b); ok {
		out = append(out, models.CausalFactor{
			Name:          fmt.Sprintf("%s%s %s", a, b, kind),
			Description:   fmt.Sprintf("%s의 지지 %s과 %s이 %s을 이루어 마찰과 소모가 생김", p.label, a, b, kind),
			Strength:      p.strength * punishmentDiscount,
			AffectedAreas: punishmentAreas,
		})
	}
	return out
}

// Stars are checked against the month branch, anchored on both the natal day
// and year branches; a star found from either anchor is reported once.
func starFactors(profile models.BirthProfile, period models.Period) []models.CausalFactor {
	dm := profile.DayMaster()
	target := period.MonthGanji.Branch
	seen := map[knowledge.SpecialStar]bool{}
	var out []models.CausalFactor
	for _, anchor := range []models.Branch{profile.DayPillar.Branch, profile.YearPillar.Branch} {
		for _, s := range knowledge.StarsAt(dm, anchor, target) {
			if seen[s] {
				continue
			}
			seen[s] = true
			info, ok := knowledge.StarInfoOf(s)
			if !ok {
				continue
			}
			out = append(out, models.CausalFactor{
				Name:          string(s),
				Description:   fmt.Sprintf("%s월에 %s이 들어와 %s", target, s, info.Description),
				Strength:      info.Strength,
				AffectedAreas: info.Areas,
			})
		}
	}
	return out
}

// Detector adapts Detect to the domain interface.
type Detector struct{}

var _ domsvc.FactorDetector = Detector{}

func (Detector) Detect(profile models.BirthProfile, period models.Period) []models.CausalFactor {
	return Detect(profile, period)
}

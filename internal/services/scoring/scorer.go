// Package scoring turns a period and optional astrology snapshots into a 0-100
// favorability score for one event type.
package scoring

import (
	"fmt"
	"slices"

	"SajuPulse/internal/domain/models"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/knowledge"
)

// NeutralScore is where every evaluation starts.
const NeutralScore = 50.0

const (
	sibsinDelta  = 15.0
	stageDelta   = 10.0
	elementDelta = 5.0

	// Scales the sibsin base score's distance from neutral.
	baseWeight = 0.2

	natalSignDelta  = 4.0
	natalHouseDelta = 3.0
	retrogradeDelta = 6.0

	aspectStrongDelta = 8.0
	aspectMildDelta   = 3.0
	transitHouseDelta = 4.0
	maleficHouseDelta = 3.0

	// Aspects wider than this are ignored.
	maxOrb = 8.0
)

type tally struct {
	score   float64
	reasons []string
	avoid   []string
}

func (t *tally) favor(delta float64, reason string) {
	t.score += delta
	t.reasons = append(t.reasons, reason)
}

func (t *tally) penalize(delta float64, reason string) {
	t.score -= delta
	t.avoid = append(t.avoid, reason)
}

// ScoreEvent scores period for event. A nil natal or transit snapshot skips that
// stage; the Saju stage always runs. An unrecognised event type yields the
// neutral score with no reasons.
func ScoreEvent(period models.Period, event models.EventType, natal *models.NatalSnapshot, transit *models.TransitSnapshot) models.ScoringResult {
	t := &tally{score: NeutralScore}
	if conds, ok := knowledge.ConditionsFor(event); ok {
		scoreSaju(t, period, conds.Label, conds.Saju)
		if natal != nil {
			scoreNatal(t, natal, conds.Label, conds.Natal)
		}
		if transit != nil {
			scoreTransit(t, transit, conds.Label, conds.Transit)
		}
	}
	return models.ScoringResult{
		Score:        clamp(t.score),
		Reasons:      nonNil(t.reasons),
		AvoidReasons: nonNil(t.avoid),
	}
}

func scoreSaju(t *tally, p models.Period, label string, c knowledge.SajuConditions) {
	switch {
	case slices.Contains(c.FavorableSibsin, p.Sibsin):
		t.favor(sibsinDelta, fmt.Sprintf("%s의 기운이 %s에 유리함", p.Sibsin, label))
	case slices.Contains(c.AvoidSibsin, p.Sibsin):
		t.penalize(sibsinDelta, fmt.Sprintf("%s의 기운이 %s에 불리함", p.Sibsin, label))
	}
	switch {
	case slices.Contains(c.FavorableStages, p.Stage):
		t.favor(stageDelta, fmt.Sprintf("%s 단계로 %s 운의 기세가 좋음", p.Stage, label))
	case slices.Contains(c.AvoidStages, p.Stage):
		t.penalize(stageDelta, fmt.Sprintf("%s 단계로 %s 운의 기세가 약함", p.Stage, label))
	}
	el := p.Element()
	switch {
	case slices.Contains(c.FavorableElements, el):
		t.favor(elementDelta, fmt.Sprintf("%s 기운이 %s에 도움이 됨", el, label))
	case slices.Contains(c.AvoidElements, el):
		t.penalize(elementDelta, fmt.Sprintf("%s 기운이 %s과 맞지 않음", el, label))
	}
	if base, ok := knowledge.SibsinBaseScore(p.Sibsin); ok {
		t.score += (base - NeutralScore) * baseWeight
	}
}

func scoreNatal(t *tally, n *models.NatalSnapshot, label string, c knowledge.NatalConditions) {
	for _, pos := range n.Planets {
		name := knowledge.PlanetName(pos.Planet)
		if slices.Contains(c.KeyPlanets, pos.Planet) {
			if slices.Contains(c.FavorableSigns, pos.Sign) {
				t.favor(natalSignDelta, fmt.Sprintf("출생 차트 %s의 %s 배치가 %s에 유리함", name, knowledge.SignName(pos.Sign), label))
			}
			if slices.Contains(c.FavorableHouses, pos.House) {
				t.favor(natalHouseDelta, fmt.Sprintf("출생 차트 %s의 %d하우스 배치가 %s에 유리함", name, pos.House, label))
			}
		}
		if pos.Retrograde && slices.Contains(c.AvoidRetrograde, pos.Planet) {
			t.penalize(retrogradeDelta, fmt.Sprintf("%s 역행으로 %s이 지연되기 쉬움", name, label))
		}
	}
	if n.MoonPhase == "" {
		return
	}
	bonus := c.MoonPhaseBonus[n.MoonPhase]
	phase, ok := knowledge.MoonPhaseName(n.MoonPhase)
	if !ok {
		return
	}
	switch {
	case bonus > 0:
		t.favor(bonus, fmt.Sprintf("%s 위상이 %s에 유리함", phase, label))
	case bonus < 0:
		t.penalize(-bonus, fmt.Sprintf("%s 위상이 %s에 불리함", phase, label))
	}
}

type nature int

const (
	neutral nature = iota
	benefic
	malefic
)

func planetNature(p models.Planet, c knowledge.TransitConditions) nature {
	switch {
	case slices.Contains(c.BeneficPlanets, p):
		return benefic
	case slices.Contains(c.MaleficPlanets, p):
		return malefic
	}
	return neutral
}

// A conjunction takes on the nature of the planet forming it.
func aspectNature(a models.AspectType, planet nature, c knowledge.TransitConditions) nature {
	switch {
	case a == models.AspectConjunction:
		return planet
	case slices.Contains(c.BeneficAspects, a):
		return benefic
	case slices.Contains(c.MaleficAspects, a):
		return malefic
	}
	return neutral
}

func scoreTransit(t *tally, tr *models.TransitSnapshot, label string, c knowledge.TransitConditions) {
	for _, a := range tr.Aspects {
		if a.Orb > maxOrb || !slices.Contains(c.KeyNatalPoints, a.NatalPoint) {
			continue
		}
		pn := planetNature(a.TransitPlanet, c)
		if pn == neutral {
			continue
		}
		desc := fmt.Sprintf("트랜짓 %s이 출생 %s과 %s", knowledge.PlanetName(a.TransitPlanet),
			knowledge.PlanetName(a.NatalPoint), knowledge.AspectName(a.Type))
		switch an := aspectNature(a.Type, pn, c); {
		case an == benefic && pn == benefic:
			t.favor(aspectStrongDelta, fmt.Sprintf("%s: %s에 강한 길조", desc, label))
		case an == benefic && pn == malefic:
			t.favor(aspectMildDelta, fmt.Sprintf("%s: %s에 안정적인 뒷받침", desc, label))
		case an == malefic && pn == malefic:
			t.penalize(aspectStrongDelta, fmt.Sprintf("%s: %s에 강한 압박", desc, label))
		case an == malefic && pn == benefic:
			t.penalize(aspectMildDelta, fmt.Sprintf("%s: %s에 약한 긴장", desc, label))
		}
	}
	for _, pos := range tr.Positions {
		if !slices.Contains(c.FavorableHouses, pos.House) {
			continue
		}
		name := knowledge.PlanetName(pos.Planet)
		switch planetNature(pos.Planet, c) {
		case benefic:
			t.favor(transitHouseDelta, fmt.Sprintf("트랜짓 %s이 %d하우스를 지나 %s에 유리함", name, pos.House, label))
		case malefic:
			t.penalize(maleficHouseDelta, fmt.Sprintf("트랜짓 %s이 %d하우스를 지나 %s에 부담", name, pos.House, label))
		}
	}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Scorer adapts ScoreEvent to the domain interface.
type Scorer struct{}

var _ domsvc.EventScorer = Scorer{}

func (Scorer) ScoreEvent(period models.Period, event models.EventType, natal *models.NatalSnapshot, transit *models.TransitSnapshot) models.ScoringResult {
	return ScoreEvent(period, event, natal, transit)
}

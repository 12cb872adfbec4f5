// Package knowledge holds the static symbolic tables the scoring engine reads.
// Tables are unexported package variables only read through accessors; nothing
// mutates them after init.
package knowledge

import "SajuPulse/internal/domain/models"

// StemCombination is a heavenly-stem pair that merges into a new element.
type StemCombination struct {
	A, B    models.Stem
	Element models.Element
}

var stemCombinations = []StemCombination{
	{models.StemGap, models.StemGi, models.ElementEarth},
	{models.StemEul, models.StemGyeong, models.ElementMetal},
	{models.StemByeong, models.StemSin, models.ElementWater},
	{models.StemJeong, models.StemIm, models.ElementWood},
	{models.StemMu, models.StemGye, models.ElementFire},
}

// 무 and 기 sit in the centre and have no clash partner.
var stemClashes = [][2]models.Stem{
	{models.StemGap, models.StemGyeong},
	{models.StemEul, models.StemSin},
	{models.StemByeong, models.StemIm},
	{models.StemJeong, models.StemGye},
}

// StemCombinationOf returns the combination formed by a and b in either order.
func StemCombinationOf(a, b models.Stem) (StemCombination, bool) {
	for _, c := range stemCombinations {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return c, true
		}
	}
	return StemCombination{}, false
}

// StemsClash reports whether a and b form a stem clash.
func StemsClash(a, b models.Stem) bool {
	for _, c := range stemClashes {
		if (c[0] == a && c[1] == b) || (c[0] == b && c[1] == a) {
			return true
		}
	}
	return false
}

// BranchCombination is one of the six branch harmonies.
type BranchCombination struct {
	A, B    models.Branch
	Element models.Element
}

var sixCombinations = []BranchCombination{
	{models.BranchJa, models.BranchChuk, models.ElementEarth},
	{models.BranchIn, models.BranchHae, models.ElementWood},
	{models.BranchMyo, models.BranchSul, models.ElementFire},
	{models.BranchJin, models.BranchYu, models.ElementMetal},
	{models.BranchSa, models.BranchSin, models.ElementWater},
	{models.BranchO, models.BranchMi, models.ElementFire},
}

// SixCombinationOf returns the harmony formed by a and b in either order.
func SixCombinationOf(a, b models.Branch) (BranchCombination, bool) {
	for _, c := range sixCombinations {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return c, true
		}
	}
	return BranchCombination{}, false
}

// TrineGroup is a three-branch frame; the middle branch is the element's peak.
type TrineGroup struct {
	Branches [3]models.Branch
	Element  models.Element
}

var trineGroups = []TrineGroup{
	{[3]models.Branch{models.BranchSin, models.BranchJa, models.BranchJin}, models.ElementWater},
	{[3]models.Branch{models.BranchHae, models.BranchMyo, models.BranchMi}, models.ElementWood},
	{[3]models.Branch{models.BranchIn, models.BranchO, models.BranchSul}, models.ElementFire},
	{[3]models.Branch{models.BranchSa, models.BranchYu, models.BranchChuk}, models.ElementMetal},
}

func (g TrineGroup) contains(b models.Branch) bool {
	return g.Branches[0] == b || g.Branches[1] == b || g.Branches[2] == b
}

// TrineGroupOf returns the frame b belongs to. Every branch belongs to exactly one.
func TrineGroupOf(b models.Branch) TrineGroup {
	for _, g := range trineGroups {
		if g.contains(b) {
			return g
		}
	}
	return TrineGroup{}
}

// PartialTrineOf reports a half-trine: two distinct branches from the same frame.
func PartialTrineOf(a, b models.Branch) (TrineGroup, bool) {
	if a == b {
		return TrineGroup{}, false
	}
	g := TrineGroupOf(a)
	if g.contains(b) {
		return g, true
	}
	return TrineGroup{}, false
}

var branchClashes = [][2]models.Branch{
	{models.BranchJa, models.BranchO},
	{models.BranchChuk, models.BranchMi},
	{models.BranchIn, models.BranchSin},
	{models.BranchMyo, models.BranchYu},
	{models.BranchJin, models.BranchSul},
	{models.BranchSa, models.BranchHae},
}

// BranchesClash reports whether a and b sit opposite each other.
func BranchesClash(a, b models.Branch) bool {
	for _, c := range branchClashes {
		if (c[0] == a && c[1] == b) || (c[0] == b && c[1] == a) {
			return true
		}
	}
	return false
}

// PunishmentKind names a branch punishment pattern.
type PunishmentKind string

const (
	PunishmentUngrateful PunishmentKind = "무은지형"
	PunishmentPower      PunishmentKind = "지세지형"
	PunishmentRude       PunishmentKind = "무례지형"
	PunishmentSelf       PunishmentKind = "자형"
)

var threeWayPunishments = []struct {
	kind     PunishmentKind
	branches [3]models.Branch
}{
	{PunishmentUngrateful, [3]models.Branch{models.BranchIn, models.BranchSa, models.BranchSin}},
	{PunishmentPower, [3]models.Branch{models.BranchChuk, models.BranchSul, models.BranchMi}},
}

var selfPunishing = map[models.Branch]struct{}{
	models.BranchJin: {},
	models.BranchO:   {},
	models.BranchYu:  {},
	models.BranchHae: {},
}

// PunishmentOf returns the punishment formed by a and b, if any.
func PunishmentOf(a, b models.Branch) (PunishmentKind, bool) {
	if a == b {
		if _, ok := selfPunishing[a]; ok {
			return PunishmentSelf, true
		}
		return "", false
	}
	for _, p := range threeWayPunishments {
		in := func(x models.Branch) bool {
			return p.branches[0] == x || p.branches[1] == x || p.branches[2] == x
		}
		if in(a) && in(b) {
			return p.kind, true
		}
	}
	if (a == models.BranchJa && b == models.BranchMyo) || (a == models.BranchMyo && b == models.BranchJa) {
		return PunishmentRude, true
	}
	return "", false
}

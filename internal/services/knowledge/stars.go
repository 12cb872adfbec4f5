package knowledge

import "SajuPulse/internal/domain/models"

// SpecialStar is a named auspicious or volatile star (신살).
type SpecialStar string

const (
	StarHeavenlyNoble SpecialStar = "천을귀인"
	StarAcademic      SpecialStar = "문창귀인"
	StarTravel        SpecialStar = "역마살"
	StarPeachBlossom  SpecialStar = "도화살"
)

// StarInfo describes what a star brings and which life areas it touches.
type StarInfo struct {
	Description string
	Areas       []string
	Strength    float64
}

var starInfo = map[SpecialStar]StarInfo{
	StarHeavenlyNoble: {"귀인의 도움으로 어려움이 풀리고 명예가 따름", []string{"명예", "승진", "인연"}, 0.8},
	StarAcademic:      {"학문과 문서의 기운이 밝아 시험과 계약에 유리함", []string{"학업", "시험", "문서", "자격"}, 0.7},
	StarTravel:        {"움직임의 기운이 강해 이동과 변화가 잦아짐", []string{"이동", "이사", "여행", "출장"}, 0.6},
	StarPeachBlossom:  {"매력과 인기가 높아져 이성 인연이 활발해짐", []string{"연애", "인연", "대인관계"}, 0.6},
}

// StarInfoOf returns the description of a star.
func StarInfoOf(s SpecialStar) (StarInfo, bool) {
	info, ok := starInfo[s]
	return info, ok
}

// Keyed by day stem.
var heavenlyNoble = map[models.Stem][2]models.Branch{
	models.StemGap:    {models.BranchChuk, models.BranchMi},
	models.StemMu:     {models.BranchChuk, models.BranchMi},
	models.StemGyeong: {models.BranchChuk, models.BranchMi},
	models.StemEul:    {models.BranchJa, models.BranchSin},
	models.StemGi:     {models.BranchJa, models.BranchSin},
	models.StemByeong: {models.BranchHae, models.BranchYu},
	models.StemJeong:  {models.BranchHae, models.BranchYu},
	models.StemSin:    {models.BranchIn, models.BranchO},
	models.StemIm:     {models.BranchSa, models.BranchMyo},
	models.StemGye:    {models.BranchSa, models.BranchMyo},
}

// Keyed by day stem.
var academicStar = map[models.Stem]models.Branch{
	models.StemGap:    models.BranchSa,
	models.StemEul:    models.BranchO,
	models.StemByeong: models.BranchSin,
	models.StemJeong:  models.BranchYu,
	models.StemMu:     models.BranchSin,
	models.StemGi:     models.BranchYu,
	models.StemGyeong: models.BranchHae,
	models.StemSin:    models.BranchJa,
	models.StemIm:     models.BranchIn,
	models.StemGye:    models.BranchMyo,
}

// Keyed by the peak branch of the natal branch's trine frame.
var travelStar = map[models.Branch]models.Branch{
	models.BranchJa:  models.BranchIn,
	models.BranchO:   models.BranchSin,
	models.BranchYu:  models.BranchHae,
	models.BranchMyo: models.BranchSa,
}

var peachBlossom = map[models.Branch]models.Branch{
	models.BranchJa:  models.BranchYu,
	models.BranchO:   models.BranchMyo,
	models.BranchYu:  models.BranchO,
	models.BranchMyo: models.BranchJa,
}

// HeavenlyNobleBranches returns the noble branches for a day stem.
func HeavenlyNobleBranches(dayStem models.Stem) ([2]models.Branch, bool) {
	b, ok := heavenlyNoble[dayStem]
	return b, ok
}

// AcademicBranch returns the academic-star branch for a day stem.
func AcademicBranch(dayStem models.Stem) (models.Branch, bool) {
	b, ok := academicStar[dayStem]
	return b, ok
}

// TravelBranch returns the travel-star branch for a natal year or day branch.
func TravelBranch(natal models.Branch) models.Branch {
	return travelStar[TrineGroupOf(natal).Branches[1]]
}

// PeachBlossomBranch returns the peach-blossom branch for a natal year or day branch.
func PeachBlossomBranch(natal models.Branch) models.Branch {
	return peachBlossom[TrineGroupOf(natal).Branches[1]]
}

// StarsAt lists the stars a target branch activates for the given day stem and
// natal anchor branch, in table order.
func StarsAt(dayStem models.Stem, natal, target models.Branch) []SpecialStar {
	var out []SpecialStar
	if nb, ok := heavenlyNoble[dayStem]; ok && (nb[0] == target || nb[1] == target) {
		out = append(out, StarHeavenlyNoble)
	}
	if ab, ok := academicStar[dayStem]; ok && ab == target {
		out = append(out, StarAcademic)
	}
	if TravelBranch(natal) == target {
		out = append(out, StarTravel)
	}
	if PeachBlossomBranch(natal) == target {
		out = append(out, StarPeachBlossom)
	}
	return out
}

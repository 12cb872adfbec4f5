package models

// Sibsin is the Ten-Gods relation between the day master and another stem.
// It is a string type so unknown labels coming from callers stay representable.
type Sibsin string

const (
	SibsinBigyeon   Sibsin = "비견"
	SibsinGeopjae   Sibsin = "겁재"
	SibsinSiksin    Sibsin = "식신"
	SibsinSanggwan  Sibsin = "상관"
	SibsinPyeonjae  Sibsin = "편재"
	SibsinJeongjae  Sibsin = "정재"
	SibsinPyeongwan Sibsin = "편관"
	SibsinJeonggwan Sibsin = "정관"
	SibsinPyeonin   Sibsin = "편인"
	SibsinJeongin   Sibsin = "정인"
)

// AllSibsin lists the ten relations in traditional order.
var AllSibsin = []Sibsin{
	SibsinBigyeon, SibsinGeopjae, SibsinSiksin, SibsinSanggwan, SibsinPyeonjae,
	SibsinJeongjae, SibsinPyeongwan, SibsinJeonggwan, SibsinPyeonin, SibsinJeongin,
}

// Valid reports whether s is one of the ten known relations.
func (s Sibsin) Valid() bool {
	for _, v := range AllSibsin {
		if v == s {
			return true
		}
	}
	return false
}

// Stage is one of the twelve vitality phases, 장생 (birth) through 양 (nurture).
type Stage string

const (
	StageJangsaeng Stage = "장생"
	StageMogyok    Stage = "목욕"
	StageGwandae   Stage = "관대"
	StageGeollok   Stage = "건록"
	StageJewang    Stage = "제왕"
	StageSoe       Stage = "쇠"
	StageByeong    Stage = "병"
	StageSa        Stage = "사"
	StageMyo       Stage = "묘"
	StageJeol      Stage = "절"
	StageTae       Stage = "태"
	StageYang      Stage = "양"
)

// AllStages lists the twelve stages in cycle order.
var AllStages = []Stage{
	StageJangsaeng, StageMogyok, StageGwandae, StageGeollok, StageJewang, StageSoe,
	StageByeong, StageSa, StageMyo, StageJeol, StageTae, StageYang,
}

func (s Stage) Valid() bool {
	for _, v := range AllStages {
		if v == s {
			return true
		}
	}
	return false
}

package knowledge

import "SajuPulse/internal/domain/models"

// DeriveSibsin returns the Ten-Gods relation of other as seen from the day master.
func DeriveSibsin(dayMaster, other models.Stem) models.Sibsin {
	de, oe := dayMaster.Element(), other.Element()
	same := dayMaster.Yang() == other.Yang()
	pick := func(samePolarity, diffPolarity models.Sibsin) models.Sibsin {
		if same {
			return samePolarity
		}
		return diffPolarity
	}
	switch {
	case oe == de:
		return pick(models.SibsinBigyeon, models.SibsinGeopjae)
	case de.Generates() == oe:
		return pick(models.SibsinSiksin, models.SibsinSanggwan)
	case de.Controls() == oe:
		return pick(models.SibsinPyeonjae, models.SibsinJeongjae)
	case oe.Controls() == de:
		return pick(models.SibsinPyeongwan, models.SibsinJeonggwan)
	default:
		return pick(models.SibsinPyeonin, models.SibsinJeongin)
	}
}

var sibsinBaseScores = map[models.Sibsin]float64{
	models.SibsinJeonggwan: 85,
	models.SibsinJeongjae:  80,
	models.SibsinJeongin:   80,
	models.SibsinSiksin:    75,
	models.SibsinPyeonjae:  70,
	models.SibsinPyeonin:   60,
	models.SibsinBigyeon:   55,
	models.SibsinPyeongwan: 45,
	models.SibsinSanggwan:  40,
	models.SibsinGeopjae:   35,
}

// SibsinBaseScore returns the general favorability of a relation on a 0-100 scale.
func SibsinBaseScore(s models.Sibsin) (float64, bool) {
	v, ok := sibsinBaseScores[s]
	return v, ok
}

// Branch where each stem's twelve-stage cycle begins (장생).
var longLifeBranch = [models.StemCount]models.Branch{
	models.StemGap:    models.BranchHae,
	models.StemEul:    models.BranchO,
	models.StemByeong: models.BranchIn,
	models.StemJeong:  models.BranchYu,
	models.StemMu:     models.BranchIn,
	models.StemGi:     models.BranchYu,
	models.StemGyeong: models.BranchSa,
	models.StemSin:    models.BranchJa,
	models.StemIm:     models.BranchSin,
	models.StemGye:    models.BranchMyo,
}

// StageOf returns the twelve-stage phase of the day master at branch b.
// Yang stems advance through the branches, yin stems retreat.
func StageOf(dayMaster models.Stem, b models.Branch) models.Stage {
	start := longLifeBranch[dayMaster]
	var idx int
	if dayMaster.Yang() {
		idx = (int(b) - int(start) + models.BranchCount) % models.BranchCount
	} else {
		idx = (int(start) - int(b) + models.BranchCount) % models.BranchCount
	}
	return models.AllStages[idx]
}

// Not every relation has a note for every category.
var sibsinEffects = map[models.Sibsin]map[models.Category]string{
	models.SibsinBigyeon: {
		models.CategoryCareer:       "동료와의 협력으로 일의 추진력이 생김",
		models.CategoryFinance:      "재물이 분산되기 쉬워 공동 지출에 주의",
		models.CategoryRelationship: "친구와 동료 관계가 넓어짐",
		models.CategoryTravel:       "동행과 함께하는 이동이 유리함",
	},
	models.SibsinGeopjae: {
		models.CategoryCareer:       "경쟁 구도 속에서 과감한 도전이 요구됨",
		models.CategoryFinance:      "경쟁과 보증으로 인한 재물 손실 위험",
		models.CategoryRelationship: "경쟁 상대가 등장하기 쉬움",
	},
	models.SibsinSiksin: {
		models.CategoryCareer:    "재능과 기술이 인정받음",
		models.CategoryFinance:   "꾸준한 수입 흐름이 이어짐",
		models.CategoryHealth:    "식욕과 활력이 살아남",
		models.CategoryEducation: "창의적인 학습에 유리함",
	},
	models.SibsinSanggwan: {
		models.CategoryCareer:       "기존 질서와 마찰이 생겨 윗사람과의 충돌에 주의",
		models.CategoryRelationship: "말로 인한 오해에 주의",
		models.CategoryEducation:    "표현력과 발표력이 향상됨",
	},
	models.SibsinPyeonjae: {
		models.CategoryCareer:       "사업 확장의 기회가 찾아옴",
		models.CategoryFinance:      "예상치 못한 큰 재물 기회",
		models.CategoryRelationship: "이성 인연이 활발해짐",
		models.CategoryTravel:       "외부 활동과 출장이 늘어남",
	},
	models.SibsinJeongjae: {
		models.CategoryCareer:       "성실함이 보상받음",
		models.CategoryFinance:      "안정적인 재물 축적",
		models.CategoryRelationship: "배우자와의 관계가 안정됨",
	},
	models.SibsinPyeongwan: {
		models.CategoryCareer:       "강한 압박 속에서 책임과 권한이 커짐",
		models.CategoryRelationship: "긴장된 관계가 이어지기 쉬움",
		models.CategoryHealth:       "과로와 스트레스 누적에 주의",
	},
	models.SibsinJeonggwan: {
		models.CategoryCareer:       "승진과 명예 등 직업운이 상승함",
		models.CategoryRelationship: "공식적인 인연과 결혼 운",
		models.CategoryEducation:    "자격과 시험 합격 운",
	},
	models.SibsinPyeonin: {
		models.CategoryCareer:    "전문성이 강화됨",
		models.CategoryHealth:    "신경 과민에 주의",
		models.CategoryEducation: "특수 분야의 학습과 연구에 유리함",
	},
	models.SibsinJeongin: {
		models.CategoryCareer:    "윗사람의 후원을 받음",
		models.CategoryHealth:    "심신이 안정되고 회복이 빠름",
		models.CategoryEducation: "학업과 문서운이 상승함",
	},
}

// SibsinEffect returns the note for s in category c, if one exists.
func SibsinEffect(s models.Sibsin, c models.Category) (string, bool) {
	v, ok := sibsinEffects[s][c]
	return v, ok
}

var stageEffects = map[models.Stage]map[models.Category]string{
	models.StageJangsaeng: {
		models.CategoryCareer:    "새 출발에 유리함",
		models.CategoryHealth:    "새로운 활력이 생김",
		models.CategoryEducation: "배움을 시작하기 좋음",
	},
	models.StageMogyok: {
		models.CategoryFinance:      "충동 지출에 주의",
		models.CategoryRelationship: "감정 기복과 이성 관계의 변화",
	},
	models.StageGwandae: {
		models.CategoryCareer:    "자신감과 추진력이 상승함",
		models.CategoryEducation: "성장과 도약의 흐름",
	},
	models.StageGeollok: {
		models.CategoryCareer:  "실력이 안정적으로 발휘됨",
		models.CategoryFinance: "자립적인 수입을 확보함",
		models.CategoryHealth:  "체력이 충실함",
	},
	models.StageJewang: {
		models.CategoryCareer: "기세가 정점에 올라 과신에 주의",
		models.CategoryHealth: "에너지가 최고조에 이름",
	},
	models.StageSoe: {
		models.CategoryCareer: "확장보다 지키는 전략이 유리함",
		models.CategoryHealth: "기력 저하에 주의",
	},
	models.StageByeong: {
		models.CategoryHealth: "건강 관리가 필요함",
		models.CategoryTravel: "무리한 이동은 자제",
	},
	models.StageSa: {
		models.CategoryCareer:  "한 단계가 마무리됨",
		models.CategoryFinance: "투자를 줄이는 편이 유리함",
	},
	models.StageMyo: {
		models.CategoryFinance:   "재물을 저장하고 보존하는 시기",
		models.CategoryEducation: "깊이 있는 연구에 적합함",
	},
	models.StageJeol: {
		models.CategoryCareer:       "방향 전환의 계기가 생김",
		models.CategoryRelationship: "관계의 단절과 전환",
	},
	models.StageTae: {
		models.CategoryRelationship: "새 인연이 싹틈",
		models.CategoryEducation:    "새로운 구상이 움틈",
	},
	models.StageYang: {
		models.CategoryFinance: "기반을 기르는 시기",
		models.CategoryHealth:  "회복과 보양에 적합함",
	},
}

// StageEffect returns the note for stage s in category c, if one exists.
func StageEffect(s models.Stage, c models.Category) (string, bool) {
	v, ok := stageEffects[s][c]
	return v, ok
}

var categoryKeywords = map[models.Category][]string{
	models.CategoryCareer:       {"직업", "직장", "승진", "명예", "관직", "사업"},
	models.CategoryFinance:      {"재물", "재정", "금전", "수입", "투자"},
	models.CategoryRelationship: {"연애", "결혼", "배우자", "인연", "대인관계"},
	models.CategoryHealth:       {"건강", "체력", "질병", "활력"},
	models.CategoryTravel:       {"이동", "이사", "여행", "출장", "역마"},
	models.CategoryEducation:    {"학업", "시험", "공부", "문서", "자격"},
}

// CategoryKeywords returns a copy of the affected-area keywords for c.
func CategoryKeywords(c models.Category) []string {
	kw := categoryKeywords[c]
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}

package knowledge

import (
	"math"

	"SajuPulse/internal/domain/models"
)

var moonPhases = []struct {
	phase models.MoonPhase
	name  string
}{
	{models.MoonNew, "삭"},
	{models.MoonWaxingCrescent, "초승달"},
	{models.MoonFirstQuarter, "상현달"},
	{models.MoonWaxingGibbous, "차오르는 달"},
	{models.MoonFull, "보름달"},
	{models.MoonWaningGibbous, "기우는 달"},
	{models.MoonLastQuarter, "하현달"},
	{models.MoonWaningCrescent, "그믐달"},
}

// MoonPhases returns the eight phases in cycle order.
func MoonPhases() []models.MoonPhase {
	out := make([]models.MoonPhase, len(moonPhases))
	for i, p := range moonPhases {
		out[i] = p.phase
	}
	return out
}

// MoonPhaseName returns the Korean name of a phase.
func MoonPhaseName(p models.MoonPhase) (string, bool) {
	for _, mp := range moonPhases {
		if mp.phase == p {
			return mp.name, true
		}
	}
	return "", false
}

// MoonPhaseAt maps a sun-moon elongation in degrees to its phase. Each phase
// spans 45 degrees centred on its nominal angle.
func MoonPhaseAt(elongation float64) models.MoonPhase {
	deg := math.Mod(elongation, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Floor((deg+22.5)/45)) % len(moonPhases)
	return moonPhases[idx].phase
}

var solarTerms = []models.SolarTerm{
	{Name: "소한", Month: 1, Effect: "추위가 깊어져 몸을 보호해야 함"},
	{Name: "대한", Month: 1, Effect: "한 해의 끝자락으로 정리와 마무리에 적합"},
	{Name: "입춘", Month: 2, Effect: "새 기운이 시작되어 계획을 세우기 좋음"},
	{Name: "우수", Month: 2, Stabilizing: true, Effect: "얼음이 녹듯 긴장이 풀리고 몸이 안정됨"},
	{Name: "경칩", Month: 3, Effect: "잠든 기운이 깨어나 활동이 늘어남"},
	{Name: "춘분", Month: 3, Stabilizing: true, Effect: "낮과 밤이 같아 음양이 균형을 이룸"},
	{Name: "청명", Month: 4, Stabilizing: true, Effect: "맑은 기운으로 심신이 편안해짐"},
	{Name: "곡우", Month: 4, Effect: "비가 곡식을 키우듯 노력이 결실을 준비함"},
	{Name: "입하", Month: 5, Effect: "여름 기운이 들어와 활동력이 커짐"},
	{Name: "소만", Month: 5, Stabilizing: true, Effect: "만물이 차오르며 기력이 충실해짐"},
	{Name: "망종", Month: 6, Effect: "바쁜 파종기로 과로에 주의"},
	{Name: "하지", Month: 6, Effect: "양기가 극에 달해 열기를 조절해야 함"},
	{Name: "소서", Month: 7, Effect: "더위가 시작되어 수분 관리가 필요함"},
	{Name: "대서", Month: 7, Effect: "무더위가 절정이라 무리를 피해야 함"},
	{Name: "입추", Month: 8, Effect: "가을 기운이 들어 결실을 준비함"},
	{Name: "처서", Month: 8, Stabilizing: true, Effect: "더위가 물러나 몸의 리듬이 회복됨"},
	{Name: "백로", Month: 9, Effect: "일교차가 커져 호흡기에 주의"},
	{Name: "추분", Month: 9, Stabilizing: true, Effect: "낮과 밤이 같아 음양이 균형을 이룸"},
	{Name: "한로", Month: 10, Effect: "찬 이슬이 내려 보온이 필요함"},
	{Name: "상강", Month: 10, Effect: "서리가 내려 거둬들이는 시기"},
	{Name: "입동", Month: 11, Effect: "겨울 기운이 들어 저장과 휴식이 필요함"},
	{Name: "소설", Month: 11, Stabilizing: true, Effect: "기운을 갈무리하며 몸이 안정됨"},
	{Name: "대설", Month: 12, Effect: "큰 눈처럼 기운이 무거워져 활동을 줄여야 함"},
	{Name: "동지", Month: 12, Effect: "음기가 극에 달하고 양기가 다시 시작됨"},
}

// SolarTerms returns the 24 terms in calendar order.
func SolarTerms() []models.SolarTerm {
	out := make([]models.SolarTerm, len(solarTerms))
	copy(out, solarTerms)
	return out
}

// SolarTermByName looks a term up by its Korean name.
func SolarTermByName(name string) (models.SolarTerm, bool) {
	for _, t := range solarTerms {
		if t.Name == name {
			return t, true
		}
	}
	return models.SolarTerm{}, false
}

// SolarTermsInMonth returns the two terms that fall in a Gregorian month.
func SolarTermsInMonth(month int) []models.SolarTerm {
	var out []models.SolarTerm
	for _, t := range solarTerms {
		if t.Month == month {
			out = append(out, t)
		}
	}
	return out
}

var (
	bondEvents    = []models.EventType{models.EventMarriage, models.EventRelationship}
	ventureEvents = []models.EventType{models.EventCareer, models.EventInvestment}
)

var lunarMansions = []models.LunarMansion{
	{Name: "각", FavorableFor: bondEvents, Effect: "혼인과 새 출발에 길함"},
	{Name: "항", Effect: "다툼이 생기기 쉬워 중요한 일은 미룸"},
	{Name: "저", FavorableFor: []models.EventType{models.EventCareer}, Effect: "일을 도모하기 좋음"},
	{Name: "방", FavorableFor: bondEvents, Effect: "경사와 혼례에 길함"},
	{Name: "심", Effect: "마음이 흔들리기 쉬워 신중해야 함"},
	{Name: "미", FavorableFor: bondEvents, Effect: "결합과 화합의 기운"},
	{Name: "기", FavorableFor: ventureEvents, Effect: "재물을 모으기 좋음"},
	{Name: "두", FavorableFor: []models.EventType{models.EventStudy, models.EventCareer}, Effect: "배움과 관직에 길함"},
	{Name: "우", Effect: "고집으로 일이 막히기 쉬움"},
	{Name: "여", FavorableFor: []models.EventType{models.EventStudy}, Effect: "학문과 기술 연마에 좋음"},
	{Name: "허", Effect: "허전함이 커져 큰일을 피함"},
	{Name: "위(危)", Effect: "위험이 따르니 이동을 삼감"},
	{Name: "실", FavorableFor: []models.EventType{models.EventMarriage, models.EventMove}, Effect: "집을 짓고 혼인하기 좋음"},
	{Name: "벽", FavorableFor: []models.EventType{models.EventMarriage, models.EventStudy}, Effect: "문서와 혼례에 길함"},
	{Name: "규", FavorableFor: []models.EventType{models.EventStudy}, Effect: "문장과 학업에 길함"},
	{Name: "루", FavorableFor: bondEvents, Effect: "모임과 인연에 길함"},
	{Name: "위(胃)", FavorableFor: []models.EventType{models.EventInvestment}, Effect: "곳간을 채우기 좋음"},
	{Name: "묘", Effect: "구설이 생기기 쉬움"},
	{Name: "필", FavorableFor: []models.EventType{models.EventMarriage, models.EventMove}, Effect: "일이 순조롭게 이루어짐"},
	{Name: "자", Effect: "다툼과 손실에 주의"},
	{Name: "삼", FavorableFor: []models.EventType{models.EventCareer}, Effect: "무예와 추진에 좋음"},
	{Name: "정", FavorableFor: []models.EventType{models.EventMove, models.EventInvestment}, Effect: "물길이 트이듯 재물이 흐름"},
	{Name: "귀", Effect: "상심할 일이 생기기 쉬움"},
	{Name: "류", Effect: "일이 흩어지기 쉬워 마무리에 주의"},
	{Name: "성", FavorableFor: []models.EventType{models.EventHealth}, Effect: "몸을 돌보기 좋음"},
	{Name: "장", FavorableFor: bondEvents, Effect: "혼인과 경사에 길함"},
	{Name: "익", FavorableFor: []models.EventType{models.EventMove}, Effect: "먼 길을 떠나기 좋음"},
	{Name: "진", FavorableFor: []models.EventType{models.EventCareer, models.EventHealth}, Effect: "일이 진척되고 기운이 회복됨"},
}

// LunarMansions returns the 28 lodges in traditional order.
func LunarMansions() []models.LunarMansion {
	out := make([]models.LunarMansion, len(lunarMansions))
	copy(out, lunarMansions)
	return out
}

// LunarMansionByName looks a lodge up by name.
func LunarMansionByName(name string) (models.LunarMansion, bool) {
	for _, m := range lunarMansions {
		if m.Name == name {
			return m, true
		}
	}
	return models.LunarMansion{}, false
}

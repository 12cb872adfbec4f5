package knowledge

import "SajuPulse/internal/domain/models"

// SajuConditions are the four-pillars criteria for an event type.
type SajuConditions struct {
	FavorableSibsin   []models.Sibsin
	AvoidSibsin       []models.Sibsin
	FavorableStages   []models.Stage
	AvoidStages       []models.Stage
	FavorableElements []models.Element
	AvoidElements     []models.Element
}

// NatalConditions are the natal-chart criteria for an event type.
type NatalConditions struct {
	FavorableSigns  []models.ZodiacSign
	KeyPlanets      []models.Planet
	FavorableHouses []int
	AvoidRetrograde []models.Planet
	MoonPhaseBonus  map[models.MoonPhase]float64
}

// TransitConditions are the transit criteria for an event type.
type TransitConditions struct {
	BeneficPlanets  []models.Planet
	MaleficPlanets  []models.Planet
	KeyNatalPoints  []models.Planet
	BeneficAspects  []models.AspectType
	MaleficAspects  []models.AspectType
	FavorableHouses []int
}

// EventConditions bundles the three systems' criteria with a display label.
type EventConditions struct {
	Label   string
	Saju    SajuConditions
	Natal   NatalConditions
	Transit TransitConditions
}

var (
	harmoniousAspects = []models.AspectType{models.AspectTrine, models.AspectSextile}
	tenseAspects      = []models.AspectType{models.AspectSquare, models.AspectOpposition}
)

var eventConditions = map[models.EventType]EventConditions{
	models.EventMarriage: {
		Label: "결혼",
		Saju: SajuConditions{
			FavorableSibsin:   []models.Sibsin{models.SibsinJeongjae, models.SibsinJeonggwan, models.SibsinJeongin, models.SibsinSiksin},
			AvoidSibsin:       []models.Sibsin{models.SibsinGeopjae, models.SibsinSanggwan, models.SibsinPyeongwan},
			FavorableStages:   []models.Stage{models.StageJangsaeng, models.StageGwandae, models.StageGeollok, models.StageJewang},
			AvoidStages:       []models.Stage{models.StageByeong, models.StageSa, models.StageMyo, models.StageJeol},
			FavorableElements: []models.Element{models.ElementFire, models.ElementWood},
			AvoidElements:     []models.Element{models.ElementMetal},
		},
		Natal: NatalConditions{
			FavorableSigns:  []models.ZodiacSign{models.SignLibra, models.SignTaurus, models.SignCancer, models.SignLeo},
			KeyPlanets:      []models.Planet{models.PlanetVenus, models.PlanetMoon, models.PlanetJupiter},
			FavorableHouses: []int{5, 7},
			AvoidRetrograde: []models.Planet{models.PlanetVenus, models.PlanetMercury},
			MoonPhaseBonus: map[models.MoonPhase]float64{
				models.MoonFull:           6,
				models.MoonWaxingGibbous:  4,
				models.MoonWaxingCrescent: 3,
				models.MoonFirstQuarter:   2,
				models.MoonNew:            -2,
				models.MoonLastQuarter:    -2,
				models.MoonWaningCrescent: -4,
			},
		},
		Transit: TransitConditions{
			BeneficPlanets:  []models.Planet{models.PlanetVenus, models.PlanetJupiter},
			MaleficPlanets:  []models.Planet{models.PlanetSaturn, models.PlanetMars, models.PlanetPluto},
			KeyNatalPoints:  []models.Planet{models.PlanetVenus, models.PlanetMoon, models.PlanetSun, models.PointDescendant},
			BeneficAspects:  harmoniousAspects,
			MaleficAspects:  tenseAspects,
			FavorableHouses: []int{5, 7},
		},
	},
	models.EventCareer: {
		Label: "직업",
		Saju: SajuConditions{
			FavorableSibsin:   []models.Sibsin{models.SibsinJeonggwan, models.SibsinJeongin, models.SibsinSiksin, models.SibsinPyeonjae},
			AvoidSibsin:       []models.Sibsin{models.SibsinSanggwan, models.SibsinGeopjae},
			FavorableStages:   []models.Stage{models.StageJangsaeng, models.StageGwandae, models.StageGeollok, models.StageJewang},
			AvoidStages:       []models.Stage{models.StageByeong, models.StageSa, models.StageJeol},
			FavorableElements: []models.Element{models.ElementMetal, models.ElementEarth},
			AvoidElements:     []models.Element{models.ElementWater},
		},
		Natal: NatalConditions{
			FavorableSigns:  []models.ZodiacSign{models.SignCapricorn, models.SignLeo, models.SignAries, models.SignVirgo},
			KeyPlanets:      []models.Planet{models.PlanetSun, models.PlanetSaturn, models.PlanetJupiter, models.PlanetMars},
			FavorableHouses: []int{2, 6, 10},
			AvoidRetrograde: []models.Planet{models.PlanetMercury, models.PlanetSaturn},
			MoonPhaseBonus: map[models.MoonPhase]float64{
				models.MoonNew:            4,
				models.MoonFirstQuarter:   3,
				models.MoonWaxingCrescent: 2,
				models.MoonFull:           1,
				models.MoonWaningCrescent: -3,
			},
		},
		Transit: TransitConditions{
			BeneficPlanets:  []models.Planet{models.PlanetJupiter, models.PlanetSun, models.PlanetVenus},
			MaleficPlanets:  []models.Planet{models.PlanetSaturn, models.PlanetMars, models.PlanetPluto},
			KeyNatalPoints:  []models.Planet{models.PointMidheaven, models.PlanetSun, models.PlanetSaturn},
			BeneficAspects:  harmoniousAspects,
			MaleficAspects:  tenseAspects,
			FavorableHouses: []int{6, 10},
		},
	},
	models.EventInvestment: {
		Label: "투자",
		Saju: SajuConditions{
			FavorableSibsin:   []models.Sibsin{models.SibsinPyeonjae, models.SibsinJeongjae, models.SibsinSiksin},
			AvoidSibsin:       []models.Sibsin{models.SibsinGeopjae, models.SibsinBigyeon, models.SibsinPyeonin},
			FavorableStages:   []models.Stage{models.StageGwandae, models.StageGeollok, models.StageJewang, models.StageMyo},
			AvoidStages:       []models.Stage{models.StageMogyok, models.StageSa, models.StageJeol},
			FavorableElements: []models.Element{models.ElementEarth, models.ElementMetal},
			AvoidElements:     []models.Element{models.ElementWood},
		},
		Natal: NatalConditions{
			FavorableSigns:  []models.ZodiacSign{models.SignTaurus, models.SignCapricorn, models.SignVirgo, models.SignScorpio},
			KeyPlanets:      []models.Planet{models.PlanetJupiter, models.PlanetVenus, models.PlanetMercury},
			FavorableHouses: []int{2, 8, 11},
			AvoidRetrograde: []models.Planet{models.PlanetMercury, models.PlanetJupiter},
			MoonPhaseBonus: map[models.MoonPhase]float64{
				models.MoonWaxingCrescent: 4,
				models.MoonWaxingGibbous:  3,
				models.MoonFull:           1,
				models.MoonWaningGibbous:  -2,
				models.MoonLastQuarter:    -3,
				models.MoonWaningCrescent: -4,
			},
		},
		Transit: TransitConditions{
			BeneficPlanets:  []models.Planet{models.PlanetJupiter, models.PlanetVenus},
			MaleficPlanets:  []models.Planet{models.PlanetSaturn, models.PlanetNeptune, models.PlanetUranus},
			KeyNatalPoints:  []models.Planet{models.PlanetJupiter, models.PlanetVenus, models.PlanetSun},
			BeneficAspects:  harmoniousAspects,
			MaleficAspects:  tenseAspects,
			FavorableHouses: []int{2, 8, 11},
		},
	},
	models.EventMove: {
		Label: "이사",
		Saju: SajuConditions{
			FavorableSibsin:   []models.Sibsin{models.SibsinPyeonjae, models.SibsinSiksin, models.SibsinJeongin},
			AvoidSibsin:       []models.Sibsin{models.SibsinPyeongwan, models.SibsinGeopjae},
			FavorableStages:   []models.Stage{models.StageJangsaeng, models.StageGwandae, models.StageGeollok, models.StageYang},
			AvoidStages:       []models.Stage{models.StageByeong, models.StageSa, models.StageMyo},
			FavorableElements: []models.Element{models.ElementWood, models.ElementWater},
			AvoidElements:     []models.Element{models.ElementEarth},
		},
		Natal: NatalConditions{
			FavorableSigns:  []models.ZodiacSign{models.SignSagittarius, models.SignGemini, models.SignAquarius, models.SignCancer},
			KeyPlanets:      []models.Planet{models.PlanetMoon, models.PlanetMercury, models.PlanetJupiter},
			FavorableHouses: []int{3, 4, 9},
			AvoidRetrograde: []models.Planet{models.PlanetMercury},
			MoonPhaseBonus: map[models.MoonPhase]float64{
				models.MoonWaxingCrescent: 3,
				models.MoonFirstQuarter:   3,
				models.MoonNew:            2,
				models.MoonFull:           -1,
				models.MoonWaningCrescent: -3,
			},
		},
		Transit: TransitConditions{
			BeneficPlanets:  []models.Planet{models.PlanetJupiter, models.PlanetVenus},
			MaleficPlanets:  []models.Planet{models.PlanetSaturn, models.PlanetUranus, models.PlanetMars},
			KeyNatalPoints:  []models.Planet{models.PlanetMoon, models.PointAscendant},
			BeneficAspects:  harmoniousAspects,
			MaleficAspects:  tenseAspects,
			FavorableHouses: []int{4, 9},
		},
	},
	models.EventStudy: {
		Label: "학업",
		Saju: SajuConditions{
			FavorableSibsin:   []models.Sibsin{models.SibsinJeongin, models.SibsinPyeonin, models.SibsinSiksin, models.SibsinJeonggwan},
			AvoidSibsin:       []models.Sibsin{models.SibsinPyeonjae, models.SibsinGeopjae},
			FavorableStages:   []models.Stage{models.StageJangsaeng, models.StageGwandae, models.StageMyo, models.StageTae, models.StageYang},
			AvoidStages:       []models.Stage{models.StageMogyok, models.StageSa, models.StageJeol},
			FavorableElements: []models.Element{models.ElementWater, models.ElementWood},
			AvoidElements:     []models.Element{models.ElementEarth},
		},
		Natal: NatalConditions{
			FavorableSigns:  []models.ZodiacSign{models.SignGemini, models.SignVirgo, models.SignSagittarius, models.SignAquarius},
			KeyPlanets:      []models.Planet{models.PlanetMercury, models.PlanetJupiter, models.PlanetSaturn},
			FavorableHouses: []int{3, 9},
			AvoidRetrograde: []models.Planet{models.PlanetMercury},
			MoonPhaseBonus: map[models.MoonPhase]float64{
				models.MoonWaxingGibbous:  4,
				models.MoonFirstQuarter:   3,
				models.MoonFull:           2,
				models.MoonNew:            1,
				models.MoonWaningCrescent: -2,
			},
		},
		Transit: TransitConditions{
			BeneficPlanets:  []models.Planet{models.PlanetJupiter, models.PlanetMercury, models.PlanetSun},
			MaleficPlanets:  []models.Planet{models.PlanetSaturn, models.PlanetNeptune},
			KeyNatalPoints:  []models.Planet{models.PlanetMercury, models.PlanetMoon, models.PointMidheaven},
			BeneficAspects:  harmoniousAspects,
			MaleficAspects:  tenseAspects,
			FavorableHouses: []int{3, 9},
		},
	},
	models.EventHealth: {
		Label: "건강",
		Saju: SajuConditions{
			FavorableSibsin:   []models.Sibsin{models.SibsinJeongin, models.SibsinSiksin, models.SibsinBigyeon},
			AvoidSibsin:       []models.Sibsin{models.SibsinPyeongwan, models.SibsinSanggwan},
			FavorableStages:   []models.Stage{models.StageJangsaeng, models.StageGeollok, models.StageJewang, models.StageYang},
			AvoidStages:       []models.Stage{models.StageSoe, models.StageByeong, models.StageSa, models.StageJeol},
			FavorableElements: []models.Element{models.ElementWood, models.ElementFire},
			AvoidElements:     []models.Element{models.ElementMetal},
		},
		Natal: NatalConditions{
			FavorableSigns:  []models.ZodiacSign{models.SignVirgo, models.SignLeo, models.SignAries, models.SignTaurus},
			KeyPlanets:      []models.Planet{models.PlanetSun, models.PlanetMoon, models.PlanetMars},
			FavorableHouses: []int{1, 6},
			AvoidRetrograde: []models.Planet{models.PlanetMars},
			MoonPhaseBonus: map[models.MoonPhase]float64{
				models.MoonWaningGibbous:  2,
				models.MoonLastQuarter:    2,
				models.MoonWaningCrescent: 1,
				models.MoonFull:           -2,
			},
		},
		Transit: TransitConditions{
			BeneficPlanets:  []models.Planet{models.PlanetJupiter, models.PlanetSun, models.PlanetVenus},
			MaleficPlanets:  []models.Planet{models.PlanetSaturn, models.PlanetMars, models.PlanetNeptune},
			KeyNatalPoints:  []models.Planet{models.PlanetSun, models.PlanetMoon, models.PointAscendant},
			BeneficAspects:  harmoniousAspects,
			MaleficAspects:  tenseAspects,
			FavorableHouses: []int{1, 6},
		},
	},
	models.EventRelationship: {
		Label: "연애",
		Saju: SajuConditions{
			FavorableSibsin:   []models.Sibsin{models.SibsinJeongjae, models.SibsinPyeonjae, models.SibsinSiksin, models.SibsinJeonggwan},
			AvoidSibsin:       []models.Sibsin{models.SibsinGeopjae, models.SibsinSanggwan, models.SibsinPyeonin},
			FavorableStages:   []models.Stage{models.StageJangsaeng, models.StageMogyok, models.StageGwandae, models.StageJewang},
			AvoidStages:       []models.Stage{models.StageSa, models.StageMyo, models.StageJeol},
			FavorableElements: []models.Element{models.ElementFire, models.ElementWater},
			AvoidElements:     []models.Element{models.ElementMetal},
		},
		Natal: NatalConditions{
			FavorableSigns:  []models.ZodiacSign{models.SignLibra, models.SignLeo, models.SignPisces, models.SignTaurus},
			KeyPlanets:      []models.Planet{models.PlanetVenus, models.PlanetMoon, models.PlanetMars},
			FavorableHouses: []int{5, 7, 11},
			AvoidRetrograde: []models.Planet{models.PlanetVenus},
			MoonPhaseBonus: map[models.MoonPhase]float64{
				models.MoonFull:           5,
				models.MoonWaxingGibbous:  3,
				models.MoonWaxingCrescent: 2,
				models.MoonNew:            1,
				models.MoonLastQuarter:    -2,
				models.MoonWaningCrescent: -3,
			},
		},
		Transit: TransitConditions{
			BeneficPlanets:  []models.Planet{models.PlanetVenus, models.PlanetJupiter},
			MaleficPlanets:  []models.Planet{models.PlanetSaturn, models.PlanetPluto, models.PlanetUranus},
			KeyNatalPoints:  []models.Planet{models.PlanetVenus, models.PlanetMoon, models.PlanetMars, models.PointDescendant},
			BeneficAspects:  harmoniousAspects,
			MaleficAspects:  tenseAspects,
			FavorableHouses: []int{5, 7},
		},
	},
}

// ConditionsFor returns the criteria for e. Callers must treat the returned
// slices and maps as read-only.
func ConditionsFor(e models.EventType) (EventConditions, bool) {
	c, ok := eventConditions[e]
	return c, ok
}

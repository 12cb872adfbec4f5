package knowledge

import "SajuPulse/internal/domain/models"

var planetNames = map[models.Planet]string{
	models.PlanetSun:       "태양",
	models.PlanetMoon:      "달",
	models.PlanetMercury:   "수성",
	models.PlanetVenus:     "금성",
	models.PlanetMars:      "화성",
	models.PlanetJupiter:   "목성",
	models.PlanetSaturn:    "토성",
	models.PlanetUranus:    "천왕성",
	models.PlanetNeptune:   "해왕성",
	models.PlanetPluto:     "명왕성",
	models.PointAscendant:  "상승점",
	models.PointMidheaven:  "천정점",
	models.PointDescendant: "하강점",
}

var signNames = map[models.ZodiacSign]string{
	models.SignAries:       "양자리",
	models.SignTaurus:      "황소자리",
	models.SignGemini:      "쌍둥이자리",
	models.SignCancer:      "게자리",
	models.SignLeo:         "사자자리",
	models.SignVirgo:       "처녀자리",
	models.SignLibra:       "천칭자리",
	models.SignScorpio:     "전갈자리",
	models.SignSagittarius: "사수자리",
	models.SignCapricorn:   "염소자리",
	models.SignAquarius:    "물병자리",
	models.SignPisces:      "물고기자리",
}

var aspectNames = map[models.AspectType]string{
	models.AspectConjunction: "합",
	models.AspectSextile:     "육분",
	models.AspectSquare:      "사분",
	models.AspectTrine:       "삼분",
	models.AspectOpposition:  "대립",
}

// PlanetName returns the Korean name of a body, or its identifier when unknown.
func PlanetName(p models.Planet) string {
	if n, ok := planetNames[p]; ok {
		return n
	}
	return string(p)
}

// SignName returns the Korean name of a sign, or its identifier when unknown.
func SignName(s models.ZodiacSign) string {
	if n, ok := signNames[s]; ok {
		return n
	}
	return string(s)
}

// AspectName returns the Korean name of an aspect, or its identifier when unknown.
func AspectName(a models.AspectType) string {
	if n, ok := aspectNames[a]; ok {
		return n
	}
	return string(a)
}

package models

// Planet names a body or chart point (ascendant and midheaven included).
type Planet string

const (
	PlanetSun       Planet = "sun"
	PlanetMoon      Planet = "moon"
	PlanetMercury   Planet = "mercury"
	PlanetVenus     Planet = "venus"
	PlanetMars      Planet = "mars"
	PlanetJupiter   Planet = "jupiter"
	PlanetSaturn    Planet = "saturn"
	PlanetUranus    Planet = "uranus"
	PlanetNeptune   Planet = "neptune"
	PlanetPluto     Planet = "pluto"
	PointAscendant  Planet = "ascendant"
	PointMidheaven  Planet = "midheaven"
	PointDescendant Planet = "descendant"
)

// ZodiacSign is a tropical sign name.
type ZodiacSign string

const (
	SignAries       ZodiacSign = "aries"
	SignTaurus      ZodiacSign = "taurus"
	SignGemini      ZodiacSign = "gemini"
	SignCancer      ZodiacSign = "cancer"
	SignLeo         ZodiacSign = "leo"
	SignVirgo       ZodiacSign = "virgo"
	SignLibra       ZodiacSign = "libra"
	SignScorpio     ZodiacSign = "scorpio"
	SignSagittarius ZodiacSign = "sagittarius"
	SignCapricorn   ZodiacSign = "capricorn"
	SignAquarius    ZodiacSign = "aquarius"
	SignPisces      ZodiacSign = "pisces"
)

// AspectType is the angular relation between a transiting body and a natal point.
type AspectType string

const (
	AspectConjunction AspectType = "conjunction"
	AspectSextile     AspectType = "sextile"
	AspectSquare      AspectType = "square"
	AspectTrine       AspectType = "trine"
	AspectOpposition  AspectType = "opposition"
)

// MoonPhase is one of the eight named lunar phases.
type MoonPhase string

const (
	MoonNew            MoonPhase = "new_moon"
	MoonWaxingCrescent MoonPhase = "waxing_crescent"
	MoonFirstQuarter   MoonPhase = "first_quarter"
	MoonWaxingGibbous  MoonPhase = "waxing_gibbous"
	MoonFull           MoonPhase = "full_moon"
	MoonWaningGibbous  MoonPhase = "waning_gibbous"
	MoonLastQuarter    MoonPhase = "last_quarter"
	MoonWaningCrescent MoonPhase = "waning_crescent"
)

// PlanetPosition is a body's sign, house and motion as supplied by the ephemeris provider.
type PlanetPosition struct {
	Planet     Planet     `json:"planet"`
	Sign       ZodiacSign `json:"sign"`
	House      int        `json:"house"`
	Retrograde bool       `json:"retrograde,omitempty"`
}

// NatalSnapshot is the natal-system view of a period.
type NatalSnapshot struct {
	Planets   []PlanetPosition `json:"planets"`
	MoonPhase MoonPhase        `json:"moonPhase,omitempty"`
}

// Aspect is a transiting body's aspect to a natal point.
type Aspect struct {
	TransitPlanet Planet     `json:"transitPlanet"`
	NatalPoint    Planet     `json:"natalPoint"`
	Type          AspectType `json:"type"`
	Orb           float64    `json:"orb"`
}

// TransitSnapshot is the transit sky for one period relative to the natal chart.
type TransitSnapshot struct {
	Positions []PlanetPosition `json:"positions"`
	Aspects   []Aspect         `json:"aspects"`
}

// SolarTerm is one of the 24 seasonal nodes.
type SolarTerm struct {
	Name        string `json:"name"`
	Month       int    `json:"month"`
	Stabilizing bool   `json:"stabilizing"`
	Effect      string `json:"effect"`
}

// LunarMansion is one of the 28 lunar lodges with the occasions it favors.
type LunarMansion struct {
	Name         string      `json:"name"`
	FavorableFor []EventType `json:"favorableFor"`
	Effect       string      `json:"effect"`
}

// Favors reports whether the mansion is marked favorable for e.
func (m LunarMansion) Favors(e EventType) bool {
	for _, f := range m.FavorableFor {
		if f == e {
			return true
		}
	}
	return false
}

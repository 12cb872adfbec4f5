package models

// Request payloads for the HTTP and Kafka entry points. Defined in the domain for reuse
// by both transports; no transport concerns beyond tags live here.

type ProfileInput struct {
	SubjectID  string `json:"subjectId" yaml:"subject_id" validate:"omitempty,max=64"`
	BirthYear  int    `json:"birthYear" yaml:"birth_year" validate:"gte=1900,lte=2100"`
	BirthMonth int    `json:"birthMonth" yaml:"birth_month" validate:"gte=1,lte=12"`
	BirthDay   int    `json:"birthDay" yaml:"birth_day" validate:"gte=0,lte=31"`
	DayPillar  string `json:"dayPillar" yaml:"day_pillar" validate:"required,ganji"`
	YearPillar string `json:"yearPillar,omitempty" yaml:"year_pillar" validate:"omitempty,ganji"`
}

type PeriodRequest struct {
	Profile ProfileInput `json:"profile" yaml:"profile"`
	Year    int          `json:"year" yaml:"year" validate:"gte=1900,lte=2200"`
	Month   int          `json:"month" yaml:"month" validate:"gte=1,lte=12"`
}

type ScoreRequest struct {
	Profile      ProfileInput     `json:"profile" yaml:"profile"`
	Year         int              `json:"year" yaml:"year" validate:"gte=1900,lte=2200"`
	Month        int              `json:"month" yaml:"month" validate:"gte=1,lte=12"`
	EventType    string           `json:"eventType" yaml:"event_type" validate:"required,oneof=marriage career investment move study health relationship"`
	Natal        *NatalSnapshot   `json:"natal,omitempty" yaml:"natal"`
	Transit      *TransitSnapshot `json:"transit,omitempty" yaml:"transit"`
	UseAstrology bool             `json:"useAstrology" yaml:"use_astrology"`
}

type CategoriesRequest struct {
	Profile      ProfileInput       `json:"profile"`
	Year         int                `json:"year" validate:"gte=1900,lte=2200"`
	Month        int                `json:"month" validate:"gte=1,lte=12"`
	Scores       map[string]float64 `json:"scores,omitempty" validate:"omitempty,dive,keys,oneof=career finance relationship health travel education,endkeys,gte=0,lte=100"`
	Factors      []CausalFactor     `json:"factors,omitempty" validate:"omitempty,max=64"`
	SolarTerm    string             `json:"solarTerm,omitempty"`
	LunarMansion string             `json:"lunarMansion,omitempty"`
	UseAstrology bool               `json:"useAstrology"`
}

type ScanRequest struct {
	Profile          ProfileInput `json:"profile" yaml:"profile"`
	EventType        string       `json:"eventType" yaml:"event_type" validate:"required,oneof=marriage career investment move study health relationship"`
	StartYear        int          `json:"startYear" yaml:"start_year" validate:"gte=1900,lte=2200"`
	StartMonth       int          `json:"startMonth" yaml:"start_month" default:"1" validate:"gte=1,lte=12"`
	Months           int          `json:"months" yaml:"months" default:"12" validate:"gte=1,lte=120"`
	OptimalThreshold float64      `json:"optimalThreshold,omitempty" yaml:"optimal_threshold" validate:"omitempty,gt=0,lte=100"`
	AvoidThreshold   float64      `json:"avoidThreshold,omitempty" yaml:"avoid_threshold" validate:"omitempty,gt=0,ltfield=OptimalThreshold"`
	UseAstrology     bool         `json:"useAstrology" yaml:"use_astrology"`
}

// HistoryRequest is bound from query parameters.
type HistoryRequest struct {
	SubjectID string `query:"subject" json:"subject" validate:"required,max=64"`
	EventType string `query:"event" json:"event" validate:"omitempty,oneof=marriage career investment move study health relationship"`
	Limit     int    `query:"limit" json:"limit" default:"120" validate:"gte=1,lte=1000"`
}

package models

// BirthProfile is the natal baseline the temporal calculator works from.
// DayStem is the day master; the year pillar anchors branch relations.
type BirthProfile struct {
	SubjectID  string `json:"subjectId,omitempty" yaml:"subject_id"`
	BirthYear  int    `json:"birthYear" yaml:"birth_year"`
	BirthMonth int    `json:"birthMonth" yaml:"birth_month"`
	BirthDay   int    `json:"birthDay,omitempty" yaml:"birth_day"`
	YearPillar Ganji  `json:"yearPillar" yaml:"year_pillar"`
	DayPillar  Ganji  `json:"dayPillar" yaml:"day_pillar"`
}

// DayMaster returns the stem every relation is measured against.
func (p BirthProfile) DayMaster() Stem { return p.DayPillar.Stem }

// Period is one scored month. Values are never mutated after creation.
type Period struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Age        int    `json:"age"`
	YearGanji  Ganji  `json:"yearGanji"`
	MonthGanji Ganji  `json:"monthGanji"`
	Sibsin     Sibsin `json:"sibsin"`
	Stage      Stage  `json:"stage"`
}

// Element is the month stem's element, the element a period is judged by.
func (p Period) Element() Element { return p.MonthGanji.Stem.Element() }

// ScoringResult is one period scored for one event type.
type ScoringResult struct {
	Score        float64  `json:"score"`
	Reasons      []string `json:"reasons"`
	AvoidReasons []string `json:"avoidReasons"`
}

// CausalFactor is a detected symbolic pattern offered as explanation material.
type CausalFactor struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Strength      float64  `json:"strength"`
	AffectedAreas []string `json:"affectedAreas"`
}

// CategoryAnalysis explains one category score.
type CategoryAnalysis struct {
	Score       float64  `json:"score"`
	Factors     []string `json:"factors"`
	WhyHappened []string `json:"whyHappened"`
}

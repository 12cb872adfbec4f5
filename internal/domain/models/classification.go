package models

import "time"

// Grade is the letter grade derived purely from a score.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Bucket names the classification a period landed in.
type Bucket string

const (
	BucketOptimal   Bucket = "optimal"
	BucketCandidate Bucket = "candidate"
	BucketAvoid     Bucket = "avoid"
	BucketNone      Bucket = "none"
)

// ClassifiedPeriod is the part shared by every bucket entry.
type ClassifiedPeriod struct {
	Period
	Score     float64  `json:"score"`
	Grade     Grade    `json:"grade"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Reasons   []string `json:"reasons"`
}

type OptimalPeriod struct {
	ClassifiedPeriod
	Advice string `json:"advice"`
}

type CandidatePeriod struct {
	ClassifiedPeriod
	Advice string `json:"advice"`
}

type AvoidPeriod struct {
	ClassifiedPeriod
	AvoidReasons []string `json:"avoidReasons"`
	Warning      string   `json:"warning"`
}

// ClassificationResult holds the three sorted buckets.
type ClassificationResult struct {
	Optimal   []OptimalPeriod   `json:"optimal"`
	Candidate []CandidatePeriod `json:"candidate"`
	Avoid     []AvoidPeriod     `json:"avoid"`
}

// ClassificationStatistics summarises a classifier's buckets.
type ClassificationStatistics struct {
	TotalPeriods        int     `json:"totalPeriods"`
	OptimalCount        int     `json:"optimalCount"`
	CandidateCount      int     `json:"candidateCount"`
	AvoidCount          int     `json:"avoidCount"`
	AverageOptimalScore float64 `json:"averageOptimalScore"`
}

// ScoreSummary describes the distribution of every scanned score, kept or not.
type ScoreSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// ScannedPeriod is emitted for every month of a scan, including gap-zone months.
type ScannedPeriod struct {
	Period
	Result ScoringResult `json:"result"`
	Bucket Bucket        `json:"bucket"`
	Grade  Grade         `json:"grade"`
}

// ScanReport is the outcome of scanning a horizon for one event type.
type ScanReport struct {
	ID          string                   `json:"id"`
	SubjectID   string                   `json:"subjectId,omitempty"`
	EventType   EventType                `json:"eventType"`
	StartYear   int                      `json:"startYear"`
	StartMonth  int                      `json:"startMonth"`
	Months      int                      `json:"months"`
	Scanned     int                      `json:"scanned"`
	Partial     bool                     `json:"partial"`
	Result      ClassificationResult     `json:"result"`
	Statistics  ClassificationStatistics `json:"statistics"`
	Summary     ScoreSummary             `json:"summary"`
	Timeline    []ScannedPeriod          `json:"timeline"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// Uncertain reports whether nothing was classified; callers should display
// such reports as inconclusive rather than as failures.
func (r *ScanReport) Uncertain() bool { return r.Statistics.TotalPeriods == 0 }

// HistoryEntry is one stored month of a past scan.
type HistoryEntry struct {
	ReportID   string    `json:"reportId"`
	SubjectID  string    `json:"subjectId"`
	EventType  EventType `json:"eventType"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	MonthGanji string    `json:"monthGanji"`
	Sibsin     Sibsin    `json:"sibsin"`
	Stage      Stage     `json:"stage"`
	Score      float64   `json:"score"`
	Grade      Grade     `json:"grade"`
	Bucket     Bucket    `json:"bucket"`
	RecordedAt time.Time `json:"recordedAt"`
}

// CategoryReport explains one month across all six categories.
type CategoryReport struct {
	Period       Period                        `json:"period"`
	Scores       map[Category]float64          `json:"scores"`
	Factors      []CausalFactor                `json:"factors"`
	SolarTerm    *SolarTerm                    `json:"solarTerm,omitempty"`
	LunarMansion *LunarMansion                 `json:"lunarMansion,omitempty"`
	Categories   map[Category]CategoryAnalysis `json:"categories"`
}

// Package temporal derives a subject's symbolic attributes for a calendar month.
package temporal

import (
	"SajuPulse/internal/domain/models"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/knowledge"
)

// SajuYear returns the sexagenary year a Gregorian month belongs to. The
// solar year turns at 입춘 in early February, so January still counts toward
// the previous year.
func SajuYear(year, month int) int {
	if month == 1 {
		return year - 1
	}
	return year
}

// YearGanji returns the pillar of a sexagenary year; 1984 is 갑자.
func YearGanji(sajuYear int) models.Ganji {
	return models.Ganji{
		Stem:   models.StemAt(sajuYear - 4),
		Branch: models.BranchAt(sajuYear - 4),
	}
}

// MonthGanji returns the month pillar for a Gregorian month. Months are
// approximated as whole solar months: February is 인, January is 축.
func MonthGanji(year, month int) models.Ganji {
	branch := models.BranchAt(month)
	yearStem := YearGanji(SajuYear(year, month)).Stem
	// Stem of the 인 month cycles with the year stem: 갑/기 → 병, 을/경 → 무, ...
	inStem := (int(yearStem)%5)*2 + 2
	offset := (int(branch) - int(models.BranchIn) + models.BranchCount) % models.BranchCount
	return models.Ganji{Stem: models.StemAt(inStem + offset), Branch: branch}
}

// AgeAt returns calendar age in full years; the birthday month counts as reached.
func AgeAt(profile models.BirthProfile, year, month int) int {
	age := year - profile.BirthYear
	if month < profile.BirthMonth {
		age--
	}
	return age
}

// NewProfile builds a birth profile, deriving the year pillar from the birth month.
func NewProfile(subjectID string, birthYear, birthMonth, birthDay int, dayPillar models.Ganji) models.BirthProfile {
	return models.BirthProfile{
		SubjectID:  subjectID,
		BirthYear:  birthYear,
		BirthMonth: birthMonth,
		BirthDay:   birthDay,
		YearPillar: YearGanji(SajuYear(birthYear, birthMonth)),
		DayPillar:  dayPillar,
	}
}

// ComputePeriod derives the period labels for (year, month). Pure.
func ComputePeriod(profile models.BirthProfile, year, month int) models.Period {
	mg := MonthGanji(year, month)
	dm := profile.DayMaster()
	return models.Period{
		Year:       year,
		Month:      month,
		Age:        AgeAt(profile, year, month),
		YearGanji:  YearGanji(SajuYear(year, month)),
		MonthGanji: mg,
		Sibsin:     knowledge.DeriveSibsin(dm, mg.Stem),
		Stage:      knowledge.StageOf(dm, mg.Branch),
	}
}

// Calculator adapts ComputePeriod to the domain interface.
type Calculator struct{}

var _ domsvc.PeriodCalculator = Calculator{}

func (Calculator) ComputePeriod(profile models.BirthProfile, year, month int) models.Period {
	return ComputePeriod(profile, year, month)
}

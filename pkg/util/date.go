package util

import (
    "fmt"
    "strconv"
    "strings"
    "time"
)

// IsLeapYear applies the Gregorian rule: every 4th year, except centuries not divisible by 400.
func IsLeapYear(year int) bool {
    return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the length of month in year. Returns 0 for an out-of-range month.
func DaysInMonth(year, month int) int {
    if month < 1 || month > 12 {
        return 0
    }
    if month == 2 && IsLeapYear(year) {
        return 29
    }
    return monthDays[month-1]
}

// MonthRange returns the first and last day of a month as YYYY-MM-DD.
func MonthRange(year, month int) (string, string) {
    start := fmt.Sprintf("%04d-%02d-01", year, month)
    end := fmt.Sprintf("%04d-%02d-%02d", year, month, DaysInMonth(year, month))
    return start, end
}

// AddMonths steps (year, month) by n months, n may be negative.
func AddMonths(year, month, n int) (int, int) {
    idx := year*12 + (month - 1) + n
    y := idx / 12
    m := idx%12 + 1
    if idx < 0 && idx%12 != 0 {
        y--
        m = idx%12 + 13
    }
    return y, m
}

// ParseYearMonth accepts "2025-03", "2025-3" or RFC3339 and returns (year, month, true).
func ParseYearMonth(s string) (int, int, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return 0, 0, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t.Year(), int(t.Month()), true
    }
    parts := strings.SplitN(s, "-", 2)
    if len(parts) != 2 {
        return 0, 0, false
    }
    y, err := strconv.Atoi(parts[0])
    if err != nil {
        return 0, 0, false
    }
    m, err := strconv.Atoi(parts[1])
    if err != nil || m < 1 || m > 12 {
        return 0, 0, false
    }
    return y, m, true
}

package util

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestIsLeapYear(t *testing.T) {
    cases := map[int]bool{
        2024: true,
        2023: false,
        2000: true,
        1900: false,
        2100: false,
        2400: true,
    }
    for year, want := range cases {
        assert.Equal(t, want, IsLeapYear(year), "year %d", year)
    }
}

func TestDaysInMonth(t *testing.T) {
    assert.Equal(t, 29, DaysInMonth(2024, 2))
    assert.Equal(t, 28, DaysInMonth(2025, 2))
    assert.Equal(t, 28, DaysInMonth(1900, 2))
    assert.Equal(t, 30, DaysInMonth(2025, 4))
    assert.Equal(t, 31, DaysInMonth(2025, 12))
    assert.Equal(t, 0, DaysInMonth(2025, 13))
}

func TestMonthRange(t *testing.T) {
    start, end := MonthRange(2024, 2)
    assert.Equal(t, "2024-02-01", start)
    assert.Equal(t, "2024-02-29", end)

    start, end = MonthRange(2025, 11)
    assert.Equal(t, "2025-11-01", start)
    assert.Equal(t, "2025-11-30", end)
}

func TestAddMonths(t *testing.T) {
    y, m := AddMonths(2025, 11, 3)
    assert.Equal(t, 2026, y)
    assert.Equal(t, 2, m)

    y, m = AddMonths(2025, 1, -1)
    assert.Equal(t, 2024, y)
    assert.Equal(t, 12, m)

    y, m = AddMonths(2025, 6, 0)
    assert.Equal(t, 2025, y)
    assert.Equal(t, 6, m)

    y, m = AddMonths(2025, 1, 24)
    assert.Equal(t, 2027, y)
    assert.Equal(t, 1, m)
}

func TestParseYearMonth(t *testing.T) {
    y, m, ok := ParseYearMonth("2025-03")
    assert.True(t, ok)
    assert.Equal(t, 2025, y)
    assert.Equal(t, 3, m)

    y, m, ok = ParseYearMonth("2024-10-10T10:10:10Z")
    assert.True(t, ok)
    assert.Equal(t, 2024, y)
    assert.Equal(t, 10, m)

    _, _, ok = ParseYearMonth("2025-13")
    assert.False(t, ok)
    _, _, ok = ParseYearMonth("")
    assert.False(t, ok)
}

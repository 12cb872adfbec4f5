package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SajuPulse/internal/domain/models"
)

const profileYAML = `profile:
  subject_id: s1
  birth_year: 1990
  birth_month: 6
  birth_day: 15
  day_pillar: 갑자
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	scanFlags.event, scanFlags.months, scanFlags.format = "", 0, "json"
	configPath = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScanJSON(t *testing.T) {
	path := writeFile(t, "scan.yaml", profileYAML+"event_type: career\nstart_year: 2025\n")
	out, err := run(t, "scan", "-f", path)
	require.NoError(t, err)

	var report models.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, models.EventCareer, report.EventType)
	assert.Equal(t, 12, report.Months)
	assert.Equal(t, 12, report.Scanned)
	assert.False(t, report.Partial)
	require.Len(t, report.Timeline, 12)
	assert.Equal(t, 1, report.Timeline[0].Month)
	assert.Equal(t, "s1", report.SubjectID)
}

func TestScanFlagsOverrideRequest(t *testing.T) {
	path := writeFile(t, "scan.yaml", profileYAML+"event_type: career\nstart_year: 2025\nmonths: 24\n")
	out, err := run(t, "scan", "-f", path, "--event", "move", "--months", "3", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "Event:     move")
	assert.Contains(t, out, "Scanned:   3/3")
	assert.Contains(t, out, "2025-01")
	assert.Contains(t, out, "2025-03")
	assert.NotContains(t, out, "2025-04")
}

func TestScanJSONRequestFile(t *testing.T) {
	path := writeFile(t, "scan.json",
		`{"profile":{"birthYear":1990,"birthMonth":6,"dayPillar":"갑자"},"eventType":"study","startYear":2025,"startMonth":11,"months":2}`)
	out, err := run(t, "scan", "-f", path)
	require.NoError(t, err)

	var report models.ScanReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Timeline, 2)
	assert.Equal(t, 2026, report.Timeline[1].Year)
	assert.Equal(t, 1, report.Timeline[1].Month)
}

func TestScanRejectsInvalidRequest(t *testing.T) {
	cases := map[string]string{
		"unknown event":  profileYAML + "event_type: party\nstart_year: 2025\n",
		"bad pillar":     strings.Replace(profileYAML, "갑자", "가나", 1) + "event_type: move\nstart_year: 2025\n",
		"inverted range": profileYAML + "event_type: move\nstart_year: 2025\noptimal_threshold: 40\navoid_threshold: 70\n",
		"broken yaml":    "profile: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, "scan", "-f", writeFile(t, "scan.yaml", body))
			assert.Error(t, err)
		})
	}

	_, err := run(t, "scan", "-f", writeFile(t, "scan.yaml", profileYAML+"event_type: move\nstart_year: 2025\n"), "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestPeriod(t *testing.T) {
	path := writeFile(t, "period.yaml", profileYAML+"year: 2026\nmonth: 6\n")
	out, err := run(t, "period", "-f", path)
	require.NoError(t, err)

	var p models.Period
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "갑오", p.MonthGanji.String())
	assert.Equal(t, models.SibsinBigyeon, p.Sibsin)
}

func TestScore(t *testing.T) {
	path := writeFile(t, "score.yaml", profileYAML+"year: 2025\nmonth: 3\nevent_type: career\n")
	out, err := run(t, "score", "-f", path)
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2025, got.Period.Year)
	assert.GreaterOrEqual(t, got.Result.Score, 0.0)
	assert.LessOrEqual(t, got.Result.Score, 100.0)
	assert.NotEmpty(t, got.Grade)
}

// Package ephemeris fetches natal and transit snapshots from an external
// ephemeris service. Planet positions are never computed locally.
package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"SajuPulse/internal/domain/models"
	domsvc "SajuPulse/internal/domain/service"
	"SajuPulse/internal/services/knowledge"
	xhttp "SajuPulse/pkg/http"
)

type chartRequest struct {
	SubjectID  string `json:"subjectId,omitempty"`
	BirthYear  int    `json:"birthYear"`
	BirthMonth int    `json:"birthMonth"`
	BirthDay   int    `json:"birthDay,omitempty"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

// The service may send the raw sun-moon elongation instead of a phase name.
type natalResponse struct {
	models.NatalSnapshot
	MoonElongation *float64 `json:"moonElongation,omitempty"`
}

// Provider implements domsvc.AstrologyProvider over HTTP. With no base URL it
// is disabled and every call returns (nil, nil).
type Provider struct {
	client *xhttp.Client
}

var _ domsvc.AstrologyProvider = (*Provider)(nil)

func New(baseURL string, timeout time.Duration, attempts int) *Provider {
	if baseURL == "" {
		return &Provider{}
	}
	return &Provider{client: newServiceClient(baseURL, timeout, attempts)}
}

func (p *Provider) Enabled() bool { return p != nil && p.client != nil }

func newChartRequest(profile models.BirthProfile, year, month int) chartRequest {
	return chartRequest{
		SubjectID:  profile.SubjectID,
		BirthYear:  profile.BirthYear,
		BirthMonth: profile.BirthMonth,
		BirthDay:   profile.BirthDay,
		Year:       year,
		Month:      month,
	}
}

func (p *Provider) Natal(ctx context.Context, profile models.BirthProfile, year, month int) (*models.NatalSnapshot, error) {
	if !p.Enabled() {
		return nil, nil
	}
	var resp natalResponse
	err := p.client.PostJSON(ctx, "/natal", newChartRequest(profile, year, month), &resp)
	if err != nil {
		return nil, notFoundIsEmpty("natal", err)
	}
	snap := resp.NatalSnapshot
	if snap.MoonPhase == "" && resp.MoonElongation != nil {
		snap.MoonPhase = knowledge.MoonPhaseAt(*resp.MoonElongation)
	}
	return &snap, nil
}

func (p *Provider) Transit(ctx context.Context, profile models.BirthProfile, year, month int) (*models.TransitSnapshot, error) {
	if !p.Enabled() {
		return nil, nil
	}
	var snap models.TransitSnapshot
	err := p.client.PostJSON(ctx, "/transit", newChartRequest(profile, year, month), &snap)
	if err != nil {
		return nil, notFoundIsEmpty("transit", err)
	}
	return &snap, nil
}

// A 404 means the service has no chart for the subject, which is not a failure.
func notFoundIsEmpty(what string, err error) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return nil
	}
	return fmt.Errorf("ephemeris %s: %w", what, err)
}

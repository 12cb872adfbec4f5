package ephemeris

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SajuPulse/internal/domain/models"
)

var profile = models.BirthProfile{SubjectID: "s1", BirthYear: 1990, BirthMonth: 6, BirthDay: 15}

func TestDisabledProviderReturnsNothing(t *testing.T) {
	p := New("", time.Second, 2)
	assert.False(t, p.Enabled())
	n, err := p.Natal(context.Background(), profile, 2025, 3)
	assert.NoError(t, err)
	assert.Nil(t, n)
	tr, err := p.Transit(context.Background(), profile, 2025, 3)
	assert.NoError(t, err)
	assert.Nil(t, tr)
}

func TestNatalDerivesMoonPhaseFromElongation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/natal", r.URL.Path)
		var req chartRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1990, req.BirthYear)
		assert.Equal(t, 2025, req.Year)
		assert.Equal(t, 3, req.Month)
		_, _ = w.Write([]byte(`{"planets":[{"planet":"sun","sign":"capricorn","house":10}],"moonElongation":178.5}`))
	}))
	defer srv.Close()

	snap, err := New(srv.URL, time.Second, 1).Natal(context.Background(), profile, 2025, 3)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, models.MoonFull, snap.MoonPhase)
	require.Len(t, snap.Planets, 1)
	assert.Equal(t, models.SignCapricorn, snap.Planets[0].Sign)
}

func TestTransitDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transit", r.URL.Path)
		_, _ = w.Write([]byte(`{"positions":[],"aspects":[{"transitPlanet":"jupiter","natalPoint":"sun","type":"trine","orb":2.5}]}`))
	}))
	defer srv.Close()

	snap, err := New(srv.URL, time.Second, 1).Transit(context.Background(), profile, 2025, 3)
	require.NoError(t, err)
	require.Len(t, snap.Aspects, 1)
	assert.Equal(t, models.AspectTrine, snap.Aspects[0].Type)
	assert.Equal(t, 2.5, snap.Aspects[0].Orb)
}

func TestNotFoundIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	snap, err := New(srv.URL, time.Second, 3).Natal(context.Background(), profile, 2025, 3)
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"positions":[],"aspects":[]}`))
	}))
	defer srv.Close()

	snap, err := New(srv.URL, time.Second, 3).Transit(context.Background(), profile, 2025, 3)
	require.NoError(t, err)
	assert.NotNil(t, snap)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, 3).Transit(context.Background(), profile, 2025, 3)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

package ratelimit

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestAllowRefills(t *testing.T) {
    now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
    l := New(2, 1)
    l.now = func() time.Time { return now }

    assert.True(t, l.Allow("a"))
    assert.True(t, l.Allow("a"))
    assert.False(t, l.Allow("a"))
    assert.True(t, l.Allow("b"), "keys are independent")

    now = now.Add(1500 * time.Millisecond)
    assert.True(t, l.Allow("a"))
    assert.False(t, l.Allow("a"))

    now = now.Add(time.Hour)
    assert.True(t, l.Allow("a"))
    assert.True(t, l.Allow("a"))
    assert.False(t, l.Allow("a"), "refill is capped at capacity")
}

func TestPrune(t *testing.T) {
    now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
    l := New(1, 1)
    l.now = func() time.Time { return now }
    l.Allow("old")
    now = now.Add(10 * time.Minute)
    l.Allow("fresh")
    assert.Equal(t, 1, l.Prune(5*time.Minute))
    assert.Equal(t, 0, l.Prune(5*time.Minute))
}

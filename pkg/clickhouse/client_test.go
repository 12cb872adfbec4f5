package clickhouse

import (
	"context"
	"testing"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(opts ...ClientOption) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestOptionsNative(t *testing.T) {
	o := build(WithEndpoint("ch", 0), WithDatabase("sajupulse", "", "")).options()

	assert.Equal(t, ch.Native, o.Protocol)
	assert.Equal(t, []string{"ch:9000"}, o.Addr)
	assert.Equal(t, "sajupulse", o.Auth.Database)
	assert.Equal(t, "default", o.Auth.Username)
	assert.Equal(t, 10, o.MaxOpenConns)
	assert.Empty(t, o.Settings)
}

func TestOptionsHTTPWithSettings(t *testing.T) {
	o := build(
		WithHTTP(true),
		WithEndpoint("ch", 0),
		WithDatabase("sajupulse", "u", "p"),
		WithPool(PoolConfig{MaxOpen: 4}),
		WithTimeouts(TimeoutConfig{Dial: time.Second, Read: 2 * time.Second, MaxExec: 30 * time.Second}),
		WithAsyncInsert(true, true),
	).options()

	assert.Equal(t, ch.HTTP, o.Protocol)
	assert.Equal(t, []string{"ch:8123"}, o.Addr)
	assert.Equal(t, "p", o.Auth.Password)
	assert.Equal(t, 4, o.MaxOpenConns)
	assert.Equal(t, 5, o.MaxIdleConns)
	assert.Equal(t, 2*time.Second, o.ReadTimeout)
	assert.Equal(t, ch.Settings{"max_execution_time": 30, "async_insert": 1, "wait_for_async_insert": 1}, o.Settings)
}

func TestWaitWithoutAsyncIsIgnored(t *testing.T) {
	o := build(WithEndpoint("ch", 9000), WithAsyncInsert(false, true)).options()
	assert.NotContains(t, o.Settings, "wait_for_async_insert")
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(context.Background(), WithEndpoint("", 9000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host is required")
}

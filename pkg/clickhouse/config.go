package clickhouse

import (
	"fmt"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
)

// Config describes one ClickHouse endpoint and its pool.
type Config struct {
	Addr     string
	Database string
	User     string
	Password string
	HTTP     bool

	Pool     PoolConfig
	Timeouts TimeoutConfig

	// AsyncInsert lets the server buffer inserts; WaitAsync makes the insert
	// return only after the buffer is flushed.
	AsyncInsert bool
	WaitAsync   bool
}

type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

type TimeoutConfig struct {
	Dial    time.Duration
	Read    time.Duration
	MaxExec time.Duration
}

type ClientOption func(*Config)

func defaultConfig() Config {
	return Config{
		Database: "default",
		User:     "default",
		Pool:     PoolConfig{MaxOpen: 10, MaxIdle: 5, MaxLifetime: 5 * time.Minute},
		Timeouts: TimeoutConfig{Dial: 5 * time.Second, Read: 10 * time.Second},
	}
}

// WithEndpoint sets host and port. A zero port picks the protocol default.
func WithEndpoint(host string, port int) ClientOption {
	return func(c *Config) {
		if host == "" {
			c.Addr = ""
			return
		}
		if port == 0 {
			port = 9000
			if c.HTTP {
				port = 8123
			}
		}
		c.Addr = fmt.Sprintf("%s:%d", host, port)
	}
}

func WithDatabase(database, user, password string) ClientOption {
	return func(c *Config) {
		if database != "" {
			c.Database = database
		}
		if user != "" {
			c.User = user
		}
		c.Password = password
	}
}

// WithHTTP switches from the native protocol to HTTP.
func WithHTTP(on bool) ClientOption {
	return func(c *Config) { c.HTTP = on }
}

func WithPool(p PoolConfig) ClientOption {
	return func(c *Config) {
		if p.MaxOpen > 0 {
			c.Pool.MaxOpen = p.MaxOpen
		}
		if p.MaxIdle > 0 {
			c.Pool.MaxIdle = p.MaxIdle
		}
		if p.MaxLifetime > 0 {
			c.Pool.MaxLifetime = p.MaxLifetime
		}
	}
}

func WithTimeouts(t TimeoutConfig) ClientOption {
	return func(c *Config) { c.Timeouts = t }
}

func WithAsyncInsert(enabled, wait bool) ClientOption {
	return func(c *Config) {
		c.AsyncInsert = enabled
		c.WaitAsync = enabled && wait
	}
}

// options maps Config onto the driver options.
func (c Config) options() *ch.Options {
	opts := &ch.Options{
		Protocol: ch.Native,
		Addr:     []string{c.Addr},
		Auth: ch.Auth{
			Database: c.Database,
			Username: c.User,
			Password: c.Password,
		},
		DialTimeout:     c.Timeouts.Dial,
		ReadTimeout:     c.Timeouts.Read,
		MaxOpenConns:    c.Pool.MaxOpen,
		MaxIdleConns:    c.Pool.MaxIdle,
		ConnMaxLifetime: c.Pool.MaxLifetime,
		Settings:        ch.Settings{},
	}
	if c.HTTP {
		opts.Protocol = ch.HTTP
	}
	if c.Timeouts.MaxExec > 0 {
		opts.Settings["max_execution_time"] = int(c.Timeouts.MaxExec.Seconds())
	}
	if c.AsyncInsert {
		opts.Settings["async_insert"] = 1
		if c.WaitAsync {
			opts.Settings["wait_for_async_insert"] = 1
		}
	}
	return opts
}

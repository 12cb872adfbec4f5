package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
)

// Client owns a database/sql pool backed by the ClickHouse driver.
type Client struct {
	db  *sql.DB
	cfg Config
}

// NewClient opens the pool and pings the server once.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		return nil, errors.New("clickhouse: host is required")
	}

	db := ch.OpenDB(cfg.options())
	c := &Client{db: db, cfg: cfg}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Dial+time.Second)
	defer cancel()
	if err := c.Health(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) DB() *sql.DB { return c.db }

func (c *Client) Database() string { return c.cfg.Database }

func (c *Client) Health(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		var ex *ch.Exception
		if errors.As(err, &ex) {
			return fmt.Errorf("clickhouse %s: code %d: %s", c.cfg.Addr, ex.Code, ex.Message)
		}
		return fmt.Errorf("clickhouse %s: %w", c.cfg.Addr, err)
	}
	return nil
}

func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// ProducerConfig holds the writer settings the service tunes.
type ProducerConfig struct {
	Brokers      []string
	RequiredAcks int
	Compression  string
	MaxAttempts  int
	Batch        BatchConfig
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	Async        bool
	HashByKey    bool
}

// BatchConfig bounds how much and how long the writer buffers.
type BatchConfig struct {
	Size   int
	Bytes  int64
	Linger time.Duration
}

type ProducerOption func(*ProducerConfig)

func defaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		RequiredAcks: int(kafka.RequireAll),
		Compression:  "gzip",
		MaxAttempts:  3,
		Batch:        BatchConfig{Size: 100, Bytes: 1 << 20, Linger: time.Second},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
}

func WithBrokers(brokers ...string) ProducerOption {
	return func(c *ProducerConfig) { c.Brokers = brokers }
}

// WithDelivery sets acknowledgements (-1 waits for all replicas), writer
// attempts and the compression codec name.
func WithDelivery(acks, attempts int, compression string) ProducerOption {
	return func(c *ProducerConfig) {
		c.RequiredAcks = acks
		if attempts > 0 {
			c.MaxAttempts = attempts
		}
		if compression != "" {
			c.Compression = compression
		}
	}
}

// WithBatching sets the flush thresholds; zero values keep the defaults.
func WithBatching(size int, bytes int64, linger time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		if size > 0 {
			c.Batch.Size = size
		}
		if bytes > 0 {
			c.Batch.Bytes = bytes
		}
		if linger > 0 {
			c.Batch.Linger = linger
		}
	}
}

func WithTimeouts(write, read time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		c.WriteTimeout = write
		c.ReadTimeout = read
	}
}

// WithAsync makes writes fire-and-forget; errors are then only visible in metrics.
func WithAsync(async bool) ProducerOption {
	return func(c *ProducerConfig) { c.Async = async }
}

// WithHashByKey routes messages by key hash so one key stays on one partition.
func WithHashByKey(hash bool) ProducerOption {
	return func(c *ProducerConfig) { c.HashByKey = hash }
}

func (c ProducerConfig) writer() *kafka.Writer {
	var bal kafka.Balancer = &kafka.LeastBytes{}
	if c.HashByKey {
		bal = &kafka.Hash{}
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Balancer:     bal,
		RequiredAcks: kafka.RequiredAcks(c.RequiredAcks),
		Compression:  compressionCodec(c.Compression),
		MaxAttempts:  c.MaxAttempts,
		WriteTimeout: c.WriteTimeout,
		ReadTimeout:  c.ReadTimeout,
		BatchSize:    c.Batch.Size,
		BatchBytes:   c.Batch.Bytes,
		BatchTimeout: c.Batch.Linger,
		Async:        c.Async,
	}
}

// compressionCodec maps a codec name to kafka-go's constant; unknown names use gzip.
func compressionCodec(name string) kafka.Compression {
	switch name {
	case "none":
		return 0
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	}
	return kafka.Gzip
}

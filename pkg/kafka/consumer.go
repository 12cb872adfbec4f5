package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"SajuPulse/pkg/logger"
)

// permanentError marks a handler error that retrying cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the consumer skips its retries and dead-letters the
// message right away. Permanent(nil) is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// MessageHandler handles the payloads of one topic.
type MessageHandler interface {
	Topic() string
	Handle(context.Context, []byte) error
}

// fetcher is the part of *kafka.Reader the consumer drives.
type fetcher interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RetryPolicy bounds handler retries. Max counts retries after the first attempt.
type RetryPolicy struct {
	Max        int
	BackoffMin time.Duration
	BackoffMax time.Duration
}

// backoff doubles from BackoffMin up to BackoffMax and removes up to half as jitter.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	lo, hi := p.BackoffMin, p.BackoffMax
	if lo <= 0 {
		lo = 50 * time.Millisecond
	}
	if hi < lo {
		hi = lo
	}
	d := hi
	if attempt < 32 {
		if exp := lo << (attempt - 1); exp > 0 && exp < hi {
			d = exp
		}
	}
	return d - rand.N(d/2+1)
}

type ConsumerConfig struct {
	Brokers  []string
	GroupID  string
	Workers  int
	Queue    int
	Retry    RetryPolicy
	DLQTopic string
	MinBytes int
	MaxBytes int
	Logger   *logger.Logger
}

type ConsumerOption func(*ConsumerConfig)

func WithConsumerBrokers(brokers []string) ConsumerOption {
	return func(c *ConsumerConfig) { c.Brokers = brokers }
}

func WithConsumerGroupID(id string) ConsumerOption {
	return func(c *ConsumerConfig) {
		if id != "" {
			c.GroupID = id
		}
	}
}

// WithConsumerWorkers sets the handler goroutines. A partition is always served
// by the same worker, so messages of one partition are handled in order.
func WithConsumerWorkers(n int) ConsumerOption {
	return func(c *ConsumerConfig) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithConsumerBufferSize sets how many fetched messages each worker may queue.
func WithConsumerBufferSize(n int) ConsumerOption {
	return func(c *ConsumerConfig) {
		if n > 0 {
			c.Queue = n
		}
	}
}

func WithConsumerRetry(max int, backoffMin, backoffMax time.Duration) ConsumerOption {
	return func(c *ConsumerConfig) {
		c.Retry = RetryPolicy{Max: max, BackoffMin: backoffMin, BackoffMax: backoffMax}
	}
}

// WithConsumerDLQ sends failed messages to topic, after which they are
// committed. Without a DLQ a failed message is only logged; it is not
// redelivered once a later message of its partition is committed.
func WithConsumerDLQ(topic string) ConsumerOption {
	return func(c *ConsumerConfig) { c.DLQTopic = topic }
}

func WithConsumerFetch(minBytes, maxBytes int) ConsumerOption {
	return func(c *ConsumerConfig) {
		c.MinBytes = minBytes
		c.MaxBytes = maxBytes
	}
}

func WithConsumerLogger(l *logger.Logger) ConsumerOption {
	return func(c *ConsumerConfig) { c.Logger = l }
}

// Consumer reads registered topics in one consumer group and hands messages
// to a fixed pool of workers.
type Consumer struct {
	cfg       ConsumerConfig
	handlers  map[string]MessageHandler
	readers   map[string]fetcher
	newReader func(topic string) fetcher
	dlq       messageWriter
	hook      ConsumerHook
	log       *logger.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	queues   []chan kafka.Message
	fetchers sync.WaitGroup
	workers  sync.WaitGroup
	stopOnce sync.Once
}

func NewConsumer(opts ...ConsumerOption) (*Consumer, error) {
	cfg := ConsumerConfig{
		GroupID:  "sajupulse",
		Workers:  1,
		Queue:    8,
		Retry:    RetryPolicy{Max: 3, BackoffMin: 50 * time.Millisecond, BackoffMax: 2 * time.Second},
		MinBytes: 1,
		MaxBytes: 10 << 20,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka consumer: brokers are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	initMetrics()

	c := &Consumer{
		cfg:      cfg,
		handlers: make(map[string]MessageHandler),
		readers:  make(map[string]fetcher),
		hook:     NoopHook{},
		log:      cfg.Logger,
	}
	c.newReader = func(topic string) fetcher {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			GroupID:  cfg.GroupID,
			Topic:    topic,
			MinBytes: cfg.MinBytes,
			MaxBytes: cfg.MaxBytes,
		})
	}
	if cfg.DLQTopic != "" {
		c.dlq = &kafka.Writer{Addr: kafka.TCP(cfg.Brokers...), Balancer: &kafka.Hash{}}
	}
	return c, nil
}

// WithConsumerHook installs h around every handler call.
func (c *Consumer) WithConsumerHook(h ConsumerHook) {
	if h != nil {
		c.hook = h
	}
}

// RegisterHandler must be called before Start. A second handler for the same
// topic is ignored.
func (c *Consumer) RegisterHandler(h MessageHandler) {
	topic := h.Topic()
	if _, ok := c.handlers[topic]; ok {
		c.log.Warn("kafka handler already registered", logger.String("topic", topic))
		return
	}
	c.handlers[topic] = h
}

func (c *Consumer) Start() error {
	if c.cancel != nil {
		return errors.New("kafka consumer: already started")
	}
	if len(c.handlers) == 0 {
		return errors.New("kafka consumer: no handlers registered")
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	c.queues = make([]chan kafka.Message, c.cfg.Workers)
	for i := range c.queues {
		c.queues[i] = make(chan kafka.Message, c.cfg.Queue)
		c.workers.Add(1)
		go c.work(c.queues[i])
	}
	for topic := range c.handlers {
		r := c.newReader(topic)
		c.readers[topic] = r
		c.fetchers.Add(1)
		go c.fetch(topic, r)
	}
	c.log.Info("kafka consumer started",
		logger.String("group", c.cfg.GroupID),
		logger.Int("topics", len(c.handlers)),
		logger.Int("workers", c.cfg.Workers),
	)
	return nil
}

// Stop stops fetching, lets workers finish the message in hand and closes the
// readers. Queued messages that were not started stay uncommitted.
func (c *Consumer) Stop(ctx context.Context) error {
	var err error
	c.stopOnce.Do(func() {
		if c.cancel == nil {
			return
		}
		c.cancel()
		done := make(chan struct{})
		go func() {
			c.fetchers.Wait()
			for _, q := range c.queues {
				close(q)
			}
			c.workers.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			err = fmt.Errorf("kafka consumer stop: %w", ctx.Err())
		}

		for topic, r := range c.readers {
			if cerr := r.Close(); cerr != nil {
				c.log.Warn("kafka reader close failed", logger.String("topic", topic), logger.Error(cerr))
			}
		}
		if c.dlq != nil {
			if cerr := c.dlq.Close(); cerr != nil {
				c.log.Warn("kafka dlq writer close failed", logger.Error(cerr))
			}
		}
		c.log.Info("kafka consumer stopped")
	})
	return err
}

func (c *Consumer) fetch(topic string, r fetcher) {
	defer c.fetchers.Done()
	for {
		msg, err := r.FetchMessage(c.ctx)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			c.log.Warn("kafka fetch failed", logger.String("topic", topic), logger.Error(err))
			if !sleep(c.ctx, c.cfg.Retry.BackoffMax) {
				return
			}
			continue
		}
		msg.Topic = topic
		q := c.queues[msg.Partition%len(c.queues)]
		select {
		case q <- msg:
			queueDepth.WithLabelValues(topic).Set(float64(len(q)))
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Consumer) work(queue <-chan kafka.Message) {
	defer c.workers.Done()
	for msg := range queue {
		if c.ctx.Err() != nil {
			observeHandled(msg.Topic, "skipped", 0)
			continue
		}
		c.process(msg)
	}
}

func (c *Consumer) process(msg kafka.Message) {
	start := time.Now()
	attempts, err := c.handle(c.handlers[msg.Topic], msg)
	outcome := "ok"
	if err != nil {
		c.log.Error("kafka message failed",
			logger.String("topic", msg.Topic),
			logger.Int("partition", msg.Partition),
			logger.Int64("offset", msg.Offset),
			logger.Int("attempts", attempts),
			logger.Error(err),
		)
		if !c.deadLetter(msg, err) {
			observeHandled(msg.Topic, "failed", time.Since(start))
			return
		}
		outcome = "dead_letter"
	}
	c.commit(msg)
	observeHandled(msg.Topic, outcome, time.Since(start))
}

// handle runs the hooks and the handler, retrying handler errors. Hook errors,
// panics and Permanent errors are not retried.
func (c *Consumer) handle(h MessageHandler, msg kafka.Message) (attempts int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	for {
		attempts++
		ctx, m, herr := c.hook.Before(context.Background(), msg)
		if herr != nil {
			return attempts, herr
		}
		err = h.Handle(ctx, m.Value)
		c.hook.After(ctx, m, err)
		if err == nil {
			return attempts, nil
		}
		if IsPermanent(err) || attempts > c.cfg.Retry.Max || !sleep(c.ctx, c.cfg.Retry.backoff(attempts)) {
			return attempts, err
		}
	}
}

func (c *Consumer) deadLetter(msg kafka.Message, cause error) bool {
	if c.dlq == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	headers := append(msg.Headers[:len(msg.Headers):len(msg.Headers)],
		kafka.Header{Key: "source_topic", Value: []byte(msg.Topic)},
		kafka.Header{Key: "error", Value: []byte(cause.Error())},
	)
	err := c.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   c.cfg.DLQTopic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    time.Now(),
	})
	if err != nil {
		c.log.Error("kafka dlq write failed", logger.String("topic", c.cfg.DLQTopic), logger.Error(err))
		return false
	}
	return true
}

func (c *Consumer) commit(msg kafka.Message) {
	r := c.readers[msg.Topic]
	var err error
	for attempt := 1; attempt <= 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = r.CommitMessages(ctx, msg)
		cancel()
		if err == nil {
			return
		}
		time.Sleep(c.cfg.Retry.backoff(attempt))
	}
	c.log.Error("kafka commit failed",
		logger.String("topic", msg.Topic),
		logger.Int64("offset", msg.Offset),
		logger.Error(err),
	)
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestProducerEncodesValues(t *testing.T) {
	w := &recordingWriter{}
	p := newProducer(w)

	require.NoError(t, p.Publish(context.Background(), "reports", []byte("k"), map[string]int{"score": 87}))
	require.NoError(t, p.Publish(context.Background(), "reports", nil, "raw"))
	require.NoError(t, p.PublishWithHeaders(context.Background(), "reports", nil, []byte("b"), map[string]string{"trace_id": "t-1"}))

	require.Len(t, w.msgs, 3)
	assert.Equal(t, `{"score":87}`, string(w.msgs[0].Value))
	assert.Equal(t, "reports", w.msgs[0].Topic)
	assert.Equal(t, "raw", string(w.msgs[1].Value))
	assert.Equal(t, "t-1", ExtractTraceID(w.msgs[2]))
}

func TestProducerWrapsWriteError(t *testing.T) {
	p := newProducer(&recordingWriter{err: errors.New("broker down")})
	err := p.Publish(context.Background(), "reports", nil, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish to reports")

	err = p.Publish(context.Background(), "reports", nil, func() {})
	assert.ErrorContains(t, err, "marshal value")
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
	_, err = NewConsumer()
	assert.Error(t, err)
}

func TestRetryPolicyBackoffStaysInRange(t *testing.T) {
	p := RetryPolicy{Max: 5, BackoffMin: 100 * time.Millisecond, BackoffMax: time.Second}
	for attempt := 1; attempt <= 8; attempt++ {
		d := p.backoff(attempt)
		exp := 100 * time.Millisecond * time.Duration(1<<uint(attempt-1))
		if exp > time.Second {
			exp = time.Second
		}
		assert.LessOrEqual(t, d, exp)
		assert.GreaterOrEqual(t, d, exp/2)
	}
	capped := RetryPolicy{BackoffMin: time.Second}.backoff(40)
	assert.LessOrEqual(t, capped, time.Second)
	assert.GreaterOrEqual(t, capped, time.Second/2)
}

// fakeReader hands out msgs once, then blocks until the fetch context ends.
type fakeReader struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	commits []kafka.Message
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, msgs...)
	return nil
}

func (r *fakeReader) committed() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, 0, len(r.commits))
	for _, m := range r.commits {
		out = append(out, m.Offset)
	}
	return out
}

func (r *fakeReader) Close() error { return nil }

type syncWriter struct {
	mu sync.Mutex
	recordingWriter
}

func (w *syncWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recordingWriter.WriteMessages(ctx, msgs...)
}

func (w *syncWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.msgs)
}

type funcHandler struct {
	topic string
	fn    func([]byte) error
}

func (h funcHandler) Topic() string                            { return h.topic }
func (h funcHandler) Handle(_ context.Context, b []byte) error { return h.fn(b) }

func TestConsumerRetriesAndDeadLetters(t *testing.T) {
	reader := &fakeReader{msgs: []kafka.Message{
		{Partition: 0, Offset: 1, Value: []byte("bad")},
		{Partition: 0, Offset: 2, Value: []byte("good")},
	}}
	dlq := &syncWriter{}

	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerRetry(2, time.Millisecond, 2*time.Millisecond),
		WithConsumerDLQ("scan-requests-dlq"),
	)
	require.NoError(t, err)
	c.newReader = func(string) fetcher { return reader }
	c.dlq = dlq

	var mu sync.Mutex
	calls := map[string]int{}
	c.RegisterHandler(funcHandler{topic: "scan-requests", fn: func(b []byte) error {
		mu.Lock()
		defer mu.Unlock()
		calls[string(b)]++
		if string(b) == "bad" {
			return errors.New("cannot parse")
		}
		return nil
	}})
	require.NoError(t, c.Start())
	assert.Error(t, c.Start())

	require.Eventually(t, func() bool { return len(reader.committed()) == 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.Stop(context.Background()))

	assert.Equal(t, []int64{1, 2}, reader.committed())
	require.Equal(t, 1, dlq.count())
	dead := dlq.msgs[0]
	assert.Equal(t, "scan-requests-dlq", dead.Topic)
	assert.Equal(t, "bad", string(dead.Value))

	headers := map[string]string{}
	for _, h := range dead.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "scan-requests", headers["source_topic"])
	assert.Equal(t, "cannot parse", headers["error"])

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, calls["bad"])
	assert.Equal(t, 1, calls["good"])
}

func TestConsumerDeadLettersPermanentErrorsWithoutRetry(t *testing.T) {
	reader := &fakeReader{msgs: []kafka.Message{{Partition: 0, Offset: 7, Value: []byte("{")}}}
	dlq := &syncWriter{}

	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerRetry(5, time.Millisecond, 2*time.Millisecond),
		WithConsumerDLQ("scan-requests-dlq"),
	)
	require.NoError(t, err)
	c.newReader = func(string) fetcher { return reader }
	c.dlq = dlq

	var mu sync.Mutex
	calls := 0
	c.RegisterHandler(funcHandler{topic: "scan-requests", fn: func([]byte) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return Permanent(errors.New("decode scan request: unexpected EOF"))
	}})
	require.NoError(t, c.Start())
	require.Eventually(t, func() bool { return len(reader.committed()) == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.Stop(context.Background()))

	require.Equal(t, 1, dlq.count())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	cause := errors.New("bad payload")
	err := fmt.Errorf("handle: %w", Permanent(cause))
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "handle: bad payload", err.Error())
	assert.False(t, IsPermanent(cause))
}

func TestConsumerStartNeedsHandlers(t *testing.T) {
	c, err := NewConsumer(WithConsumerBrokers([]string{"localhost:9092"}))
	require.NoError(t, err)
	assert.Error(t, c.Start())
	assert.NoError(t, c.Stop(context.Background()))
}

type orderHook struct {
	name  string
	trace *[]string
	fail  bool
}

func (h orderHook) Before(ctx context.Context, msg kafka.Message) (context.Context, kafka.Message, error) {
	*h.trace = append(*h.trace, "before:"+h.name)
	if h.fail {
		return ctx, msg, &HookError{Code: "ERR_VALIDATION"}
	}
	msg.Value = append(msg.Value, h.name...)
	return ctx, msg, nil
}

func (h orderHook) After(_ context.Context, _ kafka.Message, err error) {
	tag := "after:"
	if err != nil {
		tag = "failed:"
	}
	*h.trace = append(*h.trace, tag+h.name)
}

func TestHookChainOrder(t *testing.T) {
	var trace []string
	chain := NewHookChain(orderHook{name: "a", trace: &trace}, nil, orderHook{name: "b", trace: &trace})

	_, msg, err := chain.Before(context.Background(), kafka.Message{Value: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "xab", string(msg.Value))

	chain.After(context.Background(), msg, nil)
	assert.Equal(t, []string{"before:a", "before:b", "after:b", "after:a"}, trace)
}

func TestHookChainUnwindsOnError(t *testing.T) {
	var trace []string
	chain := NewHookChain(
		orderHook{name: "a", trace: &trace},
		orderHook{name: "b", trace: &trace, fail: true},
		orderHook{name: "c", trace: &trace},
	)
	_, _, err := chain.Before(context.Background(), kafka.Message{})

	var herr *HookError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "ERR_VALIDATION", herr.Code)
	assert.Equal(t, []string{"before:a", "before:b", "failed:a"}, trace)
}

func TestHookChainRecoversPanics(t *testing.T) {
	chain := NewHookChain(HookFuncs{
		OnBefore: func(context.Context, kafka.Message) (context.Context, kafka.Message, error) {
			panic("bad hook")
		},
		OnAfter: func(context.Context, kafka.Message, error) { panic("bad hook") },
	})
	_, _, err := chain.Before(context.Background(), kafka.Message{})
	assert.ErrorContains(t, err, "ERR_PANIC")
	assert.NotPanics(t, func() { chain.After(context.Background(), kafka.Message{}, nil) })
}

func TestTraceHook(t *testing.T) {
	msg := kafka.Message{Headers: []kafka.Header{{Key: "trace_id", Value: []byte("abc")}}}
	ctx, _, err := TraceHook().Before(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, "abc", TraceIDFrom(ctx))
	_, ok := StartTimeFrom(ctx)
	assert.True(t, ok)

	ctx, _, _ = TraceHook().Before(context.Background(), kafka.Message{})
	assert.Empty(t, TraceIDFrom(ctx))
}

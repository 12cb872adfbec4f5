package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"SajuPulse/pkg/logger"
)

// ConsumerHook wraps each handler attempt. Before may replace the context or
// the message; an error from Before fails the attempt without calling the
// handler. After sees the handler result, nil on success.
type ConsumerHook interface {
	Before(ctx context.Context, msg kafka.Message) (context.Context, kafka.Message, error)
	After(ctx context.Context, msg kafka.Message, err error)
}

type NoopHook struct{}

func (NoopHook) Before(ctx context.Context, msg kafka.Message) (context.Context, kafka.Message, error) {
	return ctx, msg, nil
}

func (NoopHook) After(context.Context, kafka.Message, error) {}

// HookError is returned by a hook that rejects a message.
type HookError struct {
	Code string
	Err  error
}

func (e *HookError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *HookError) Unwrap() error { return e.Err }

// HookFuncs builds a hook from optional functions.
type HookFuncs struct {
	OnBefore func(context.Context, kafka.Message) (context.Context, kafka.Message, error)
	OnAfter  func(context.Context, kafka.Message, error)
}

func (h HookFuncs) Before(ctx context.Context, msg kafka.Message) (context.Context, kafka.Message, error) {
	if h.OnBefore == nil {
		return ctx, msg, nil
	}
	return h.OnBefore(ctx, msg)
}

func (h HookFuncs) After(ctx context.Context, msg kafka.Message, err error) {
	if h.OnAfter != nil {
		h.OnAfter(ctx, msg, err)
	}
}

// HookChain runs Before in order and After in reverse. When a Before fails,
// the hooks that already ran get After with that error. A panicking hook is
// turned into an ERR_PANIC HookError on Before and ignored on After.
type HookChain []ConsumerHook

func NewHookChain(hooks ...ConsumerHook) HookChain {
	chain := make(HookChain, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			chain = append(chain, h)
		}
	}
	return chain
}

func (c HookChain) Before(ctx context.Context, msg kafka.Message) (context.Context, kafka.Message, error) {
	for i, h := range c {
		next, m, err := guardBefore(h, ctx, msg)
		if err != nil {
			c[:i].After(ctx, msg, err)
			return ctx, msg, err
		}
		ctx, msg = next, m
	}
	return ctx, msg, nil
}

func (c HookChain) After(ctx context.Context, msg kafka.Message, err error) {
	for i := len(c) - 1; i >= 0; i-- {
		guardAfter(c[i], ctx, msg, err)
	}
}

func guardBefore(h ConsumerHook, ctx context.Context, msg kafka.Message) (_ context.Context, _ kafka.Message, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HookError{Code: "ERR_PANIC", Err: fmt.Errorf("%v", r)}
		}
	}()
	return h.Before(ctx, msg)
}

func guardAfter(h ConsumerHook, ctx context.Context, msg kafka.Message, err error) {
	defer func() { _ = recover() }()
	h.After(ctx, msg, err)
}

type hookKey int

const (
	startKey hookKey = iota
	traceKey
)

const traceHeader = "trace_id"

// ExtractTraceID returns the trace_id header, or "".
func ExtractTraceID(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == traceHeader {
			return string(h.Value)
		}
	}
	return ""
}

func StartTimeFrom(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(startKey).(time.Time)
	return t, ok
}

func TraceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(traceKey).(string)
	return id
}

// TraceHook puts the attempt start time and the message trace id into the
// handler context.
func TraceHook() ConsumerHook {
	return HookFuncs{OnBefore: func(ctx context.Context, msg kafka.Message) (context.Context, kafka.Message, error) {
		ctx = context.WithValue(ctx, startKey, time.Now())
		if id := ExtractTraceID(msg); id != "" {
			ctx = context.WithValue(ctx, traceKey, id)
		}
		return ctx, msg, nil
	}}
}

// LoggingHook logs successes at debug and failed attempts at warn. It reads
// what TraceHook stored, so chain it after TraceHook.
func LoggingHook(l *logger.Logger) ConsumerHook {
	return HookFuncs{OnAfter: func(ctx context.Context, msg kafka.Message, err error) {
		fields := []logger.Field{
			logger.String("topic", msg.Topic),
			logger.Int("partition", msg.Partition),
			logger.Int64("offset", msg.Offset),
		}
		if id := TraceIDFrom(ctx); id != "" {
			fields = append(fields, logger.String("trace_id", id))
		}
		if t, ok := StartTimeFrom(ctx); ok {
			fields = append(fields, logger.Duration("took", time.Since(t)))
		}
		if err != nil {
			l.Warn("kafka message attempt failed", append(fields, logger.Error(err))...)
			return
		}
		l.Debug("kafka message handled", fields...)
	}}
}

package bt

import (
	"context"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/log"
)

var (
	defaultTickRate    = 10 * time.Second
	defaultTickTimeout = time.Second
	defaultTracer      = opentracing.NoopTracer{}
)

// RunConfiguration controls Run's tick cadence, per-tick timeout, and
// tracer.
type RunConfiguration struct {
	tickRate    time.Duration
	tickTimeout time.Duration
	tracer      opentracing.Tracer
}

func defaultRunConfig() *RunConfiguration {
	return &RunConfiguration{
		tickRate:    defaultTickRate,
		tickTimeout: defaultTickTimeout,
		tracer:      &defaultTracer,
	}
}

// RunOption configures Run.
type RunOption func(config *RunConfiguration)

// WithTracer overrides the tracer Run registers as the global tracer. Run
// does not restore the previous global tracer when it returns.
func WithTracer(tracer opentracing.Tracer) RunOption {
	return func(config *RunConfiguration) {
		config.tracer = tracer
	}
}

// WithTickRate overrides the delay between re-ticks while root returns
// Running.
func WithTickRate(d time.Duration) RunOption {
	return func(config *RunConfiguration) {
		config.tickRate = d
	}
}

// WithTickTimeout overrides the per-Tick context timeout.
func WithTickTimeout(d time.Duration) RunOption {
	return func(config *RunConfiguration) {
		config.tickTimeout = d
	}
}

// Run repeatedly ticks root on editor at the configured tick rate, with the
// given per-Tick timeout, until a non-Running Result is returned or ctx is
// canceled. This is a convenience driver for hosts without their own frame
// loop; the editor's own "frame step" caller is free to call
// EditorState.Tick directly instead.
func Run(ctx context.Context, editor *EditorState, root NodeID, opts ...RunOption) (Result, error) {
	config := defaultRunConfig()

	for _, opt := range opts {
		opt(config)
	}

	opentracing.SetGlobalTracer(config.tracer)

	for {
		tickCtx, cancel := context.WithTimeout(ctx, config.tickTimeout)
		span := opentracing.StartSpan("bt::root")
		tickCtx = opentracing.ContextWithSpan(tickCtx, span)

		result, err := editor.Tick(tickCtx, root)

		cancel()
		span.LogFields(
			log.String("node", root.String()),
			log.String("node_result", result.String()),
		)
		span.Finish()

		if err != nil {
			return Invalid, err
		}

		if result != Running {
			return result, nil
		}

		select {
		case <-ctx.Done():
			editor.AlertTickStoppedTree(root)
			return Failure, nil
		case <-time.After(config.tickRate):
			continue
		}
	}
}

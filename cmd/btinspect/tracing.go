package main

import (
	"fmt"
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	zipkinot "github.com/openzipkin-contrib/zipkin-go-opentracing"
	zipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
)

var zipkinEndpoint string

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// setupTracer registers a zipkin-backed opentracing.Tracer as the global
// tracer when endpoint is non-empty, so bt's tick spans, which nest under
// the inspector's per-tick root span, are reported there. History spans
// started from a context without a span fall back to the no-op tracer. With no endpoint the global tracer is left at
// its opentracing default (no-op), matching bt.Run's own default.
//
// The returned closer flushes the reporter's buffered spans; callers must
// close it before the process exits.
func setupTracer(endpoint string) (io.Closer, error) {
	if endpoint == "" {
		return noopCloser{}, nil
	}

	reporter := zipkinhttp.NewReporter(endpoint)

	localEndpoint, err := zipkin.NewEndpoint("btinspect", "")
	if err != nil {
		reporter.Close()
		return nil, fmt.Errorf("btinspect: zipkin endpoint: %w", err)
	}

	nativeTracer, err := zipkin.NewTracer(reporter, zipkin.WithLocalEndpoint(localEndpoint))
	if err != nil {
		reporter.Close()
		return nil, fmt.Errorf("btinspect: zipkin tracer: %w", err)
	}

	opentracing.SetGlobalTracer(zipkinot.Wrap(nativeTracer))

	return reporter, nil
}

package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where spans go.
type Config struct {
	// File is the span log. Empty disables tracing.
	File string `koanf:"file" yaml:"file,omitempty"`
	// MaxSizeMB rotates the file at this size. Defaults to 10.
	MaxSizeMB int `koanf:"max_size_mb" yaml:"max_size_mb,omitempty"`
}

// Provider owns the tracer provider and its export file.
type Provider struct {
	tp     *sdktrace.TracerProvider
	file   *lumberjack.Logger
	tracer trace.Tracer
}

// New creates a provider for service. A Config without File yields a
// no-op provider.
func New(cfg Config, service, version string) (*Provider, error) {
	if cfg.File == "" {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(service)}, nil
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    maxSize,
		MaxBackups: 3,
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(service),
		semconv.ServiceVersion(version),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Provider{tp: tp, file: file, tracer: tp.Tracer(service)}, nil
}

// Tracer returns the tracer commands and the API client use.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p.tp != nil
}

// Shutdown flushes pending spans and closes the file.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		return err
	}
	return p.file.Close()
}

package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/loru/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor and reports ended spans to the logger.
// Stage spans are always reported; every other span only in verbose mode.
type Bridge struct {
	logger  ports.Logger
	verbose bool
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger, verbose bool) *Bridge {
	return &Bridge{
		logger:  logger,
		verbose: verbose,
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	if !b.verbose && !strings.HasPrefix(s.Name(), ports.StageSpanPrefix) {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(durationPrecision)
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "failed"
		}
		b.logger.Warn(fmt.Sprintf("%s failed after %s: %s", s.Name(), elapsed, desc))
		return
	}
	b.logger.Info(fmt.Sprintf("%s done (%s)", s.Name(), elapsed))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

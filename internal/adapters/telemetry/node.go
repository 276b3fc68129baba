package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/loru/internal/adapters/logger"
	"go.trai.ch/loru/internal/adapters/settings"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
)

const (
	// ProviderNodeID is the unique identifier for the OpenTelemetry SDK provider Graft node.
	ProviderNodeID graft.ID = "adapter.telemetry_provider"
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[*sdktrace.TracerProvider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, settings.NodeID},
		Run: func(ctx context.Context) (*sdktrace.TracerProvider, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			s, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(NewBridge(log, s.Trace)), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ProviderNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			tp, err := graft.Dep[*sdktrace.TracerProvider](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracerWithProvider(tp, InstrumentationName), nil
		},
	})
}

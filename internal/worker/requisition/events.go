package requisition

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/config"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/messaging"
	requisitionsvc "github.com/KevynGreenn/Izi-Hotel-Compras/internal/service/requisition"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/worker"
)

var workerTracer = otel.Tracer("github.com/KevynGreenn/Izi-Hotel-Compras/worker/requisition")

// Module registers requisition-related worker handlers.
var Module = fx.Module("worker_requisition",
	fx.Provide(
		fx.Annotate(
			NewEventHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewEventHandler sets up a worker handler that records requisition
// lifecycle events emitted by the API.
func NewEventHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.requisicoes.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event requisitionsvc.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode requisition event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		logger.Info("requisition event processed",
			zap.String("event_id", event.EventID),
			zap.String("type", event.Type),
			zap.Int64("requisition_id", event.RequisitionID),
			zap.String("status", event.Status),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}

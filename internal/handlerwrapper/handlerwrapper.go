// Package handlerwrapper adapts typed event handlers to watermill.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

// CtxKeyReplyTo holds the "reply_to" metadata of the incoming message, if any.
const CtxKeyReplyTo ctxKey = "reply_to"

// MetadataReplyTo is the message metadata key requesters set to receive a
// response on a topic of their choosing.
const MetadataReplyTo = "reply_to"

// Result is one outgoing message produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// ReplyTopic returns the reply_to topic carried in ctx, or fallback.
func ReplyTopic(ctx context.Context, fallback string) string {
	if rt, ok := ctx.Value(CtxKeyReplyTo).(string); ok && rt != "" {
		return rt
	}
	return fallback
}

// WrapTransformingTyped decodes the message payload into T, runs handler, and
// publishes every Result it returns with the incoming correlation id.
//
// A payload that cannot be decoded is logged and acked; redelivering it would
// fail the same way. Handler and publish errors are returned so router
// middleware can retry.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler func(context.Context, *T) ([]Result, error),
) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID == "" {
			correlationID = watermill.NewUUID()
		}

		ctx := attr.WithCorrelationID(msg.Context(), correlationID)
		if rt := msg.Metadata.Get(MetadataReplyTo); rt != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, rt)
		}

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("message.uuid", msg.UUID),
			attribute.String("correlation_id", correlationID),
		))
		defer span.End()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to decode message payload, dropping",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			span.RecordError(err)
			return nil
		}

		out, err := handler(ctx, payload)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("%s: %w", handlerName, err)
		}

		for _, res := range out {
			outMsg, err := newMessage(correlationID, res)
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("%s: %w", handlerName, err)
			}
			if err := publisher.Publish(res.Topic, outMsg); err != nil {
				span.RecordError(err)
				return fmt.Errorf("%s: failed to publish to %s: %w", handlerName, res.Topic, err)
			}
			logger.DebugContext(ctx, "Published handler result",
				attr.String("handler", handlerName),
				attr.String("topic", res.Topic),
				attr.ExtractCorrelationID(ctx),
			)
		}
		return nil
	}
}

func newMessage(correlationID string, res Result) (*message.Message, error) {
	if res.Topic == "" {
		return nil, fmt.Errorf("result has no topic")
	}
	body, err := json.Marshal(res.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", res.Topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	for k, v := range res.Metadata {
		msg.Metadata.Set(k, v)
	}
	middleware.SetCorrelationID(correlationID, msg)
	return msg, nil
}

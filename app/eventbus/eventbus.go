package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/dart-stats/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// Config selects the transport. An empty URL keeps every message in process.
type Config struct {
	URL      string
	NKeySeed string
	// QueueGroup load-balances subscribers across replicas on NATS.
	QueueGroup string
}

// EventBus is a watermill Publisher and Subscriber pair.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
	// closeSubscriber is false when publisher and subscriber are one value.
	closeSubscriber bool
}

var (
	_ message.Publisher  = (*EventBus)(nil)
	_ message.Subscriber = (*EventBus)(nil)
)

// NewEventBus creates an EventBus on NATS core subjects, or an in-process
// gochannel bus when cfg.URL is empty.
func NewEventBus(ctx context.Context, cfg Config, logger *slog.Logger) (*EventBus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watermillLogger := watermill.NewSlogLogger(logger)

	if cfg.URL == "" {
		logger.InfoContext(ctx, "Using in-process event bus")
		pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, watermillLogger)
		return &EventBus{publisher: pubsub, subscriber: pubsub, logger: logger}, nil
	}

	options, err := natsOptions(cfg)
	if err != nil {
		return nil, err
	}

	marshaler := &nats.NATSMarshaler{}
	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			Marshaler:   marshaler,
			NatsOptions: options,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", attr.Error(err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              cfg.URL,
			QueueGroupPrefix: cfg.QueueGroup,
			CloseTimeout:     30 * time.Second,
			AckWaitTimeout:   30 * time.Second,
			NatsOptions:      options,
			Unmarshaler:      marshaler,
			JetStream:        nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill subscriber", attr.Error(err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected event bus to NATS", attr.String("url", cfg.URL))
	return &EventBus{
		publisher:       publisher,
		subscriber:      subscriber,
		logger:          logger,
		closeSubscriber: true,
	}, nil
}

func natsOptions(cfg Config) ([]nc.Option, error) {
	options := []nc.Option{
		nc.Name("dart-stats"),
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}
	if cfg.NKeySeed == "" {
		return options, nil
	}

	opt, err := nkeyOption(cfg.NKeySeed)
	if err != nil {
		return nil, err
	}
	return append(options, opt), nil
}

// nkeyOption signs the server nonce with the user seed. The seed stays in
// memory; only the public key is sent.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid nats nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	if !nkeys.IsValidPublicUserKey(pub) {
		return nil, fmt.Errorf("nats nkey seed is not a user seed")
	}
	return nc.Nkey(pub, kp.Sign), nil
}

func (eb *EventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	if err := eb.publisher.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *EventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.InfoContext(ctx, "Subscribing to topic", attr.String("topic", topic))
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	return messages, nil
}

// Close closes the publisher and subscriber.
func (eb *EventBus) Close() error {
	errs := []error{eb.publisher.Close()}
	if eb.closeSubscriber {
		errs = append(errs, eb.subscriber.Close())
	}
	return errors.Join(errs...)
}

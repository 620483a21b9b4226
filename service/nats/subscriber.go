package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
)

// SubscribeOptions selects which profile events to receive.
type SubscribeOptions struct {
	// WalletAddress narrows events to one wallet; empty means all wallets.
	WalletAddress string
	// Durable names a consumer that survives restarts; empty means ephemeral.
	Durable string
}

// FilterSubject returns the subject the consumer filters on.
func (o SubscribeOptions) FilterSubject() string {
	if o.WalletAddress == "" {
		return StreamSubjects
	}
	return SubjectPrefix + o.WalletAddress
}

// Subscribe consumes profile events until ctx is done, calling handle for
// each. Messages that fail to decode are logged and acked so they are not
// redelivered forever.
func Subscribe(ctx context.Context, natsURL string, opts SubscribeOptions, logger *slog.Logger, handle func(*ProfileEvent)) error {
	nc, err := Connect(natsURL, "curioweave-subscriber")
	if err != nil {
		return err
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	cfg := jetstream.ConsumerConfig{
		FilterSubject: opts.FilterSubject(),
		AckPolicy:     jetstream.AckExplicitPolicy,
	}
	if opts.Durable != "" {
		cfg.Durable = opts.Durable
		cfg.Name = opts.Durable
	}

	cons, err := js.CreateOrUpdateConsumer(ctx, StreamName, cfg)
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := cons.Consume(func(msg jetstream.Msg) {
		var event ProfileEvent
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			logger.Warn("failed to parse profile event",
				"subject", msg.Subject(),
				"error", err,
			)
			msg.Ack()
			return
		}
		handle(&event)
		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}
	defer cc.Stop()

	logger.Debug("subscribed to profile events", "subject", cfg.FilterSubject)

	<-ctx.Done()
	return nil
}

package notify

import (
	"fmt"
	"time"

	"ticketBooker/internal/config"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const (
	DriverGoChannel = "gochannel"
	DriverRedis     = "redis"
)

// PubSub is the transport notifications travel over.
type PubSub struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	closers    []func() error
}

func (p *PubSub) Close() error {
	var firstErr error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func NewPubSub(cfg config.Notifier, logger watermill.LoggerAdapter) (*PubSub, error) {
	const op = "notify.NewPubSub"

	switch cfg.Driver {
	case DriverGoChannel, "":
		ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)

		return &PubSub{
			Publisher:  ps,
			Subscriber: ps,
			closers:    []func() error{ps.Close},
		}, nil
	case DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, logger)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%s: failed to create redis publisher: %w", op, err)
		}

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: cfg.ConsumerGroup,
		}, logger)
		if err != nil {
			_ = publisher.Close()
			_ = client.Close()
			return nil, fmt.Errorf("%s: failed to create redis subscriber: %w", op, err)
		}

		return &PubSub{
			Publisher:  publisher,
			Subscriber: subscriber,
			closers:    []func() error{client.Close, publisher.Close, subscriber.Close},
		}, nil
	default:
		return nil, fmt.Errorf("%s: unknown notifier driver %q", op, cfg.Driver)
	}
}

func NewRouter(logger watermill.LoggerAdapter, subscriber message.Subscriber, topic string, mailer *Mailer) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(middleware.Recoverer)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          logger,
	}.Middleware)

	router.AddNoPublisherHandler(
		"mailer",
		topic,
		subscriber,
		mailer.Handle,
	)

	return router, nil
}

package notification

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// PubSub is a pair of publisher and subscriber sharing one transport.
type PubSub struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Close closes both sides.
func (p PubSub) Close() error {
	if err := p.Publisher.Close(); err != nil {
		return fmt.Errorf("failed to close publisher: %w", err)
	}

	if p.Subscriber != nil {
		if err := p.Subscriber.Close(); err != nil {
			return fmt.Errorf("failed to close subscriber: %w", err)
		}
	}

	return nil
}

// NewGoChannel creates in-process pubsub. Events are lost on restart.
func NewGoChannel(buffer int64) PubSub {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: buffer,
	}, NewLogger(logrus.StandardLogger()))

	return PubSub{Publisher: ch, Subscriber: ch}
}

// NATSConfig ...
type NATSConfig struct {
	URL              string
	QueueGroup       string
	SubscribersCount int
	ReconnectWait    time.Duration
}

// NewNATS creates core NATS pubsub. Subscribers of one queue group share the events.
func NewNATS(c NATSConfig) (PubSub, error) {
	logger := NewLogger(logrus.StandardLogger())

	opts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(c.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         c.URL,
		NatsOptions: opts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return PubSub{}, fmt.Errorf("failed to create nats publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              c.URL,
		QueueGroupPrefix: c.QueueGroup,
		SubscribersCount: c.SubscribersCount,
		NatsOptions:      opts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		pub.Close() // nolint:errcheck
		return PubSub{}, fmt.Errorf("failed to create nats subscriber: %w", err)
	}

	return PubSub{Publisher: pub, Subscriber: sub}, nil
}

// logger adapts logrus to watermill.LoggerAdapter.
type logger struct {
	e *logrus.Entry
}

// NewLogger ...
func NewLogger(l *logrus.Logger) watermill.LoggerAdapter {
	return logger{e: l.WithField("layer", "watermill")}
}

func (l logger) Error(msg string, err error, fields watermill.LogFields) {
	l.e.WithFields(logrus.Fields(fields)).WithError(err).Error(msg)
}

func (l logger) Info(msg string, fields watermill.LogFields) {
	l.e.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l logger) Debug(msg string, fields watermill.LogFields) {
	l.e.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l logger) Trace(msg string, fields watermill.LogFields) {
	l.e.WithFields(logrus.Fields(fields)).Trace(msg)
}

func (l logger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return logger{e: l.e.WithFields(logrus.Fields(fields))}
}

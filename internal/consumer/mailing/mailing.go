// Package mailing consumes notification events and sends mails to their recipients.
package mailing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Decentr-net/agora/internal/consumer"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/metrics"
	"github.com/Decentr-net/agora/internal/notification"
	"github.com/Decentr-net/agora/internal/storage"
)

var log = logrus.WithField("layer", "consumer").WithField("package", "mailing")

var errBreakerOpen = errors.New("mailer circuit breaker is open")

const breakerName = "mailer"

// Config ...
type Config struct {
	// BaseURL is used to build links in mails.
	BaseURL string
	// FailureThreshold is count of consecutive mailer failures opening the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open.
	OpenTimeout time.Duration
}

type mailing struct {
	sub message.Subscriber
	s   storage.Storage
	m   Mailer
	cb  *gobreaker.CircuitBreaker[interface{}]

	msgs <-chan *message.Message

	baseURL string
}

// New creates new instance of mailing consumer.
func New(sub message.Subscriber, s storage.Storage, m Mailer, c Config) consumer.Consumer {
	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     c.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithField("from", from.String()).WithField("to", to.String()).Warn("mailer breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	return &mailing{
		sub:     sub,
		s:       s,
		m:       m,
		cb:      cb,
		baseURL: c.BaseURL,
	}
}

func (c *mailing) Name() string {
	return "mailing"
}

// Ping reports breaker state and fails while the breaker is open.
func (c *mailing) Ping(_ context.Context) (interface{}, error) {
	state := c.cb.State()
	meta := map[string]string{"breaker": state.String()}

	if state == gobreaker.StateOpen {
		return meta, errBreakerOpen
	}

	return meta, nil
}

func (c *mailing) Subscribe(ctx context.Context) error {
	msgs, err := c.sub.Subscribe(ctx, notification.Topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	c.msgs = msgs
	return nil
}

func (c *mailing) Run(ctx context.Context) error {
	if c.msgs == nil {
		if err := c.Subscribe(ctx); err != nil {
			return err
		}
	}

	log.Info("mailing consumer started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-c.msgs:
			if !ok {
				return nil
			}

			if err := c.processMessage(ctx, msg); err != nil {
				log.WithField("uuid", msg.UUID).WithError(err).Error("failed to process event")
			}

			// failed events are not redelivered
			msg.Ack()
		}
	}
}

func (c *mailing) processMessage(ctx context.Context, msg *message.Message) error {
	e, err := notification.Decode(msg)
	if err != nil {
		return err
	}

	switch e.Type {
	case notification.UserRegistered:
		return c.send(ctx, Mail{
			To:       e.Email,
			Subject:  "Email confirmation",
			Template: ConfirmationTemplate,
			Context: map[string]interface{}{
				"username": e.Login,
				"url":      fmt.Sprintf("%s/v1/auth/register?token=%s", c.baseURL, e.Token),
			},
		})
	case notification.PasswordReset:
		return c.send(ctx, Mail{
			To:       e.Email,
			Subject:  "Password reset",
			Template: PasswordResetTemplate,
			Context: map[string]interface{}{
				"username": e.Login,
				"url":      fmt.Sprintf("%s/v1/auth/password-reset/%s", c.baseURL, e.Token),
			},
		})
	case notification.CommentCreated:
		return c.notifySubscribers(ctx, e, "New comment", NewCommentTemplate)
	case notification.PostUpdated:
		return c.notifySubscribers(ctx, e, "Post updated", PostUpdatedTemplate)
	default:
		return fmt.Errorf("unknown event type %s", e.Type)
	}
}

func (c *mailing) notifySubscribers(ctx context.Context, e notification.Event, subject, tmpl string) error {
	post, err := c.s.GetPost(ctx, e.PostID, 0)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.WithField("post_id", e.PostID).Debug("post was deleted before notification")
			return nil
		}
		return fmt.Errorf("failed to get post: %w", err)
	}

	subscribers, err := c.s.ListSubscribers(ctx, e.PostID)
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	var failed int
	for _, u := range subscribers {
		if err := c.send(ctx, subscriberMail(u, post, subject, tmpl, c.baseURL)); err != nil {
			log.WithField("user_id", u.ID).WithError(err).Error("failed to send mail")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to notify %d of %d subscribers", failed, len(subscribers))
	}

	return nil
}

func subscriberMail(u *entities.User, p *entities.Post, subject, tmpl, baseURL string) Mail {
	return Mail{
		To:       u.Email,
		Subject:  subject,
		Template: tmpl,
		Context: map[string]interface{}{
			"username": u.Login,
			"title":    p.Title,
			"url":      fmt.Sprintf("%s/v1/posts/%d", baseURL, p.ID),
		},
	}
}

func (c *mailing) send(ctx context.Context, m Mail) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.m.Send(ctx, m)
	})
	metrics.RecordMail(m.Template, err)

	if err != nil {
		return fmt.Errorf("failed to send %s mail: %w", m.Template, err)
	}

	return nil
}

// Package notification publishes domain events consumed by the mailing consumer.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/Decentr-net/agora/internal/metrics"
)

//go:generate mockgen -destination=./mock/notification.go -package=mock -source=notification.go

// Topic is the topic every event is published to.
const Topic = "agora.notifications"

// EventType ...
type EventType string

const (
	// CommentCreated is published when a comment is added to a post.
	CommentCreated EventType = "comment.created"
	// PostUpdated is published when a post is updated.
	PostUpdated EventType = "post.updated"
	// UserRegistered is published when a user needs to confirm the email.
	UserRegistered EventType = "user.registered"
	// PasswordReset is published when a user requests a password reset.
	PasswordReset EventType = "user.password_reset"
)

// Event ...
type Event struct {
	Type EventType `json:"type"`
	// ActorID is the user caused the event. Subscribers don't get notified about their own actions.
	ActorID   int64 `json:"actorId,omitempty"`
	PostID    int64 `json:"postId,omitempty"`
	CommentID int64 `json:"commentId,omitempty"`

	Email string `json:"email,omitempty"`
	Login string `json:"login,omitempty"`
	Token string `json:"token,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Publisher enqueues events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type publisher struct {
	p message.Publisher
}

// NewPublisher creates Publisher over watermill publisher.
func NewPublisher(p message.Publisher) Publisher {
	return publisher{p: p}
}

func (p publisher) Publish(ctx context.Context, e Event) (err error) {
	defer func() { metrics.RecordNotification(string(e.Type), err) }()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set("type", string(e.Type))

	if err := p.p.Publish(Topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Decode reads an event from the message payload.
func Decode(msg *message.Message) (Event, error) {
	var e Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return e, nil
}

// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/notification"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/storage"
	"github.com/Decentr-net/agora/internal/token"
)

var log = logrus.WithField("layer", "service").WithField("package", "impl")

// srv ...
type srv struct {
	s      storage.Storage
	policy authz.Policy
	pub    notification.Publisher
	tokens *token.Manager

	now func() time.Time
}

// New creates new instance of service.
func New(s storage.Storage, policy authz.Policy, pub notification.Publisher, tokens *token.Manager) service.Service {
	return srv{
		s:      s,
		policy: policy,
		pub:    pub,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s srv) allowed(actor entities.Actor, r authz.Resource, a authz.Action, isOwner bool) error {
	if !s.policy.Allowed(actor, r, a, isOwner) {
		return fmt.Errorf("%w: %s %s is not allowed", service.ErrForbidden, a, r)
	}
	return nil
}

// publish enqueues e. Failures are logged only because the mutation has already been committed.
func (s srv) publish(ctx context.Context, e notification.Event) {
	if err := s.pub.Publish(ctx, e); err != nil {
		log.WithError(err).WithField("type", e.Type).Error("failed to publish event")
	}
}

// wrapGetError maps storage.ErrNotFound to service.ErrNotFound.
func wrapGetError(err error, entity string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", service.ErrNotFound, entity)
	}
	return fmt.Errorf("failed to get %s: %w", entity, err)
}

package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/storage"
)

// activePost returns the post if it exists and is ACTIVE.
func (s srv) activePost(ctx context.Context, actor entities.Actor, postID int64) (*entities.Post, error) {
	post, err := s.s.GetPost(ctx, postID, actor.ID)
	if err != nil {
		return nil, wrapGetError(err, "post")
	}

	if post.Status == entities.InactiveStatus {
		return nil, fmt.Errorf("%w: post is inactive", service.ErrBadRequest)
	}

	return post, nil
}

func (s srv) AddFavorite(ctx context.Context, actor entities.Actor, postID int64) (*entities.Favorite, error) {
	if err := s.allowed(actor, authz.Favorite, authz.Create, true); err != nil {
		return nil, err
	}

	post, err := s.activePost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if post.IsBookmarked {
		return nil, fmt.Errorf("%w: post is already in favorites", service.ErrConflict)
	}

	f, err := s.s.CreateFavorite(ctx, actor.ID, postID, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: post is already in favorites", service.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	post.IsBookmarked = true
	f.Post = post

	return f, nil
}

func (s srv) RemoveFavorite(ctx context.Context, actor entities.Actor, postID int64) error {
	f, err := s.s.GetFavorite(ctx, actor.ID, postID)
	if err != nil {
		return wrapGetError(err, "favorite")
	}

	if err := s.allowed(actor, authz.Favorite, authz.Delete, f.UserID == actor.ID); err != nil {
		return err
	}

	if err := s.s.DeleteFavorite(ctx, actor.ID, postID); err != nil {
		return wrapGetError(err, "favorite")
	}

	return nil
}

func (s srv) Subscribe(ctx context.Context, actor entities.Actor, postID int64) (*entities.Subscription, error) {
	if err := s.allowed(actor, authz.Subscription, authz.Create, true); err != nil {
		return nil, err
	}

	post, err := s.activePost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if post.IsSubscribed {
		return nil, fmt.Errorf("%w: already subscribed", service.ErrConflict)
	}

	sub, err := s.s.CreateSubscription(ctx, actor.ID, postID, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: already subscribed", service.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	post.IsSubscribed = true
	sub.Post = post

	return sub, nil
}

func (s srv) Unsubscribe(ctx context.Context, actor entities.Actor, postID int64) error {
	sub, err := s.s.GetSubscription(ctx, actor.ID, postID)
	if err != nil {
		return wrapGetError(err, "subscription")
	}

	if err := s.allowed(actor, authz.Subscription, authz.Delete, sub.UserID == actor.ID); err != nil {
		return err
	}

	if err := s.s.DeleteSubscription(ctx, actor.ID, postID); err != nil {
		return wrapGetError(err, "subscription")
	}

	return nil
}

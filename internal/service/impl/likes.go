package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/metrics"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/storage"
)

// lockTarget locks the liked post or comment and returns its author.
func lockTarget(ctx context.Context, tx storage.Storage, target entities.Target) (int64, error) {
	switch {
	case target.PostID != nil:
		p, err := tx.LockPost(ctx, *target.PostID)
		if err != nil {
			return 0, wrapGetError(err, "post")
		}
		return p.AuthorID, nil
	case target.CommentID != nil:
		c, err := tx.LockComment(ctx, *target.CommentID)
		if err != nil {
			return 0, wrapGetError(err, "comment")
		}
		return c.AuthorID, nil
	default:
		return 0, fmt.Errorf("%w: like target is not set", service.ErrBadRequest)
	}
}

func adjustTargetRating(ctx context.Context, tx storage.Storage, target entities.Target, delta int) error {
	var err error
	if target.PostID != nil {
		err = tx.AdjustPostRating(ctx, *target.PostID, delta)
	} else {
		err = tx.AdjustCommentRating(ctx, *target.CommentID, delta)
	}

	if err != nil {
		return fmt.Errorf("failed to adjust target rating: %w", err)
	}

	return nil
}

func targetName(target entities.Target) string {
	if target.PostID != nil {
		return "post"
	}
	return "comment"
}

// CreateLike stores the reaction and applies its delta to the target's rating and to the target author's
// rating and reactions count. The target row stays locked until commit, so reactions on it are serialized.
func (s srv) CreateLike(ctx context.Context, actor entities.Actor, target entities.Target, t entities.LikeType) (*entities.Like, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: invalid like type %s", service.ErrBadRequest, t)
	}

	if err := s.allowed(actor, authz.Like, authz.Create, true); err != nil {
		return nil, err
	}

	var out *entities.Like
	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		authorID, err := lockTarget(ctx, tx, target)
		if err != nil {
			return err
		}

		switch _, err := tx.GetLike(ctx, actor.ID, target); {
		case err == nil:
			return fmt.Errorf("%w: %s is already reacted", service.ErrConflict, targetName(target))
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("failed to get like: %w", err)
		}

		out, err = tx.CreateLike(ctx, &entities.Like{
			Type:      t,
			AuthorID:  actor.ID,
			Target:    target,
			CreatedAt: s.now(),
		})
		if err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				return fmt.Errorf("%w: %s is already reacted", service.ErrConflict, targetName(target))
			}
			return fmt.Errorf("failed to create like: %w", err)
		}

		if err := adjustTargetRating(ctx, tx, target, t.Delta()); err != nil {
			return err
		}

		if err := tx.AdjustUserCounters(ctx, authorID, storage.UserCounters{
			Rating:    t.Delta(),
			Reactions: 1,
		}); err != nil {
			return fmt.Errorf("failed to adjust author counters: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	metrics.RecordReaction(targetName(target), string(t), "create")

	return out, nil
}

// DeleteLike removes actor's reaction on the target and reverts exactly the delta it applied.
func (s srv) DeleteLike(ctx context.Context, actor entities.Actor, target entities.Target) error {
	var deleted *entities.Like

	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		authorID, err := lockTarget(ctx, tx, target)
		if err != nil {
			return err
		}

		like, err := tx.GetLike(ctx, actor.ID, target)
		if err != nil {
			return wrapGetError(err, "like")
		}

		if err := s.allowed(actor, authz.Like, authz.Delete, like.AuthorID == actor.ID); err != nil {
			return err
		}

		if err := tx.DeleteLike(ctx, like.ID); err != nil {
			return wrapGetError(err, "like")
		}

		if err := adjustTargetRating(ctx, tx, target, -like.Type.Delta()); err != nil {
			return err
		}

		if err := tx.AdjustUserCounters(ctx, authorID, storage.UserCounters{
			Rating:    -like.Type.Delta(),
			Reactions: -1,
		}); err != nil {
			return fmt.Errorf("failed to adjust author counters: %w", err)
		}

		deleted = like
		return nil
	}); err != nil {
		return err
	}

	metrics.RecordReaction(targetName(target), string(deleted.Type), "delete")

	return nil
}

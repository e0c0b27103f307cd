package impl

import (
	"context"
	"fmt"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/storage"
)

func (s srv) GetComment(ctx context.Context, id int64) (*entities.Comment, error) {
	c, err := s.s.GetComment(ctx, id)
	if err != nil {
		return nil, wrapGetError(err, "comment")
	}

	return c, nil
}

func (s srv) GetCommentLikes(ctx context.Context, id int64) ([]*entities.Like, error) {
	if _, err := s.GetComment(ctx, id); err != nil {
		return nil, err
	}

	likes, err := s.s.ListLikes(ctx, entities.CommentTarget(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return likes, nil
}

func (s srv) UpdateComment(ctx context.Context, actor entities.Actor, id int64, content string) (*entities.Comment, error) {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.allowed(actor, authz.Comment, authz.Update, c.AuthorID == actor.ID); err != nil {
		return nil, err
	}

	c.Content = content
	if err := s.s.UpdateComment(ctx, c); err != nil {
		return nil, wrapGetError(err, "comment")
	}

	return c, nil
}

// DeleteComment removes the comment with its likes and reverts the author's counters.
func (s srv) DeleteComment(ctx context.Context, actor entities.Actor, id int64) error {
	return s.s.InTx(ctx, func(tx storage.Storage) error {
		c, err := tx.LockComment(ctx, id)
		if err != nil {
			return wrapGetError(err, "comment")
		}

		if err := s.allowed(actor, authz.Comment, authz.Delete, c.AuthorID == actor.ID); err != nil {
			return err
		}

		likes, err := tx.ListLikes(ctx, entities.CommentTarget(id))
		if err != nil {
			return fmt.Errorf("failed to list likes: %w", err)
		}

		if err := tx.DeleteComment(ctx, id); err != nil {
			return wrapGetError(err, "comment")
		}

		if err := tx.AdjustUserCounters(ctx, c.AuthorID, storage.UserCounters{
			Rating:    -c.Rating,
			Comments:  -1,
			Reactions: -len(likes),
		}); err != nil {
			return fmt.Errorf("failed to adjust author counters: %w", err)
		}

		return nil
	})
}

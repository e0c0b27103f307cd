package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Decentr-net/agora/internal/entities"
)

// relationDTO is a row of post_favorite or post_subscribe.
type relationDTO struct {
	UserID int64     `db:"user_id"`
	PostID int64     `db:"post_id"`
	AddAt  time.Time `db:"add_at"`
}

func (s pg) createRelation(ctx context.Context, table string, userID, postID int64, addAt time.Time) (*relationDTO, error) {
	var out relationDTO

	if err := sqlx.GetContext(ctx, s.ext, &out,
		fmt.Sprintf(`INSERT INTO %s(user_id, post_id, add_at) VALUES($1, $2, $3) RETURNING user_id, post_id, add_at`, table),
		userID, postID, addAt.UTC(),
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", wrapError(err))
	}

	return &out, nil
}

func (s pg) getRelation(ctx context.Context, table string, userID, postID int64) (*relationDTO, error) {
	var out relationDTO

	if err := sqlx.GetContext(ctx, s.ext, &out,
		fmt.Sprintf(`SELECT user_id, post_id, add_at FROM %s WHERE user_id=$1 AND post_id=$2`, table),
		userID, postID,
	); err != nil {
		return nil, wrapError(err)
	}

	return &out, nil
}

func (s pg) deleteRelation(ctx context.Context, table string, userID, postID int64) error {
	res, err := s.ext.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id=$1 AND post_id=$2`, table), userID, postID,
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) CreateFavorite(ctx context.Context, userID, postID int64, addAt time.Time) (*entities.Favorite, error) {
	r, err := s.createRelation(ctx, "post_favorite", userID, postID, addAt)
	if err != nil {
		return nil, err
	}

	return &entities.Favorite{UserID: r.UserID, PostID: r.PostID, AddAt: r.AddAt}, nil
}

func (s pg) GetFavorite(ctx context.Context, userID, postID int64) (*entities.Favorite, error) {
	r, err := s.getRelation(ctx, "post_favorite", userID, postID)
	if err != nil {
		return nil, err
	}

	return &entities.Favorite{UserID: r.UserID, PostID: r.PostID, AddAt: r.AddAt}, nil
}

func (s pg) DeleteFavorite(ctx context.Context, userID, postID int64) error {
	return s.deleteRelation(ctx, "post_favorite", userID, postID)
}

func (s pg) CreateSubscription(ctx context.Context, userID, postID int64, addAt time.Time) (*entities.Subscription, error) {
	r, err := s.createRelation(ctx, "post_subscribe", userID, postID, addAt)
	if err != nil {
		return nil, err
	}

	return &entities.Subscription{UserID: r.UserID, PostID: r.PostID, AddAt: r.AddAt}, nil
}

func (s pg) GetSubscription(ctx context.Context, userID, postID int64) (*entities.Subscription, error) {
	r, err := s.getRelation(ctx, "post_subscribe", userID, postID)
	if err != nil {
		return nil, err
	}

	return &entities.Subscription{UserID: r.UserID, PostID: r.PostID, AddAt: r.AddAt}, nil
}

func (s pg) DeleteSubscription(ctx context.Context, userID, postID int64) error {
	return s.deleteRelation(ctx, "post_subscribe", userID, postID)
}

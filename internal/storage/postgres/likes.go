package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Decentr-net/agora/internal/entities"
)

const likeColumns = `id, type, author_id, post_id, comment_id, created_at`

type likeDTO struct {
	ID        int64         `db:"id"`
	Type      string        `db:"type"`
	AuthorID  int64         `db:"author_id"`
	PostID    sql.NullInt64 `db:"post_id"`
	CommentID sql.NullInt64 `db:"comment_id"`
	CreatedAt time.Time     `db:"created_at"`
}

func (l likeDTO) toEntity() *entities.Like {
	out := entities.Like{
		ID:        l.ID,
		Type:      entities.LikeType(l.Type),
		AuthorID:  l.AuthorID,
		CreatedAt: l.CreatedAt,
	}

	if l.PostID.Valid {
		out.Target = entities.PostTarget(l.PostID.Int64)
	} else if l.CommentID.Valid {
		out.Target = entities.CommentTarget(l.CommentID.Int64)
	}

	return &out
}

func targetArgs(t entities.Target) (postID, commentID sql.NullInt64) {
	if t.PostID != nil {
		postID = sql.NullInt64{Int64: *t.PostID, Valid: true}
	}
	if t.CommentID != nil {
		commentID = sql.NullInt64{Int64: *t.CommentID, Valid: true}
	}
	return postID, commentID
}

func (s pg) CreateLike(ctx context.Context, l *entities.Like) (*entities.Like, error) {
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	postID, commentID := targetArgs(l.Target)

	var out likeDTO
	if err := sqlx.GetContext(ctx, s.ext, &out, `
			INSERT INTO "like"(type, author_id, post_id, comment_id, created_at) VALUES($1, $2, $3, $4, $5)
			RETURNING `+likeColumns,
		string(l.Type), l.AuthorID, postID, commentID, createdAt.UTC(),
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", wrapError(err))
	}

	return out.toEntity(), nil
}

func (s pg) GetLike(ctx context.Context, authorID int64, target entities.Target) (*entities.Like, error) {
	postID, commentID := targetArgs(target)

	var l likeDTO
	if err := sqlx.GetContext(ctx, s.ext, &l, `
			SELECT `+likeColumns+` FROM "like"
			WHERE author_id=$1 AND post_id IS NOT DISTINCT FROM $2 AND comment_id IS NOT DISTINCT FROM $3
		`, authorID, postID, commentID,
	); err != nil {
		return nil, wrapError(err)
	}

	return l.toEntity(), nil
}

func (s pg) ListLikes(ctx context.Context, target entities.Target) ([]*entities.Like, error) {
	postID, commentID := targetArgs(target)

	var l []likeDTO
	if err := sqlx.SelectContext(ctx, s.ext, &l, `
			SELECT `+likeColumns+` FROM "like"
			WHERE post_id IS NOT DISTINCT FROM $1 AND comment_id IS NOT DISTINCT FROM $2
			ORDER BY created_at DESC, id DESC
		`, postID, commentID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Like, len(l))
	for i, v := range l {
		out[i] = v.toEntity()
	}

	return out, nil
}

func (s pg) ListUserLikes(ctx context.Context, authorID int64) ([]*entities.Like, error) {
	var l []likeDTO
	if err := sqlx.SelectContext(ctx, s.ext, &l, `
			SELECT `+likeColumns+` FROM "like" WHERE author_id=$1 ORDER BY id
		`, authorID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Like, len(l))
	for i, v := range l {
		out[i] = v.toEntity()
	}

	return out, nil
}

func (s pg) DeleteLike(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM "like" WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

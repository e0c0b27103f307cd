package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
)

const commentColumns = `id, content, author_id, post_id, rating, created_at`

type commentDTO struct {
	ID        int64     `db:"id"`
	Content   string    `db:"content"`
	AuthorID  int64     `db:"author_id"`
	PostID    int64     `db:"post_id"`
	Rating    int       `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
}

func (c commentDTO) toEntity() *entities.Comment {
	return &entities.Comment{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}

func (s pg) CreateComment(ctx context.Context, c *entities.Comment) (*entities.Comment, error) {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var out commentDTO
	if err := sqlx.GetContext(ctx, s.ext, &out, `
			INSERT INTO comment(content, author_id, post_id, created_at) VALUES($1, $2, $3, $4)
			RETURNING `+commentColumns,
		c.Content, c.AuthorID, c.PostID, createdAt.UTC(),
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", wrapError(err))
	}

	return out.toEntity(), nil
}

func (s pg) GetComment(ctx context.Context, id int64) (*entities.Comment, error) {
	var c commentDTO

	if err := sqlx.GetContext(ctx, s.ext, &c,
		`SELECT `+commentColumns+` FROM comment WHERE id=$1`, id,
	); err != nil {
		return nil, wrapError(err)
	}

	return c.toEntity(), nil
}

func (s pg) LockComment(ctx context.Context, id int64) (*entities.Comment, error) {
	var c commentDTO

	if err := sqlx.GetContext(ctx, s.ext, &c,
		`SELECT `+commentColumns+` FROM comment WHERE id=$1 FOR UPDATE`, id,
	); err != nil {
		return nil, wrapError(err)
	}

	return c.toEntity(), nil
}

func (s pg) ListComments(ctx context.Context, postID int64, p query.Pagination) ([]*entities.Comment, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, s.ext, &total,
		`SELECT COUNT(*) FROM comment WHERE post_id=$1`, postID,
	); err != nil {
		return nil, 0, fmt.Errorf("failed to count: %w", err)
	}

	var c []commentDTO
	if err := sqlx.SelectContext(ctx, s.ext, &c, `
			SELECT `+commentColumns+` FROM comment
			WHERE post_id=$1
			ORDER BY rating DESC, id ASC
			LIMIT $2 OFFSET $3
		`, postID, p.Limit, p.Offset,
	); err != nil {
		return nil, 0, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Comment, len(c))
	for i, v := range c {
		out[i] = v.toEntity()
	}

	return out, total, nil
}

func (s pg) UpdateComment(ctx context.Context, c *entities.Comment) error {
	res, err := s.ext.ExecContext(ctx, `UPDATE comment SET content=$2 WHERE id=$1`, c.ID, c.Content)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM comment WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) AdjustCommentRating(ctx context.Context, id int64, delta int) error {
	res, err := s.ext.ExecContext(ctx, `UPDATE comment SET rating=rating+$2 WHERE id=$1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

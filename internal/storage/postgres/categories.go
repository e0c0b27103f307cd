package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Decentr-net/agora/internal/entities"
)

type categoryDTO struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
}

func (c categoryDTO) toEntity() *entities.Category {
	return &entities.Category{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
	}
}

func toCategories(c []categoryDTO) []*entities.Category {
	out := make([]*entities.Category, len(c))
	for i, v := range c {
		out[i] = v.toEntity()
	}
	return out
}

func (s pg) CreateCategory(ctx context.Context, c *entities.Category) (*entities.Category, error) {
	var out categoryDTO

	if err := sqlx.GetContext(ctx, s.ext, &out, `
			INSERT INTO category(title, description) VALUES($1, $2)
			RETURNING id, title, description
		`, c.Title, c.Description,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", wrapError(err))
	}

	return out.toEntity(), nil
}

func (s pg) GetCategory(ctx context.Context, id int64) (*entities.Category, error) {
	var c categoryDTO

	if err := sqlx.GetContext(ctx, s.ext, &c,
		`SELECT id, title, description FROM category WHERE id=$1`, id,
	); err != nil {
		return nil, wrapError(err)
	}

	return c.toEntity(), nil
}

func (s pg) GetCategoryByTitle(ctx context.Context, title string) (*entities.Category, error) {
	var c categoryDTO

	if err := sqlx.GetContext(ctx, s.ext, &c,
		`SELECT id, title, description FROM category WHERE title=$1`, title,
	); err != nil {
		return nil, wrapError(err)
	}

	return c.toEntity(), nil
}

func (s pg) GetCategoriesByTitles(ctx context.Context, titles []string) ([]*entities.Category, error) {
	var c []categoryDTO

	if err := sqlx.SelectContext(ctx, s.ext, &c,
		`SELECT id, title, description FROM category WHERE title = ANY($1)`, pq.Array(titles),
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toCategories(c), nil
}

func (s pg) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	var c []categoryDTO

	if err := sqlx.SelectContext(ctx, s.ext, &c,
		`SELECT id, title, description FROM category ORDER BY title`,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toCategories(c), nil
}

func (s pg) UpdateCategory(ctx context.Context, c *entities.Category) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE category SET title=$2, description=$3 WHERE id=$1`,
		c.ID, c.Title, c.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", wrapError(err))
	}

	return checkAffected(res)
}

func (s pg) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM category WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) GetPostCategories(ctx context.Context, postID int64) ([]*entities.Category, error) {
	var c []categoryDTO

	if err := sqlx.SelectContext(ctx, s.ext, &c, `
			SELECT c.id, c.title, c.description FROM category c
			JOIN post_category pc ON pc.category_id = c.id
			WHERE pc.post_id = $1
			ORDER BY c.title
		`, postID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toCategories(c), nil
}

func (s pg) SetPostCategories(ctx context.Context, postID int64, categoryIDs []int64) error {
	if _, err := s.ext.ExecContext(ctx, `DELETE FROM post_category WHERE post_id=$1`, postID); err != nil {
		return fmt.Errorf("failed to delete links: %w", err)
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	if _, err := s.ext.ExecContext(ctx, `
			INSERT INTO post_category(post_id, category_id)
			SELECT $1, UNNEST($2::BIGINT[])
			ON CONFLICT DO NOTHING
		`, postID, pq.Array(categoryIDs),
	); err != nil {
		return fmt.Errorf("failed to insert links: %w", wrapError(err))
	}

	return nil
}

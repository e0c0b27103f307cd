package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/storage"
)

func (s srv) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	c, err := s.s.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return c, nil
}

func (s srv) GetCategory(ctx context.Context, id int64) (*entities.Category, error) {
	c, err := s.s.GetCategory(ctx, id)
	if err != nil {
		return nil, wrapGetError(err, "category")
	}

	return c, nil
}

func (s srv) ListCategoryPosts(ctx context.Context, actor entities.Actor, id int64, p service.ListParams) ([]*entities.Post, query.Page, error) {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return nil, query.Page{}, err
	}

	return s.listPosts(ctx, actor, p, func(params *storage.ListPostsParams) {
		params.CategoryID = &id
	})
}

func (s srv) checkCategoryTitle(ctx context.Context, title string) error {
	_, err := s.s.GetCategoryByTitle(ctx, title)
	switch {
	case err == nil:
		return fmt.Errorf("%w: category %s already exists", service.ErrConflict, title)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to get category: %w", err)
	}
}

func (s srv) CreateCategory(ctx context.Context, actor entities.Actor, c *entities.Category) (*entities.Category, error) {
	if err := s.allowed(actor, authz.Category, authz.Create, false); err != nil {
		return nil, err
	}

	if err := s.checkCategoryTitle(ctx, c.Title); err != nil {
		return nil, err
	}

	out, err := s.s.CreateCategory(ctx, c)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: category %s already exists", service.ErrConflict, c.Title)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return out, nil
}

func (s srv) UpdateCategory(ctx context.Context, actor entities.Actor, id int64, p service.UpdateCategoryParams) (*entities.Category, error) {
	if err := s.allowed(actor, authz.Category, authz.Update, false); err != nil {
		return nil, err
	}

	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil && *p.Title != c.Title {
		if err := s.checkCategoryTitle(ctx, *p.Title); err != nil {
			return nil, err
		}
		c.Title = *p.Title
	}

	if p.Description != nil {
		c.Description = *p.Description
	}

	if err := s.s.UpdateCategory(ctx, c); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: category %s already exists", service.ErrConflict, c.Title)
		}
		return nil, wrapGetError(err, "category")
	}

	return c, nil
}

func (s srv) DeleteCategory(ctx context.Context, actor entities.Actor, id int64) error {
	if err := s.allowed(actor, authz.Category, authz.Delete, false); err != nil {
		return err
	}

	if err := s.s.DeleteCategory(ctx, id); err != nil {
		return wrapGetError(err, "category")
	}

	return nil
}

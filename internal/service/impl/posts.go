package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/notification"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/storage"
)

// listPosts builds storage params from p. Non-admins only see ACTIVE posts whatever status they ask for.
func (s srv) listPosts(
	ctx context.Context,
	actor entities.Actor,
	p service.ListParams,
	scope func(params *storage.ListPostsParams),
) ([]*entities.Post, query.Page, error) {
	params := storage.ListPostsParams{
		Pagination:  p.Pagination,
		Sorting:     p.Sorting,
		Title:       p.Filtering.Title,
		Categories:  p.Filtering.Category,
		RequestedBy: actor.ID,
	}

	if p.Filtering.Date != nil {
		params.From, params.To = p.Filtering.Date.Start, p.Filtering.Date.End
	}

	if s.policy.Allowed(actor, authz.Post, authz.ReadInactive, false) {
		params.Status = p.Filtering.Status
	} else {
		active := entities.ActiveStatus
		params.Status = &active
	}

	if scope != nil {
		scope(&params)
	}

	posts, total, err := s.s.ListPosts(ctx, &params)
	if err != nil {
		return nil, query.Page{}, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, query.NewPage(total, p.Pagination), nil
}

func (s srv) ListPosts(ctx context.Context, actor entities.Actor, p service.ListParams) ([]*entities.Post, query.Page, error) {
	return s.listPosts(ctx, actor, p, nil)
}

func (s srv) ListUserPosts(ctx context.Context, actor entities.Actor, userID int64, p service.ListParams) ([]*entities.Post, query.Page, error) {
	if _, err := s.s.GetUser(ctx, userID); err != nil {
		return nil, query.Page{}, wrapGetError(err, "user")
	}

	return s.listPosts(ctx, actor, p, func(params *storage.ListPostsParams) {
		params.AuthorID = &userID
	})
}

func (s srv) ListFavoritePosts(ctx context.Context, actor entities.Actor, p service.ListParams) ([]*entities.Post, query.Page, error) {
	return s.listPosts(ctx, actor, p, func(params *storage.ListPostsParams) {
		params.FavoritedBy = &actor.ID
	})
}

func (s srv) ListSubscribedPosts(ctx context.Context, actor entities.Actor, p service.ListParams) ([]*entities.Post, query.Page, error) {
	return s.listPosts(ctx, actor, p, func(params *storage.ListPostsParams) {
		params.SubscribedBy = &actor.ID
	})
}

func (s srv) GetPost(ctx context.Context, actor entities.Actor, id int64) (*entities.Post, error) {
	post, err := s.s.GetPost(ctx, id, actor.ID)
	if err != nil {
		return nil, wrapGetError(err, "post")
	}

	if post.Status == entities.InactiveStatus {
		if err := s.allowed(actor, authz.Post, authz.ReadInactive, post.AuthorID == actor.ID); err != nil {
			return nil, err
		}
	}

	return post, nil
}

func (s srv) GetPostComments(ctx context.Context, actor entities.Actor, id int64, p query.Pagination) ([]*entities.Comment, query.Page, error) {
	if _, err := s.GetPost(ctx, actor, id); err != nil {
		return nil, query.Page{}, err
	}

	comments, total, err := s.s.ListComments(ctx, id, p)
	if err != nil {
		return nil, query.Page{}, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, query.NewPage(total, p), nil
}

func (s srv) GetPostCategories(ctx context.Context, actor entities.Actor, id int64) ([]*entities.Category, error) {
	if _, err := s.GetPost(ctx, actor, id); err != nil {
		return nil, err
	}

	categories, err := s.s.GetPostCategories(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post categories: %w", err)
	}

	return categories, nil
}

func (s srv) GetPostLikes(ctx context.Context, actor entities.Actor, id int64) ([]*entities.Like, error) {
	if _, err := s.GetPost(ctx, actor, id); err != nil {
		return nil, err
	}

	likes, err := s.s.ListLikes(ctx, entities.PostTarget(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return likes, nil
}

// resolveCategories maps titles to category ids. Every title must exist.
func resolveCategories(ctx context.Context, s storage.Storage, titles []string) ([]int64, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	unique := make([]string, 0, len(titles))
	seen := make(map[string]bool, len(titles))
	for _, v := range titles {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}

	categories, err := s.GetCategoriesByTitles(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	ids := make([]int64, 0, len(categories))
	for _, c := range categories {
		delete(seen, c.Title)
		ids = append(ids, c.ID)
	}

	if len(seen) > 0 {
		missing := make([]string, 0, len(seen))
		for _, v := range unique {
			if seen[v] {
				missing = append(missing, v)
			}
		}
		return nil, fmt.Errorf("%w: categories %s", service.ErrNotFound, strings.Join(missing, ", "))
	}

	return ids, nil
}

func validateStatus(st *entities.Status) error {
	if st != nil && !st.Valid() {
		return fmt.Errorf("%w: invalid status %s", service.ErrBadRequest, *st)
	}
	return nil
}

func (s srv) CreatePost(ctx context.Context, actor entities.Actor, p service.CreatePostParams) (*entities.Post, error) {
	if err := s.allowed(actor, authz.Post, authz.Create, true); err != nil {
		return nil, err
	}

	if err := validateStatus(p.Status); err != nil {
		return nil, err
	}

	post := entities.Post{
		Title:     p.Title,
		Content:   p.Content,
		Status:    entities.ActiveStatus,
		PublishAt: s.now(),
		AuthorID:  actor.ID,
	}

	if p.Status != nil {
		post.Status = *p.Status
	}

	if p.PublishAt != nil {
		post.PublishAt = *p.PublishAt
	}

	var out *entities.Post
	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		ids, err := resolveCategories(ctx, tx, p.Categories)
		if err != nil {
			return err
		}

		out, err = tx.CreatePost(ctx, &post)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		if err := tx.SetPostCategories(ctx, out.ID, ids); err != nil {
			return fmt.Errorf("failed to set post categories: %w", err)
		}

		if err := tx.AdjustUserCounters(ctx, actor.ID, storage.UserCounters{Posts: 1}); err != nil {
			return fmt.Errorf("failed to adjust author counters: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s srv) UpdatePost(ctx context.Context, actor entities.Actor, id int64, p service.UpdatePostParams) (*entities.Post, error) {
	if err := validateStatus(p.Status); err != nil {
		return nil, err
	}

	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		post, err := tx.LockPost(ctx, id)
		if err != nil {
			return wrapGetError(err, "post")
		}

		if err := s.allowed(actor, authz.Post, authz.Update, post.AuthorID == actor.ID); err != nil {
			return err
		}

		if p.Title != nil {
			post.Title = *p.Title
		}
		if p.Content != nil {
			post.Content = *p.Content
		}
		if p.Status != nil {
			post.Status = *p.Status
		}
		if p.PublishAt != nil {
			post.PublishAt = *p.PublishAt
		}

		if err := tx.UpdatePost(ctx, post); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}

		if p.Categories != nil {
			ids, err := resolveCategories(ctx, tx, *p.Categories)
			if err != nil {
				return err
			}

			if err := tx.SetPostCategories(ctx, id, ids); err != nil {
				return fmt.Errorf("failed to set post categories: %w", err)
			}
		}

		return nil
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, notification.Event{
		Type:    notification.PostUpdated,
		ActorID: actor.ID,
		PostID:  id,
	})

	post, err := s.s.GetPost(ctx, id, actor.ID)
	if err != nil {
		return nil, wrapGetError(err, "post")
	}

	return post, nil
}

// DeletePost removes the post with its comments and likes. Counters of the post's author are
// reverted by the post's own reactions; counters of comments' authors are kept.
func (s srv) DeletePost(ctx context.Context, actor entities.Actor, id int64) error {
	return s.s.InTx(ctx, func(tx storage.Storage) error {
		post, err := tx.LockPost(ctx, id)
		if err != nil {
			return wrapGetError(err, "post")
		}

		if err := s.allowed(actor, authz.Post, authz.Delete, post.AuthorID == actor.ID); err != nil {
			return err
		}

		likes, err := tx.ListLikes(ctx, entities.PostTarget(id))
		if err != nil {
			return fmt.Errorf("failed to list likes: %w", err)
		}

		if err := tx.DeletePost(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: post", service.ErrNotFound)
			}
			return fmt.Errorf("failed to delete post: %w", err)
		}

		if err := tx.AdjustUserCounters(ctx, post.AuthorID, storage.UserCounters{
			Rating:    -post.Rating,
			Posts:     -1,
			Reactions: -len(likes),
		}); err != nil {
			return fmt.Errorf("failed to adjust author counters: %w", err)
		}

		return nil
	})
}

func (s srv) AddComment(ctx context.Context, actor entities.Actor, postID int64, content string) (*entities.Comment, error) {
	if err := s.allowed(actor, authz.Comment, authz.Create, true); err != nil {
		return nil, err
	}

	var out *entities.Comment
	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		if _, err := tx.LockPost(ctx, postID); err != nil {
			return wrapGetError(err, "post")
		}

		var err error
		out, err = tx.CreateComment(ctx, &entities.Comment{
			Content:   content,
			AuthorID:  actor.ID,
			PostID:    postID,
			CreatedAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		if err := tx.AdjustUserCounters(ctx, actor.ID, storage.UserCounters{Comments: 1}); err != nil {
			return fmt.Errorf("failed to adjust author counters: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, notification.Event{
		Type:      notification.CommentCreated,
		ActorID:   actor.ID,
		PostID:    postID,
		CommentID: out.ID,
	})

	return out, nil
}

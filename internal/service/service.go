// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/token"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

var (
	// ErrNotFound is returned when requested entity doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when entity or interaction already exists.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when the actor isn't allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrBadRequest is returned on invalid input.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized is returned on failed authentication.
	ErrUnauthorized = errors.New("unauthorized")
)

// Service ...
type Service interface {
	ListPosts(ctx context.Context, actor entities.Actor, p ListParams) ([]*entities.Post, query.Page, error)
	ListUserPosts(ctx context.Context, actor entities.Actor, userID int64, p ListParams) ([]*entities.Post, query.Page, error)
	ListFavoritePosts(ctx context.Context, actor entities.Actor, p ListParams) ([]*entities.Post, query.Page, error)
	ListSubscribedPosts(ctx context.Context, actor entities.Actor, p ListParams) ([]*entities.Post, query.Page, error)
	GetPost(ctx context.Context, actor entities.Actor, id int64) (*entities.Post, error)
	GetPostComments(ctx context.Context, actor entities.Actor, id int64, p query.Pagination) ([]*entities.Comment, query.Page, error)
	GetPostCategories(ctx context.Context, actor entities.Actor, id int64) ([]*entities.Category, error)
	GetPostLikes(ctx context.Context, actor entities.Actor, id int64) ([]*entities.Like, error)
	CreatePost(ctx context.Context, actor entities.Actor, p CreatePostParams) (*entities.Post, error)
	UpdatePost(ctx context.Context, actor entities.Actor, id int64, p UpdatePostParams) (*entities.Post, error)
	DeletePost(ctx context.Context, actor entities.Actor, id int64) error
	AddComment(ctx context.Context, actor entities.Actor, postID int64, content string) (*entities.Comment, error)

	CreateLike(ctx context.Context, actor entities.Actor, target entities.Target, t entities.LikeType) (*entities.Like, error)
	DeleteLike(ctx context.Context, actor entities.Actor, target entities.Target) error

	AddFavorite(ctx context.Context, actor entities.Actor, postID int64) (*entities.Favorite, error)
	RemoveFavorite(ctx context.Context, actor entities.Actor, postID int64) error
	Subscribe(ctx context.Context, actor entities.Actor, postID int64) (*entities.Subscription, error)
	Unsubscribe(ctx context.Context, actor entities.Actor, postID int64) error

	GetComment(ctx context.Context, id int64) (*entities.Comment, error)
	GetCommentLikes(ctx context.Context, id int64) ([]*entities.Like, error)
	UpdateComment(ctx context.Context, actor entities.Actor, id int64, content string) (*entities.Comment, error)
	DeleteComment(ctx context.Context, actor entities.Actor, id int64) error

	ListCategories(ctx context.Context) ([]*entities.Category, error)
	GetCategory(ctx context.Context, id int64) (*entities.Category, error)
	ListCategoryPosts(ctx context.Context, actor entities.Actor, id int64, p ListParams) ([]*entities.Post, query.Page, error)
	CreateCategory(ctx context.Context, actor entities.Actor, c *entities.Category) (*entities.Category, error)
	UpdateCategory(ctx context.Context, actor entities.Actor, id int64, p UpdateCategoryParams) (*entities.Category, error)
	DeleteCategory(ctx context.Context, actor entities.Actor, id int64) error

	ListUsers(ctx context.Context, p query.Pagination, s query.Sorting) ([]*entities.User, query.Page, error)
	GetUser(ctx context.Context, id int64) (*entities.User, error)
	CreateUser(ctx context.Context, actor entities.Actor, p CreateUserParams) (*entities.User, error)
	UpdateUser(ctx context.Context, actor entities.Actor, id int64, p UpdateUserParams) (*entities.User, error)
	DeleteUser(ctx context.Context, actor entities.Actor, id int64) error

	Register(ctx context.Context, p RegisterParams) (*entities.User, error)
	ConfirmEmail(ctx context.Context, confirmToken string) error
	Login(ctx context.Context, login, password string) (*entities.User, token.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.User, token.Pair, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
}

// ListParams is a combination of pagination, sorting and filtering of a posts listing.
type ListParams struct {
	Pagination query.Pagination
	Sorting    query.Sorting
	Filtering  query.Filtering
}

// CreatePostParams ...
type CreatePostParams struct {
	Title      string
	Content    string
	Status     *entities.Status
	PublishAt  *time.Time
	Categories []string
}

// UpdatePostParams contains fields to be updated. Nil fields keep their values.
type UpdatePostParams struct {
	Title      *string
	Content    *string
	Status     *entities.Status
	PublishAt  *time.Time
	Categories *[]string
}

// UpdateCategoryParams ...
type UpdateCategoryParams struct {
	Title       *string
	Description *string
}

// CreateUserParams ...
type CreateUserParams struct {
	Login           string
	Email           string
	Fullname        string
	Password        string
	PasswordConfirm string
	Role            entities.Role
}

// UpdateUserParams ...
type UpdateUserParams struct {
	Login    *string
	Email    *string
	Fullname *string
	Password *string
	Role     *entities.Role
}

// RegisterParams ...
type RegisterParams struct {
	Login           string
	Email           string
	Fullname        string
	Password        string
	PasswordConfirm string
}

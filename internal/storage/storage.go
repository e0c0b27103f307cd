// Package storage contains a storage interface.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a unique constraint is violated.
var ErrAlreadyExists = errors.New("already exists")

// Storage provides methods for interacting with database.
type Storage interface {
	// InTx runs f within a transaction. The transaction is rolled back if f returns an error.
	InTx(ctx context.Context, f func(s Storage) error) error
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, u *entities.User) (*entities.User, error)
	GetUser(ctx context.Context, id int64) (*entities.User, error)
	GetUserByLogin(ctx context.Context, login string) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUserByConfirmToken(ctx context.Context, token string) (*entities.User, error)
	ListUsers(ctx context.Context, p *ListUsersParams) ([]*entities.User, int, error)
	UpdateUser(ctx context.Context, u *entities.User) error
	DeleteUser(ctx context.Context, id int64) error
	AdjustUserCounters(ctx context.Context, id int64, d UserCounters) error

	CreateCategory(ctx context.Context, c *entities.Category) (*entities.Category, error)
	GetCategory(ctx context.Context, id int64) (*entities.Category, error)
	GetCategoryByTitle(ctx context.Context, title string) (*entities.Category, error)
	GetCategoriesByTitles(ctx context.Context, titles []string) ([]*entities.Category, error)
	ListCategories(ctx context.Context) ([]*entities.Category, error)
	UpdateCategory(ctx context.Context, c *entities.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	CreatePost(ctx context.Context, p *entities.Post) (*entities.Post, error)
	GetPost(ctx context.Context, id int64, requestedBy int64) (*entities.Post, error)
	// LockPost returns the post and locks its row until the end of the transaction.
	LockPost(ctx context.Context, id int64) (*entities.Post, error)
	ListPosts(ctx context.Context, p *ListPostsParams) ([]*entities.Post, int, error)
	UpdatePost(ctx context.Context, p *entities.Post) error
	DeletePost(ctx context.Context, id int64) error
	// SetPostCategories replaces all category links of the post.
	SetPostCategories(ctx context.Context, postID int64, categoryIDs []int64) error
	GetPostCategories(ctx context.Context, postID int64) ([]*entities.Category, error)
	AdjustPostRating(ctx context.Context, id int64, delta int) error
	ListSubscribers(ctx context.Context, postID int64) ([]*entities.User, error)

	CreateComment(ctx context.Context, c *entities.Comment) (*entities.Comment, error)
	GetComment(ctx context.Context, id int64) (*entities.Comment, error)
	// LockComment returns the comment and locks its row until the end of the transaction.
	LockComment(ctx context.Context, id int64) (*entities.Comment, error)
	ListComments(ctx context.Context, postID int64, p query.Pagination) ([]*entities.Comment, int, error)
	UpdateComment(ctx context.Context, c *entities.Comment) error
	DeleteComment(ctx context.Context, id int64) error
	AdjustCommentRating(ctx context.Context, id int64, delta int) error

	CreateLike(ctx context.Context, l *entities.Like) (*entities.Like, error)
	GetLike(ctx context.Context, authorID int64, target entities.Target) (*entities.Like, error)
	ListLikes(ctx context.Context, target entities.Target) ([]*entities.Like, error)
	// ListUserLikes returns all reactions left by the user ordered by id.
	ListUserLikes(ctx context.Context, authorID int64) ([]*entities.Like, error)
	DeleteLike(ctx context.Context, id int64) error

	CreateFavorite(ctx context.Context, userID, postID int64, addAt time.Time) (*entities.Favorite, error)
	GetFavorite(ctx context.Context, userID, postID int64) (*entities.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, postID int64) error

	CreateSubscription(ctx context.Context, userID, postID int64, addAt time.Time) (*entities.Subscription, error)
	GetSubscription(ctx context.Context, userID, postID int64) (*entities.Subscription, error)
	DeleteSubscription(ctx context.Context, userID, postID int64) error
}

// UserCounters is a set of deltas applied to user's denormalized counters.
type UserCounters struct {
	Rating    int
	Posts     int
	Comments  int
	Reactions int
}

// ListPostsParams ...
type ListPostsParams struct {
	Pagination query.Pagination
	Sorting    query.Sorting

	Status     *entities.Status
	Title      *string
	From       *time.Time
	To         *time.Time
	Categories []string

	AuthorID     *int64
	CategoryID   *int64
	FavoritedBy  *int64
	SubscribedBy *int64

	// RequestedBy is used to calculate IsBookmarked and IsSubscribed flags. 0 means anonymous.
	RequestedBy int64
}

// ListUsersParams ...
type ListUsersParams struct {
	Pagination query.Pagination
	Sorting    query.Sorting
}

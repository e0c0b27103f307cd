package server

import (
	"time"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
)

// Error ...
// swagger:model
type Error struct {
	Message string `json:"message"`
}

// ListResponse is a page of items with pagination meta.
// swagger:model
type ListResponse struct {
	Items        interface{} `json:"items"`
	TotalCount   int         `json:"totalCount"`
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalPages   int         `json:"totalPages"`
	NextPage     *int        `json:"nextPage"`
	PreviousPage *int        `json:"previousPage"`
}

// Post ...
// swagger:model
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	PublishAt    time.Time `json:"publishAt"`
	AuthorID     int64     `json:"authorId"`
	Rating       int       `json:"rating"`
	IsBookmarked bool      `json:"isBookmarked"`
	IsSubscribed bool      `json:"isSubscribed"`
}

// Comment ...
// swagger:model
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	PostID    int64     `json:"postId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Like ...
// swagger:model
type Like struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	AuthorID  int64     `json:"authorId"`
	PostID    *int64    `json:"postId,omitempty"`
	CommentID *int64    `json:"commentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category ...
// swagger:model
type Category struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// User is a public view of a user. Password hash and tokens are never exposed.
// swagger:model
type User struct {
	ID             int64     `json:"id"`
	Login          string    `json:"login"`
	Email          string    `json:"email"`
	Fullname       string    `json:"fullname"`
	Role           string    `json:"role"`
	Rating         int       `json:"rating"`
	PostsCount     int       `json:"postsCount"`
	CommentsCount  int       `json:"commentsCount"`
	ReactionsCount int       `json:"reactionsCount"`
	IsConfirmed    bool      `json:"isConfirmed"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Favorite ...
// swagger:model
type Favorite struct {
	UserID int64     `json:"userId"`
	PostID int64     `json:"postId"`
	AddAt  time.Time `json:"addAt"`
	Post   *Post     `json:"post,omitempty"`
}

// Subscription ...
// swagger:model
type Subscription struct {
	UserID int64     `json:"userId"`
	PostID int64     `json:"postId"`
	AddAt  time.Time `json:"addAt"`
	Post   *Post     `json:"post,omitempty"`
}

// LoginResponse ...
// swagger:model
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// MessageResponse ...
// swagger:model
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatePostRequest ...
type CreatePostRequest struct {
	Title      string     `json:"title" validate:"required"`
	Content    string     `json:"content" validate:"required"`
	Categories []string   `json:"categories" validate:"dive,required"`
	Status     *string    `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	PublishAt  *time.Time `json:"publishAt"`
}

// UpdatePostRequest ...
type UpdatePostRequest struct {
	Title      *string    `json:"title" validate:"omitempty,min=1"`
	Content    *string    `json:"content" validate:"omitempty,min=1"`
	Categories *[]string  `json:"categories"`
	Status     *string    `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	PublishAt  *time.Time `json:"publishAt"`
}

// LikeRequest ...
type LikeRequest struct {
	Type string `json:"type" validate:"required,oneof=LIKE DISLIKE"`
}

// CommentRequest ...
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateCategoryRequest ...
type CreateCategoryRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest ...
type UpdateCategoryRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

// CreateUserRequest ...
type CreateUserRequest struct {
	Login           string `json:"login" validate:"required,min=3,max=32"`
	Email           string `json:"email" validate:"required,email"`
	Fullname        string `json:"fullname" validate:"max=128"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// UpdateUserRequest ...
type UpdateUserRequest struct {
	Login    *string `json:"login" validate:"omitempty,min=3,max=32"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Fullname *string `json:"fullname" validate:"omitempty,max=128"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// RegisterRequest ...
type RegisterRequest struct {
	Login           string `json:"login" validate:"required,min=3,max=32"`
	Email           string `json:"email" validate:"required,email"`
	Fullname        string `json:"fullname" validate:"max=128"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// LoginRequest ...
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest ...
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewPasswordRequest ...
type NewPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func newListResponse(items interface{}, p query.Page) ListResponse {
	return ListResponse{
		Items:        items,
		TotalCount:   p.TotalCount,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   p.TotalPages,
		NextPage:     p.NextPage,
		PreviousPage: p.PreviousPage,
	}
}

func toAPIPost(p *entities.Post) *Post {
	if p == nil {
		return nil
	}

	return &Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Status:       string(p.Status),
		PublishAt:    p.PublishAt,
		AuthorID:     p.AuthorID,
		Rating:       p.Rating,
		IsBookmarked: p.IsBookmarked,
		IsSubscribed: p.IsSubscribed,
	}
}

func toAPIPosts(p []*entities.Post) []*Post {
	out := make([]*Post, len(p))
	for i, v := range p {
		out[i] = toAPIPost(v)
	}
	return out
}

func toAPIComment(c *entities.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}

func toAPIComments(c []*entities.Comment) []*Comment {
	out := make([]*Comment, len(c))
	for i, v := range c {
		out[i] = toAPIComment(v)
	}
	return out
}

func toAPILike(l *entities.Like) *Like {
	return &Like{
		ID:        l.ID,
		Type:      string(l.Type),
		AuthorID:  l.AuthorID,
		PostID:    l.Target.PostID,
		CommentID: l.Target.CommentID,
		CreatedAt: l.CreatedAt,
	}
}

func toAPILikes(l []*entities.Like) []*Like {
	out := make([]*Like, len(l))
	for i, v := range l {
		out[i] = toAPILike(v)
	}
	return out
}

func toAPICategory(c *entities.Category) *Category {
	return &Category{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
	}
}

func toAPICategories(c []*entities.Category) []*Category {
	out := make([]*Category, len(c))
	for i, v := range c {
		out[i] = toAPICategory(v)
	}
	return out
}

func toAPIUser(u *entities.User) *User {
	return &User{
		ID:             u.ID,
		Login:          u.Login,
		Email:          u.Email,
		Fullname:       u.Fullname,
		Role:           string(u.Role),
		Rating:         u.Rating,
		PostsCount:     u.PostsCount,
		CommentsCount:  u.CommentsCount,
		ReactionsCount: u.ReactionsCount,
		IsConfirmed:    u.IsConfirmed,
		CreatedAt:      u.CreatedAt,
	}
}

func toAPIUsers(u []*entities.User) []*User {
	out := make([]*User, len(u))
	for i, v := range u {
		out[i] = toAPIUser(v)
	}
	return out
}

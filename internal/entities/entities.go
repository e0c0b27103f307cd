// Package entities contains main entities of service.
package entities

import (
	"time"
)

// Role ...
type Role string

const (
	// UserRole ...
	UserRole Role = "USER"
	// AdminRole ...
	AdminRole Role = "ADMIN"
)

// Valid returns true if role is known.
func (r Role) Valid() bool {
	return r == UserRole || r == AdminRole
}

// Status ...
type Status string

const (
	// ActiveStatus ...
	ActiveStatus Status = "ACTIVE"
	// InactiveStatus ...
	InactiveStatus Status = "INACTIVE"
)

// Valid returns true if status is known.
func (s Status) Valid() bool {
	return s == ActiveStatus || s == InactiveStatus
}

// LikeType ...
type LikeType string

const (
	// LikeReaction ...
	LikeReaction LikeType = "LIKE"
	// DislikeReaction ...
	DislikeReaction LikeType = "DISLIKE"
)

// Valid returns true if like type is known.
func (t LikeType) Valid() bool {
	return t == LikeReaction || t == DislikeReaction
}

// Delta returns rating change applied by a reaction of this type.
func (t LikeType) Delta() int {
	if t == DislikeReaction {
		return -1
	}
	return 1
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role Role
}

// IsAdmin ...
func (a Actor) IsAdmin() bool {
	return a.Role == AdminRole
}

// Post ...
type Post struct {
	ID        int64
	Title     string
	Content   string
	Status    Status
	PublishAt time.Time
	AuthorID  int64
	Rating    int

	IsBookmarked bool
	IsSubscribed bool
}

// Comment ...
type Comment struct {
	ID        int64
	Content   string
	AuthorID  int64
	PostID    int64
	Rating    int
	CreatedAt time.Time
}

// Target is a post or a comment a like refers to. Exactly one field is set.
type Target struct {
	PostID    *int64
	CommentID *int64
}

// PostTarget ...
func PostTarget(id int64) Target {
	return Target{PostID: &id}
}

// CommentTarget ...
func CommentTarget(id int64) Target {
	return Target{CommentID: &id}
}

// Like is a LIKE or DISLIKE reaction.
type Like struct {
	ID        int64
	Type      LikeType
	AuthorID  int64
	Target    Target
	CreatedAt time.Time
}

// Category ...
type Category struct {
	ID          int64
	Title       string
	Description string
}

// Favorite is a user's bookmark of a post.
type Favorite struct {
	UserID int64
	PostID int64
	AddAt  time.Time
	Post   *Post
}

// Subscription is a user's opt-in to post notifications.
type Subscription struct {
	UserID int64
	PostID int64
	AddAt  time.Time
	Post   *Post
}

// User ...
type User struct {
	ID             int64
	Login          string
	Email          string
	Fullname       string
	PasswordHash   string
	Role           Role
	Rating         int
	PostsCount     int
	CommentsCount  int
	ReactionsCount int
	IsConfirmed    bool
	ConfirmToken   *string
	CreatedAt      time.Time
}

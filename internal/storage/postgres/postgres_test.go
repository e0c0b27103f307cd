//go:build integration
// +build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/storage"
)

var (
	db  *sql.DB
	ctx = context.Background()
	s   storage.Storage
)

func TestMain(m *testing.M) {
	shutdown := setup()

	s = New(db)

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:12",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	if err := c.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	shutdownFn := func() {
		if c != nil {
			c.Terminate(ctx) // nolint:errcheck
		}
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return shutdownFn
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../scripts/migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	_, err := db.ExecContext(ctx, `TRUNCATE "user", category RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func createUser(t *testing.T, login string) *entities.User {
	u, err := s.CreateUser(ctx, &entities.User{
		Login:        login,
		Email:        login + "@mail.com",
		PasswordHash: "hash",
		Role:         entities.UserRole,
		IsConfirmed:  true,
	})
	require.NoError(t, err)
	return u
}

func createPost(t *testing.T, authorID int64, title string, status entities.Status, publishAt time.Time) *entities.Post {
	p, err := s.CreatePost(ctx, &entities.Post{
		Title:     title,
		Content:   "content",
		Status:    status,
		PublishAt: publishAt,
		AuthorID:  authorID,
	})
	require.NoError(t, err)
	return p
}

func TestPg_Users(t *testing.T) {
	defer cleanup(t)

	u := createUser(t, "gopher")
	require.NotZero(t, u.ID)
	require.Equal(t, entities.UserRole, u.Role)
	require.False(t, u.CreatedAt.IsZero())

	_, err := s.CreateUser(ctx, &entities.User{Login: "gopher", Email: "other@mail.com", PasswordHash: "hash", Role: entities.UserRole})
	require.True(t, errors.Is(err, storage.ErrAlreadyExists))

	got, err := s.GetUserByEmail(ctx, "gopher@mail.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	token := "token"
	got.ConfirmToken = &token
	got.Fullname = "Go Pher"
	require.NoError(t, s.UpdateUser(ctx, got))

	got, err = s.GetUserByConfirmToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "Go Pher", got.Fullname)

	require.NoError(t, s.AdjustUserCounters(ctx, u.ID, storage.UserCounters{Rating: 2, Posts: 1, Comments: 3, Reactions: 4}))
	require.NoError(t, s.AdjustUserCounters(ctx, u.ID, storage.UserCounters{Rating: -1}))

	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rating)
	assert.Equal(t, 1, got.PostsCount)
	assert.Equal(t, 3, got.CommentsCount)
	assert.Equal(t, 4, got.ReactionsCount)

	createUser(t, "alice")
	users, total, err := s.ListUsers(ctx, &storage.ListUsersParams{
		Pagination: query.NewPagination(1, 10),
		Sorting:    query.Sorting{By: query.LoginField, Order: query.AscendingOrder},
	})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "alice", users[0].Login)

	require.NoError(t, s.DeleteUser(ctx, u.ID))
	_, err = s.GetUser(ctx, u.ID)
	require.True(t, errors.Is(err, storage.ErrNotFound))
	require.True(t, errors.Is(s.DeleteUser(ctx, u.ID), storage.ErrNotFound))
}

func TestPg_Categories(t *testing.T) {
	defer cleanup(t)

	u := createUser(t, "gopher")
	p := createPost(t, u.ID, "post", entities.ActiveStatus, time.Now())

	var ids []int64
	for _, title := range []string{"go", "db", "ops"} {
		c, err := s.CreateCategory(ctx, &entities.Category{Title: title})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	_, err := s.CreateCategory(ctx, &entities.Category{Title: "go"})
	require.True(t, errors.Is(err, storage.ErrAlreadyExists))

	found, err := s.GetCategoriesByTitles(ctx, []string{"go", "ops", "rust"})
	require.NoError(t, err)
	require.Len(t, found, 2)

	require.NoError(t, s.SetPostCategories(ctx, p.ID, ids[:2]))
	require.NoError(t, s.SetPostCategories(ctx, p.ID, ids[1:]))

	categories, err := s.GetPostCategories(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.ElementsMatch(t, []string{"db", "ops"}, []string{categories[0].Title, categories[1].Title})

	require.NoError(t, s.SetPostCategories(ctx, p.ID, nil))
	categories, err = s.GetPostCategories(ctx, p.ID)
	require.NoError(t, err)
	require.Empty(t, categories)

	require.True(t, errors.Is(s.SetPostCategories(ctx, p.ID, []int64{100}), storage.ErrNotFound))
}

func TestPg_ListPosts(t *testing.T) {
	defer cleanup(t)

	u1, u2 := createUser(t, "u1"), createUser(t, "u2")
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	p1 := createPost(t, u1.ID, "Hello Go", entities.ActiveStatus, now.Add(-48*time.Hour))
	p2 := createPost(t, u1.ID, "hidden", entities.InactiveStatus, now.Add(-24*time.Hour))
	p3 := createPost(t, u2.ID, "go modules", entities.ActiveStatus, now)

	c, err := s.CreateCategory(ctx, &entities.Category{Title: "go"})
	require.NoError(t, err)
	require.NoError(t, s.SetPostCategories(ctx, p3.ID, []int64{c.ID}))

	require.NoError(t, s.AdjustPostRating(ctx, p1.ID, 5))
	_, err = s.CreateFavorite(ctx, u2.ID, p1.ID, now)
	require.NoError(t, err)

	byPublishAt := query.Sorting{By: query.PublishAtField, Order: query.DescendingOrder}
	active, inactive := entities.ActiveStatus, entities.InactiveStatus
	title := "GO"
	from := now.Add(-36 * time.Hour)

	tt := []struct {
		name   string
		params storage.ListPostsParams
		ids    []int64
	}{
		{
			name:   "all by publish date",
			params: storage.ListPostsParams{},
			ids:    []int64{p3.ID, p2.ID, p1.ID},
		},
		{
			name:   "active",
			params: storage.ListPostsParams{Status: &active},
			ids:    []int64{p3.ID, p1.ID},
		},
		{
			name:   "inactive",
			params: storage.ListPostsParams{Status: &inactive},
			ids:    []int64{p2.ID},
		},
		{
			name:   "title substring",
			params: storage.ListPostsParams{Title: &title},
			ids:    []int64{p3.ID, p1.ID},
		},
		{
			name:   "date from",
			params: storage.ListPostsParams{From: &from},
			ids:    []int64{p3.ID, p2.ID},
		},
		{
			name:   "category",
			params: storage.ListPostsParams{Categories: []string{"go"}},
			ids:    []int64{p3.ID},
		},
		{
			name:   "author",
			params: storage.ListPostsParams{AuthorID: &u1.ID},
			ids:    []int64{p2.ID, p1.ID},
		},
		{
			name:   "favorites",
			params: storage.ListPostsParams{FavoritedBy: &u2.ID},
			ids:    []int64{p1.ID},
		},
		{
			name: "by rating",
			params: storage.ListPostsParams{
				Sorting: query.Sorting{By: query.RatingField, Order: query.DescendingOrder},
				Status:  &active,
			},
			ids: []int64{p1.ID, p3.ID},
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			params := tc.params
			params.Pagination = query.NewPagination(1, 10)
			if params.Sorting.By == "" {
				params.Sorting = byPublishAt
			}

			posts, total, err := s.ListPosts(ctx, &params)
			require.NoError(t, err)
			require.Equal(t, len(tc.ids), total)

			ids := make([]int64, len(posts))
			for i, v := range posts {
				ids[i] = v.ID
			}
			require.Equal(t, tc.ids, ids)
		})
	}

	t.Run("flags", func(t *testing.T) {
		post, err := s.GetPost(ctx, p1.ID, u2.ID)
		require.NoError(t, err)
		require.True(t, post.IsBookmarked)
		require.False(t, post.IsSubscribed)

		post, err = s.GetPost(ctx, p1.ID, 0)
		require.NoError(t, err)
		require.False(t, post.IsBookmarked)
	})

	t.Run("pagination", func(t *testing.T) {
		posts, total, err := s.ListPosts(ctx, &storage.ListPostsParams{
			Pagination: query.NewPagination(2, 2),
			Sorting:    byPublishAt,
		})
		require.NoError(t, err)
		require.Equal(t, 3, total)
		require.Len(t, posts, 1)
		require.Equal(t, p1.ID, posts[0].ID)
	})
}

func TestPg_Likes(t *testing.T) {
	defer cleanup(t)

	u := createUser(t, "gopher")
	p := createPost(t, u.ID, "post", entities.ActiveStatus, time.Now())
	c, err := s.CreateComment(ctx, &entities.Comment{Content: "comment", AuthorID: u.ID, PostID: p.ID})
	require.NoError(t, err)

	postLike, err := s.CreateLike(ctx, &entities.Like{Type: entities.LikeReaction, AuthorID: u.ID, Target: entities.PostTarget(p.ID)})
	require.NoError(t, err)
	require.Equal(t, p.ID, *postLike.Target.PostID)
	require.Nil(t, postLike.Target.CommentID)

	_, err = s.CreateLike(ctx, &entities.Like{Type: entities.DislikeReaction, AuthorID: u.ID, Target: entities.PostTarget(p.ID)})
	require.True(t, errors.Is(err, storage.ErrAlreadyExists))

	_, err = s.CreateLike(ctx, &entities.Like{Type: entities.DislikeReaction, AuthorID: u.ID, Target: entities.CommentTarget(c.ID)})
	require.NoError(t, err)

	got, err := s.GetLike(ctx, u.ID, entities.CommentTarget(c.ID))
	require.NoError(t, err)
	require.Equal(t, entities.DislikeReaction, got.Type)

	likes, err := s.ListLikes(ctx, entities.PostTarget(p.ID))
	require.NoError(t, err)
	require.Len(t, likes, 1)

	userLikes, err := s.ListUserLikes(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, userLikes, 2)
	require.Equal(t, postLike.ID, userLikes[0].ID)
	require.Equal(t, c.ID, *userLikes[1].Target.CommentID)

	require.NoError(t, s.DeleteLike(ctx, postLike.ID))
	_, err = s.GetLike(ctx, u.ID, entities.PostTarget(p.ID))
	require.True(t, errors.Is(err, storage.ErrNotFound))

	require.NoError(t, s.AdjustCommentRating(ctx, c.ID, -1))
	comments, total, err := s.ListComments(ctx, p.ID, query.NewPagination(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, -1, comments[0].Rating)

	require.NoError(t, s.DeletePost(ctx, p.ID))
	_, err = s.GetComment(ctx, c.ID)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPg_Relations(t *testing.T) {
	defer cleanup(t)

	u := createUser(t, "gopher")
	p := createPost(t, u.ID, "post", entities.ActiveStatus, time.Now())
	now := time.Now().UTC().Truncate(time.Second)

	f, err := s.CreateFavorite(ctx, u.ID, p.ID, now)
	require.NoError(t, err)
	require.Equal(t, now, f.AddAt.UTC())

	_, err = s.CreateFavorite(ctx, u.ID, p.ID, now)
	require.True(t, errors.Is(err, storage.ErrAlreadyExists))

	_, err = s.CreateSubscription(ctx, u.ID, 100, now)
	require.True(t, errors.Is(err, storage.ErrNotFound))

	_, err = s.CreateSubscription(ctx, u.ID, p.ID, now)
	require.NoError(t, err)

	subscribers, err := s.ListSubscribers(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, subscribers, 1)
	require.Equal(t, u.ID, subscribers[0].ID)

	require.NoError(t, s.DeleteFavorite(ctx, u.ID, p.ID))
	require.True(t, errors.Is(s.DeleteFavorite(ctx, u.ID, p.ID), storage.ErrNotFound))
	_, err = s.GetFavorite(ctx, u.ID, p.ID)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPg_InTx(t *testing.T) {
	defer cleanup(t)

	u := createUser(t, "gopher")
	p := createPost(t, u.ID, "post", entities.ActiveStatus, time.Now())

	errRollback := errors.New("rollback")
	err := s.InTx(ctx, func(tx storage.Storage) error {
		locked, err := tx.LockPost(ctx, p.ID)
		require.NoError(t, err)
		require.NoError(t, tx.AdjustPostRating(ctx, locked.ID, 10))

		require.True(t, errors.Is(tx.InTx(ctx, func(storage.Storage) error { return nil }), errBeginCalledWithinTx))

		return errRollback
	})
	require.True(t, errors.Is(err, errRollback))

	got, err := s.GetPost(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Zero(t, got.Rating)

	require.NoError(t, s.InTx(ctx, func(tx storage.Storage) error {
		return tx.AdjustPostRating(ctx, p.ID, 1)
	}))

	got, err = s.GetPost(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 1, got.Rating)
}

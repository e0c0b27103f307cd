package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/notification"
	notificationmock "github.com/Decentr-net/agora/internal/notification/mock"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/service"
	storageinterface "github.com/Decentr-net/agora/internal/storage"
	storage "github.com/Decentr-net/agora/internal/storage/mock"
	"github.com/Decentr-net/agora/internal/token"
)

var (
	testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	user  = entities.Actor{ID: 1, Role: entities.UserRole}
	other = entities.Actor{ID: 2, Role: entities.UserRole}
	admin = entities.Actor{ID: 3, Role: entities.AdminRole}
)

func init() {
	bcryptCost = bcrypt.MinCost
}

type testEnv struct {
	s   *storage.MockStorage
	pub *notificationmock.MockPublisher
	srv srv
}

func newTestEnv(t *testing.T) testEnv {
	ctrl := gomock.NewController(t)

	s := storage.NewMockStorage(ctrl)
	s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f func(s storageinterface.Storage) error) error {
			return f(s)
		},
	).AnyTimes()

	pub := notificationmock.NewMockPublisher(ctrl)

	policy, err := authz.New()
	require.NoError(t, err)

	return testEnv{
		s:   s,
		pub: pub,
		srv: srv{
			s:      s,
			policy: policy,
			pub:    pub,
			tokens: token.NewManager(token.Config{
				Secret:     "secret",
				AccessTTL:  time.Hour,
				RefreshTTL: 24 * time.Hour,
				ResetTTL:   10 * time.Minute,
			}),
			now: func() time.Time { return testNow },
		},
	}
}

func statusPtr(s entities.Status) *entities.Status {
	return &s
}

func TestSrv_ListPosts(t *testing.T) {
	tt := []struct {
		name   string
		actor  entities.Actor
		filter *entities.Status
		status *entities.Status
	}{
		{
			name:   "anonymous",
			actor:  entities.Actor{},
			status: statusPtr(entities.ActiveStatus),
		},
		{
			name:   "user asks for inactive",
			actor:  user,
			filter: statusPtr(entities.InactiveStatus),
			status: statusPtr(entities.ActiveStatus),
		},
		{
			name:   "admin asks for inactive",
			actor:  admin,
			filter: statusPtr(entities.InactiveStatus),
			status: statusPtr(entities.InactiveStatus),
		},
		{
			name:  "admin without filter",
			actor: admin,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			p := service.ListParams{
				Pagination: query.NewPagination(2, 10),
				Sorting:    query.DefaultSorting(),
				Filtering:  query.Filtering{Status: tc.filter},
			}

			env.s.EXPECT().ListPosts(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, params *storageinterface.ListPostsParams) ([]*entities.Post, int, error) {
					require.Equal(t, tc.status, params.Status)
					require.Equal(t, tc.actor.ID, params.RequestedBy)
					require.Equal(t, 10, params.Pagination.Offset)
					return []*entities.Post{{ID: 1}}, 25, nil
				},
			)

			posts, page, err := env.srv.ListPosts(context.Background(), tc.actor, p)
			require.NoError(t, err)
			require.Len(t, posts, 1)
			require.Equal(t, 25, page.TotalCount)
			require.Equal(t, 3, page.TotalPages)
		})
	}
}

func TestSrv_ListUserPosts(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().GetUser(gomock.Any(), int64(10)).Return(nil, storageinterface.ErrNotFound)
	_, _, err := env.srv.ListUserPosts(context.Background(), user, 10, service.ListParams{})
	require.True(t, errors.Is(err, service.ErrNotFound))

	env.s.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&entities.User{ID: 1}, nil)
	env.s.EXPECT().ListPosts(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params *storageinterface.ListPostsParams) ([]*entities.Post, int, error) {
			require.Equal(t, int64(1), *params.AuthorID)
			require.Equal(t, entities.ActiveStatus, *params.Status)
			return nil, 0, nil
		},
	)
	_, _, err = env.srv.ListUserPosts(context.Background(), user, 1, service.ListParams{})
	require.NoError(t, err)
}

func TestSrv_GetPost(t *testing.T) {
	tt := []struct {
		name   string
		actor  entities.Actor
		post   *entities.Post
		getErr error
		err    error
	}{
		{
			name:  "active",
			actor: user,
			post:  &entities.Post{ID: 1, AuthorID: 2, Status: entities.ActiveStatus},
		},
		{
			name:  "inactive for user",
			actor: user,
			post:  &entities.Post{ID: 1, AuthorID: 2, Status: entities.InactiveStatus},
			err:   service.ErrForbidden,
		},
		{
			name:  "inactive for author",
			actor: user,
			post:  &entities.Post{ID: 1, AuthorID: 1, Status: entities.InactiveStatus},
			err:   service.ErrForbidden,
		},
		{
			name:  "inactive for admin",
			actor: admin,
			post:  &entities.Post{ID: 1, AuthorID: 2, Status: entities.InactiveStatus},
		},
		{
			name:   "not found",
			actor:  user,
			getErr: storageinterface.ErrNotFound,
			err:    service.ErrNotFound,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.s.EXPECT().GetPost(gomock.Any(), int64(1), tc.actor.ID).Return(tc.post, tc.getErr)

			post, err := env.srv.GetPost(context.Background(), tc.actor, 1)
			if tc.err != nil {
				require.True(t, errors.Is(err, tc.err), err)
				require.Nil(t, post)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.post, post)
		})
	}
}

func TestSrv_GetPostRelated_Inactive(t *testing.T) {
	inactive := &entities.Post{ID: 1, AuthorID: 2, Status: entities.InactiveStatus}

	t.Run("user", func(t *testing.T) {
		env := newTestEnv(t)
		env.s.EXPECT().GetPost(gomock.Any(), int64(1), user.ID).Return(inactive, nil).Times(3)

		_, _, err := env.srv.GetPostComments(context.Background(), user, 1, query.NewPagination(1, 10))
		require.True(t, errors.Is(err, service.ErrForbidden))

		_, err = env.srv.GetPostCategories(context.Background(), user, 1)
		require.True(t, errors.Is(err, service.ErrForbidden))

		_, err = env.srv.GetPostLikes(context.Background(), user, 1)
		require.True(t, errors.Is(err, service.ErrForbidden))
	})

	t.Run("admin", func(t *testing.T) {
		env := newTestEnv(t)
		env.s.EXPECT().GetPost(gomock.Any(), int64(1), admin.ID).Return(inactive, nil).Times(3)
		env.s.EXPECT().ListComments(gomock.Any(), int64(1), query.NewPagination(1, 10)).Return(nil, 0, nil)
		env.s.EXPECT().GetPostCategories(gomock.Any(), int64(1)).Return(nil, nil)
		env.s.EXPECT().ListLikes(gomock.Any(), entities.PostTarget(1)).Return(nil, nil)

		_, _, err := env.srv.GetPostComments(context.Background(), admin, 1, query.NewPagination(1, 10))
		require.NoError(t, err)

		_, err = env.srv.GetPostCategories(context.Background(), admin, 1)
		require.NoError(t, err)

		_, err = env.srv.GetPostLikes(context.Background(), admin, 1)
		require.NoError(t, err)
	})
}

func TestSrv_CreatePost(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		env := newTestEnv(t)

		env.s.EXPECT().GetCategoriesByTitles(gomock.Any(), []string{"go", "db"}).Return([]*entities.Category{
			{ID: 1, Title: "go"},
			{ID: 2, Title: "db"},
		}, nil)
		env.s.EXPECT().CreatePost(gomock.Any(), &entities.Post{
			Title:     "title",
			Content:   "content",
			Status:    entities.ActiveStatus,
			PublishAt: testNow,
			AuthorID:  user.ID,
		}).Return(&entities.Post{ID: 5, AuthorID: user.ID, Status: entities.ActiveStatus}, nil)
		env.s.EXPECT().SetPostCategories(gomock.Any(), int64(5), []int64{1, 2}).Return(nil)
		env.s.EXPECT().AdjustUserCounters(gomock.Any(), user.ID, storageinterface.UserCounters{Posts: 1}).Return(nil)

		post, err := env.srv.CreatePost(context.Background(), user, service.CreatePostParams{
			Title:      "title",
			Content:    "content",
			Categories: []string{"go", "db", "go"},
		})
		require.NoError(t, err)
		require.Equal(t, int64(5), post.ID)
	})

	t.Run("unknown category", func(t *testing.T) {
		env := newTestEnv(t)

		env.s.EXPECT().GetCategoriesByTitles(gomock.Any(), []string{"go", "rust"}).Return([]*entities.Category{
			{ID: 1, Title: "go"},
		}, nil)

		_, err := env.srv.CreatePost(context.Background(), user, service.CreatePostParams{
			Title:      "title",
			Categories: []string{"go", "rust"},
		})
		require.True(t, errors.Is(err, service.ErrNotFound))
		require.Contains(t, err.Error(), "rust")
	})

	t.Run("invalid status", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.srv.CreatePost(context.Background(), user, service.CreatePostParams{
			Title:  "title",
			Status: statusPtr("DRAFT"),
		})
		require.True(t, errors.Is(err, service.ErrBadRequest))
	})

	t.Run("anonymous", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.srv.CreatePost(context.Background(), entities.Actor{}, service.CreatePostParams{Title: "title"})
		require.True(t, errors.Is(err, service.ErrForbidden))
	})
}

func TestSrv_UpdatePost(t *testing.T) {
	title := "new title"

	t.Run("not owner", func(t *testing.T) {
		env := newTestEnv(t)

		env.s.EXPECT().LockPost(gomock.Any(), int64(1)).Return(&entities.Post{ID: 1, AuthorID: other.ID}, nil)

		_, err := env.srv.UpdatePost(context.Background(), user, 1, service.UpdatePostParams{Title: &title})
		require.True(t, errors.Is(err, service.ErrForbidden))
	})

	t.Run("publish failure is not returned", func(t *testing.T) {
		env := newTestEnv(t)

		categories := []string{}
		env.s.EXPECT().LockPost(gomock.Any(), int64(1)).Return(&entities.Post{
			ID: 1, AuthorID: other.ID, Title: "old", Content: "content",
		}, nil)
		env.s.EXPECT().UpdatePost(gomock.Any(), &entities.Post{
			ID: 1, AuthorID: other.ID, Title: title, Content: "content",
		}).Return(nil)
		env.s.EXPECT().SetPostCategories(gomock.Any(), int64(1), gomock.Nil()).Return(nil)
		env.pub.EXPECT().Publish(gomock.Any(), notification.Event{
			Type:    notification.PostUpdated,
			ActorID: admin.ID,
			PostID:  1,
		}).Return(errors.New("broker is down"))
		env.s.EXPECT().GetPost(gomock.Any(), int64(1), admin.ID).Return(&entities.Post{ID: 1, Title: title}, nil)

		post, err := env.srv.UpdatePost(context.Background(), admin, 1, service.UpdatePostParams{
			Title:      &title,
			Categories: &categories,
		})
		require.NoError(t, err)
		require.Equal(t, title, post.Title)
	})
}

func TestSrv_DeletePost(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().LockPost(gomock.Any(), int64(1)).Return(&entities.Post{ID: 1, AuthorID: user.ID, Rating: 3}, nil)
	env.s.EXPECT().ListLikes(gomock.Any(), entities.PostTarget(1)).Return([]*entities.Like{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	env.s.EXPECT().DeletePost(gomock.Any(), int64(1)).Return(nil)
	env.s.EXPECT().AdjustUserCounters(gomock.Any(), user.ID, storageinterface.UserCounters{
		Rating:    -3,
		Posts:     -1,
		Reactions: -3,
	}).Return(nil)

	require.NoError(t, env.srv.DeletePost(context.Background(), user, 1))

	env.s.EXPECT().LockPost(gomock.Any(), int64(1)).Return(&entities.Post{ID: 1, AuthorID: user.ID}, nil)
	require.True(t, errors.Is(env.srv.DeletePost(context.Background(), other, 1), service.ErrForbidden))
}

func TestSrv_AddComment(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().LockPost(gomock.Any(), int64(1)).Return(&entities.Post{ID: 1}, nil)
	env.s.EXPECT().CreateComment(gomock.Any(), &entities.Comment{
		Content:   "hello",
		AuthorID:  user.ID,
		PostID:    1,
		CreatedAt: testNow,
	}).Return(&entities.Comment{ID: 7, PostID: 1, AuthorID: user.ID}, nil)
	env.s.EXPECT().AdjustUserCounters(gomock.Any(), user.ID, storageinterface.UserCounters{Comments: 1}).Return(nil)
	env.pub.EXPECT().Publish(gomock.Any(), notification.Event{
		Type:      notification.CommentCreated,
		ActorID:   user.ID,
		PostID:    1,
		CommentID: 7,
	}).Return(errors.New("broker is down"))

	c, err := env.srv.AddComment(context.Background(), user, 1, "hello")
	require.NoError(t, err)
	require.Equal(t, int64(7), c.ID)

	env.s.EXPECT().LockPost(gomock.Any(), int64(2)).Return(nil, storageinterface.ErrNotFound)
	_, err = env.srv.AddComment(context.Background(), user, 2, "hello")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

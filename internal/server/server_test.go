package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/service/mock"
	"github.com/Decentr-net/agora/internal/token"
)

var timestamp = time.Unix(100, 0).UTC()

type testEnv struct {
	s      *mock.MockService
	tokens *token.Manager
	router chi.Router
}

func newTestEnv(t *testing.T) testEnv {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	env := testEnv{
		s: mock.NewMockService(ctrl),
		tokens: token.NewManager(token.Config{
			Secret:     "secret",
			AccessTTL:  time.Hour,
			RefreshTTL: 24 * time.Hour,
			ResetTTL:   time.Minute,
		}),
		router: chi.NewRouter(),
	}

	SetupRouter(env.s, env.tokens, env.router, Config{
		Timeout:    time.Second,
		RefreshTTL: 24 * time.Hour,
	})

	return env
}

func (env testEnv) do(t *testing.T, method, path, body string, actor *entities.Actor) *httptest.ResponseRecorder {
	r, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)

	if actor != nil {
		access, err := env.tokens.Issue(&entities.User{ID: actor.ID, Role: actor.Role}, token.AccessKind)
		require.NoError(t, err)
		r.Header.Set("Authorization", "Bearer "+access)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, r)

	return w
}

var (
	user  = entities.Actor{ID: 1, Role: entities.UserRole}
	admin = entities.Actor{ID: 2, Role: entities.AdminRole}
)

func Test_listPosts(t *testing.T) {
	env := newTestEnv(t)

	q := "page=1&size=10&sortBy=title&order=asc&title=go&date[start]=2024-01-01&category=Tech,%20Go&category=News"

	next := 2
	env.s.EXPECT().ListPosts(gomock.Any(), entities.Actor{}, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ entities.Actor, p service.ListParams) ([]*entities.Post, query.Page, error) {
			assert.Equal(t, query.NewPagination(1, 10), p.Pagination)
			assert.Equal(t, query.Sorting{By: query.TitleField, Order: query.AscendingOrder}, p.Sorting)
			assert.Equal(t, "go", *p.Filtering.Title)
			assert.Equal(t, []string{"Tech", "Go", "News"}, p.Filtering.Category)
			assert.NotNil(t, p.Filtering.Date.Start)
			assert.Nil(t, p.Filtering.Date.End)

			return []*entities.Post{
				{
					ID:           1,
					Title:        "title",
					Content:      "content",
					Status:       entities.ActiveStatus,
					PublishAt:    timestamp,
					AuthorID:     2,
					Rating:       3,
					IsBookmarked: true,
				},
			}, query.Page{TotalCount: 25, Page: 1, Limit: 10, TotalPages: 3, NextPage: &next}, nil
		},
	)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/v1/posts?%s", q), "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"items": [
			{
				"id": 1,
				"title": "title",
				"content": "content",
				"status": "ACTIVE",
				"publishAt": "1970-01-01T00:01:40Z",
				"authorId": 2,
				"rating": 3,
				"isBookmarked": true,
				"isSubscribed": false
			}
		],
		"totalCount": 25,
		"page": 1,
		"limit": 10,
		"totalPages": 3,
		"nextPage": 2,
		"previousPage": null
	}`, w.Body.String())
}

func Test_listPosts_InvalidQuery(t *testing.T) {
	tt := []struct {
		name  string
		query string
	}{
		{name: "size too big", query: "size=21"},
		{name: "zero page", query: "page=0"},
		{name: "unknown sort field", query: "sortBy=content"},
		{name: "invalid order", query: "order=up"},
		{name: "invalid date", query: "date[end]=yesterday"},
		{name: "invalid status", query: "status=DRAFT"},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.do(t, http.MethodGet, "/v1/posts?"+tc.query, "", nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func Test_getPost(t *testing.T) {
	tt := []struct {
		name string
		path string
		err  error
		code int
	}{
		{name: "success", path: "/v1/posts/1", code: http.StatusOK},
		{name: "inactive", path: "/v1/posts/1", err: fmt.Errorf("%w: post is inactive", service.ErrForbidden), code: http.StatusForbidden},
		{name: "not found", path: "/v1/posts/1", err: fmt.Errorf("%w: post", service.ErrNotFound), code: http.StatusNotFound},
		{name: "internal", path: "/v1/posts/1", err: fmt.Errorf("failed to get post"), code: http.StatusInternalServerError},
		{name: "invalid id", path: "/v1/posts/abc", code: http.StatusBadRequest},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			if tc.code != http.StatusBadRequest {
				var p *entities.Post
				if tc.err == nil {
					p = &entities.Post{ID: 1, Status: entities.ActiveStatus}
				}
				env.s.EXPECT().GetPost(gomock.Any(), user, int64(1)).Return(p, tc.err)
			}

			w := env.do(t, http.MethodGet, tc.path, "", &user)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func Test_createPost(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/posts", `{"title":"t","content":"c"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		env := newTestEnv(t)

		r := httptest.NewRequest(http.MethodPost, "/v1/posts", strings.NewReader(`{"title":"t","content":"c"}`))
		r.Header.Set("Authorization", "Bearer invalid")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/posts", `{"content":"c"}`, &user)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/v1/posts", `{"title":"t","content":"c","status":"DRAFT"}`, &user)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)

		env.s.EXPECT().CreatePost(gomock.Any(), user, service.CreatePostParams{
			Title:      "t",
			Content:    "c",
			Categories: []string{"Tech"},
		}).Return(&entities.Post{
			ID:        5,
			Title:     "t",
			Content:   "c",
			Status:    entities.ActiveStatus,
			PublishAt: timestamp,
			AuthorID:  user.ID,
		}, nil)

		w := env.do(t, http.MethodPost, "/v1/posts", `{"title":"t","content":"c","categories":["Tech"]}`, &user)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{
			"id": 5,
			"title": "t",
			"content": "c",
			"status": "ACTIVE",
			"publishAt": "1970-01-01T00:01:40Z",
			"authorId": 1,
			"rating": 0,
			"isBookmarked": false,
			"isSubscribed": false
		}`, w.Body.String())
	})

	t.Run("unknown category", func(t *testing.T) {
		env := newTestEnv(t)

		env.s.EXPECT().CreatePost(gomock.Any(), user, gomock.Any()).
			Return(nil, fmt.Errorf("%w: category Unknown", service.ErrNotFound))

		w := env.do(t, http.MethodPost, "/v1/posts", `{"title":"t","content":"c","categories":["Unknown"]}`, &user)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message": "not found: category Unknown"}`, w.Body.String())
	})
}

func Test_updatePost(t *testing.T) {
	env := newTestEnv(t)

	title := "new"
	categories := []string{"Tech"}
	env.s.EXPECT().UpdatePost(gomock.Any(), admin, int64(3), service.UpdatePostParams{
		Title:      &title,
		Categories: &categories,
	}).Return(&entities.Post{ID: 3, Title: title}, nil)

	w := env.do(t, http.MethodPatch, "/v1/posts/3", `{"title":"new","categories":["Tech"]}`, &admin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_deletePost(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().DeletePost(gomock.Any(), user, int64(3)).Return(fmt.Errorf("%w: not an author", service.ErrForbidden))
	w := env.do(t, http.MethodDelete, "/v1/posts/3", "", &user)
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.s.EXPECT().DeletePost(gomock.Any(), admin, int64(3)).Return(nil)
	w = env.do(t, http.MethodDelete, "/v1/posts/3", "", &admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func Test_likePost(t *testing.T) {
	tt := []struct {
		name    string
		body    string
		prepare func(env testEnv)
		code    int
	}{
		{
			name: "like",
			body: `{"type":"LIKE"}`,
			prepare: func(env testEnv) {
				env.s.EXPECT().CreateLike(gomock.Any(), user, entities.PostTarget(7), entities.LikeReaction).
					Return(&entities.Like{ID: 1, Type: entities.LikeReaction, AuthorID: user.ID, Target: entities.PostTarget(7)}, nil)
			},
			code: http.StatusCreated,
		},
		{
			name: "second reaction",
			body: `{"type":"DISLIKE"}`,
			prepare: func(env testEnv) {
				env.s.EXPECT().CreateLike(gomock.Any(), user, entities.PostTarget(7), entities.DislikeReaction).
					Return(nil, fmt.Errorf("%w: already reacted", service.ErrConflict))
			},
			code: http.StatusConflict,
		},
		{
			name:    "unknown type",
			body:    `{"type":"LOVE"}`,
			prepare: func(env testEnv) {},
			code:    http.StatusBadRequest,
		},
		{
			name:    "malformed body",
			body:    `{"type":`,
			prepare: func(env testEnv) {},
			code:    http.StatusBadRequest,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			tc.prepare(env)

			w := env.do(t, http.MethodPost, "/v1/posts/7/like", tc.body, &user)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func Test_likeComment(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().CreateLike(gomock.Any(), user, entities.CommentTarget(4), entities.LikeReaction).Return(&entities.Like{
		ID:        2,
		Type:      entities.LikeReaction,
		AuthorID:  user.ID,
		Target:    entities.CommentTarget(4),
		CreatedAt: timestamp,
	}, nil)

	w := env.do(t, http.MethodPost, "/v1/comments/4/like", `{"type":"LIKE"}`, &user)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"id": 2,
		"type": "LIKE",
		"authorId": 1,
		"commentId": 4,
		"createdAt": "1970-01-01T00:01:40Z"
	}`, w.Body.String())

	env.s.EXPECT().DeleteLike(gomock.Any(), user, entities.CommentTarget(4)).Return(nil)
	w = env.do(t, http.MethodDelete, "/v1/comments/4/like", "", &user)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func Test_favorite(t *testing.T) {
	env := newTestEnv(t)

	post := &entities.Post{ID: 9, Title: "t", Status: entities.ActiveStatus, PublishAt: timestamp, AuthorID: admin.ID}

	env.s.EXPECT().AddFavorite(gomock.Any(), user, int64(9)).Return(&entities.Favorite{
		UserID: user.ID,
		PostID: 9,
		AddAt:  timestamp,
		Post:   post,
	}, nil)
	w := env.do(t, http.MethodPost, "/v1/posts/9/favorite", "", &user)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"userId": 1,
		"postId": 9,
		"addAt": "1970-01-01T00:01:40Z",
		"post": {
			"id": 9,
			"title": "t",
			"content": "",
			"status": "ACTIVE",
			"publishAt": "1970-01-01T00:01:40Z",
			"authorId": 2,
			"rating": 0,
			"isBookmarked": false,
			"isSubscribed": false
		}
	}`, w.Body.String())

	env.s.EXPECT().AddFavorite(gomock.Any(), user, int64(9)).Return(nil, fmt.Errorf("%w: favorite", service.ErrConflict))
	w = env.do(t, http.MethodPost, "/v1/posts/9/favorite", "", &user)
	assert.Equal(t, http.StatusConflict, w.Code)

	env.s.EXPECT().RemoveFavorite(gomock.Any(), user, int64(9)).Return(nil)
	w = env.do(t, http.MethodDelete, "/v1/posts/9/favorite", "", &user)
	assert.Equal(t, http.StatusNoContent, w.Code)

	env.s.EXPECT().RemoveFavorite(gomock.Any(), user, int64(9)).Return(fmt.Errorf("%w: favorite", service.ErrNotFound))
	w = env.do(t, http.MethodDelete, "/v1/posts/9/favorite", "", &user)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_subscribe_InactivePost(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().Subscribe(gomock.Any(), user, int64(9)).Return(nil, fmt.Errorf("%w: post is inactive", service.ErrBadRequest))

	w := env.do(t, http.MethodPost, "/v1/posts/9/subscribe", "", &user)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_listFavoritePosts(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/v1/users/me/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.s.EXPECT().ListFavoritePosts(gomock.Any(), user, gomock.Any()).Return([]*entities.Post{}, query.Page{Page: 1, Limit: 10}, nil)
	w = env.do(t, http.MethodGet, "/v1/users/me/favorites", "", &user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"items": [],
		"totalCount": 0,
		"page": 1,
		"limit": 10,
		"totalPages": 0,
		"nextPage": null,
		"previousPage": null
	}`, w.Body.String())
}

func Test_getPostComments(t *testing.T) {
	env := newTestEnv(t)

	prev := 1
	env.s.EXPECT().GetPostComments(gomock.Any(), entities.Actor{}, int64(1), query.NewPagination(2, 5)).Return([]*entities.Comment{
		{ID: 3, Content: "c", AuthorID: 2, PostID: 1, Rating: 4, CreatedAt: timestamp},
	}, query.Page{TotalCount: 6, Page: 2, Limit: 5, TotalPages: 2, PreviousPage: &prev}, nil)

	w := env.do(t, http.MethodGet, "/v1/posts/1/comments?page=2&limit=5", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"items": [
			{"id": 3, "content": "c", "authorId": 2, "postId": 1, "rating": 4, "createdAt": "1970-01-01T00:01:40Z"}
		],
		"totalCount": 6,
		"page": 2,
		"limit": 5,
		"totalPages": 2,
		"nextPage": null,
		"previousPage": 1
	}`, w.Body.String())
}

func Test_getPostLikes_Inactive(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().GetPostLikes(gomock.Any(), user, int64(1)).
		Return(nil, fmt.Errorf("%w: post is inactive", service.ErrForbidden))

	w := env.do(t, http.MethodGet, "/v1/posts/1/like", "", &user)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_createCategory(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().CreateCategory(gomock.Any(), admin, &entities.Category{Title: "Tech"}).
		Return(nil, fmt.Errorf("%w: category Tech already exists", service.ErrConflict))

	w := env.do(t, http.MethodPost, "/v1/categories", `{"title":"Tech"}`, &admin)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func Test_listUsers(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().ListUsers(gomock.Any(), query.NewPagination(1, 10), query.Sorting{By: query.LoginField, Order: query.DescendingOrder}).
		Return([]*entities.User{
			{ID: 1, Login: "gopher", Email: "gopher@mail.com", PasswordHash: "hash", Role: entities.UserRole, IsConfirmed: true, CreatedAt: timestamp},
		}, query.Page{TotalCount: 1, Page: 1, Limit: 10, TotalPages: 1}, nil)

	w := env.do(t, http.MethodGet, "/v1/users?sortBy=login", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")

	w = env.do(t, http.MethodGet, "/v1/users?sortBy=title", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_writeServiceError(t *testing.T) {
	tt := []struct {
		err  error
		code int
	}{
		{err: service.ErrNotFound, code: http.StatusNotFound},
		{err: fmt.Errorf("%w: dup", service.ErrConflict), code: http.StatusConflict},
		{err: service.ErrForbidden, code: http.StatusForbidden},
		{err: service.ErrBadRequest, code: http.StatusBadRequest},
		{err: errInvalidRequest, code: http.StatusBadRequest},
		{err: service.ErrUnauthorized, code: http.StatusUnauthorized},
		{err: fmt.Errorf("something"), code: http.StatusInternalServerError},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(context.Background(), w, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/service"
	storageinterface "github.com/Decentr-net/agora/internal/storage"
	storage "github.com/Decentr-net/agora/internal/storage/mock"
)

func TestSrv_CreateLike(t *testing.T) {
	post, comment := entities.PostTarget(10), entities.CommentTarget(20)

	tt := []struct {
		name    string
		target  entities.Target
		t       entities.LikeType
		prepare func(s *storage.MockStorage)
		err     error
	}{
		{
			name:   "like post",
			target: post,
			t:      entities.LikeReaction,
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockPost(gomock.Any(), int64(10)).Return(&entities.Post{ID: 10, AuthorID: 2}, nil)
				s.EXPECT().GetLike(gomock.Any(), user.ID, post).Return(nil, storageinterface.ErrNotFound)
				s.EXPECT().CreateLike(gomock.Any(), &entities.Like{
					Type: entities.LikeReaction, AuthorID: user.ID, Target: post, CreatedAt: testNow,
				}).Return(&entities.Like{ID: 1, Type: entities.LikeReaction}, nil)
				s.EXPECT().AdjustPostRating(gomock.Any(), int64(10), 1).Return(nil)
				s.EXPECT().AdjustUserCounters(gomock.Any(), int64(2), storageinterface.UserCounters{
					Rating: 1, Reactions: 1,
				}).Return(nil)
			},
		},
		{
			name:   "dislike comment",
			target: comment,
			t:      entities.DislikeReaction,
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockComment(gomock.Any(), int64(20)).Return(&entities.Comment{ID: 20, AuthorID: 3}, nil)
				s.EXPECT().GetLike(gomock.Any(), user.ID, comment).Return(nil, storageinterface.ErrNotFound)
				s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).Return(&entities.Like{ID: 1, Type: entities.DislikeReaction}, nil)
				s.EXPECT().AdjustCommentRating(gomock.Any(), int64(20), -1).Return(nil)
				s.EXPECT().AdjustUserCounters(gomock.Any(), int64(3), storageinterface.UserCounters{
					Rating: -1, Reactions: 1,
				}).Return(nil)
			},
		},
		{
			name:   "already reacted",
			target: post,
			t:      entities.DislikeReaction,
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockPost(gomock.Any(), int64(10)).Return(&entities.Post{ID: 10, AuthorID: 2}, nil)
				s.EXPECT().GetLike(gomock.Any(), user.ID, post).Return(&entities.Like{ID: 1, Type: entities.LikeReaction}, nil)
			},
			err: service.ErrConflict,
		},
		{
			name:   "unique violation",
			target: post,
			t:      entities.LikeReaction,
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockPost(gomock.Any(), int64(10)).Return(&entities.Post{ID: 10, AuthorID: 2}, nil)
				s.EXPECT().GetLike(gomock.Any(), user.ID, post).Return(nil, storageinterface.ErrNotFound)
				s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).Return(nil, storageinterface.ErrAlreadyExists)
			},
			err: service.ErrConflict,
		},
		{
			name:   "post not found",
			target: post,
			t:      entities.LikeReaction,
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockPost(gomock.Any(), int64(10)).Return(nil, storageinterface.ErrNotFound)
			},
			err: service.ErrNotFound,
		},
		{
			name:    "invalid type",
			target:  post,
			t:       "LOVE",
			prepare: func(s *storage.MockStorage) {},
			err:     service.ErrBadRequest,
		},
		{
			name:    "no target",
			t:       entities.LikeReaction,
			prepare: func(s *storage.MockStorage) {},
			err:     service.ErrBadRequest,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			tc.prepare(env.s)

			like, err := env.srv.CreateLike(context.Background(), user, tc.target, tc.t)
			if tc.err != nil {
				require.True(t, errors.Is(err, tc.err), err)
				require.Nil(t, like)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.t, like.Type)
		})
	}
}

func TestSrv_DeleteLike(t *testing.T) {
	post := entities.PostTarget(10)

	tt := []struct {
		name    string
		prepare func(s *storage.MockStorage)
		err     error
	}{
		{
			name: "reverts dislike",
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockPost(gomock.Any(), int64(10)).Return(&entities.Post{ID: 10, AuthorID: 2}, nil)
				s.EXPECT().GetLike(gomock.Any(), user.ID, post).Return(&entities.Like{
					ID: 7, Type: entities.DislikeReaction, AuthorID: user.ID, Target: post,
				}, nil)
				s.EXPECT().DeleteLike(gomock.Any(), int64(7)).Return(nil)
				s.EXPECT().AdjustPostRating(gomock.Any(), int64(10), 1).Return(nil)
				s.EXPECT().AdjustUserCounters(gomock.Any(), int64(2), storageinterface.UserCounters{
					Rating: 1, Reactions: -1,
				}).Return(nil)
			},
		},
		{
			name: "not found",
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockPost(gomock.Any(), int64(10)).Return(&entities.Post{ID: 10, AuthorID: 2}, nil)
				s.EXPECT().GetLike(gomock.Any(), user.ID, post).Return(nil, storageinterface.ErrNotFound)
			},
			err: service.ErrNotFound,
		},
		{
			name: "storage error",
			prepare: func(s *storage.MockStorage) {
				s.EXPECT().LockPost(gomock.Any(), int64(10)).Return(nil, context.DeadlineExceeded)
			},
			err: context.DeadlineExceeded,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			tc.prepare(env.s)

			err := env.srv.DeleteLike(context.Background(), user, post)
			if tc.err != nil {
				require.True(t, errors.Is(err, tc.err), err)
				return
			}

			require.NoError(t, err)
		})
	}
}

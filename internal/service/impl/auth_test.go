package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/notification"
	"github.com/Decentr-net/agora/internal/service"
	storageinterface "github.com/Decentr-net/agora/internal/storage"
	"github.com/Decentr-net/agora/internal/token"
)

func mustHash(t *testing.T, password string) string {
	h, err := hashPassword(password)
	require.NoError(t, err)
	return h
}

func TestSrv_Register(t *testing.T) {
	p := service.RegisterParams{
		Login:           "gopher",
		Email:           "gopher@mail.com",
		Fullname:        "Go Pher",
		Password:        "password",
		PasswordConfirm: "password",
	}

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)

		var confirmToken string
		env.s.EXPECT().GetUserByEmail(gomock.Any(), p.Email).Return(nil, storageinterface.ErrNotFound)
		env.s.EXPECT().GetUserByLogin(gomock.Any(), p.Login).Return(nil, storageinterface.ErrNotFound)
		env.s.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *entities.User) (*entities.User, error) {
				require.True(t, checkPassword(u.PasswordHash, p.Password))
				require.Equal(t, entities.UserRole, u.Role)
				require.False(t, u.IsConfirmed)
				require.NotNil(t, u.ConfirmToken)
				confirmToken = *u.ConfirmToken

				out := *u
				out.ID = 9
				return &out, nil
			},
		)
		env.pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e notification.Event) error {
				require.Equal(t, notification.UserRegistered, e.Type)
				require.Equal(t, confirmToken, e.Token)
				require.Equal(t, p.Email, e.Email)
				return nil
			},
		)

		u, err := env.srv.Register(context.Background(), p)
		require.NoError(t, err)
		require.Equal(t, int64(9), u.ID)
	})

	t.Run("email is taken", func(t *testing.T) {
		env := newTestEnv(t)

		env.s.EXPECT().GetUserByEmail(gomock.Any(), p.Email).Return(&entities.User{ID: 1}, nil)

		_, err := env.srv.Register(context.Background(), p)
		require.True(t, errors.Is(err, service.ErrConflict))
	})

	t.Run("passwords mismatch", func(t *testing.T) {
		env := newTestEnv(t)

		env.s.EXPECT().GetUserByEmail(gomock.Any(), p.Email).Return(nil, storageinterface.ErrNotFound)
		env.s.EXPECT().GetUserByLogin(gomock.Any(), p.Login).Return(nil, storageinterface.ErrNotFound)

		mismatch := p
		mismatch.PasswordConfirm = "other"
		_, err := env.srv.Register(context.Background(), mismatch)
		require.True(t, errors.Is(err, service.ErrBadRequest))
	})
}

func TestSrv_ConfirmEmail(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().GetUserByConfirmToken(gomock.Any(), "unknown").Return(nil, storageinterface.ErrNotFound)
	require.True(t, errors.Is(env.srv.ConfirmEmail(context.Background(), "unknown"), service.ErrBadRequest))

	confirmToken := "token"
	env.s.EXPECT().GetUserByConfirmToken(gomock.Any(), confirmToken).Return(&entities.User{ID: 1, ConfirmToken: &confirmToken}, nil)
	env.s.EXPECT().UpdateUser(gomock.Any(), &entities.User{ID: 1, IsConfirmed: true}).Return(nil)
	require.NoError(t, env.srv.ConfirmEmail(context.Background(), confirmToken))
}

func TestSrv_Login(t *testing.T) {
	hash := mustHash(t, "password")

	tt := []struct {
		name     string
		user     *entities.User
		getErr   error
		password string
		err      error
	}{
		{
			name:     "success",
			user:     &entities.User{ID: 1, Role: entities.AdminRole, PasswordHash: hash, IsConfirmed: true},
			password: "password",
		},
		{
			name:     "wrong password",
			user:     &entities.User{ID: 1, PasswordHash: hash, IsConfirmed: true},
			password: "wrong",
			err:      service.ErrUnauthorized,
		},
		{
			name:     "not confirmed",
			user:     &entities.User{ID: 1, PasswordHash: hash},
			password: "password",
			err:      service.ErrUnauthorized,
		},
		{
			name:     "unknown login",
			getErr:   storageinterface.ErrNotFound,
			password: "password",
			err:      service.ErrNotFound,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.s.EXPECT().GetUserByLogin(gomock.Any(), "gopher").Return(tc.user, tc.getErr)

			u, pair, err := env.srv.Login(context.Background(), "gopher", tc.password)
			if tc.err != nil {
				require.True(t, errors.Is(err, tc.err), err)
				require.Empty(t, pair.Access)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.user, u)

			claims, err := env.srv.tokens.Parse(pair.Access, token.AccessKind)
			require.NoError(t, err)
			actor, err := claims.Actor()
			require.NoError(t, err)
			require.Equal(t, entities.Actor{ID: 1, Role: entities.AdminRole}, actor)

			_, err = env.srv.tokens.Parse(pair.Refresh, token.RefreshKind)
			require.NoError(t, err)
		})
	}
}

func TestSrv_Refresh(t *testing.T) {
	env := newTestEnv(t)
	u := &entities.User{ID: 1, Role: entities.UserRole}

	pair, err := env.srv.tokens.IssuePair(u)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		env.s.EXPECT().GetUser(gomock.Any(), int64(1)).Return(u, nil)

		_, out, err := env.srv.Refresh(context.Background(), pair.Refresh)
		require.NoError(t, err)
		require.NotEmpty(t, out.Access)
		require.NotEmpty(t, out.Refresh)
	})

	t.Run("access token", func(t *testing.T) {
		_, _, err := env.srv.Refresh(context.Background(), pair.Access)
		require.True(t, errors.Is(err, service.ErrUnauthorized))
	})

	t.Run("deleted user", func(t *testing.T) {
		env.s.EXPECT().GetUser(gomock.Any(), int64(1)).Return(nil, storageinterface.ErrNotFound)

		_, _, err := env.srv.Refresh(context.Background(), pair.Refresh)
		require.True(t, errors.Is(err, service.ErrUnauthorized))
	})
}

func TestSrv_PasswordReset(t *testing.T) {
	env := newTestEnv(t)

	u := &entities.User{ID: 1, Email: "gopher@mail.com", PasswordHash: mustHash(t, "old"), IsConfirmed: true}

	var resetToken string
	env.s.EXPECT().GetUserByEmail(gomock.Any(), u.Email).Return(u, nil)
	env.s.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *entities.User) error {
		require.NotNil(t, u.ConfirmToken)
		resetToken = *u.ConfirmToken
		return nil
	})
	env.pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e notification.Event) error {
		require.Equal(t, notification.PasswordReset, e.Type)
		require.Equal(t, resetToken, e.Token)
		return nil
	})
	require.NoError(t, env.srv.RequestPasswordReset(context.Background(), u.Email))

	env.s.EXPECT().GetUserByConfirmToken(gomock.Any(), resetToken).Return(u, nil)
	env.s.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *entities.User) error {
		require.Nil(t, u.ConfirmToken)
		require.True(t, checkPassword(u.PasswordHash, "new"))
		return nil
	})
	require.NoError(t, env.srv.ResetPassword(context.Background(), resetToken, "new"))

	env.s.EXPECT().GetUserByConfirmToken(gomock.Any(), resetToken).Return(nil, storageinterface.ErrNotFound)
	require.True(t, errors.Is(env.srv.ResetPassword(context.Background(), resetToken, "new"), service.ErrUnauthorized))

	access, err := env.srv.tokens.Issue(u, token.AccessKind)
	require.NoError(t, err)
	require.True(t, errors.Is(env.srv.ResetPassword(context.Background(), access, "new"), service.ErrUnauthorized))
}

func TestSrv_RequestPasswordReset(t *testing.T) {
	env := newTestEnv(t)

	env.s.EXPECT().GetUserByEmail(gomock.Any(), "unknown@mail.com").Return(nil, storageinterface.ErrNotFound)
	require.True(t, errors.Is(env.srv.RequestPasswordReset(context.Background(), "unknown@mail.com"), service.ErrBadRequest))

	env.s.EXPECT().GetUserByEmail(gomock.Any(), "new@mail.com").Return(&entities.User{ID: 1}, nil)
	require.True(t, errors.Is(env.srv.RequestPasswordReset(context.Background(), "new@mail.com"), service.ErrForbidden))
}

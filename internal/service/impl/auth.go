package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/notification"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/storage"
	"github.com/Decentr-net/agora/internal/token"
)

// Register creates an unconfirmed user and sends the confirmation mail.
func (s srv) Register(ctx context.Context, p service.RegisterParams) (*entities.User, error) {
	if err := s.checkEmailFree(ctx, p.Email); err != nil {
		return nil, err
	}
	if err := s.checkLoginFree(ctx, p.Login); err != nil {
		return nil, err
	}

	if p.Password != p.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", service.ErrBadRequest)
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	confirmToken := uuid.NewString()

	u, err := s.s.CreateUser(ctx, &entities.User{
		Login:        p.Login,
		Email:        p.Email,
		Fullname:     p.Fullname,
		PasswordHash: hash,
		Role:         entities.UserRole,
		ConfirmToken: &confirmToken,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, wrapUserWriteError(err, "create")
	}

	s.publish(ctx, notification.Event{
		Type:    notification.UserRegistered,
		ActorID: u.ID,
		Email:   u.Email,
		Login:   u.Login,
		Token:   confirmToken,
	})

	return u, nil
}

func (s srv) ConfirmEmail(ctx context.Context, confirmToken string) error {
	u, err := s.s.GetUserByConfirmToken(ctx, confirmToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: invalid confirmation token", service.ErrBadRequest)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	u.IsConfirmed = true
	u.ConfirmToken = nil

	if err := s.s.UpdateUser(ctx, u); err != nil {
		return wrapUserWriteError(err, "update")
	}

	return nil
}

func (s srv) Login(ctx context.Context, login, password string) (*entities.User, token.Pair, error) {
	u, err := s.s.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, token.Pair{}, wrapGetError(err, "user")
	}

	if !u.IsConfirmed {
		return nil, token.Pair{}, fmt.Errorf("%w: email is not confirmed", service.ErrUnauthorized)
	}

	if !checkPassword(u.PasswordHash, password) {
		return nil, token.Pair{}, fmt.Errorf("%w: invalid password", service.ErrUnauthorized)
	}

	pair, err := s.tokens.IssuePair(u)
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return u, pair, nil
}

// Refresh reissues both tokens. The role is read from storage, so role changes apply on refresh.
func (s srv) Refresh(ctx context.Context, refreshToken string) (*entities.User, token.Pair, error) {
	claims, err := s.tokens.Parse(refreshToken, token.RefreshKind)
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("%w: %s", service.ErrUnauthorized, err.Error())
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("%w: %s", service.ErrUnauthorized, err.Error())
	}

	u, err := s.s.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, token.Pair{}, fmt.Errorf("%w: user doesn't exist", service.ErrUnauthorized)
		}
		return nil, token.Pair{}, fmt.Errorf("failed to get user: %w", err)
	}

	pair, err := s.tokens.IssuePair(u)
	if err != nil {
		return nil, token.Pair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return u, pair, nil
}

func (s srv) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: unknown email", service.ErrBadRequest)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !u.IsConfirmed {
		return fmt.Errorf("%w: email is not confirmed", service.ErrForbidden)
	}

	resetToken, err := s.tokens.Issue(u, token.ResetKind)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	u.ConfirmToken = &resetToken
	if err := s.s.UpdateUser(ctx, u); err != nil {
		return wrapUserWriteError(err, "update")
	}

	s.publish(ctx, notification.Event{
		Type:    notification.PasswordReset,
		ActorID: u.ID,
		Email:   u.Email,
		Login:   u.Login,
		Token:   resetToken,
	})

	return nil
}

// ResetPassword sets a new password. The token must be valid and still stored for its user.
func (s srv) ResetPassword(ctx context.Context, resetToken, password string) error {
	claims, err := s.tokens.Parse(resetToken, token.ResetKind)
	if err != nil {
		return fmt.Errorf("%w: %s", service.ErrUnauthorized, err.Error())
	}

	id, err := claims.UserID()
	if err != nil {
		return fmt.Errorf("%w: %s", service.ErrUnauthorized, err.Error())
	}

	u, err := s.s.GetUserByConfirmToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: reset token is already used", service.ErrUnauthorized)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if u.ID != id {
		return fmt.Errorf("%w: reset token doesn't belong to user", service.ErrUnauthorized)
	}

	if u.PasswordHash, err = hashPassword(password); err != nil {
		return err
	}
	u.ConfirmToken = nil

	if err := s.s.UpdateUser(ctx, u); err != nil {
		return wrapUserWriteError(err, "update")
	}

	return nil
}

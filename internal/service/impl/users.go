package impl

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/storage"
)

var bcryptCost = bcrypt.DefaultCost // nolint:gochecknoglobals

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// checkLoginFree returns ErrConflict when login is taken.
func (s srv) checkLoginFree(ctx context.Context, login string) error {
	switch _, err := s.s.GetUserByLogin(ctx, login); {
	case err == nil:
		return fmt.Errorf("%w: login %s is already taken", service.ErrConflict, login)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to get user: %w", err)
	}
}

// checkEmailFree returns ErrConflict when email is taken.
func (s srv) checkEmailFree(ctx context.Context, email string) error {
	switch _, err := s.s.GetUserByEmail(ctx, email); {
	case err == nil:
		return fmt.Errorf("%w: email %s is already taken", service.ErrConflict, email)
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to get user: %w", err)
	}
}

func wrapUserWriteError(err error, op string) error {
	switch {
	case errors.Is(err, storage.ErrAlreadyExists):
		return fmt.Errorf("%w: login or email is already taken", service.ErrConflict)
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: user", service.ErrNotFound)
	default:
		return fmt.Errorf("failed to %s user: %w", op, err)
	}
}

func (s srv) ListUsers(ctx context.Context, p query.Pagination, sorting query.Sorting) ([]*entities.User, query.Page, error) {
	users, total, err := s.s.ListUsers(ctx, &storage.ListUsersParams{
		Pagination: p,
		Sorting:    sorting,
	})
	if err != nil {
		return nil, query.Page{}, fmt.Errorf("failed to list users: %w", err)
	}

	return users, query.NewPage(total, p), nil
}

func (s srv) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	u, err := s.s.GetUser(ctx, id)
	if err != nil {
		return nil, wrapGetError(err, "user")
	}

	return u, nil
}

// CreateUser creates an already confirmed user on behalf of an administrator.
func (s srv) CreateUser(ctx context.Context, actor entities.Actor, p service.CreateUserParams) (*entities.User, error) {
	if err := s.allowed(actor, authz.User, authz.Create, false); err != nil {
		return nil, err
	}

	if p.Password != p.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", service.ErrBadRequest)
	}

	if p.Role == "" {
		p.Role = entities.UserRole
	}
	if !p.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %s", service.ErrBadRequest, p.Role)
	}

	if err := s.checkEmailFree(ctx, p.Email); err != nil {
		return nil, err
	}
	if err := s.checkLoginFree(ctx, p.Login); err != nil {
		return nil, err
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.s.CreateUser(ctx, &entities.User{
		Login:        p.Login,
		Email:        p.Email,
		Fullname:     p.Fullname,
		PasswordHash: hash,
		Role:         p.Role,
		IsConfirmed:  true,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, wrapUserWriteError(err, "create")
	}

	return u, nil
}

func (s srv) UpdateUser(ctx context.Context, actor entities.Actor, id int64, p service.UpdateUserParams) (*entities.User, error) {
	if err := s.allowed(actor, authz.User, authz.Update, id == actor.ID); err != nil {
		return nil, err
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Role != nil && *p.Role != u.Role {
		if err := s.allowed(actor, authz.User, authz.ChangeRole, false); err != nil {
			return nil, err
		}
		if !p.Role.Valid() {
			return nil, fmt.Errorf("%w: invalid role %s", service.ErrBadRequest, *p.Role)
		}
		u.Role = *p.Role
	}

	if p.Email != nil && *p.Email != u.Email {
		if err := s.checkEmailFree(ctx, *p.Email); err != nil {
			return nil, err
		}
		u.Email = *p.Email
	}

	if p.Login != nil && *p.Login != u.Login {
		if err := s.checkLoginFree(ctx, *p.Login); err != nil {
			return nil, err
		}
		u.Login = *p.Login
	}

	if p.Fullname != nil {
		u.Fullname = *p.Fullname
	}

	if p.Password != nil {
		if u.PasswordHash, err = hashPassword(*p.Password); err != nil {
			return nil, err
		}
	}

	if err := s.s.UpdateUser(ctx, u); err != nil {
		return nil, wrapUserWriteError(err, "update")
	}

	return u, nil
}

func (s srv) DeleteUser(ctx context.Context, actor entities.Actor, id int64) error {
	if err := s.allowed(actor, authz.User, authz.Delete, id == actor.ID); err != nil {
		return err
	}

	return s.s.InTx(ctx, func(tx storage.Storage) error {
		likes, err := tx.ListUserLikes(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list user likes: %w", err)
		}

		for _, l := range likes {
			if err := revertLike(ctx, tx, l, id); err != nil {
				return err
			}
		}

		if err := tx.DeleteUser(ctx, id); err != nil {
			return wrapGetError(err, "user")
		}

		return nil
	})
}

// revertLike reverts the delta of the like left by the removed user. Targets written by the removed user
// are skipped since they go away with the user.
func revertLike(ctx context.Context, tx storage.Storage, l *entities.Like, removedID int64) error {
	authorID, err := lockTarget(ctx, tx, l.Target)
	if err != nil {
		return err
	}

	if authorID == removedID {
		return nil
	}

	if err := adjustTargetRating(ctx, tx, l.Target, -l.Type.Delta()); err != nil {
		return err
	}

	if err := tx.AdjustUserCounters(ctx, authorID, storage.UserCounters{
		Rating:    -l.Type.Delta(),
		Reactions: -1,
	}); err != nil {
		return fmt.Errorf("failed to adjust author counters: %w", err)
	}

	return nil
}

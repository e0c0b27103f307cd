package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/storage"
)

const userColumns = `id, login, email, fullname, password, role, rating, posts_count, comments_count,
	reactions_count, is_confirmed, confirm_token, created_at`

type userDTO struct {
	ID             int64          `db:"id"`
	Login          string         `db:"login"`
	Email          string         `db:"email"`
	Fullname       string         `db:"fullname"`
	Password       string         `db:"password"`
	Role           string         `db:"role"`
	Rating         int            `db:"rating"`
	PostsCount     int            `db:"posts_count"`
	CommentsCount  int            `db:"comments_count"`
	ReactionsCount int            `db:"reactions_count"`
	IsConfirmed    bool           `db:"is_confirmed"`
	ConfirmToken   sql.NullString `db:"confirm_token"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (u userDTO) toEntity() *entities.User {
	out := entities.User{
		ID:             u.ID,
		Login:          u.Login,
		Email:          u.Email,
		Fullname:       u.Fullname,
		PasswordHash:   u.Password,
		Role:           entities.Role(u.Role),
		Rating:         u.Rating,
		PostsCount:     u.PostsCount,
		CommentsCount:  u.CommentsCount,
		ReactionsCount: u.ReactionsCount,
		IsConfirmed:    u.IsConfirmed,
		CreatedAt:      u.CreatedAt,
	}

	if u.ConfirmToken.Valid {
		v := u.ConfirmToken.String
		out.ConfirmToken = &v
	}

	return &out
}

func toUserDTO(u *entities.User) userDTO {
	out := userDTO{
		ID:          u.ID,
		Login:       u.Login,
		Email:       u.Email,
		Fullname:    u.Fullname,
		Password:    u.PasswordHash,
		Role:        string(u.Role),
		IsConfirmed: u.IsConfirmed,
		CreatedAt:   u.CreatedAt.UTC(),
	}

	if u.ConfirmToken != nil {
		out.ConfirmToken = sql.NullString{String: *u.ConfirmToken, Valid: true}
	}

	return out
}

func (s pg) CreateUser(ctx context.Context, u *entities.User) (*entities.User, error) {
	dto := toUserDTO(u)
	if dto.CreatedAt.IsZero() {
		dto.CreatedAt = time.Now().UTC()
	}

	q, args, err := sqlx.Named(`
			INSERT INTO "user"(login, email, fullname, password, role, is_confirmed, confirm_token, created_at)
			VALUES(:login, :email, :fullname, :password, :role, :is_confirmed, :confirm_token, :created_at)
			RETURNING `+userColumns, dto)
	if err != nil {
		return nil, fmt.Errorf("failed to bind named query: %w", err)
	}

	var out userDTO
	if err := sqlx.GetContext(ctx, s.ext, &out, s.ext.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", wrapError(err))
	}

	return out.toEntity(), nil
}

func (s pg) getUserBy(ctx context.Context, column string, v interface{}) (*entities.User, error) {
	var u userDTO

	if err := sqlx.GetContext(ctx, s.ext, &u,
		fmt.Sprintf(`SELECT %s FROM "user" WHERE %s = $1`, userColumns, column), v,
	); err != nil {
		return nil, wrapError(err)
	}

	return u.toEntity(), nil
}

func (s pg) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	return s.getUserBy(ctx, "id", id)
}

func (s pg) GetUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	return s.getUserBy(ctx, "login", login)
}

func (s pg) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getUserBy(ctx, "email", email)
}

func (s pg) GetUserByConfirmToken(ctx context.Context, token string) (*entities.User, error) {
	return s.getUserBy(ctx, "confirm_token", token)
}

var userSortColumns = map[query.Field]string{ // nolint:gochecknoglobals
	query.RatingField:     "rating",
	query.LoginField:      "login",
	query.CreatedAtField:  "created_at",
	query.PostsCountField: "posts_count",
}

func (s pg) ListUsers(ctx context.Context, p *storage.ListUsersParams) ([]*entities.User, int, error) {
	column, ok := userSortColumns[p.Sorting.By]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %s", p.Sorting.By)
	}

	var total int
	if err := sqlx.GetContext(ctx, s.ext, &total, `SELECT COUNT(*) FROM "user"`); err != nil {
		return nil, 0, fmt.Errorf("failed to count: %w", err)
	}

	var users []userDTO
	if err := sqlx.SelectContext(ctx, s.ext, &users, fmt.Sprintf(`
			SELECT %s FROM "user"
			ORDER BY %s %s, id ASC
			LIMIT $1 OFFSET $2
		`, userColumns, column, order(p.Sorting.Order)),
		p.Pagination.Limit, p.Pagination.Offset,
	); err != nil {
		return nil, 0, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.User, len(users))
	for i, v := range users {
		out[i] = v.toEntity()
	}

	return out, total, nil
}

func (s pg) UpdateUser(ctx context.Context, u *entities.User) error {
	res, err := sqlx.NamedExecContext(ctx, s.ext, `
			UPDATE "user" SET
				login=:login, email=:email, fullname=:fullname, password=:password, role=:role,
				is_confirmed=:is_confirmed, confirm_token=:confirm_token
			WHERE id=:id
		`, toUserDTO(u),
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", wrapError(err))
	}

	return checkAffected(res)
}

func (s pg) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM "user" WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) AdjustUserCounters(ctx context.Context, id int64, d storage.UserCounters) error {
	res, err := s.ext.ExecContext(ctx, `
			UPDATE "user" SET
				rating=rating+$2, posts_count=posts_count+$3,
				comments_count=comments_count+$4, reactions_count=reactions_count+$5
			WHERE id=$1
		`, id, d.Rating, d.Posts, d.Comments, d.Reactions,
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func order(o query.Order) string {
	if o == query.AscendingOrder {
		return "ASC"
	}
	return "DESC"
}

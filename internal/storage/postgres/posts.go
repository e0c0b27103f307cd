package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/storage"
)

const postColumns = `p.id, p.title, p.content, p.status, p.publish_at, p.author_id, p.rating`

type postDTO struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	Content      string    `db:"content"`
	Status       string    `db:"status"`
	PublishAt    time.Time `db:"publish_at"`
	AuthorID     int64     `db:"author_id"`
	Rating       int       `db:"rating"`
	IsBookmarked bool      `db:"is_bookmarked"`
	IsSubscribed bool      `db:"is_subscribed"`
}

func (p postDTO) toEntity() *entities.Post {
	return &entities.Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		Status:       entities.Status(p.Status),
		PublishAt:    p.PublishAt,
		AuthorID:     p.AuthorID,
		Rating:       p.Rating,
		IsBookmarked: p.IsBookmarked,
		IsSubscribed: p.IsSubscribed,
	}
}

// flagColumns returns is_bookmarked and is_subscribed columns for user referenced by placeholder.
func flagColumns(placeholder string) string {
	return fmt.Sprintf(`
		EXISTS(SELECT 1 FROM post_favorite f WHERE f.post_id = p.id AND f.user_id = %[1]s) AS is_bookmarked,
		EXISTS(SELECT 1 FROM post_subscribe s WHERE s.post_id = p.id AND s.user_id = %[1]s) AS is_subscribed`,
		placeholder,
	)
}

func (s pg) CreatePost(ctx context.Context, p *entities.Post) (*entities.Post, error) {
	var out postDTO

	if err := sqlx.GetContext(ctx, s.ext, &out, `
			INSERT INTO post AS p(title, content, status, publish_at, author_id)
			VALUES($1, $2, $3, $4, $5)
			RETURNING `+postColumns,
		p.Title, p.Content, string(p.Status), p.PublishAt.UTC(), p.AuthorID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", wrapError(err))
	}

	return out.toEntity(), nil
}

func (s pg) GetPost(ctx context.Context, id int64, requestedBy int64) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p,
		fmt.Sprintf(`SELECT %s, %s FROM post p WHERE p.id = $1`, postColumns, flagColumns("$2")),
		id, requestedBy,
	); err != nil {
		return nil, wrapError(err)
	}

	return p.toEntity(), nil
}

func (s pg) LockPost(ctx context.Context, id int64) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p,
		`SELECT `+postColumns+` FROM post p WHERE p.id = $1 FOR UPDATE`, id,
	); err != nil {
		return nil, wrapError(err)
	}

	return p.toEntity(), nil
}

var postSortColumns = map[query.Field]string{ // nolint:gochecknoglobals
	query.PublishAtField: "p.publish_at",
	query.RatingField:    "p.rating",
	query.TitleField:     "p.title",
	query.LikesField:     `(SELECT COUNT(*) FROM "like" l WHERE l.post_id = p.id AND l.type = 'LIKE')`,
}

func buildPostsWhere(p *storage.ListPostsParams) *where {
	w := &where{}

	if p.Status != nil {
		w.add("p.status = " + w.arg(string(*p.Status)))
	}

	if p.Title != nil {
		w.add(fmt.Sprintf("STRPOS(LOWER(p.title), LOWER(%s)) > 0", w.arg(*p.Title)))
	}

	if p.From != nil {
		w.add("p.publish_at >= " + w.arg(p.From.UTC()))
	}

	if p.To != nil {
		w.add("p.publish_at <= " + w.arg(p.To.UTC()))
	}

	if len(p.Categories) > 0 {
		w.add(fmt.Sprintf(`EXISTS(
			SELECT 1 FROM post_category pc JOIN category c ON c.id = pc.category_id
			WHERE pc.post_id = p.id AND c.title = ANY(%s))`, w.arg(pq.Array(p.Categories))))
	}

	if p.CategoryID != nil {
		w.add(fmt.Sprintf(`EXISTS(
			SELECT 1 FROM post_category pc WHERE pc.post_id = p.id AND pc.category_id = %s)`, w.arg(*p.CategoryID)))
	}

	if p.AuthorID != nil {
		w.add("p.author_id = " + w.arg(*p.AuthorID))
	}

	if p.FavoritedBy != nil {
		w.add(fmt.Sprintf(`EXISTS(
			SELECT 1 FROM post_favorite pf WHERE pf.post_id = p.id AND pf.user_id = %s)`, w.arg(*p.FavoritedBy)))
	}

	if p.SubscribedBy != nil {
		w.add(fmt.Sprintf(`EXISTS(
			SELECT 1 FROM post_subscribe ps WHERE ps.post_id = p.id AND ps.user_id = %s)`, w.arg(*p.SubscribedBy)))
	}

	return w
}

func (s pg) ListPosts(ctx context.Context, p *storage.ListPostsParams) ([]*entities.Post, int, error) {
	column, ok := postSortColumns[p.Sorting.By]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported sort field %s", p.Sorting.By)
	}

	w := buildPostsWhere(p)

	var total int
	if err := sqlx.GetContext(ctx, s.ext, &total,
		fmt.Sprintf(`SELECT COUNT(*) FROM post p %s`, w), w.args...,
	); err != nil {
		return nil, 0, fmt.Errorf("failed to count: %w", err)
	}

	requestedBy := w.arg(p.RequestedBy)
	limit := w.arg(p.Pagination.Limit)
	offset := w.arg(p.Pagination.Offset)

	var posts []postDTO
	if err := sqlx.SelectContext(ctx, s.ext, &posts, fmt.Sprintf(`
			SELECT %s, %s FROM post p
			%s
			ORDER BY %s %s, p.id DESC
			LIMIT %s OFFSET %s
		`, postColumns, flagColumns(requestedBy), w, column, order(p.Sorting.Order), limit, offset),
		w.args...,
	); err != nil {
		return nil, 0, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Post, len(posts))
	for i, v := range posts {
		out[i] = v.toEntity()
	}

	return out, total, nil
}

func (s pg) UpdatePost(ctx context.Context, p *entities.Post) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE post SET title=$2, content=$3, status=$4, publish_at=$5 WHERE id=$1`,
		p.ID, p.Title, p.Content, string(p.Status), p.PublishAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) DeletePost(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM post WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) AdjustPostRating(ctx context.Context, id int64, delta int) error {
	res, err := s.ext.ExecContext(ctx, `UPDATE post SET rating=rating+$2 WHERE id=$1`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return checkAffected(res)
}

func (s pg) ListSubscribers(ctx context.Context, postID int64) ([]*entities.User, error) {
	var users []userDTO

	if err := sqlx.SelectContext(ctx, s.ext, &users, `
			SELECT u.id, u.login, u.email, u.fullname, u.password, u.role, u.rating, u.posts_count,
				u.comments_count, u.reactions_count, u.is_confirmed, u.confirm_token, u.created_at
			FROM "user" u
			JOIN post_subscribe ps ON ps.user_id = u.id
			WHERE ps.post_id = $1
			ORDER BY ps.add_at
		`, postID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.User, len(users))
	for i, v := range users {
		out[i] = v.toEntity()
	}

	return out, nil
}

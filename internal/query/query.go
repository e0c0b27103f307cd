// Package query contains parsers of pagination, sorting and filtering query parameters.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Decentr-net/agora/internal/entities"
)

// ErrInvalidQuery is returned when query parameters can not be parsed.
var ErrInvalidQuery = errors.New("invalid query")

const (
	// DefaultPage ...
	DefaultPage = 1
	// DefaultSize ...
	DefaultSize = 10
	// MaxSize ...
	MaxSize = 20
)

// Pagination ...
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// NewPagination returns pagination for page and size. Both must be already validated.
func NewPagination(page, size int) Pagination {
	return Pagination{
		Page:   page,
		Limit:  size,
		Offset: (page - 1) * size,
	}
}

// ParsePagination parses `page` and `size` (or its alias `limit`) parameters.
func ParsePagination(q url.Values) (Pagination, error) {
	page, err := parsePositive(q, DefaultPage, "page")
	if err != nil {
		return Pagination{}, err
	}

	sizeKey := "size"
	if q.Get(sizeKey) == "" {
		sizeKey = "limit"
	}

	size, err := parsePositive(q, DefaultSize, sizeKey)
	if err != nil {
		return Pagination{}, err
	}

	if size > MaxSize {
		return Pagination{}, fmt.Errorf("%w: max size is %d", ErrInvalidQuery, MaxSize)
	}

	return NewPagination(page, size), nil
}

func parsePositive(q url.Values, def int, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to parse %s", ErrInvalidQuery, key)
	}

	if v < 1 {
		return 0, fmt.Errorf("%w: %s should be positive", ErrInvalidQuery, key)
	}

	return v, nil
}

// Page is a pagination metadata of a list response.
type Page struct {
	TotalCount   int
	Page         int
	Limit        int
	TotalPages   int
	NextPage     *int
	PreviousPage *int
}

// NewPage calculates page metadata from the total count of items.
func NewPage(totalCount int, p Pagination) Page {
	out := Page{
		TotalCount: totalCount,
		Page:       p.Page,
		Limit:      p.Limit,
	}

	if p.Limit > 0 {
		out.TotalPages = (totalCount + p.Limit - 1) / p.Limit
	}

	if p.Page < out.TotalPages {
		v := p.Page + 1
		out.NextPage = &v
	}

	if p.Page > 1 {
		v := p.Page - 1
		out.PreviousPage = &v
	}

	return out
}

// Field is a sortable field name as it is used in query.
type Field string

const (
	// PublishAtField ...
	PublishAtField Field = "publishAt"
	// RatingField ...
	RatingField Field = "rating"
	// TitleField ...
	TitleField Field = "title"
	// LikesField is a count of LIKE reactions.
	LikesField Field = "likes"
	// LoginField ...
	LoginField Field = "login"
	// CreatedAtField ...
	CreatedAtField Field = "createdAt"
	// PostsCountField ...
	PostsCountField Field = "postsCount"
)

// PostFields are fields posts can be sorted by.
var PostFields = []Field{PublishAtField, RatingField, TitleField, LikesField} // nolint:gochecknoglobals

// UserFields are fields users can be sorted by.
var UserFields = []Field{RatingField, LoginField, CreatedAtField, PostsCountField} // nolint:gochecknoglobals

// Order ...
type Order string

const (
	// AscendingOrder ...
	AscendingOrder Order = "asc"
	// DescendingOrder ...
	DescendingOrder Order = "desc"
)

// Sorting ...
type Sorting struct {
	By    Field
	Order Order
}

// DefaultSorting is rating descending.
func DefaultSorting() Sorting {
	return Sorting{By: RatingField, Order: DescendingOrder}
}

// ParseSorting parses `sortBy` and `order` parameters. sortBy should be one of allowed.
func ParseSorting(q url.Values, allowed ...Field) (Sorting, error) {
	order := Order(q.Get("order"))
	switch order {
	case "":
		order = DescendingOrder
	case AscendingOrder, DescendingOrder:
	default:
		return Sorting{}, fmt.Errorf("%w: invalid sort direction %s", ErrInvalidQuery, order)
	}

	sortBy := Field(q.Get("sortBy"))
	if sortBy == "" {
		return DefaultSorting(), nil
	}

	for _, v := range allowed {
		if v == sortBy {
			return Sorting{By: sortBy, Order: order}, nil
		}
	}

	names := make([]string, len(allowed))
	for i, v := range allowed {
		names[i] = string(v)
	}

	return Sorting{}, fmt.Errorf("%w: invalid sortBy value %s, allowed values are %s",
		ErrInvalidQuery, sortBy, strings.Join(names, ", "))
}

// DateRange is an inclusive publishing date range. Absent bounds are nil.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Filtering ...
type Filtering struct {
	Title    *string
	Status   *entities.Status
	Date     *DateRange
	Category []string
}

const dateLayout = "2006-01-02"

// ParseFiltering parses `title`, `status`, `date[start]`, `date[end]` and `category` parameters.
func ParseFiltering(q url.Values) (Filtering, error) {
	var out Filtering

	if s := q.Get("title"); s != "" {
		out.Title = &s
	}

	if s := q.Get("status"); s != "" {
		status := entities.Status(strings.ToUpper(s))
		if !status.Valid() {
			return Filtering{}, fmt.Errorf("%w: invalid status %s", ErrInvalidQuery, s)
		}
		out.Status = &status
	}

	start, err := parseDate(q.Get("date[start]"), false)
	if err != nil {
		return Filtering{}, fmt.Errorf("%w: invalid start date %s", ErrInvalidQuery, q.Get("date[start]"))
	}

	end, err := parseDate(q.Get("date[end]"), true)
	if err != nil {
		return Filtering{}, fmt.Errorf("%w: invalid end date %s", ErrInvalidQuery, q.Get("date[end]"))
	}

	if start != nil || end != nil {
		out.Date = &DateRange{Start: start, End: end}
	}

	for _, v := range q["category"] {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				out.Category = append(out.Category, c)
			}
		}
	}

	return out, nil
}

// parseDate parses RFC3339 timestamp or a date. A date used as an upper bound covers the whole day.
func parseDate(s string, upper bool) (*time.Time, error) {
	if s == "" {
		return nil, nil // nolint:nilnil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}

	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t, nil
}

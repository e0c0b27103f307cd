// Package token issues and validates signed JWTs for access, refresh and password reset flows.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Decentr-net/agora/internal/entities"
)

// ErrInvalidToken is returned when a token is malformed, expired, badly signed or of an unexpected kind.
var ErrInvalidToken = errors.New("invalid token")

// Kind ...
type Kind string

const (
	// AccessKind is a short-living token sent as a bearer.
	AccessKind Kind = "access"
	// RefreshKind is a long-living token stored in a cookie.
	RefreshKind Kind = "refresh"
	// ResetKind is a password reset token.
	ResetKind Kind = "reset"
)

// Claims ...
type Claims struct {
	Kind Kind          `json:"kind"`
	Role entities.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns subject of the token.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}
	return id, nil
}

// Actor ...
func (c Claims) Actor() (entities.Actor, error) {
	id, err := c.UserID()
	if err != nil {
		return entities.Actor{}, err
	}
	return entities.Actor{ID: id, Role: c.Role}, nil
}

// Pair is a couple of access and refresh tokens issued together.
type Pair struct {
	Access  string
	Refresh string
}

// Config ...
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
}

// Manager signs and parses tokens with HS256.
type Manager struct {
	secret []byte
	ttl    map[Kind]time.Duration
	now    func() time.Time
}

// NewManager creates new instance of Manager.
func NewManager(c Config) *Manager {
	return &Manager{
		secret: []byte(c.Secret),
		ttl: map[Kind]time.Duration{
			AccessKind:  c.AccessTTL,
			RefreshKind: c.RefreshTTL,
			ResetKind:   c.ResetTTL,
		},
		now: time.Now,
	}
}

// Issue signs a new token of the kind for the user.
func (m *Manager) Issue(u *entities.User, kind Kind) (string, error) {
	now := m.now()

	claims := Claims{
		Kind: kind,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl[kind])),
		},
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return s, nil
}

// IssuePair issues access and refresh tokens.
func (m *Manager) IssuePair(u *entities.User) (Pair, error) {
	access, err := m.Issue(u, AccessKind)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := m.Issue(u, RefreshKind)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

// Parse validates token s and checks it is of the kind.
func (m *Manager) Parse(s string, kind Kind) (*Claims, error) {
	var claims Claims

	t, err := jwt.ParseWithClaims(s, &claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	if !t.Valid || claims.Kind != kind {
		return nil, fmt.Errorf("%w: unexpected kind %s", ErrInvalidToken, claims.Kind)
	}

	return &claims, nil
}

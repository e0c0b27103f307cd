// Package server Agora
//
// The Agora is a forum service which provides access to posts, comments, reactions, categories and users.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
//     SecurityDefinitions:
//     bearer:
//       type: apiKey
//       name: Authorization
//       in: header
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/Decentr-net/agora/internal/service"
	"github.com/Decentr-net/agora/internal/token"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

const maxBodySize = 64 * 1024

const refreshCookieName = "refreshToken"

// Config ...
type Config struct {
	Timeout        time.Duration
	AllowedOrigins []string
	AuthRateLimit  int
	AuthRateWindow time.Duration
	RefreshTTL     time.Duration
	SecureCookie   bool
}

type server struct {
	s      service.Service
	tokens *token.Manager
	c      Config
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, tokens *token.Manager, r chi.Router, c Config) {
	origins := c.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(
		middleware.RequestID,
		loggerMiddleware,
		middleware.StripSlashes,
		cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.Recoverer,
		timeoutMiddleware(c.Timeout),
		bodyLimiterMiddleware(maxBodySize),
	)

	srv := server{
		s:      s,
		tokens: tokens,
		c:      c,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMiddleware(tokens))

		r.Route("/auth", func(r chi.Router) {
			if c.AuthRateLimit > 0 {
				r.Use(rateLimitMiddleware(c.AuthRateLimit, c.AuthRateWindow))
			}

			r.Post("/register", srv.register)
			r.Get("/register", srv.confirmEmail)
			r.Post("/login", srv.login)
			r.Post("/refresh", srv.refresh)
			r.Post("/logout", srv.logout)
			r.Post("/password-reset", srv.requestPasswordReset)
			r.Post("/password-reset/{token}", srv.resetPassword)
		})

		r.Get("/posts", srv.listPosts)
		r.Get("/posts/{id}", srv.getPost)
		r.Get("/posts/{id}/comments", srv.getPostComments)
		r.Get("/posts/{id}/categories", srv.getPostCategories)
		r.Get("/posts/{id}/like", srv.getPostLikes)

		r.Get("/comments/{id}", srv.getComment)
		r.Get("/comments/{id}/like", srv.getCommentLikes)

		r.Get("/categories", srv.listCategories)
		r.Get("/categories/{id}", srv.getCategory)
		r.Get("/categories/{id}/posts", srv.listCategoryPosts)

		r.Get("/users", srv.listUsers)
		r.Get("/users/{id}", srv.getUser)
		r.Get("/users/{id}/posts", srv.listUserPosts)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/posts", srv.createPost)
			r.Patch("/posts/{id}", srv.updatePost)
			r.Delete("/posts/{id}", srv.deletePost)
			r.Post("/posts/{id}/comments", srv.addComment)
			r.Post("/posts/{id}/like", srv.likePost)
			r.Delete("/posts/{id}/like", srv.unlikePost)
			r.Post("/posts/{id}/favorite", srv.addFavorite)
			r.Delete("/posts/{id}/favorite", srv.removeFavorite)
			r.Post("/posts/{id}/subscribe", srv.subscribe)
			r.Delete("/posts/{id}/subscribe", srv.unsubscribe)

			r.Patch("/comments/{id}", srv.updateComment)
			r.Delete("/comments/{id}", srv.deleteComment)
			r.Post("/comments/{id}/like", srv.likeComment)
			r.Delete("/comments/{id}/like", srv.unlikeComment)

			r.Post("/categories", srv.createCategory)
			r.Patch("/categories/{id}", srv.updateCategory)
			r.Delete("/categories/{id}", srv.deleteCategory)

			r.Get("/users/me/favorites", srv.listFavoritePosts)
			r.Get("/users/me/subscriptions", srv.listSubscribedPosts)

			r.Post("/users", srv.createUser)
			r.Patch("/users/{id}", srv.updateUser)
			r.Delete("/users/{id}", srv.deleteUser)
		})
	})
}

package server

import (
	"fmt"
	"net/http"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/service"
)

func (s server) listPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts Posts ListPosts
	//
	// Returns paginated posts. Non-admin callers see only ACTIVE posts.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: page
	//   in: query
	//   required: false
	//   default: 1
	//   minimum: 1
	// - name: size
	//   in: query
	//   required: false
	//   default: 10
	//   minimum: 1
	//   maximum: 20
	// - name: sortBy
	//   description: sets posts' field to be sorted by
	//   in: query
	//   required: false
	//   default: rating
	//   type: string
	//   enum: [publishAt, rating, title, likes]
	// - name: order
	//   in: query
	//   required: false
	//   default: desc
	//   type: string
	//   enum: [asc, desc]
	// - name: title
	//   description: case-insensitive substring of title
	//   in: query
	//   required: false
	// - name: status
	//   description: filters posts by status, admin only
	//   in: query
	//   required: false
	//   enum: [ACTIVE, INACTIVE]
	// - name: date[start]
	//   in: query
	//   required: false
	//   example: 2024-01-01
	// - name: date[end]
	//   in: query
	//   required: false
	//   example: 2024-01-31
	// - name: category
	//   description: category titles, comma separated or repeated
	//   in: query
	//   required: false
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       "$ref": "#/definitions/ListResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"
	p, err := getListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, page, err := s.s.ListPosts(r.Context(), getActor(r), p)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, newListResponse(toAPIPosts(posts), page))
}

func (s server) listUserPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users/{id}/posts Users ListUserPosts
	//
	// Returns paginated posts of the user. Accepts the same query as ListPosts.
	//
	// ---
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/ListResponse"
	//   '404':
	//     description: user not found
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := getListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, page, err := s.s.ListUserPosts(r.Context(), getActor(r), id, p)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, newListResponse(toAPIPosts(posts), page))
}

func (s server) listFavoritePosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users/me/favorites Users ListFavoritePosts
	//
	// Returns posts bookmarked by the caller.
	//
	// ---
	// security:
	// - bearer: []
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/ListResponse"
	//   '401':
	//     description: unauthorized
	p, err := getListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, page, err := s.s.ListFavoritePosts(r.Context(), getActor(r), p)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, newListResponse(toAPIPosts(posts), page))
}

func (s server) listSubscribedPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users/me/subscriptions Users ListSubscribedPosts
	//
	// Returns posts the caller is subscribed to.
	//
	// ---
	// security:
	// - bearer: []
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/ListResponse"
	//   '401':
	//     description: unauthorized
	p, err := getListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, page, err := s.s.ListSubscribedPosts(r.Context(), getActor(r), p)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, newListResponse(toAPIPosts(posts), page))
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id} Posts GetPost
	//
	// Returns the post. INACTIVE posts are available for admins only.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '403':
	//     description: post is inactive
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.GetPost(r.Context(), getActor(r), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p))
}

func (s server) getPostComments(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id}/comments Posts GetPostComments
	//
	// Returns paginated comments of the post sorted by rating.
	//
	// ---
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/ListResponse"
	//   '403':
	//     description: post is inactive
	//   '404':
	//     description: post not found
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pagination, err := query.ParsePagination(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, page, err := s.s.GetPostComments(r.Context(), getActor(r), id, pagination)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, newListResponse(toAPIComments(comments), page))
}

func (s server) getPostCategories(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.s.GetPostCategories(r.Context(), getActor(r), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPICategories(c))
}

func (s server) getPostLikes(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := s.s.GetPostLikes(r.Context(), getActor(r), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPILikes(l))
}

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts Posts CreatePost
	//
	// Creates a post. Status is ACTIVE when omitted.
	//
	// ---
	// security:
	// - bearer: []
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreatePostRequest"
	// responses:
	//   '201':
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '400':
	//     description: bad request
	//   '404':
	//     description: category not found
	var req CreatePostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.CreatePost(r.Context(), getActor(r), service.CreatePostParams{
		Title:      req.Title,
		Content:    req.Content,
		Status:     toStatus(req.Status),
		PublishAt:  req.PublishAt,
		Categories: req.Categories,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPIPost(p))
}

func (s server) updatePost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation PATCH /posts/{id} Posts UpdatePost
	//
	// Updates the post. Categories, when set, replace the existing ones.
	//
	// ---
	// security:
	// - bearer: []
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/UpdatePostRequest"
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '403':
	//     description: caller is neither the author nor an admin
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdatePostRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.s.UpdatePost(r.Context(), getActor(r), id, service.UpdatePostParams{
		Title:      req.Title,
		Content:    req.Content,
		Status:     toStatus(req.Status),
		PublishAt:  req.PublishAt,
		Categories: req.Categories,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p))
}

func (s server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.DeletePost(r.Context(), getActor(r), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeNoContent(w)
}

func (s server) addComment(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{id}/comments Posts AddComment
	//
	// Adds a comment to the post. Subscribers of the post are notified.
	//
	// ---
	// security:
	// - bearer: []
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CommentRequest"
	// responses:
	//   '201':
	//     schema:
	//       "$ref": "#/definitions/Comment"
	//   '404':
	//     description: post not found
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req CommentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.s.AddComment(r.Context(), getActor(r), id, req.Content)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPIComment(c))
}

func (s server) likePost(w http.ResponseWriter, r *http.Request) {
	s.like(w, r, entities.PostTarget)
}

func (s server) unlikePost(w http.ResponseWriter, r *http.Request) {
	s.unlike(w, r, entities.PostTarget)
}

func (s server) addFavorite(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{id}/favorite Posts AddFavorite
	//
	// Bookmarks the post.
	//
	// ---
	// security:
	// - bearer: []
	// responses:
	//   '201':
	//     schema:
	//       "$ref": "#/definitions/Favorite"
	//   '400':
	//     description: post is inactive
	//   '409':
	//     description: post is already bookmarked
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.s.AddFavorite(r.Context(), getActor(r), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, Favorite{
		UserID: f.UserID,
		PostID: f.PostID,
		AddAt:  f.AddAt,
		Post:   toAPIPost(f.Post),
	})
}

func (s server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.RemoveFavorite(r.Context(), getActor(r), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeNoContent(w)
}

func (s server) subscribe(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{id}/subscribe Posts Subscribe
	//
	// Subscribes the caller to notifications about the post.
	//
	// ---
	// security:
	// - bearer: []
	// responses:
	//   '201':
	//     schema:
	//       "$ref": "#/definitions/Subscription"
	//   '400':
	//     description: post is inactive
	//   '409':
	//     description: already subscribed
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := s.s.Subscribe(r.Context(), getActor(r), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, Subscription{
		UserID: sub.UserID,
		PostID: sub.PostID,
		AddAt:  sub.AddAt,
		Post:   toAPIPost(sub.Post),
	})
}

func (s server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.Unsubscribe(r.Context(), getActor(r), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeNoContent(w)
}

// like is shared by posts and comments.
func (s server) like(w http.ResponseWriter, r *http.Request, target func(int64) entities.Target) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req LikeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := s.s.CreateLike(r.Context(), getActor(r), target(id), entities.LikeType(req.Type))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPILike(l))
}

func (s server) unlike(w http.ResponseWriter, r *http.Request, target func(int64) entities.Target) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.DeleteLike(r.Context(), getActor(r), target(id)); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeNoContent(w)
}

func getListParams(r *http.Request) (service.ListParams, error) {
	q := r.URL.Query()

	pagination, err := query.ParsePagination(q)
	if err != nil {
		return service.ListParams{}, fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	sorting, err := query.ParseSorting(q, query.PostFields...)
	if err != nil {
		return service.ListParams{}, fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	filtering, err := query.ParseFiltering(q)
	if err != nil {
		return service.ListParams{}, fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	return service.ListParams{
		Pagination: pagination,
		Sorting:    sorting,
		Filtering:  filtering,
	}, nil
}

func toStatus(s *string) *entities.Status {
	if s == nil {
		return nil
	}
	v := entities.Status(*s)
	return &v
}

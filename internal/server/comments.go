package server

import (
	"net/http"

	"github.com/Decentr-net/agora/internal/entities"
)

func (s server) getComment(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /comments/{id} Comments GetComment
	//
	// Returns the comment.
	//
	// ---
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/Comment"
	//   '404':
	//     description: comment not found
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.s.GetComment(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIComment(c))
}

func (s server) getCommentLikes(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := s.s.GetCommentLikes(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPILikes(l))
}

func (s server) updateComment(w http.ResponseWriter, r *http.Request) {
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

	c, err := s.s.UpdateComment(r.Context(), getActor(r), id, req.Content)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIComment(c))
}

func (s server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.DeleteComment(r.Context(), getActor(r), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeNoContent(w)
}

func (s server) likeComment(w http.ResponseWriter, r *http.Request) {
	s.like(w, r, entities.CommentTarget)
}

func (s server) unlikeComment(w http.ResponseWriter, r *http.Request) {
	s.unlike(w, r, entities.CommentTarget)
}

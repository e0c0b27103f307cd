package server

import (
	"net/http"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/service"
)

func (s server) listCategories(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /categories Categories ListCategories
	//
	// Returns all categories.
	//
	// ---
	// responses:
	//   '200':
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Category"
	c, err := s.s.ListCategories(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPICategories(c))
}

func (s server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.s.GetCategory(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPICategory(c))
}

func (s server) listCategoryPosts(w http.ResponseWriter, r *http.Request) {
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

	posts, page, err := s.s.ListCategoryPosts(r.Context(), getActor(r), id, p)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, newListResponse(toAPIPosts(posts), page))
}

func (s server) createCategory(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /categories Categories CreateCategory
	//
	// Creates a category. Admin only.
	//
	// ---
	// security:
	// - bearer: []
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreateCategoryRequest"
	// responses:
	//   '201':
	//     schema:
	//       "$ref": "#/definitions/Category"
	//   '403':
	//     description: caller is not an admin
	//   '409':
	//     description: title is taken
	var req CreateCategoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.s.CreateCategory(r.Context(), getActor(r), &entities.Category{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPICategory(c))
}

func (s server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateCategoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.s.UpdateCategory(r.Context(), getActor(r), id, service.UpdateCategoryParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPICategory(c))
}

func (s server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.DeleteCategory(r.Context(), getActor(r), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeNoContent(w)
}

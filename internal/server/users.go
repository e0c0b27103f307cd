package server

import (
	"net/http"

	"github.com/Decentr-net/agora/internal/entities"
	"github.com/Decentr-net/agora/internal/query"
	"github.com/Decentr-net/agora/internal/service"
)

func (s server) listUsers(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users Users ListUsers
	//
	// Returns paginated users.
	//
	// ---
	// parameters:
	// - name: sortBy
	//   in: query
	//   required: false
	//   default: rating
	//   type: string
	//   enum: [rating, login, createdAt, postsCount]
	// - name: order
	//   in: query
	//   required: false
	//   default: desc
	//   type: string
	//   enum: [asc, desc]
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/ListResponse"
	q := r.URL.Query()

	pagination, err := query.ParsePagination(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sorting, err := query.ParseSorting(q, query.UserFields...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, page, err := s.s.ListUsers(r.Context(), pagination, sorting)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, newListResponse(toAPIUsers(users), page))
}

func (s server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.s.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIUser(u))
}

func (s server) createUser(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /users Users CreateUser
	//
	// Creates a confirmed user. Admin only.
	//
	// ---
	// security:
	// - bearer: []
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreateUserRequest"
	// responses:
	//   '201':
	//     schema:
	//       "$ref": "#/definitions/User"
	//   '403':
	//     description: caller is not an admin
	//   '409':
	//     description: login or email is taken
	var req CreateUserRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.s.CreateUser(r.Context(), getActor(r), service.CreateUserParams{
		Login:           req.Login,
		Email:           req.Email,
		Fullname:        req.Fullname,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            entities.Role(req.Role),
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPIUser(u))
}

func (s server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateUserRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var role *entities.Role
	if req.Role != nil {
		v := entities.Role(*req.Role)
		role = &v
	}

	u, err := s.s.UpdateUser(r.Context(), getActor(r), id, service.UpdateUserParams{
		Login:    req.Login,
		Email:    req.Email,
		Fullname: req.Fullname,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, toAPIUser(u))
}

func (s server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.DeleteUser(r.Context(), getActor(r), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeNoContent(w)
}

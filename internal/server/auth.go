package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/Decentr-net/agora/internal/service"
)

func (s server) register(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /auth/register Auth Register
	//
	// Registers a user. A confirmation mail is sent to the email.
	//
	// ---
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/RegisterRequest"
	// responses:
	//   '201':
	//     schema:
	//       "$ref": "#/definitions/User"
	//   '400':
	//     description: passwords mismatch
	//   '409':
	//     description: login or email is taken
	var req RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.s.Register(r.Context(), service.RegisterParams{
		Login:           req.Login,
		Email:           req.Email,
		Fullname:        req.Fullname,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusCreated, toAPIUser(u))
}

func (s server) confirmEmail(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /auth/register Auth ConfirmEmail
	//
	// Confirms email by the token sent in the confirmation mail.
	//
	// ---
	// parameters:
	// - name: token
	//   in: query
	//   required: true
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/MessageResponse"
	//   '400':
	//     description: unknown token
	t := r.URL.Query().Get("token")
	if t == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := s.s.ConfirmEmail(r.Context(), t); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, MessageResponse{Message: "email confirmed"})
}

func (s server) login(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /auth/login Auth Login
	//
	// Authenticates the user. The refresh token is set to the http-only cookie.
	//
	// ---
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/LoginRequest"
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/LoginResponse"
	//   '401':
	//     description: invalid password or email is not confirmed
	//   '404':
	//     description: unknown login
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, pair, err := s.s.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	s.setRefreshCookie(w, pair.Refresh, s.c.RefreshTTL)
	writeOK(w, http.StatusOK, LoginResponse{User: *toAPIUser(u), AccessToken: pair.Access})
}

func (s server) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "refresh token is missing")
		return
	}

	u, pair, err := s.s.Refresh(r.Context(), c.Value)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	s.setRefreshCookie(w, pair.Refresh, s.c.RefreshTTL)
	writeOK(w, http.StatusOK, LoginResponse{User: *toAPIUser(u), AccessToken: pair.Access})
}

func (s server) logout(w http.ResponseWriter, _ *http.Request) {
	s.setRefreshCookie(w, "", -1)
	writeNoContent(w)
}

func (s server) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /auth/password-reset Auth RequestPasswordReset
	//
	// Sends a password reset link to the email.
	//
	// ---
	// parameters:
	// - name: request
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/PasswordResetRequest"
	// responses:
	//   '200':
	//     schema:
	//       "$ref": "#/definitions/MessageResponse"
	//   '400':
	//     description: unknown email
	//   '403':
	//     description: email is not confirmed
	var req PasswordResetRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, MessageResponse{Message: "password reset link is sent"})
}

func (s server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req NewPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.s.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeOK(w, http.StatusOK, MessageResponse{Message: "password is changed"})
}

// setRefreshCookie sets the refresh token cookie. Negative ttl removes it.
func (s server) setRefreshCookie(w http.ResponseWriter, v string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     refreshCookieName,
		Value:    v,
		Path:     "/v1/auth",
		HttpOnly: true,
		Secure:   s.c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl < 0 {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(ttl.Seconds())
	}

	http.SetCookie(w, c)
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/agora/internal/service"
)

var log = logrus.WithField("layer", "server").WithField("package", "server")

var errInvalidRequest = errors.New("invalid request")

// nolint:gochecknoglobals
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// writeOK writes v as json body with status.
func writeOK(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError writes {"message": s} with status.
func writeError(w http.ResponseWriter, status int, s string) {
	writeOK(w, status, Error{Message: s})
}

// writeInternalError logs the error with request id and hides details from the caller.
func writeInternalError(ctx context.Context, w http.ResponseWriter, err error) {
	log.WithField("request_id", middleware.GetReqID(ctx)).WithError(err).Error("internal error")
	writeError(w, http.StatusInternalServerError, "internal error")
}

// writeServiceError maps service errors to http statuses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBadRequest), errors.Is(err, errInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeInternalError(ctx, w, err)
	}
}

// decode reads json body into v and validates it.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid body: %s", errInvalidRequest, err.Error())
	}

	if err := getValidator().Struct(v); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) && len(verr) > 0 {
			f := verr[0]
			return fmt.Errorf("%w: field %s failed on %s", errInvalidRequest, f.Field(), f.Tag())
		}
		return fmt.Errorf("%w: %s", errInvalidRequest, err.Error())
	}

	return nil
}

func getID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", errInvalidRequest, key)
	}
	return id, nil
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/store"
)

// httpError carries an explicit status and client message.
type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var he *httpError
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &he):
		writeMsg(w, he.status, he.msg)
	case errors.As(err, &verrs):
		writeMsg(w, http.StatusBadRequest, validationMessage(verrs))
	case errors.Is(err, store.ErrNotFound):
		writeMsg(w, http.StatusNotFound, err.Error())
	case errors.Is(err, quiz.ErrEmptyMistakeBank):
		writeMsg(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict), errors.Is(err, quiz.ErrAlreadySubmitted):
		writeMsg(w, http.StatusConflict, err.Error())
	case errors.Is(err, quiz.ErrForbidden):
		writeMsg(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		writeMsg(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, quiz.ErrInvalidRequest), errors.Is(err, quiz.ErrNoText):
		writeMsg(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quiz.ErrLLMUnavailable):
		writeMsg(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("request failed", "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "error", err)
		writeMsg(w, http.StatusInternalServerError, "internal server error")
	}
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s is %s", fe.Field(), describeTag(fe)))
	}
	return strings.Join(parts, "; ")
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "not a valid email"
	case "url":
		return "not a valid URL"
	case "min":
		return "shorter than " + fe.Param()
	case "oneof":
		return "not one of " + fe.Param()
	}
	return "invalid (" + fe.Tag() + ")"
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return s.validate.Struct(v)
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

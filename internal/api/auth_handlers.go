package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/store"
)

type userJSON struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	PreferredDifficulty string    `json:"preferred_difficulty"`
	Subjects            []string  `json:"subjects"`
	IsAdmin             bool      `json:"is_admin"`
	Streak              int       `json:"streak"`
	LastQuizDate        string    `json:"last_quiz_date,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func toUserJSON(u *store.User) userJSON {
	subjects := u.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return userJSON{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		PreferredDifficulty: u.PreferredDifficulty,
		Subjects:            subjects,
		IsAdmin:             u.IsAdmin,
		Streak:              u.Streak,
		LastQuizDate:        u.LastQuizDate,
		CreatedAt:           u.CreatedAt,
	}
}

type tokenJSON struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userJSON `json:"user"`
}

type registerRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Name     string   `json:"name" validate:"required"`
	Subjects []string `json:"subjects"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	hash, err := auth.HashPassword(req.Password, s.opts.BcryptCost)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u := &store.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Subjects:     req.Subjects,
	}
	if err := s.deps.Store.Users().Create(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeMsg(w, http.StatusConflict, "email already registered")
			return
		}
		writeError(w, r, err)
		return
	}
	s.writeToken(w, r, http.StatusCreated, u)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := s.deps.Store.Users().GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, auth.ErrInvalidCredentials)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	s.writeToken(w, r, http.StatusOK, u)
}

func (s *Server) writeToken(w http.ResponseWriter, r *http.Request, status int, u *store.User) {
	tok, err := s.deps.Auth.Issue(u.ID, u.IsAdmin)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, tokenJSON{AccessToken: tok, TokenType: "bearer", User: toUserJSON(u)})
}

func (s *Server) currentUser(r *http.Request) (*store.User, error) {
	return s.deps.Store.Users().Get(r.Context(), auth.SubjectFromContext(r.Context()))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

type profileRequest struct {
	Name                *string  `json:"name" validate:"omitempty,min=1"`
	PreferredDifficulty *string  `json:"preferred_difficulty" validate:"omitempty,oneof=easy medium hard"`
	Subjects            []string `json:"subjects"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	u, err := s.currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.PreferredDifficulty != nil {
		u.PreferredDifficulty = *req.PreferredDifficulty
	}
	if req.Subjects != nil {
		u.Subjects = req.Subjects
	}
	if err := s.deps.Store.Users().Update(r.Context(), u); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

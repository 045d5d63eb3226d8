package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/quiz"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req quiz.Request
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	q, err := s.deps.Quiz.Generate(r.Context(), auth.SubjectFromContext(r.Context()), req)
	if errors.Is(err, quiz.ErrNoQuestions) {
		writeJSON(w, http.StatusOK, map[string]any{
			"questions": []quiz.Question{},
			"msg":       quiz.ErrNoQuestions.Error(),
		})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

type submitRequest struct {
	AttemptID string        `json:"attempt_id" validate:"required"`
	Answers   []quiz.Answer `json:"answers" validate:"dive"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.deps.Quiz.Submit(r.Context(), auth.SubjectFromContext(r.Context()), req.AttemptID, req.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	h, err := s.deps.Quiz.History(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if h == nil {
		h = []quiz.AttemptSummary{}
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	d, err := s.deps.Quiz.Attempt(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	msg, err := s.deps.Quiz.Insight(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"feedback": msg})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Quiz.Recommend(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Quiz.Progress(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRemoveMistake(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Quiz.RemoveMistake(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "questionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "mistake removed")
}

func (s *Server) handleMistakes(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Quiz.Mistakes(r.Context(), auth.SubjectFromContext(r.Context()), queryInt(r, "limit", 20))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type reviewRequest struct {
	Limit int `json:"limit" validate:"gte=0"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if r.ContentLength != 0 {
		if err := s.decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}
	q, err := s.deps.Quiz.ReviewMistakes(r.Context(), auth.SubjectFromContext(r.Context()), req.Limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

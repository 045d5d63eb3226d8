package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/store"
)

type statsJSON struct {
	Users     int `json:"total_users"`
	Contents  int `json:"total_contents"`
	Questions int `json:"total_questions"`
	Attempts  int `json:"total_attempts"`
	Flagged   int `json:"flagged_questions"`
	Feedback  int `json:"total_feedback"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.deps.Store.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsJSON(*st))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Store.Users().List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]userJSON, 0, len(users))
	for i := range users {
		out = append(out, toUserJSON(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type questionJSON struct {
	ID            string    `json:"id"`
	ContentID     string    `json:"content_id,omitempty"`
	Type          string    `json:"question_type"`
	Text          string    `json:"question_text"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	Difficulty    string    `json:"difficulty"`
	Explanation   string    `json:"explanation"`
	Source        string    `json:"source"`
	IsFlagged     bool      `json:"is_flagged"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := s.deps.Store.Questions().List(r.Context(), store.QuestionFilter{
		FlaggedOnly: r.URL.Query().Get("flagged") == "true",
		Limit:       queryInt(r, "limit", store.DefaultQuestionLimit),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]questionJSON, 0, len(qs))
	for _, q := range qs {
		opts := q.Options
		if opts == nil {
			opts = []string{}
		}
		out = append(out, questionJSON{
			ID:            q.ID,
			ContentID:     q.ContentID,
			Type:          q.Type,
			Text:          q.Text,
			Options:       opts,
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    q.Difficulty,
			Explanation:   q.Explanation,
			Source:        q.Source,
			IsFlagged:     q.IsFlagged,
			CreatedAt:     q.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFlag(flagged bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Store.Questions().SetFlagged(r.Context(), chi.URLParam(r, "id"), flagged); err != nil {
			writeError(w, r, err)
			return
		}
		msg := "question unflagged"
		if flagged {
			msg = "question flagged for review"
		}
		writeMsg(w, http.StatusOK, msg)
	}
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Store.Questions().Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "question deleted")
}

type feedbackRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Rating     int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment    string `json:"comment"`
}

type feedbackJSON struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	QuestionID string    `json:"question_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) handleCreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.deps.Store.Questions().Get(r.Context(), req.QuestionID); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Rating == 0 {
		req.Rating = 3
	}
	f := &store.Feedback{
		UserID:     auth.SubjectFromContext(r.Context()),
		QuestionID: req.QuestionID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.deps.Store.Feedback().Create(r.Context(), f); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedbackJSON(*f))
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Store.Feedback().List(r.Context(), queryInt(r, "limit", 100))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]feedbackJSON, 0, len(list))
	for _, f := range list {
		out = append(out, feedbackJSON(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetAdmin(admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !admin && id == auth.SubjectFromContext(r.Context()) {
			writeMsg(w, http.StatusBadRequest, "cannot demote yourself")
			return
		}
		if err := s.deps.Store.Users().SetAdmin(r.Context(), id, admin); err != nil {
			writeError(w, r, err)
			return
		}
		msg := "user demoted"
		if admin {
			msg = "user promoted to admin"
		}
		writeMsg(w, http.StatusOK, msg)
	}
}

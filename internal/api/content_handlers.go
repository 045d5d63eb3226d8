package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/ingest"
	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/store"
)

type contentJSON struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	SourceType string    `json:"source_type"`
	SourceRef  string    `json:"source_ref,omitempty"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
	RawText    string    `json:"raw_text,omitempty"`
}

func toContentJSON(c *store.Content, withText bool) contentJSON {
	out := contentJSON{
		ID:         c.ID,
		UserID:     c.UserID,
		Title:      c.Title,
		SourceType: c.SourceType,
		SourceRef:  c.SourceRef,
		ChunkCount: c.ChunkCount,
		CreatedAt:  c.CreatedAt,
	}
	if withText {
		out.RawText = c.RawText
	}
	return out
}

func (s *Server) addContent(w http.ResponseWriter, r *http.Request, in quiz.NewContent) {
	c, err := s.deps.Quiz.AddContent(r.Context(), auth.SubjectFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContentJSON(c, false))
}

type textUpload struct {
	Title string `json:"title"`
	Text  string `json:"text" validate:"required"`
}

func (s *Server) handleUploadText(w http.ResponseWriter, r *http.Request) {
	var req textUpload
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.addContent(w, r, quiz.NewContent{Title: req.Title, SourceType: quiz.SourceText, Text: req.Text})
}

type urlUpload struct {
	URL   string `json:"url" validate:"required,url"`
	Title string `json:"title"`
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	var req urlUpload
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	text, err := s.deps.Fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, badRequest("could not fetch URL: %v", err))
		return
	}
	s.addContent(w, r, quiz.NewContent{Title: req.Title, SourceType: quiz.SourceURL, SourceRef: req.URL, Text: text})
}

// readUpload returns the multipart "file" field and a title taken from the
// "title" field or the file name.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		return nil, "", badRequest("invalid upload: %v", err)
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", badRequest("file is required")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", badRequest("read upload: %v", err)
	}
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(hdr.Filename, filepath.Ext(hdr.Filename))
	}
	return data, title, nil
}

func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	data, title, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	text, err := ingest.ExtractPDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		writeError(w, r, badRequest("could not read PDF: %v", err))
		return
	}
	s.addContent(w, r, quiz.NewContent{Title: title, SourceType: quiz.SourcePDF, Text: text})
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	data, title, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	text, err := s.deps.OCR.Extract(r.Context(), bytes.NewReader(data))
	if err != nil {
		writeError(w, r, badRequest("could not read image: %v", err))
		return
	}
	s.addContent(w, r, quiz.NewContent{Title: title, SourceType: quiz.SourceImage, Text: text})
}

type gitImport struct {
	URL string `json:"url" validate:"required"`
	Ref string `json:"ref"`
}

func (s *Server) handleImportGit(w http.ResponseWriter, r *http.Request) {
	var req gitImport
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	docs, err := s.deps.Git(r.Context(), req.URL, req.Ref)
	if err != nil {
		writeError(w, r, badRequest("could not import repository: %v", err))
		return
	}
	userID := auth.SubjectFromContext(r.Context())
	out := []contentJSON{}
	for _, d := range docs {
		c, err := s.deps.Quiz.AddContent(r.Context(), userID, quiz.NewContent{
			Title:      d.Title,
			SourceType: quiz.SourceGit,
			SourceRef:  req.URL,
			Text:       d.Text,
		})
		if errors.Is(err, quiz.ErrNoText) {
			continue
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		out = append(out, toContentJSON(c, false))
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Store.Contents().ListByUser(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]contentJSON, 0, len(list))
	for i := range list {
		out = append(out, toContentJSON(&list[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Store.Contents().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContentJSON(c, true))
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Quiz.DeleteContent(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "content deleted")
}

func (s *Server) handleStudy(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.Quiz.Study(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

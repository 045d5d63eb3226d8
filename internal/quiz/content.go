package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/adaptiq/internal/ingest"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/study"
)

// Source types recorded on content.
const (
	SourceText  = "text"
	SourceURL   = "url"
	SourcePDF   = "pdf"
	SourceImage = "image"
	SourceGit   = "git"
)

// NewContent is material to add to a user's library.
type NewContent struct {
	Title      string
	SourceType string
	SourceRef  string
	Text       string
}

// AddContent cleans and chunks text and stores it for userID. An empty
// title is filled by topic detection when study aids are enabled.
func (s *Service) AddContent(ctx context.Context, userID string, in NewContent) (*store.Content, error) {
	text := ingest.Clean(in.Text)
	if text == "" {
		return nil, ErrNoText
	}
	chunks := ingest.Chunk(text, s.cfg.ChunkSentences)

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = s.study.DetectTopic(ctx, text)
	}
	if title == "" {
		title = study.DefaultTopic
	}

	c := &store.Content{
		UserID:     userID,
		Title:      title,
		SourceType: in.SourceType,
		SourceRef:  in.SourceRef,
		RawText:    text,
	}
	if err := s.repos.Contents.Create(ctx, c, chunks); err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}
	return c, nil
}

// DeleteContent removes content owned by userID.
func (s *Service) DeleteContent(ctx context.Context, userID, contentID string) error {
	c, err := s.repos.Contents.Get(ctx, contentID)
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return ErrForbidden
	}
	return s.repos.Contents.Delete(ctx, contentID)
}

// Study returns study aids for the content.
func (s *Service) Study(ctx context.Context, contentID string) (*study.Material, error) {
	c, err := s.repos.Contents.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}
	text, err := s.contentText(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.study.Material(ctx, text), nil
}

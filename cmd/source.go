package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/adaptiq/internal/config"
	"github.com/abhisek/adaptiq/internal/ingest"
	"github.com/abhisek/adaptiq/internal/quiz"
)

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true, ".bmp": true, ".webp": true}

// sourceType picks the ingestion path for a command argument.
func sourceType(arg string) string {
	lower := strings.ToLower(arg)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return quiz.SourceURL
	}
	ext := filepath.Ext(lower)
	switch {
	case ext == ".pdf":
		return quiz.SourcePDF
	case imageExts[ext]:
		return quiz.SourceImage
	}
	return quiz.SourceText
}

// readSource loads study material from a file path or URL.
func readSource(ctx context.Context, cfg *config.Config, arg string) (quiz.NewContent, error) {
	in := quiz.NewContent{SourceType: sourceType(arg), SourceRef: arg}

	if in.SourceType == quiz.SourceURL {
		text, err := cfg.Fetcher().Fetch(ctx, arg)
		if err != nil {
			return in, err
		}
		in.Text = text
		return in, nil
	}

	in.Title = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	f, err := os.Open(arg)
	if err != nil {
		return in, fmt.Errorf("open %s: %w", arg, err)
	}
	defer f.Close()

	switch in.SourceType {
	case quiz.SourcePDF:
		in.Text, err = ingest.ExtractPDFReader(f)
	case quiz.SourceImage:
		in.Text, err = cfg.OCR().Extract(ctx, f)
	default:
		var data []byte
		data, err = io.ReadAll(f)
		in.Text = string(data)
	}
	if err != nil {
		return in, fmt.Errorf("read %s: %w", arg, err)
	}
	return in, nil
}

package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ErrOCRUnavailable means the tesseract binary is not installed.
var ErrOCRUnavailable = errors.New("tesseract not found in PATH")

// TesseractOCR extracts text from images by shelling out to tesseract.
type TesseractOCR struct {
	Binary  string
	Lang    string
	Timeout time.Duration
}

// NewTesseractOCR returns an English OCR with a 20 second limit.
func NewTesseractOCR() *TesseractOCR {
	return &TesseractOCR{Binary: "tesseract", Lang: "eng", Timeout: 20 * time.Second}
}

// Extract copies r into a temp file and runs OCR on it.
func (t *TesseractOCR) Extract(ctx context.Context, r io.Reader) (string, error) {
	f, err := os.CreateTemp("", "adaptiq-ocr-*.img")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("buffer image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("buffer image: %w", err)
	}
	return t.run(ctx, f.Name())
}

func (t *TesseractOCR) run(ctx context.Context, path string) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tesseract"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return "", ErrOCRUnavailable
	}

	args := []string{path, "stdout"}
	if t.Lang != "" {
		args = append(args, "-l", t.Lang)
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("tesseract: %s", msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}

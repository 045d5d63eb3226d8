package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Document is one text file imported from a repository.
type Document struct {
	Title string
	Text  string
}

// noteExtensions are the file types imported from a repository.
var noteExtensions = map[string]bool{".md": true, ".txt": true}

// ImportGit shallow-clones url (at branch ref, or the default branch when
// ref is empty) and returns every markdown and text file in it.
func ImportGit(ctx context.Context, url, ref string) ([]Document, error) {
	dir, err := os.MkdirTemp("", "adaptiq-git-*")
	if err != nil {
		return nil, fmt.Errorf("create clone dir: %w", err)
	}
	defer os.RemoveAll(dir)

	opts := &git.CloneOptions{URL: url, Depth: 1, SingleBranch: true}
	if ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
	}

	slog.Info("cloning repository", "url", url, "ref", ref)
	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return nil, fmt.Errorf("clone %s: %w", url, err)
	}
	return ReadNotes(dir)
}

// ReadNotes walks root and loads every note file outside the .git directory.
func ReadNotes(root string) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !noteExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = d.Name()
		}
		if text := Clean(string(data)); text != "" {
			docs = append(docs, Document{Title: filepath.ToSlash(rel), Text: text})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return docs, nil
}

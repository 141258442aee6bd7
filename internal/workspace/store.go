// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/mathconv/pkg/types"
)

var (
	// ErrNotDocument is returned when a path names a directory or other
	// non-regular file.
	ErrNotDocument = errors.New("not a document")

	// ErrOutsideWorkspace is returned for paths that escape the workspace root.
	ErrOutsideWorkspace = errors.New("path outside workspace")
)

// Store is the document boundary: enumerate, read, and write documents.
// Paths are slash-separated and relative to the workspace root.
type Store interface {
	// List returns every document in the workspace, sorted by path.
	List(ctx context.Context) ([]types.Document, error)

	// Stat returns the current metadata of one document.
	Stat(ctx context.Context, path string) (types.Document, error)

	// Read returns the full content of a document.
	Read(ctx context.Context, path string) (string, error)

	// Write replaces the full content of a document.
	Write(ctx context.Context, path, content string) error
}

// DirStore is a Store backed by a directory tree on the local filesystem.
type DirStore struct {
	root          string
	exts          []string
	includeHidden bool
}

var _ Store = (*DirStore)(nil)

// NewDirStore returns a DirStore rooted at cfg.Dir. The directory must exist.
func NewDirStore(cfg types.WorkspaceConfig) (*DirStore, error) {
	root := cfg.Dir
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening workspace %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", root)
	}

	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = []string{".md"}
	}
	norm := make([]string, len(exts))
	for i, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		norm[i] = e
	}

	return &DirStore{root: root, exts: norm, includeHidden: cfg.IncludeHidden}, nil
}

// Root returns the workspace root directory.
func (d *DirStore) Root() string { return d.root }

// List walks the workspace and returns all documents with a matching
// extension. Dot-directories are skipped unless IncludeHidden is set.
func (d *DirStore) List(ctx context.Context) ([]types.Document, error) {
	var docs []types.Document
	err := filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if p != d.root && strings.HasPrefix(name, ".") && !d.includeHidden {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || !d.matches(name) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		docs = append(docs, types.Document{
			Path:    filepath.ToSlash(rel),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing workspace %s: %w", d.root, err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Stat returns metadata for the document at path.
func (d *DirStore) Stat(ctx context.Context, path string) (types.Document, error) {
	full, err := d.resolve(path)
	if err != nil {
		return types.Document{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return types.Document{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return types.Document{}, fmt.Errorf("%s: %w", path, ErrNotDocument)
	}
	return types.Document{Path: path, ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Read returns the content of the document at path.
func (d *DirStore) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := d.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Write atomically replaces the document at path: content goes to a temp
// file in the same directory which is then renamed over the original. The
// original file mode is kept.
func (d *DirStore) Write(ctx context.Context, path, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := d.resolve(path)
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(full); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(full)
	tmp, err := os.CreateTemp(dir, ".mathconv-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, full); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func (d *DirStore) resolve(path string) (string, error) {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideWorkspace)
	}
	return filepath.Join(d.root, rel), nil
}

func (d *DirStore) matches(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range d.exts {
		if ext == e {
			return true
		}
	}
	return false
}

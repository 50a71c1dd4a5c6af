// Package uploads stores report images on disk under the public uploads
// directory, addressed by content hash so re-uploads of the same file are
// idempotent.
package uploads

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"genovault/internal/constants"
	"genovault/internal/sanitize"
)

// File describes a stored upload.
type File struct {
	Filename   string `json:"filename"`
	Category   string `json:"category"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	UploadedAt int64  `json:"uploadedAt"`
}

// Store manages the uploads directory tree: one subdirectory per category.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given uploads directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// IsValidCategory reports whether a category is one of the known upload
// categories.
func IsValidCategory(category string) bool {
	for _, c := range constants.UploadCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Save writes an upload into the category directory. The stored name is the
// BLAKE3 hash of the content plus the sanitized original extension, so the
// same image always lands on the same path.
func (s *Store) Save(category, originalName string, r io.Reader) (*File, error) {
	if !IsValidCategory(category) {
		return nil, fmt.Errorf("unknown upload category: %s", category)
	}

	ext := sanitize.Extension(filepath.Ext(originalName))
	if _, ok := constants.UploadAllowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("extension %q is not an allowed image type", ext)
	}

	// Spool to a temp file while hashing, then rename into place. The size
	// cap is enforced here as a backstop behind the HTTP-level limit.
	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create category dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	hasher := blake3.New()
	written, err := io.Copy(io.MultiWriter(tmp, hasher), io.LimitReader(r, constants.UploadMaxSizeBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if written > constants.UploadMaxSizeBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", constants.UploadMaxSizeBytes)
	}
	if written == 0 {
		return nil, fmt.Errorf("upload is empty")
	}

	hash := hex.EncodeToString(hasher.Sum(nil))
	filename := hash + "." + ext
	dest := filepath.Join(dir, filename)

	if _, err := os.Stat(dest); err == nil {
		// Same content already stored
	} else if err := os.Rename(tmpName, dest); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := os.Chmod(dest, constants.FilePermissions); err != nil {
		return nil, fmt.Errorf("failed to set upload permissions: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to stat upload: %w", err)
	}

	return &File{
		Filename:   filename,
		Category:   category,
		URL:        s.urlFor(category, filename),
		Size:       info.Size(),
		UploadedAt: info.ModTime().Unix(),
	}, nil
}

// List returns stored files for a category, newest first.
func (s *Store) List(category string) ([]*File, error) {
	if !IsValidCategory(category) {
		return nil, fmt.Errorf("unknown upload category: %s", category)
	}

	entries, err := os.ReadDir(filepath.Join(s.root, category))
	if os.IsNotExist(err) {
		return []*File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read category dir: %w", err)
	}

	files := []*File{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, &File{
			Filename:   entry.Name(),
			Category:   category,
			URL:        s.urlFor(category, entry.Name()),
			Size:       info.Size(),
			UploadedAt: info.ModTime().Unix(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].UploadedAt > files[j].UploadedAt })
	return files, nil
}

// Delete removes a stored file. Returns os.ErrNotExist if absent.
func (s *Store) Delete(category, filename string) error {
	if !IsValidCategory(category) {
		return fmt.Errorf("unknown upload category: %s", category)
	}
	if sanitize.IsPathTraversal(filename) {
		return fmt.Errorf("invalid filename")
	}
	clean := sanitize.Filename(filename)
	if clean == "" || clean != filename {
		return fmt.Errorf("invalid filename")
	}

	return os.Remove(filepath.Join(s.root, category, clean))
}

func (s *Store) urlFor(category, filename string) string {
	return "/" + constants.UploadsDir + "/" + category + "/" + filename
}

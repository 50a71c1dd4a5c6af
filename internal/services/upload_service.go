package services

import (
	"io"
	"os"
	"strings"

	"genovault/internal/logger"
	"genovault/internal/uploads"
)

// UploadService wraps the upload store with service-level error mapping.
type UploadService struct {
	store *uploads.Store
	log   *logger.Logger
}

// NewUploadService creates the upload service.
func NewUploadService(store *uploads.Store, log *logger.Logger) *UploadService {
	return &UploadService{store: store, log: log}
}

// Save stores an uploaded image under the given category.
func (s *UploadService) Save(category, filename string, r io.Reader) (*uploads.File, error) {
	if category == "" {
		return nil, ErrMissingParamWithName("category")
	}
	if !uploads.IsValidCategory(category) {
		return nil, ErrInvalidRequest
	}

	file, err := s.store.Save(category, filename, r)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "allowed image type"):
			return nil, ErrUploadInvalidType
		case strings.Contains(err.Error(), "exceeds"):
			return nil, ErrUploadTooLarge
		case strings.Contains(err.Error(), "empty"):
			return nil, ErrInvalidRequest
		default:
			return nil, WrapInternalError(err)
		}
	}

	s.log.Info("Uploads: stored %s/%s (%d bytes)", file.Category, file.Filename, file.Size)
	return file, nil
}

// List returns stored files for a category.
func (s *UploadService) List(category string) ([]*uploads.File, error) {
	if category == "" {
		return nil, ErrMissingParamWithName("category")
	}
	if !uploads.IsValidCategory(category) {
		return nil, ErrInvalidRequest
	}

	files, err := s.store.List(category)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	return files, nil
}

// Delete removes a stored file.
func (s *UploadService) Delete(category, filename string) error {
	if category == "" {
		return ErrMissingParamWithName("category")
	}
	if filename == "" {
		return ErrMissingParamWithName("filename")
	}

	err := s.store.Delete(category, filename)
	if os.IsNotExist(err) {
		return ErrUploadNotFound
	}
	if err != nil {
		if strings.Contains(err.Error(), "invalid filename") || strings.Contains(err.Error(), "unknown upload category") {
			return ErrInvalidRequest
		}
		return WrapInternalError(err)
	}

	s.log.Info("Uploads: deleted %s/%s", category, filename)
	return nil
}

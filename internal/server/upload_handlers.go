package server

import (
	"net/http"

	"genovault/internal/constants"
)

// POST /api/upload-image — multipart image upload into a category
func (s *Server) handleUploadSave(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	// The multipart reader spools to disk past this threshold; the store
	// enforces the actual size cap while hashing.
	if err := r.ParseMultipartForm(constants.UploadMaxSizeBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form", constants.ErrCodeInvalidRequest)
		return
	}

	category := r.FormValue("category")
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing file field", constants.ErrCodeInvalidRequest)
		return
	}
	defer file.Close()

	saved, err := s.app.Services.Upload.Save(category, header.Filename, file)
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	s.logger.Info("Uploads: saved %s/%s (%d bytes)", saved.Category, saved.Filename, saved.Size)

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"file":    saved,
	})
}

// GET /api/upload-image?category=… — list uploaded images
func (s *Server) handleUploadList(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	files, err := s.app.Services.Upload.List(r.URL.Query().Get("category"))
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"files": files,
	})
}

// DELETE /api/upload-image?category=…&filename=… — remove an image
func (s *Server) handleUploadDelete(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	category := r.URL.Query().Get("category")
	filename := r.URL.Query().Get("filename")
	if err := s.app.Services.Upload.Delete(category, filename); err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
	})
}

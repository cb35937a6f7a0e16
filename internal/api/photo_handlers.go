package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tastemapapp/tastemap-server/internal/http/response"
)

// registerPhotoRoutes registers the raw photo endpoint directly on the
// router. Photos are binary responses and bypass the JSON envelope.
func (s *Server) registerPhotoRoutes() {
	s.router.Get("/api/v1/photos/{filename}", s.handleGetPhoto)
}

// handleGetPhoto serves an uploaded place photo with caching headers.
func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		response.BadRequest(w, "Photo filename is required", s.logger)
		return
	}

	data, err := s.photos.Get(filename)
	if err != nil {
		response.NotFound(w, "Photo not found", s.logger)
		return
	}

	hash, err := s.photos.Hash(filename)
	if err != nil {
		s.logger.Error("Failed to hash photo", "filename", filename, "error", err)
		response.InternalError(w, "Failed to serve photo", s.logger)
		return
	}

	etag := `"` + hash + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", CacheOneWeek)
	w.Header().Set("ETag", etag)

	if info, statErr := os.Stat(s.photos.Path(filename)); statErr == nil {
		w.Header().Set("Last-Modified", info.ModTime().UTC().Format(http.TimeFormat))
	}

	if _, err := w.Write(data); err != nil {
		s.logger.Error("Failed to write photo response", "filename", filename, "error", err)
	}
}

package admin

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/5w1tchy/portfolio-api/internal/api/apperr"
	"github.com/5w1tchy/portfolio-api/internal/api/httpx"
	"github.com/5w1tchy/portfolio-api/internal/storage"
)

const MaxImageSize = 10 << 20

type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// POST /api/admin/uploads (multipart: file, optional folder)
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		apperr.WriteStatus(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}
	if err := r.ParseMultipartForm(MaxImageSize + (1 << 20)); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			apperr.Write(w, r, apperr.Validation("Image must be 10 MiB or smaller"))
			return
		}
		apperr.Write(w, r, apperr.Validation("Expected a multipart form with a file field"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		apperr.Write(w, r, apperr.Validation("file is required"))
		return
	}
	defer file.Close()
	if hdr.Size > MaxImageSize {
		apperr.Write(w, r, apperr.Validation("Image must be 10 MiB or smaller"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		apperr.Write(w, r, apperr.Internal("Upload failed", err))
		return
	}
	if len(data) > MaxImageSize {
		apperr.Write(w, r, apperr.Validation("Image must be 10 MiB or smaller"))
		return
	}

	// Sniff rather than trusting the part's Content-Type.
	contentType := http.DetectContentType(data)
	ext, ok := storage.ImageExt(contentType)
	if !ok {
		apperr.Write(w, r, apperr.Validation("Unsupported image type (jpeg, png, webp or gif)"))
		return
	}

	key := storage.ObjectKey(r.FormValue("folder"), ext)
	url, err := h.Images.Put(r.Context(), key, contentType, bytes.NewReader(data))
	if err != nil {
		apperr.Write(w, r, apperr.Internal("Upload failed", err))
		return
	}
	slog.Info("[uploads] stored image", "key", key, "bytes", len(data))
	httpx.WriteJSON(w, http.StatusCreated, UploadResponse{URL: url, Key: key})
}

// DELETE /api/admin/uploads/{key...}
func (h *Handler) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		apperr.WriteStatus(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}
	key := r.PathValue("key")
	if !storage.ValidKey(key) {
		apperr.Write(w, r, apperr.Validation("Invalid image key"))
		return
	}
	if err := h.Images.Delete(r.Context(), key); err != nil {
		apperr.Write(w, r, apperr.Internal("Delete failed", err))
		return
	}
	slog.Info("[uploads] deleted image", "key", key)
	httpx.Message(w, http.StatusOK, "Image deleted")
}

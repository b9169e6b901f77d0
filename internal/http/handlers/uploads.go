package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/webshunter/animemacker/internal/placeholder"
	"github.com/webshunter/animemacker/internal/storage"
)

const uploadField = "image"

// imageFromRequest returns the uploaded image of a multipart request, or the
// generated fallback for any other request. On failure the error response is
// already written.
func (a *App) imageFromRequest(w http.ResponseWriter, r *http.Request, generate func() placeholder.ImageResource) (placeholder.ImageResource, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return generate(), true
	}
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)
	if err := r.ParseMultipartForm(a.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", "image exceeds the upload limit")
			return placeholder.ImageResource{}, false
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return placeholder.ImageResource{}, false
	}
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", uploadField+" file is required")
		return placeholder.ImageResource{}, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return placeholder.ImageResource{}, false
	}
	mimeType, _, err := storage.DetectImage(data)
	if err != nil {
		a.fail(w, r, err, "image")
		return placeholder.ImageResource{}, false
	}
	return placeholder.ImageResource{MIME: mimeType, Data: data}, true
}

// storeImage writes img under prefix with the extension of its sniffed type.
func (a *App) storeImage(r *http.Request, prefix string, img placeholder.ImageResource) (string, error) {
	if a.Store == nil {
		return "", errors.New("file storage is not configured")
	}
	_, ext, err := storage.DetectImage(img.Data)
	if err != nil {
		return "", err
	}
	return a.Store.Write(r.Context(), prefix+ext, img.Data)
}

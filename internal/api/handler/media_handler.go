package handler

import (
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// Only these types are rendered by the browser; anything else is sent as a
// download so stored markup cannot run on the API origin.
var inlineMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"image/webp":      true,
}

// MediaHandler serves uploaded photos, resumes and logos.
type MediaHandler struct {
	store ports.MediaStore
}

func NewMediaHandler(store ports.MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Get streams a stored file.
//
// @Summary      Download an uploaded file
// @Tags         media
// @Produce      octet-stream
// @Param        id   path  string  true  "File ID"
// @Success      200
// @Failure      404  {object}  map[string]any
// @Router       /media/{id} [get]
func (h *MediaHandler) Get(c echo.Context) error {
	r, file, err := h.store.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer r.Close()

	contentType, disposition := file.ContentType, "inline"
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if !inlineMediaTypes[strings.ToLower(mediaType)] {
		contentType, disposition = echo.MIMEOctetStream, "attachment"
	}

	hdr := c.Response().Header()
	if file.Name != "" {
		if d := mime.FormatMediaType(disposition, map[string]string{"filename": file.Name}); d != "" {
			disposition = d
		}
	}
	hdr.Set(echo.HeaderContentDisposition, disposition)
	hdr.Set(echo.HeaderXContentTypeOptions, "nosniff")
	hdr.Set("Content-Security-Policy", "default-src 'none'; sandbox")
	hdr.Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, r)
}

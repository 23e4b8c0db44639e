package upload

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bikemarket/internal/pkg/response"
)

// Handler accepts image uploads over multipart form data.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /api/upload-image. Exactly one "image" field per
// request; the response carries the public path of the stored file.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile(FieldName)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No image file provided")
		return
	}

	stored, err := h.service.Store(fh)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotImage):
			response.Error(c, http.StatusBadRequest, "Only image files are allowed")
		case errors.Is(err, ErrTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "Image exceeds the 5 MB size limit")
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "Image file is empty")
		default:
			slog.Error("image upload failed", "file", fh.Filename, "err", err)
			response.Error(c, http.StatusInternalServerError, "Failed to store image")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imageUrl": stored.URL})
}

package bike

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bikemarket/internal/domain/upload"
	"bikemarket/internal/pkg/response"
	"bikemarket/internal/pkg/validator"
)

// Handler serves the catalog endpoints.
type Handler struct {
	repo    Repository
	uploads *upload.Service
}

func NewHandler(repo Repository, uploads *upload.Service) *Handler {
	return &Handler{repo: repo, uploads: uploads}
}

// AddBike handles POST /api/add-bike: a multipart form with name, price and
// desc fields plus the image file. The image is stored first; a listing is
// never created without one.
func (h *Handler) AddBike(c *gin.Context) {
	var req AddBikeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid form data")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	fh, err := c.FormFile(upload.FieldName)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Bike image is required")
		return
	}

	stored, err := h.uploads.Store(fh)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrNotImage):
			response.Error(c, http.StatusBadRequest, "Only image files are allowed")
		case errors.Is(err, upload.ErrTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "Image exceeds the 5 MB size limit")
		case errors.Is(err, upload.ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "Image file is empty")
		default:
			slog.Error("store bike image failed", "file", fh.Filename, "err", err)
			response.Error(c, http.StatusInternalServerError, "Failed to store image")
		}
		return
	}

	b, err := h.repo.Create(c.Request.Context(), &Bike{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Desc,
		Image:       stored.URL,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidBike) {
			response.Error(c, http.StatusBadRequest, "All bike fields are required")
			return
		}
		slog.Error("create bike failed", "name", req.Name, "err", err)
		response.Error(c, http.StatusInternalServerError, "Failed to add bike")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Bike added successfully", "bike": b})
}

// ListBikes handles GET /api/bikes. The response is always a JSON array,
// empty catalog included.
func (h *Handler) ListBikes(c *gin.Context) {
	bikes, err := h.repo.List(c.Request.Context())
	if err != nil {
		slog.Error("list bikes failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "Failed to fetch bikes")
		return
	}
	if bikes == nil {
		bikes = []Bike{}
	}
	c.JSON(http.StatusOK, bikes)
}

// DeleteBike handles DELETE /api/bikes/:key.
func (h *Handler) DeleteBike(c *gin.Context) {
	key := c.Param("key")

	b, err := h.repo.DeleteByID(c.Request.Context(), key)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			response.ErrorWithContext(c, http.StatusNotFound, "Bike not found", gin.H{
				"key":             key,
				"inventoryLength": nf.Inventory,
			})
			return
		}
		slog.Error("delete bike failed", "key", key, "err", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete bike")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bike deleted successfully", "bike": b})
}

// DeleteBikeByName handles DELETE /api/bikes/name/:name. The route parameter
// arrives percent-decoded, so names with spaces match their stored form.
func (h *Handler) DeleteBikeByName(c *gin.Context) {
	name := c.Param("name")

	b, err := h.repo.DeleteByName(c.Request.Context(), name)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			response.ErrorWithContext(c, http.StatusNotFound, "Bike not found", gin.H{
				"name":            name,
				"inventoryLength": nf.Inventory,
			})
			return
		}
		slog.Error("delete bike by name failed", "name", name, "err", err)
		response.Error(c, http.StatusInternalServerError, "Failed to delete bike")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bike deleted successfully", "bike": b})
}

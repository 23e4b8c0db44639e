package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the upload endpoint on the API group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/upload-image", h.Upload)
}

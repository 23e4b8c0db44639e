package bike

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the catalog endpoints on the API group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/add-bike", h.AddBike)
	rg.GET("/bikes", h.ListBikes)
	rg.DELETE("/bikes/:key", h.DeleteBike)
	rg.DELETE("/bikes/name/:name", h.DeleteBikeByName)
}

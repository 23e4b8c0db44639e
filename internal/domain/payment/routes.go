package payment

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the payment endpoint on the API group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/mpesa-pay", h.Pay)
}

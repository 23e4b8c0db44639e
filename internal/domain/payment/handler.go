package payment

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"bikemarket/internal/pkg/response"
	"bikemarket/internal/pkg/validator"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Pay handles POST /api/mpesa-pay. Whatever fails upstream, the caller sees
// one generic message; the specific cause goes to the log only.
func (h *Handler) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(fields))
		return
	}

	if _, err := h.client.InitiateSTKPush(c.Request.Context(), req.Phone, req.Amount); err != nil {
		slog.Error("mpesa payment failed", "phone", req.Phone, "err", err)
		response.Error(c, http.StatusInternalServerError, "Payment processing failed")
		return
	}

	response.Message(c, http.StatusOK, "STK push initiated. Check your phone to complete the payment.")
}

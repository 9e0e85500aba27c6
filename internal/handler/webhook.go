package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unihop/internal/service"
)

// WebhookHandler handles job lifecycle webhooks from the logistics
// provider.
type WebhookHandler struct {
	orderService *service.OrderService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(orderService *service.OrderService) *WebhookHandler {
	return &WebhookHandler{orderService: orderService}
}

// webhookEvent is the envelope the provider posts; only the job ID is
// used, the authoritative payload is re-fetched from the API.
type webhookEvent struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// HandleJobEvent handles POST /orders
func (h *WebhookHandler) HandleJobEvent(c *gin.Context) {
	var event webhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if event.Data.ID == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "id not found."})
		return
	}

	if _, err := h.orderService.IngestJobEvent(c.Request.Context(), event.Data.ID); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{})
}

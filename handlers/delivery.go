package handlers

import (
	"net/http"
	"strconv"

	deliveryRepo "clinicdesk/database/repository/delivery"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
)

// DeliveryHandler lists the outbound message audit log.
type DeliveryHandler struct {
	Repo deliveryRepo.DeliveryRepository
}

func NewDeliveryHandler(repo deliveryRepo.DeliveryRepository) *DeliveryHandler {
	return &DeliveryHandler{Repo: repo}
}

// ListDeliveriesHandler handles GET /api/admin/deliveries?limit=N.
func (h *DeliveryHandler) ListDeliveriesHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	records, err := h.Repo.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "Failed to fetch deliveries", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

package api

import (
	"net/http"

	"github.com/Domenick1991/flightgds/internal/service/bookings"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service bookings.BookingUseCase
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/booking/:id", h.get)
	router.GET("/booking/:id/live", h.getLive)
	router.DELETE("/booking/:id", h.cancel)
}

func (h *BookingHandler) get(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) getLive(c *gin.Context) {
	enriched, err := h.service.GetLive(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, enriched)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	_, err := h.service.Cancel(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "booking cancelled successfully"})
}

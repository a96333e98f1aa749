package api

import (
	"net/http"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/Domenick1991/flightgds/internal/service/reservation"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service reservation.ReservationUseCase
}

type priceRequest struct {
	FlightOfferID string `json:"flightOfferId"`
}

type bookRequest struct {
	Travelers []domain.Traveler `json:"travelers"`
}

func NewFlightHandler(service reservation.ReservationUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/search", h.search)
	router.POST("/price", h.price)
	router.POST("/book", h.book)
}

func (h *FlightHandler) search(c *gin.Context) {
	var criteria domain.SearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search parameters"})
		return
	}

	offers, err := h.service.Search(c.Request.Context(), currentUser(c), criteria)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *FlightHandler) price(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priced, err := h.service.Price(c.Request.Context(), currentUser(c), req.FlightOfferID)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, priced)
}

func (h *FlightHandler) book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.Book(c.Request.Context(), currentUser(c), req.Travelers)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

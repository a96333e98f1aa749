package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightgds/internal/domain"
	"github.com/gin-gonic/gin"
)

func sendError(c *gin.Context, err error) {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		body := gin.H{"error": domErr.Message, "code": string(domErr.Kind)}
		if domErr.VendorCode != 0 {
			body["vendor_code"] = domErr.VendorCode
		}
		c.JSON(domErr.Status, body)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

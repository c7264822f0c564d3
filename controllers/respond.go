package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jaykaran24/fitbot/apperrors"
)

// respondError maps typed service errors to HTTP statuses. Anything without
// a known kind is a 500 with a generic message so internals never leak.
func respondError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.KindTransport, apperrors.KindUpstreamFormat:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case apperrors.KindConfiguration:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

package handlers

import (
	"net/http"
	"puredrop/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation, services.KindConflict, services.KindInvalidCredentials:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"message": ...}. Internal failures are logged
// with their cause and answered with a generic message.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)

	if status == http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(status, gin.H{"message": "Server error"})
		return
	}

	message := err.Error()
	if serviceErr, ok := err.(*services.Error); ok {
		message = serviceErr.Message
	}
	c.JSON(status, gin.H{"message": message})
}

package handlers

import (
	"errors"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/Yquannn/sibbap-admin/internal/services"
	"github.com/Yquannn/sibbap-admin/internal/statemachine"
	"github.com/Yquannn/sibbap-admin/internal/upstream"
	"github.com/Yquannn/sibbap-admin/pkg/logger"
)

// errorStatus maps service and upstream errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, upstream.ErrMissingMemberID),
		errors.Is(err, statemachine.ErrUnknownEvent),
		errors.Is(err, statemachine.ErrAccountRequired):
		return http.StatusBadRequest
	case errors.Is(err, upstream.ErrEmptyPayload),
		errors.Is(err, services.ErrScreenNotFound),
		errors.Is(err, services.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrWrongScreenKind),
		errors.Is(err, services.ErrNotReady),
		errors.Is(err, statemachine.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, upstream.ErrNetworkFailure),
		errors.Is(err, upstream.ErrMalformedPayload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Server-side failures are logged
// and reported to Sentry when the middleware is installed.
func respondError(c *gin.Context, err error, message string) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "status", status, "error", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}
	c.JSON(status, gin.H{"error": message})
}

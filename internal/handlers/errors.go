package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/state"
	"github.com/huangang/teamboard/pkg/response"
)

// toAppError maps a session or facade failure to its HTTP status.
func toAppError(err error) *response.AppError {
	switch {
	case errors.Is(err, state.ErrNotDraggable):
		return response.Wrap(http.StatusForbidden, err)
	case errors.Is(err, state.ErrClosed):
		return response.Wrap(http.StatusServiceUnavailable, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return response.Wrap(http.StatusGatewayTimeout, err)
	}

	switch services.KindOf(err) {
	case services.KindInvalidCredentials:
		return response.Wrap(http.StatusUnauthorized, err)
	case services.KindNotFound:
		return response.Wrap(http.StatusNotFound, err)
	default:
		return response.Wrap(http.StatusInternalServerError, err)
	}
}

func fail(c *gin.Context, err error) {
	response.Error(c, toAppError(err))
}

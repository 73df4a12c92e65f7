package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/middleware"
	"github.com/beatvault/beatvault/internal/model"
	"github.com/beatvault/beatvault/internal/pkg/errcode"
	appErr "github.com/beatvault/beatvault/internal/pkg/errors"
	"github.com/beatvault/beatvault/internal/pkg/response"
	"github.com/beatvault/beatvault/internal/service"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func getCaller(c *gin.Context) service.Caller {
	userID := getUserID(c)
	role, _ := c.Get(middleware.ContextRoleKey)
	roleStr, _ := role.(string)
	return service.Caller{
		UserID:        userID,
		Role:          model.UserRole(roleStr),
		Authenticated: userID != "",
	}
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	if apiErr, ok := backend.AsAPIError(err); ok {
		// Surface the backend's own message with a code matching its
		// status class.
		response.Error(c, backendErrCode(apiErr.Status), apiErr.Message)
		return
	}
	switch {
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, errcode.ErrConflict, err.Error())
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}

func backendErrCode(status int) int {
	switch status {
	case http.StatusUnauthorized:
		return errcode.ErrUnauthorized
	case http.StatusForbidden:
		return errcode.ErrForbidden
	case http.StatusNotFound:
		return errcode.ErrNotFound
	}
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return errcode.ErrInvalid
	}
	return errcode.ErrBackendUnavailable
}

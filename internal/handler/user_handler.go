package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/pkg/response"
)

type UserHandler struct {
	api *backend.Client
}

func NewUserHandler(api *backend.Client) *UserHandler {
	return &UserHandler{api: api}
}

// Me relays the backend profile for the bearer of the token. Profile data
// is authoritative on the backend side and changes rarely, so the gateway
// does not cache it.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.api.CurrentUser(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beatvault/beatvault/internal/model"
	"github.com/beatvault/beatvault/internal/pkg/errcode"
	"github.com/beatvault/beatvault/internal/pkg/response"
	"github.com/beatvault/beatvault/internal/service"
)

type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Me(c *gin.Context) {
	sub, err := h.subscriptions.Subscription(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, sub)
}

func (h *SubscriptionHandler) DownloadStats(c *gin.Context) {
	stats, err := h.subscriptions.DownloadStats(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, stats)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	if err := h.subscriptions.Cancel(c.Request.Context(), getUserID(c)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"canceled": true})
}

func (h *SubscriptionHandler) Reactivate(c *gin.Context) {
	if err := h.subscriptions.Reactivate(c.Request.Context(), getUserID(c)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"reactivated": true})
}

type updateTierRequest struct {
	Tier string `json:"tier"`
}

func (h *SubscriptionHandler) UpdateTier(c *gin.Context) {
	var req updateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	tier := model.SubscriptionTier(req.Tier)
	if tier != model.TierCreator && tier != model.TierPro {
		response.Error(c, errcode.ErrInvalid, "tier must be CREATOR or PRO")
		return
	}
	if err := h.subscriptions.UpdateTier(c.Request.Context(), getUserID(c), tier); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/beatvault/beatvault/internal/pkg/errcode"
	"github.com/beatvault/beatvault/internal/pkg/response"
	"github.com/beatvault/beatvault/internal/service"
)

type DownloadHandler struct {
	downloads *service.DownloadService
}

func NewDownloadHandler(downloads *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloads: downloads}
}

// Gate returns the entitlement decision for a beat without downloading.
// The storefront uses it to decide whether the download button is live and
// which dialog to show otherwise.
func (h *DownloadHandler) Gate(c *gin.Context) {
	decision, err := h.downloads.GateCheck(c.Request.Context(), getCaller(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, decision)
}

type downloadRequest struct {
	BeatID string `json:"beatId"`
}

// Download performs the gated download. A denied gate is a successful
// response carrying the dialog payload, not a transport error; the backend
// still enforces its own rules when the call goes through.
func (h *DownloadHandler) Download(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BeatID == "" {
		response.Error(c, errcode.ErrInvalid, "beatId required")
		return
	}
	result, err := h.downloads.Download(c.Request.Context(), getCaller(c), req.BeatID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *DownloadHandler) History(c *gin.Context) {
	history, err := h.downloads.History(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, history)
}

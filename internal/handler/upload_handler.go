package handler

import (
	"mime"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/beatvault/beatvault/internal/model"
	"github.com/beatvault/beatvault/internal/pkg/errcode"
	"github.com/beatvault/beatvault/internal/pkg/response"
	"github.com/beatvault/beatvault/internal/upload"
)

type UploadHandler struct {
	orchestrator *upload.Orchestrator
}

func NewUploadHandler(orchestrator *upload.Orchestrator) *UploadHandler {
	return &UploadHandler{orchestrator: orchestrator}
}

// Start accepts a multipart file for one asset slot and kicks off the
// upload pipeline. The response carries the session snapshot; the client
// follows up on the status endpoint.
func (h *UploadHandler) Start(c *gin.Context) {
	beatID := c.Param("id")
	assetType := model.AssetType(c.PostForm("type"))
	if !assetType.Valid() {
		response.Error(c, errcode.ErrInvalid, "unknown asset type")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(file.Filename))
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer func() { _ = opened.Close() }()

	snap, err := h.orchestrator.Start(c.Request.Context(), beatID, assetType, file.Filename, mimeType, file.Size, opened)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, snap)
}

func (h *UploadHandler) Status(c *gin.Context) {
	snap, ok := h.orchestrator.Get(c.Param("sessionId"))
	if !ok {
		response.Error(c, errcode.ErrNotFound, "upload session not found")
		return
	}
	response.Success(c, snap)
}

func (h *UploadHandler) Retry(c *gin.Context) {
	snap, err := h.orchestrator.Retry(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, snap)
}

func (h *UploadHandler) Remove(c *gin.Context) {
	if err := h.orchestrator.Remove(c.Param("sessionId")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

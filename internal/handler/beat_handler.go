package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beatvault/beatvault/internal/backend"
	"github.com/beatvault/beatvault/internal/model"
	"github.com/beatvault/beatvault/internal/pkg/errcode"
	"github.com/beatvault/beatvault/internal/pkg/response"
	"github.com/beatvault/beatvault/internal/service"
)

type BeatHandler struct {
	beats *service.BeatService
}

func NewBeatHandler(beats *service.BeatService) *BeatHandler {
	return &BeatHandler{beats: beats}
}

func (h *BeatHandler) List(c *gin.Context) {
	filters := model.BeatFilters{
		Genre:      c.Query("genre"),
		Status:     model.BeatStatus(c.Query("status")),
		ProducerID: c.Query("producerId"),
	}
	if value := c.Query("minBpm"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			filters.MinBPM = parsed
		}
	}
	if value := c.Query("maxBpm"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			filters.MaxBPM = parsed
		}
	}
	beats, err := h.beats.List(c.Request.Context(), filters)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, beats)
}

func (h *BeatHandler) Get(c *gin.Context) {
	detail, err := h.beats.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, detail)
}

type beatRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	BPM         int      `json:"bpm"`
	MusicalKey  string   `json:"musicalKey"`
	Genre       string   `json:"genre"`
	Tags        []string `json:"tags"`
}

func (r beatRequest) toInput() backend.BeatInput {
	return backend.BeatInput{
		Title:       r.Title,
		Description: r.Description,
		BPM:         r.BPM,
		MusicalKey:  r.MusicalKey,
		Genre:       r.Genre,
		Tags:        r.Tags,
	}
}

func (h *BeatHandler) Create(c *gin.Context) {
	var req beatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Title == "" {
		response.Error(c, errcode.ErrInvalid, "title required")
		return
	}
	beatID, err := h.beats.Create(c.Request.Context(), req.toInput())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"beatId": beatID})
}

func (h *BeatHandler) Update(c *gin.Context) {
	var req beatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	beat, err := h.beats.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, beat)
}

func (h *BeatHandler) Publish(c *gin.Context) {
	beat, err := h.beats.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, beat)
}

func (h *BeatHandler) Delete(c *gin.Context) {
	if err := h.beats.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *BeatHandler) RemoveAsset(c *gin.Context) {
	if err := h.beats.RemoveAsset(c.Request.Context(), c.Param("id"), c.Param("assetId")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

package upload

import (
	"time"

	"github.com/beatvault/beatvault/internal/model"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusUploading  Status = "uploading"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Snapshot is the externally visible state of one upload slot. Transitions
// are pure functions so the state machine can be exercised without any
// network or rendering layer behind it.
type Snapshot struct {
	SessionID string          `json:"sessionId"`
	BeatID    string          `json:"beatId"`
	AssetType model.AssetType `json:"assetType"`
	FileName  string          `json:"fileName"`
	Status    Status          `json:"status"`
	Progress  float64         `json:"progress"`
	AssetID   string          `json:"assetId,omitempty"`
	S3Key     string          `json:"s3Key,omitempty"`
	Error     string          `json:"error,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func newSnapshot(sessionID, beatID string, typ model.AssetType, fileName string) Snapshot {
	return Snapshot{
		SessionID: sessionID,
		BeatID:    beatID,
		AssetType: typ,
		FileName:  fileName,
		Status:    StatusIdle,
		UpdatedAt: time.Now(),
	}
}

func (s Snapshot) startUploading() Snapshot {
	s.Status = StatusUploading
	s.Progress = 0
	s.AssetID = ""
	s.S3Key = ""
	s.Error = ""
	s.UpdatedAt = time.Now()
	return s
}

func (s Snapshot) withDestination(assetID, s3Key string) Snapshot {
	s.AssetID = assetID
	s.S3Key = s3Key
	s.UpdatedAt = time.Now()
	return s
}

func (s Snapshot) withProgress(percent float64) Snapshot {
	if s.Status != StatusUploading {
		return s
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.Progress = percent
	s.UpdatedAt = time.Now()
	return s
}

// toProcessing pins progress at 100: the bytes are delivered, only the
// server-side pipeline remains.
func (s Snapshot) toProcessing() Snapshot {
	if s.Status != StatusUploading {
		return s
	}
	s.Status = StatusProcessing
	s.Progress = 100
	s.UpdatedAt = time.Now()
	return s
}

func (s Snapshot) toComplete() Snapshot {
	if s.Status != StatusProcessing {
		return s
	}
	s.Status = StatusComplete
	s.Progress = 100
	s.UpdatedAt = time.Now()
	return s
}

func (s Snapshot) toError(message string) Snapshot {
	if s.Status != StatusUploading && s.Status != StatusProcessing {
		return s
	}
	s.Status = StatusError
	s.Error = message
	s.UpdatedAt = time.Now()
	return s
}

// Terminal reports whether the slot needs no further driving.
func (s Snapshot) Terminal() bool {
	return s.Status == StatusComplete || s.Status == StatusError
}

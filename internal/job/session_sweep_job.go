package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/beatvault/beatvault/internal/upload"
)

// SessionSweepJob reclaims upload sessions that reached a terminal state
// and were never explicitly removed: their spooled files would otherwise
// sit in the spool dir until restart.
type SessionSweepJob struct {
	orchestrator *upload.Orchestrator
	retention    time.Duration
}

func NewSessionSweepJob(orchestrator *upload.Orchestrator, retention time.Duration) *SessionSweepJob {
	return &SessionSweepJob{orchestrator: orchestrator, retention: retention}
}

func (j *SessionSweepJob) Name() string {
	return "upload_session_sweep"
}

func (j *SessionSweepJob) Run(ctx context.Context) error {
	retention := j.retention
	if retention <= 0 {
		retention = time.Hour
	}
	removed := j.orchestrator.SweepTerminal(retention)
	if removed > 0 {
		logutil.GetLogger(ctx).Info("swept terminal upload sessions", zap.Int("removed", removed))
	}
	return nil
}

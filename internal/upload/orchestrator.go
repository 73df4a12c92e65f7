package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/beatvault/beatvault/internal/backend"
	appErr "github.com/beatvault/beatvault/internal/pkg/errors"

	"github.com/beatvault/beatvault/internal/model"
)

// API is the slice of the backend the orchestrator drives.
type API interface {
	PresignAsset(ctx context.Context, beatID string, req backend.PresignRequest) (*backend.PresignResponse, error)
	CompleteAsset(ctx context.Context, beatID, assetID string) error
	GetAsset(ctx context.Context, beatID, assetID string) (*model.Asset, error)
}

type Config struct {
	MaxRetries     int
	RetryBaseDelay time.Duration
	PollInterval   time.Duration
	SpoolDir       string
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.SpoolDir == "" {
		c.SpoolDir = os.TempDir()
	}
	return c
}

type session struct {
	mu        sync.Mutex
	snap      Snapshot
	spoolPath string
	mimeType  string
	size      int64
	cancel    context.CancelFunc
}

func (s *session) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *session) update(fn func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = fn(s.snap)
	return s.snap
}

// Orchestrator sequences presign, transfer, completion notify and status
// polling for upload sessions. It is explicitly constructed and injected;
// each session runs its pipeline on its own goroutine with no state shared
// between slots beyond the registry itself.
type Orchestrator struct {
	api      API
	transfer *Transferer
	cfg      Config
	notifier Notifier

	// OnComplete runs once per session that reaches complete, before the
	// success notification. Used for cache invalidation.
	OnComplete func(ctx context.Context, snap Snapshot)

	mu       sync.Mutex
	sessions map[string]*session
	slots    map[string]string // beatID/assetType -> active session id
}

func NewOrchestrator(api API, transfer *Transferer, cfg Config, notifier Notifier) *Orchestrator {
	if transfer == nil {
		transfer = NewTransferer(nil)
	}
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	return &Orchestrator{
		api:      api,
		transfer: transfer,
		cfg:      cfg.withDefaults(),
		notifier: notifier,
		sessions: make(map[string]*session),
		slots:    make(map[string]string),
	}
}

func slotKey(beatID string, typ model.AssetType) string {
	return beatID + "/" + string(typ)
}

// Start validates the file, spools it locally and launches the pipeline.
// A slot holds at most one active transfer: selecting a new file for the
// same beat/type tears the previous session down first.
func (o *Orchestrator) Start(ctx context.Context, beatID string, typ model.AssetType, fileName, mimeType string, size int64, content io.Reader) (Snapshot, error) {
	if err := Validate(mimeType, size, typ); err != nil {
		return Snapshot{}, err
	}
	spoolPath, err := o.spool(content, size)
	if err != nil {
		return Snapshot{}, err
	}

	sess := &session{
		snap:      newSnapshot(uuid.NewString(), beatID, typ, fileName),
		spoolPath: spoolPath,
		mimeType:  mimeType,
		size:      size,
	}
	snap := sess.update(Snapshot.startUploading)

	o.mu.Lock()
	if prevID, ok := o.slots[slotKey(beatID, typ)]; ok {
		if prev, ok := o.sessions[prevID]; ok {
			o.teardownLocked(prevID, prev)
		}
	}
	o.sessions[snap.SessionID] = sess
	o.slots[slotKey(beatID, typ)] = snap.SessionID
	o.mu.Unlock()

	o.launch(ctx, sess)
	return snap, nil
}

// Retry re-runs the pipeline for a slot stuck in error, reusing the spooled
// file. Only valid while the file is still held.
func (o *Orchestrator) Retry(ctx context.Context, sessionID string) (Snapshot, error) {
	o.mu.Lock()
	sess, ok := o.sessions[sessionID]
	o.mu.Unlock()
	if !ok {
		return Snapshot{}, appErr.ErrNotFound
	}
	sess.mu.Lock()
	if sess.snap.Status != StatusError {
		sess.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: retry is only valid from the error state", appErr.ErrConflict)
	}
	if sess.spoolPath == "" {
		sess.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: original file is no longer held", appErr.ErrConflict)
	}
	sess.snap = sess.snap.startUploading()
	snap := sess.snap
	sess.mu.Unlock()

	o.launch(ctx, sess)
	return snap, nil
}

func (o *Orchestrator) Get(sessionID string) (Snapshot, bool) {
	o.mu.Lock()
	sess, ok := o.sessions[sessionID]
	o.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}
	return sess.snapshot(), true
}

// Remove tears a session down: the poller stops, the spooled file and all
// state are dropped.
func (o *Orchestrator) Remove(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	sess, ok := o.sessions[sessionID]
	if !ok {
		return appErr.ErrNotFound
	}
	o.teardownLocked(sessionID, sess)
	return nil
}

// SweepTerminal drops sessions that reached a terminal state and have not
// been touched within the retention window. Returns how many were removed.
func (o *Orchestrator) SweepTerminal(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)
	o.mu.Lock()
	defer o.mu.Unlock()
	removed := 0
	for id, sess := range o.sessions {
		snap := sess.snapshot()
		if snap.Terminal() && snap.UpdatedAt.Before(cutoff) {
			o.teardownLocked(id, sess)
			removed++
		}
	}
	return removed
}

func (o *Orchestrator) teardownLocked(sessionID string, sess *session) {
	sess.mu.Lock()
	if sess.cancel != nil {
		sess.cancel()
		sess.cancel = nil
	}
	spoolPath := sess.spoolPath
	sess.spoolPath = ""
	sess.mu.Unlock()
	if spoolPath != "" {
		_ = os.Remove(spoolPath)
	}
	delete(o.sessions, sessionID)
	snap := sess.snapshot()
	delete(o.slots, slotKey(snap.BeatID, snap.AssetType))
}

func (o *Orchestrator) spool(content io.Reader, size int64) (string, error) {
	tmp, err := os.CreateTemp(o.cfg.SpoolDir, "beatvault-upload-*")
	if err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}
	written, err := io.Copy(tmp, content)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written != size {
		err = fmt.Errorf("short spool: got %d bytes, want %d", written, size)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// launch detaches the pipeline from the request: the caller's token is
// carried over, the lifetime is the session's own.
func (o *Orchestrator) launch(ctx context.Context, sess *session) {
	runCtx := backend.WithToken(context.Background(), backend.TokenFrom(ctx))
	runCtx, cancel := context.WithCancel(runCtx)
	sess.mu.Lock()
	sess.cancel = cancel
	sess.mu.Unlock()
	go o.run(runCtx, sess)
}

func (o *Orchestrator) run(ctx context.Context, sess *session) {
	snap := sess.snapshot()
	logger := logutil.GetLogger(ctx).With(
		zap.String("session_id", snap.SessionID),
		zap.String("beat_id", snap.BeatID),
		zap.String("asset_type", string(snap.AssetType)),
	)

	presigned, err := o.api.PresignAsset(ctx, snap.BeatID, backend.PresignRequest{
		Type:     snap.AssetType,
		FileName: snap.FileName,
		MimeType: sess.mimeType,
	})
	if err != nil {
		o.fail(ctx, sess, err)
		return
	}
	sess.update(func(s Snapshot) Snapshot {
		return s.withDestination(presigned.AssetID, presigned.S3Key)
	})

	if err := o.transferSpool(ctx, sess, presigned.PresignedURL); err != nil {
		o.fail(ctx, sess, err)
		return
	}

	if err := o.api.CompleteAsset(ctx, snap.BeatID, presigned.AssetID); err != nil {
		o.fail(ctx, sess, err)
		return
	}

	snap = sess.update(Snapshot.toProcessing)
	logger.Info("upload transferred, awaiting processing", zap.String("asset_id", snap.AssetID))
	o.notifier.Info(ctx, fmt.Sprintf("%s uploaded, processing", snap.FileName))

	o.poll(ctx, sess, logger)
}

func (o *Orchestrator) transferSpool(ctx context.Context, sess *session, destURL string) error {
	sess.mu.Lock()
	spoolPath := sess.spoolPath
	sess.mu.Unlock()
	file, err := os.Open(spoolPath)
	if err != nil {
		return fmt.Errorf("open spooled upload: %w", err)
	}
	defer func() { _ = file.Close() }()
	onProgress := func(percent float64) {
		sess.update(func(s Snapshot) Snapshot { return s.withProgress(percent) })
	}
	return o.transfer.PutWithRetry(ctx, destURL, sess.mimeType, file, sess.size, o.cfg.MaxRetries, o.cfg.RetryBaseDelay, onProgress)
}

// poll re-reads the asset status at a fixed interval until a terminal
// status is observed or the session is torn down. Statuses obey the
// pipeline order, so a response ranking below what was already seen is
// stale and skipped.
func (o *Orchestrator) poll(ctx context.Context, sess *session, logger *zap.Logger) {
	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()
	observed := model.ProcessingStatusUploaded
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		snap := sess.snapshot()
		asset, err := o.api.GetAsset(ctx, snap.BeatID, snap.AssetID)
		if err != nil {
			logger.Warn("asset status poll failed", zap.Error(err))
			continue
		}
		if asset.ProcessingStatus.Rank() < observed.Rank() {
			continue
		}
		observed = asset.ProcessingStatus
		switch asset.ProcessingStatus {
		case model.ProcessingStatusReady:
			done := sess.update(Snapshot.toComplete)
			if o.OnComplete != nil {
				o.OnComplete(ctx, done)
			}
			o.notifier.Success(ctx, fmt.Sprintf("%s processed successfully", done.FileName))
			logger.Info("asset ready", zap.String("asset_id", done.AssetID))
			return
		case model.ProcessingStatusFailed:
			done := sess.update(func(s Snapshot) Snapshot { return s.toError("processing failed") })
			o.notifier.Failure(ctx, fmt.Sprintf("%s processing failed", done.FileName))
			logger.Warn("asset processing failed", zap.String("asset_id", done.AssetID))
			return
		}
	}
}

func (o *Orchestrator) fail(ctx context.Context, sess *session, cause error) {
	message := cause.Error()
	if apiErr, ok := backend.AsAPIError(cause); ok {
		message = apiErr.Message
	}
	snap := sess.update(func(s Snapshot) Snapshot { return s.toError(message) })
	o.notifier.Failure(ctx, fmt.Sprintf("%s upload failed: %s", snap.FileName, message))
	logutil.GetLogger(ctx).Warn("upload pipeline failed",
		zap.String("session_id", snap.SessionID),
		zap.String("beat_id", snap.BeatID),
		zap.Error(cause),
	)
}

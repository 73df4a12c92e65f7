package upload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beatvault/beatvault/internal/model"
)

func TestSnapshotHappyPathTransitions(t *testing.T) {
	snap := newSnapshot("s1", "beat-1", model.AssetTypeOriginalAudio, "track.wav")
	require.Equal(t, StatusIdle, snap.Status)

	snap = snap.startUploading()
	require.Equal(t, StatusUploading, snap.Status)
	require.Equal(t, float64(0), snap.Progress)

	snap = snap.withDestination("asset-1", "beats/beat-1/asset-1")
	snap = snap.withProgress(42)
	require.Equal(t, float64(42), snap.Progress)

	snap = snap.toProcessing()
	require.Equal(t, StatusProcessing, snap.Status)
	require.Equal(t, float64(100), snap.Progress)

	snap = snap.toComplete()
	require.Equal(t, StatusComplete, snap.Status)
	require.True(t, snap.Terminal())
}

func TestSnapshotErrorFromUploadingAndProcessing(t *testing.T) {
	snap := newSnapshot("s1", "beat-1", model.AssetTypeCoverImage, "cover.png").startUploading()
	errored := snap.toError("network down")
	require.Equal(t, StatusError, errored.Status)
	require.Equal(t, "network down", errored.Error)

	processing := snap.withDestination("asset-2", "key").toProcessing()
	errored = processing.toError("processing failed")
	require.Equal(t, StatusError, errored.Status)
	require.Equal(t, "processing failed", errored.Error)
}

func TestSnapshotGuardsInvalidTransitions(t *testing.T) {
	idle := newSnapshot("s1", "beat-1", model.AssetTypePreviewAudio, "p.mp3")
	// complete and error are unreachable from idle
	require.Equal(t, StatusIdle, idle.toComplete().Status)
	require.Equal(t, StatusIdle, idle.toError("x").Status)

	// progress only moves while uploading
	processing := idle.startUploading().toProcessing()
	require.Equal(t, float64(100), processing.withProgress(10).Progress)

	// terminal states stay terminal
	complete := idle.startUploading().toProcessing().toComplete()
	require.Equal(t, StatusComplete, complete.toError("late").Status)
}

func TestSnapshotRetryResetsState(t *testing.T) {
	snap := newSnapshot("s1", "beat-1", model.AssetTypeOriginalAudio, "track.wav").
		startUploading().
		withDestination("asset-1", "key").
		toError("boom")

	retried := snap.startUploading()
	require.Equal(t, StatusUploading, retried.Status)
	require.Empty(t, retried.Error)
	require.Empty(t, retried.AssetID)
	require.Equal(t, float64(0), retried.Progress)
	require.Equal(t, "track.wav", retried.FileName)
}

func TestSnapshotProgressClamped(t *testing.T) {
	snap := newSnapshot("s1", "b", model.AssetTypeOriginalAudio, "f").startUploading()
	require.Equal(t, float64(100), snap.withProgress(250).Progress)
	require.Equal(t, float64(0), snap.withProgress(-5).Progress)
}

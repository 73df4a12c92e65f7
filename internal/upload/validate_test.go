package upload

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beatvault/beatvault/internal/model"
)

func TestValidateAudio(t *testing.T) {
	for _, mime := range []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/wave", "audio/x-wav", "audio/aac", "audio/flac"} {
		require.NoError(t, Validate(mime, 100<<20, model.AssetTypeOriginalAudio), mime)
	}
	err := Validate("audio/mpeg", (100<<20)+1, model.AssetTypeOriginalAudio)
	require.Error(t, err)
	require.Contains(t, err.Error(), "100MB")

	err = Validate("audio/ogg", 1024, model.AssetTypePreviewAudio)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid audio format")
}

func TestValidateImage(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/jpg", "image/png", "image/webp"} {
		require.NoError(t, Validate(mime, 10<<20, model.AssetTypeCoverImage), mime)
	}
	err := Validate("image/png", (10<<20)+1, model.AssetTypeThumbnailImage)
	require.Error(t, err)
	require.Contains(t, err.Error(), "10MB")

	err = Validate("image/gif", 1024, model.AssetTypeCoverImage)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid image format")
}

func TestValidateRejectsAudioMimeForImageSlot(t *testing.T) {
	require.Error(t, Validate("audio/mpeg", 1024, model.AssetTypeCoverImage))
}

func TestValidateUnknownTypeAndEmptyFile(t *testing.T) {
	require.Error(t, Validate("audio/mpeg", 1024, model.AssetType("BANNER")))
	require.Error(t, Validate("audio/mpeg", 0, model.AssetTypeOriginalAudio))
}

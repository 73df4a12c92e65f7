package upload

import (
	"fmt"

	appErr "github.com/beatvault/beatvault/internal/pkg/errors"

	"github.com/beatvault/beatvault/internal/model"
)

const (
	maxAudioSize = 100 << 20
	maxImageSize = 10 << 20
)

var audioMimeTypes = map[string]struct{}{
	"audio/mpeg":  {},
	"audio/mp3":   {},
	"audio/wav":   {},
	"audio/wave":  {},
	"audio/x-wav": {},
	"audio/aac":   {},
	"audio/flac":  {},
}

var imageMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// Validate fails fast on files the backend would reject at presign time.
// It is advisory only; the backend re-checks when the upload destination is
// requested.
func Validate(mimeType string, size int64, typ model.AssetType) error {
	switch {
	case typ.IsAudio():
		if _, ok := audioMimeTypes[mimeType]; !ok {
			return fmt.Errorf("%w: invalid audio format %q, supported: MP3, WAV, AAC, FLAC", appErr.ErrInvalid, mimeType)
		}
		if size > maxAudioSize {
			return fmt.Errorf("%w: audio file too large, maximum size: 100MB", appErr.ErrInvalid)
		}
	case typ.IsImage():
		if _, ok := imageMimeTypes[mimeType]; !ok {
			return fmt.Errorf("%w: invalid image format %q, supported: JPEG, PNG, WebP", appErr.ErrInvalid, mimeType)
		}
		if size > maxImageSize {
			return fmt.Errorf("%w: image file too large, maximum size: 10MB", appErr.ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown asset type %q", appErr.ErrInvalid, typ)
	}
	if size <= 0 {
		return fmt.Errorf("%w: empty file", appErr.ErrInvalid)
	}
	return nil
}

package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ProgressFunc receives the transfer progress as a 0-100 percentage.
type ProgressFunc func(percent float64)

// Transferer moves raw file bytes to a presigned destination with a single
// tracked PUT. It never retries; see PutWithRetry.
type Transferer struct {
	client *http.Client
}

func NewTransferer(client *http.Client) *Transferer {
	if client == nil {
		client = &http.Client{}
	}
	return &Transferer{client: client}
}

func (t *Transferer) Put(ctx context.Context, destURL, mimeType string, body io.ReadSeeker, size int64, progress ProgressFunc) error {
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload body: %w", err)
	}
	reader := &progressReader{reader: body, total: size, progress: progress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, destURL, reader)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", mimeType)
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<12))
		detail := strings.TrimSpace(string(raw))
		if detail != "" {
			return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, detail)
		}
		return fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	if progress != nil {
		progress(100)
	}
	return nil
}

type progressReader struct {
	reader   io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.sent += int64(n)
		if r.progress != nil && r.total > 0 {
			percent := float64(r.sent) / float64(r.total) * 100
			if percent > 100 {
				percent = 100
			}
			r.progress(percent)
		}
	}
	return n, err
}

package upload

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransferPut(t *testing.T) {
	content := bytes.Repeat([]byte("beat"), 4096)
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var lastPercent float64
	transferer := NewTransferer(nil)
	err := transferer.Put(context.Background(), server.URL, "audio/wav", bytes.NewReader(content), int64(len(content)), func(p float64) {
		require.GreaterOrEqual(t, p, lastPercent)
		lastPercent = p
	})
	require.NoError(t, err)
	require.Equal(t, content, gotBody)
	require.Equal(t, "audio/wav", gotContentType)
	require.Equal(t, float64(100), lastPercent)
}

func TestTransferPutNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "access denied", http.StatusForbidden)
	}))
	defer server.Close()

	transferer := NewTransferer(nil)
	err := transferer.Put(context.Background(), server.URL, "image/png", bytes.NewReader([]byte("img")), 3, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestTransferPutRewindsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.Equal(t, "content", string(body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	body := bytes.NewReader([]byte("content"))
	_, err := body.Seek(3, io.SeekStart)
	require.NoError(t, err)

	transferer := NewTransferer(nil)
	require.NoError(t, transferer.Put(context.Background(), server.URL, "audio/wav", body, 7, nil))
}

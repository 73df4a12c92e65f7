package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beatvault/beatvault/internal/model"
)

const apiPrefix = "/api/v1"

// APIError carries a non-2xx backend response: the HTTP status plus the
// server-provided message, surfaced to the user as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}

// Client is a typed client for the marketplace backend API. All business
// rules (quotas, subscription state, access control) live behind it; the
// gateway only relays and caches.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type tokenKey struct{}

// WithToken stashes the caller's bearer token so every backend call made on
// behalf of this request is authenticated as the caller.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type PresignRequest struct {
	Type     model.AssetType `json:"type"`
	FileName string          `json:"fileName"`
	MimeType string          `json:"mimeType"`
}

type PresignResponse struct {
	AssetID      string `json:"assetId"`
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
}

func (c *Client) PresignAsset(ctx context.Context, beatID string, req PresignRequest) (*PresignResponse, error) {
	var out PresignResponse
	path := fmt.Sprintf("/beats/%s/assets/presign", url.PathEscape(beatID))
	if err := c.do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompleteAsset(ctx context.Context, beatID, assetID string) error {
	path := fmt.Sprintf("/beats/%s/assets/%s/complete", url.PathEscape(beatID), url.PathEscape(assetID))
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{Status: http.StatusConflict, Message: "completion was not accepted"}
	}
	return nil
}

func (c *Client) GetAsset(ctx context.Context, beatID, assetID string) (*model.Asset, error) {
	var out model.Asset
	path := fmt.Sprintf("/beats/%s/assets/%s", url.PathEscape(beatID), url.PathEscape(assetID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAsset(ctx context.Context, beatID, assetID string) error {
	path := fmt.Sprintf("/beats/%s/assets/%s", url.PathEscape(beatID), url.PathEscape(assetID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

type BeatInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	BPM         int      `json:"bpm,omitempty"`
	MusicalKey  string   `json:"musicalKey,omitempty"`
	Genre       string   `json:"genre,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (c *Client) ListBeats(ctx context.Context, filters model.BeatFilters) ([]model.Beat, error) {
	params := url.Values{}
	if filters.Genre != "" {
		params.Set("genre", filters.Genre)
	}
	if filters.MinBPM > 0 {
		params.Set("minBpm", strconv.Itoa(filters.MinBPM))
	}
	if filters.MaxBPM > 0 {
		params.Set("maxBpm", strconv.Itoa(filters.MaxBPM))
	}
	if filters.Status != "" {
		params.Set("status", string(filters.Status))
	}
	if filters.ProducerID != "" {
		params.Set("producerId", filters.ProducerID)
	}
	var out []model.Beat
	if err := c.do(ctx, http.MethodGet, "/beats", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBeat(ctx context.Context, beatID string) (*model.Beat, error) {
	var out model.Beat
	if err := c.do(ctx, http.MethodGet, "/beats/"+url.PathEscape(beatID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBeat(ctx context.Context, input BeatInput) (string, error) {
	var out struct {
		BeatID string `json:"beatId"`
	}
	if err := c.do(ctx, http.MethodPost, "/beats", nil, input, &out); err != nil {
		return "", err
	}
	return out.BeatID, nil
}

func (c *Client) UpdateBeat(ctx context.Context, beatID string, input BeatInput) (*model.Beat, error) {
	var out model.Beat
	if err := c.do(ctx, http.MethodPut, "/beats/"+url.PathEscape(beatID), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PublishBeat(ctx context.Context, beatID string) (*model.Beat, error) {
	var out model.Beat
	if err := c.do(ctx, http.MethodPost, "/beats/"+url.PathEscape(beatID)+"/publish", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBeat(ctx context.Context, beatID string) error {
	return c.do(ctx, http.MethodDelete, "/beats/"+url.PathEscape(beatID), nil, nil, nil)
}

func (c *Client) Subscription(ctx context.Context) (*model.Subscription, error) {
	var out model.Subscription
	if err := c.do(ctx, http.MethodGet, "/subscriptions/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DownloadStats(ctx context.Context) (*model.DownloadStats, error) {
	var out model.DownloadStats
	if err := c.do(ctx, http.MethodGet, "/subscriptions/download-stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelSubscription(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/subscriptions/cancel", nil, nil, nil)
}

func (c *Client) ReactivateSubscription(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/subscriptions/reactivate", nil, nil, nil)
}

func (c *Client) UpdateSubscriptionTier(ctx context.Context, tier model.SubscriptionTier) error {
	body := map[string]string{"tier": string(tier)}
	return c.do(ctx, http.MethodPost, "/subscriptions/update-tier", nil, body, nil)
}

func (c *Client) DownloadBeat(ctx context.Context, beatID string) (string, error) {
	body := map[string]string{"beatId": beatID}
	var out struct {
		DownloadURL string `json:"downloadUrl"`
	}
	if err := c.do(ctx, http.MethodPost, "/downloads/beat", nil, body, &out); err != nil {
		return "", err
	}
	return out.DownloadURL, nil
}

func (c *Client) DownloadHistory(ctx context.Context) ([]model.DownloadLog, error) {
	var out []model.DownloadLog
	if err := c.do(ctx, http.MethodGet, "/downloads/history", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	endpoint := c.baseURL + apiPrefix + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Message string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		message = payload.Message
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

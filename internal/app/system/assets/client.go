// internal/app/system/assets/client.go
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to the asset service that stores project screenshots.
// Uploads are pass-through: the handler forwards whatever the caller
// sent and returns the asset service's answer unchanged.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates an asset service client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}
}

// Token is a short-lived credential the asset service issues for
// client-side operations.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FetchToken requests a fresh token from the asset service.
func (c *Client) FetchToken(ctx context.Context) (Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/token", nil)
	if err != nil {
		return Token{}, fmt.Errorf("build token request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Token{}, fmt.Errorf("asset service returned status %d", resp.StatusCode)
	}

	var tok Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return Token{}, fmt.Errorf("decode token response: %w", err)
	}

	return tok, nil
}

// UploadResult is the asset service's description of a stored image.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// uploadRequest is the payload forwarded to the asset service. The
// image path carries the data URL or remote URL supplied by the caller.
type uploadRequest struct {
	Path     string `json:"path"`
	PublicID string `json:"publicId"`
}

// UploadImage forwards an image path to the asset service and returns
// the stored asset's URL. Each upload gets a unique object name so
// repeated uploads of the same image never collide. Failures are
// returned to the caller without retry.
func (c *Client) UploadImage(ctx context.Context, path string) (UploadResult, error) {
	if path == "" {
		return UploadResult{}, fmt.Errorf("image path is required")
	}

	body, err := json.Marshal(uploadRequest{
		Path:     path,
		PublicID: "projects/" + uuid.NewString(),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("encode upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return UploadResult{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("asset upload rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return UploadResult{}, fmt.Errorf("asset service returned status %d", resp.StatusCode)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}

	return result, nil
}

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"summagraph/config"
)

// bananaImageSizeModel is the only model that accepts the image_size tier.
const bananaImageSizeModel = "nano-banana-2"

// BananaBackend calls the nano-banana generations endpoint, which wants an aspect ratio
// instead of pixel dimensions.
type BananaBackend struct {
	cfg    config.BananaConfig
	client *http.Client
}

type bananaRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	ResponseFormat string `json:"response_format"`
	AspectRatio    string `json:"aspect_ratio"`
	ImageSize      string `json:"image_size,omitempty"`
}

type bananaResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func NewBananaBackend(cfg config.BananaConfig, client *http.Client) (*BananaBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: provide banana.api_key", ErrMissingAPIKey)
	}
	if cfg.APIURL == "" {
		return nil, errors.New("banana api_url is required")
	}
	if cfg.Model == "" {
		cfg.Model = bananaImageSizeModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &BananaBackend{cfg: cfg, client: client}, nil
}

func (b *BananaBackend) Name() string { return config.BackendBanana }

func (b *BananaBackend) Generate(ctx context.Context, req ImageRequest) (string, error) {
	payload := bananaRequest{
		Model:          b.cfg.Model,
		Prompt:         req.Prompt,
		ResponseFormat: "url",
		AspectRatio:    RatioFor(req.Size),
	}
	if b.cfg.Model == bananaImageSizeModel {
		payload.ImageSize = b.cfg.ImageSize
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("banana generate: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("banana generate: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Backend: b.Name(), StatusCode: resp.StatusCode, Body: truncateBody(respBody)}
	}

	var result bananaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &UpstreamError{Backend: b.Name(), StatusCode: resp.StatusCode, Body: "invalid json: " + truncateBody(respBody)}
	}
	if len(result.Data) == 0 {
		return "", &UpstreamError{Backend: b.Name(), StatusCode: resp.StatusCode, Body: "no image data: " + truncateBody(respBody)}
	}
	if result.Data[0].URL == "" {
		return "", &UpstreamError{Backend: b.Name(), StatusCode: resp.StatusCode, Body: "empty image url"}
	}
	return result.Data[0].URL, nil
}

var _ Backend = (*BananaBackend)(nil)

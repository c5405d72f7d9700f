package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"summagraph/config"
)

// DoubaoBackend calls the Ark images endpoint, which speaks the OpenAI images protocol and
// takes pixel sizes directly.
type DoubaoBackend struct {
	model   string
	quality string
	opts    []option.RequestOption
}

func NewDoubaoBackend(cfg config.DoubaoConfig) (*DoubaoBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: provide doubao.api_key", ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		return nil, errors.New("doubao model is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		// Ark 默认会加水印
		option.WithJSONSet("watermark", cfg.Watermark),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &DoubaoBackend{model: cfg.Model, quality: cfg.Quality, opts: opts}, nil
}

func (d *DoubaoBackend) Name() string { return config.BackendDoubao }

func (d *DoubaoBackend) Generate(ctx context.Context, req ImageRequest) (string, error) {
	client := openai.NewClient(d.opts...)

	params := openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModel(d.model),
		Size:           openai.ImageGenerateParamsSize(req.Size),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
		N:              openai.Int(1),
	}
	if d.quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(d.quality)
	}

	resp, err := client.Images.Generate(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &UpstreamError{Backend: d.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", fmt.Errorf("doubao generate: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", &UpstreamError{Backend: d.Name(), Body: "response has no image data"}
	}
	if resp.Data[0].URL == "" {
		return "", &UpstreamError{Backend: d.Name(), Body: "response has an empty image url"}
	}
	return resp.Data[0].URL, nil
}

var _ Backend = (*DoubaoBackend)(nil)

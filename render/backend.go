package render

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"summagraph/config"
)

var (
	// ErrUnknownBackend is returned for a t2i_backend value no implementation handles.
	ErrUnknownBackend = errors.New("unknown t2i backend")
	// ErrMissingAPIKey is returned when the selected backend has no credentials.
	ErrMissingAPIKey = errors.New("t2i api key missing")
	// ErrDownload wraps any failure while fetching generated image bytes.
	ErrDownload = errors.New("download image")
)

// ImageRequest is one generation call.
type ImageRequest struct {
	Prompt string
	// Size is WIDTHxHEIGHT; each backend converts it to its own representation.
	Size string
}

// Backend generates one image and returns a URL the bytes can be fetched from.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req ImageRequest) (string, error)
}

// UpstreamError reports an unusable response from an image endpoint.
type UpstreamError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s image api: %s", e.Backend, e.Body)
	}
	return fmt.Sprintf("%s image api error: %d %s", e.Backend, e.StatusCode, e.Body)
}

// NewBackend builds the backend selected by cfg.T2IBackend. The selection is fixed for the
// lifetime of the returned value.
func NewBackend(cfg config.Config, client *http.Client) (Backend, error) {
	switch cfg.T2IBackend {
	case config.BackendDoubao:
		return NewDoubaoBackend(cfg.Doubao)
	case config.BackendBanana:
		if client == nil {
			client = &http.Client{Timeout: cfg.Banana.Timeout}
		}
		return NewBananaBackend(cfg.Banana, client)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.T2IBackend)
	}
}

const maxErrorBody = 512

func truncateBody(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}

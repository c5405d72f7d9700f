package render

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"summagraph/config"
)

// Renderer maps an aspect to a size, runs the backend and writes the fetched bytes to disk.
type Renderer struct {
	backend Backend
	fetcher *Fetcher
	sizes   SizeTable
	logger  zerolog.Logger
}

// NewRenderer wires an existing backend and fetcher. A nil size table means DefaultSizes.
func NewRenderer(backend Backend, fetcher *Fetcher, sizes SizeTable, logger zerolog.Logger) *Renderer {
	if sizes == nil {
		sizes = DefaultSizes
	}
	if fetcher == nil {
		fetcher = NewFetcher(nil)
	}
	return &Renderer{backend: backend, fetcher: fetcher, sizes: sizes, logger: logger}
}

// FromConfig builds the configured backend once. Unknown backends and missing credentials fail
// here, before any request is served.
func FromConfig(cfg config.Config, logger zerolog.Logger) (*Renderer, error) {
	backend, err := NewBackend(cfg, nil)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Banana.Timeout
	if cfg.T2IBackend == config.BackendDoubao {
		timeout = cfg.Doubao.Timeout
	}
	fetcher := NewFetcher(&http.Client{Timeout: timeout})
	return NewRenderer(backend, fetcher, DefaultSizes, logger), nil
}

// Backend reports which backend this renderer drives.
func (r *Renderer) Backend() string { return r.backend.Name() }

// Render generates an image for prompt and saves it at targetPath, creating parent directories.
func (r *Renderer) Render(ctx context.Context, prompt, targetPath, aspect string) (string, error) {
	size := r.sizes.SizeFor(aspect)
	start := time.Now()

	url, err := r.backend.Generate(ctx, ImageRequest{Prompt: prompt, Size: size})
	if err != nil {
		return "", err
	}
	r.logger.Debug().
		Str("backend", r.backend.Name()).
		Str("size", size).
		Dur("elapsed", time.Since(start)).
		Msg("image generated")

	data, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return targetPath, nil
}

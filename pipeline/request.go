package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"summagraph/generator"
	"summagraph/guideline"
	"summagraph/render"
)

// MaxImageCount is the largest image_count a request may ask for.
const MaxImageCount = 10

var (
	// ErrEmptyText rejects a request before any step runs.
	ErrEmptyText = errors.New("text is required")
	// ErrInvalidImageCount rejects image_count outside 1..MaxImageCount.
	ErrInvalidImageCount = errors.New("invalid image_count")
)

// Request is one generation job as submitted by a caller.
type Request struct {
	Text       string `json:"text"`
	Language   string `json:"language,omitempty"`
	Layout     string `json:"layout,omitempty"`
	Style      string `json:"style,omitempty"`
	Aspect     string `json:"aspect,omitempty"`
	ImageCount int    `json:"image_count,omitempty"`
}

// Normalize trims fields and fills defaults. It never mutates r.
func (r Request) Normalize() (Request, error) {
	out := Request{
		Text:       strings.TrimSpace(r.Text),
		Language:   string(generator.ParseLanguage(r.Language)),
		Layout:     orDefault(r.Layout, guideline.DefaultLayout),
		Style:      orDefault(r.Style, guideline.DefaultStyle),
		Aspect:     strings.ToLower(orDefault(r.Aspect, render.DefaultAspect)),
		ImageCount: r.ImageCount,
	}
	if out.Text == "" {
		return Request{}, ErrEmptyText
	}
	if out.ImageCount == 0 {
		out.ImageCount = 1
	}
	if out.ImageCount < 1 || out.ImageCount > MaxImageCount {
		return Request{}, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidImageCount, r.ImageCount, MaxImageCount)
	}
	return out, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

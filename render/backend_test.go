package render

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summagraph/config"
)

func TestNewBackendSelection(t *testing.T) {
	cfg := config.Config{
		T2IBackend: config.BackendBanana,
		Banana:     config.BananaConfig{APIKey: "k", APIURL: "http://x", Model: "nano-banana-2"},
		Doubao:     config.DoubaoConfig{APIKey: "k", Model: "seedream"},
	}
	b, err := NewBackend(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, config.BackendBanana, b.Name())

	cfg.T2IBackend = config.BackendDoubao
	b, err = NewBackend(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, config.BackendDoubao, b.Name())

	cfg.T2IBackend = "unknown"
	_, err = NewBackend(cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewBackendMissingKey(t *testing.T) {
	_, err := NewBackend(config.Config{T2IBackend: config.BackendBanana, Banana: config.BananaConfig{APIURL: "http://x"}}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewBackend(config.Config{T2IBackend: config.BackendDoubao, Doubao: config.DoubaoConfig{Model: "m"}}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func newBanana(t *testing.T, url, model string) *BananaBackend {
	t.Helper()
	b, err := NewBananaBackend(config.BananaConfig{
		Model:     model,
		APIKey:    "secret",
		APIURL:    url,
		ImageSize: "2K",
	}, &http.Client{Timeout: 5 * time.Second})
	require.NoError(t, err)
	return b
}

func TestBananaGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"data":[{"url":"https://cdn.example/img.png"}]}`))
	}))
	defer srv.Close()

	url, err := newBanana(t, srv.URL, "nano-banana-2").Generate(context.Background(), ImageRequest{Prompt: "draw", Size: "1280x720"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/img.png", url)
	assert.Equal(t, map[string]any{
		"model":           "nano-banana-2",
		"prompt":          "draw",
		"response_format": "url",
		"aspect_ratio":    "16:9",
		"image_size":      "2K",
	}, got)
}

func TestBananaOmitsImageSizeForOtherModels(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"data":[{"url":"u"}]}`))
	}))
	defer srv.Close()

	_, err := newBanana(t, srv.URL, "nano-banana").Generate(context.Background(), ImageRequest{Prompt: "p", Size: "333x333"})
	require.NoError(t, err)
	assert.NotContains(t, got, "image_size")
	assert.Equal(t, "1:1", got["aspect_ratio"])
}

func TestBananaFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"non-200", http.StatusUnauthorized, `{"error":"bad key"}`, "401"},
		{"no data", http.StatusOK, `{"data":[]}`, "no image data"},
		{"missing data", http.StatusOK, `{}`, "no image data"},
		{"empty url", http.StatusOK, `{"data":[{"url":""}]}`, "empty image url"},
		{"not json", http.StatusOK, `<html>`, "invalid json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newBanana(t, srv.URL, "nano-banana-2").Generate(context.Background(), ImageRequest{Prompt: "p", Size: "1024x1024"})
			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr), "%v", err)
			assert.Equal(t, tc.status, upErr.StatusCode)
			assert.Equal(t, config.BackendBanana, upErr.Backend)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDoubaoGenerate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer ark-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1700000000,"data":[{"url":"https://ark.example/out.png"}]}`))
	}))
	defer srv.Close()

	d, err := NewDoubaoBackend(config.DoubaoConfig{Model: "seedream", APIKey: "ark-key", BaseURL: srv.URL})
	require.NoError(t, err)

	url, err := d.Generate(context.Background(), ImageRequest{Prompt: "draw", Size: "720x1280"})
	require.NoError(t, err)
	assert.Equal(t, "https://ark.example/out.png", url)
	assert.Equal(t, "seedream", got["model"])
	assert.Equal(t, "draw", got["prompt"])
	assert.Equal(t, "720x1280", got["size"])
	assert.Equal(t, "url", got["response_format"])
	assert.Equal(t, false, got["watermark"])
}

func TestDoubaoUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"prompt rejected","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	d, err := NewDoubaoBackend(config.DoubaoConfig{Model: "seedream", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = d.Generate(context.Background(), ImageRequest{Prompt: "p", Size: "1024x1024"})
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr), "%v", err)
	assert.Equal(t, http.StatusBadRequest, upErr.StatusCode)
}

func TestDoubaoEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[]}`))
	}))
	defer srv.Close()

	d, err := NewDoubaoBackend(config.DoubaoConfig{Model: "seedream", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = d.Generate(context.Background(), ImageRequest{Prompt: "p", Size: "1024x1024"})
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Contains(t, upErr.Body, "no image data")
}

func TestDoubaoEmptyURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[{"url":""}]}`))
	}))
	defer srv.Close()

	d, err := NewDoubaoBackend(config.DoubaoConfig{Model: "seedream", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = d.Generate(context.Background(), ImageRequest{Prompt: "p", Size: "1024x1024"})
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, config.BackendDoubao, upErr.Backend)
	assert.Contains(t, upErr.Body, "empty image url")
}

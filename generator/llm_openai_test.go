package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAILLMFromConfigValidates(t *testing.T) {
	_, err := NewOpenAILLMFromConfig(nil)
	assert.Error(t, err)

	_, err = NewOpenAILLMFromConfig(&LLMSettings{Model: "m"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewOpenAILLMFromConfig(&LLMSettings{APIKey: "k"})
	assert.Error(t, err)
}

func TestOpenAILLMComplete(t *testing.T) {
	var body map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"title\":\"ok\"}"}}]}`))
	}))
	defer srv.Close()

	llm, err := NewOpenAILLMFromConfig(&LLMSettings{
		Model:       "doubao-test",
		APIKey:      "secret",
		BaseURL:     srv.URL + "/api/v3",
		Temperature: 0.2,
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)

	out, err := llm.Complete(context.Background(), Prompt{System: "sys", User: "usr"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"ok"}`, out)

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "doubao-test", body["model"])
	assert.InDelta(t, 0.2, body["temperature"], 1e-9)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
}

func TestOpenAILLMCompleteSurfacesUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"auth"}}`))
	}))
	defer srv.Close()

	llm, err := NewOpenAILLMFromConfig(&LLMSettings{Model: "m", APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = llm.Complete(context.Background(), Prompt{System: "s", User: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

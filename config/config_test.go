package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, BackendBanana, cfg.T2IBackend)
	assert.Equal(t, NamingTimestamp, cfg.NamingPolicy)
	assert.Equal(t, "outputs", cfg.OutputRoot)
	assert.Equal(t, []string{"references"}, cfg.ReferencesDirs)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "2K", cfg.Banana.ImageSize)
	assert.Equal(t, 300*time.Second, cfg.Banana.Timeout)
	assert.Equal(t, 30, cfg.Server.RateLimitPerMinute)
}

func TestLoadReadsJSONFile(t *testing.T) {
	path := writeConfig(t, `{
		"t2i_backend": "doubao",
		"output_root": "/tmp/out",
		"llm": {"api_key": "llm-key", "model": "m1"},
		"doubao": {"api_key": "img-key", "timeout": "5s"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendDoubao, cfg.T2IBackend)
	assert.Equal(t, "/tmp/out", cfg.OutputRoot)
	assert.Equal(t, "llm-key", cfg.LLM.APIKey)
	assert.Equal(t, "m1", cfg.LLM.Model)
	assert.Equal(t, "img-key", cfg.Doubao.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Doubao.Timeout)
	// untouched nested keys keep defaults
	assert.Equal(t, "https://ark.cn-beijing.volces.com/api/v3", cfg.LLM.BaseURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"t2i_backend": "banana"}`)
	t.Setenv("SUMMAGRAPH_T2I_BACKEND", "doubao")
	t.Setenv("SUMMAGRAPH_LLM_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendDoubao, cfg.T2IBackend)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `{"t2i_backend": "unknown"}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "unknown")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `{"t2i_backend": `)

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{T2IBackend: BackendBanana, NamingPolicy: NamingOnCollision, OutputRoot: "out"}
	require.NoError(t, base.Validate())

	bad := base
	bad.NamingPolicy = "random"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = base
	bad.OutputRoot = "  "
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestLoadReadsDotEnvLocalWithoutDotEnv(t *testing.T) {
	const key = "SUMMAGRAPH_T2I_BACKEND"
	_, set := os.LookupEnv(key)
	require.False(t, set, "%s must not be set for this test", key)
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte(key+"=doubao\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, BackendDoubao, cfg.T2IBackend)
}

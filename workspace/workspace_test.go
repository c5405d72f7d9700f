package workspace

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Q1 Inflation":       "q1-inflation",
		"abc-123":            "abc-123",
		"  --Hello,  World!": "hello-world",
		"你好":                 FallbackSlug,
		"":                   FallbackSlug,
		"C++ & Go":           "c-go",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	for _, s := range []string{"abc-123", "q1-inflation", FallbackSlug} {
		assert.Equal(t, s, Slugify(Slugify(s)))
	}
}

func TestSlugifyMixedScript(t *testing.T) {
	got := Slugify("你好 World!!")
	assert.Equal(t, "world", got)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9-]+$`), got)
	assert.LessOrEqual(t, len(got), MaxSlugLen)
}

func TestSlugifyTruncates(t *testing.T) {
	title := strings.Repeat("a", 49) + " bcd"
	got := Slugify(title)
	assert.Equal(t, strings.Repeat("a", 49), got)

	got = Slugify(strings.Repeat("word ", 30))
	assert.LessOrEqual(t, len(got), MaxSlugLen)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestPrepareTimestampPolicy(t *testing.T) {
	root := t.TempDir()
	m := NewManager(root, PolicyTimestamp)
	m.now = fixedClock

	ws, err := m.Prepare("Q1 Inflation")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "infographic", "q1-inflation-20250314-092653"), ws.Dir)
	assert.Equal(t, "q1-inflation", ws.Slug)
	assert.DirExists(t, filepath.Join(ws.Dir, "prompts"))
	assert.Equal(t, filepath.Join(ws.Dir, "prompts", "infographic.md"), ws.PromptPath)
	assert.Equal(t, "infographic/q1-inflation-20250314-092653/infographic.png", ws.RelImagePath())

	again, err := m.Prepare("Q1 Inflation")
	require.NoError(t, err)
	assert.Equal(t, ws.Dir+"-2", again.Dir)
}

func TestPrepareOnCollisionPolicy(t *testing.T) {
	root := t.TempDir()
	m := NewManager(root, PolicyOnCollision)
	m.now = fixedClock

	first, err := m.Prepare("Report")
	require.NoError(t, err)
	second, err := m.Prepare("Report")
	require.NoError(t, err)
	third, err := m.Prepare("Report")
	require.NoError(t, err)

	parent := filepath.Join(root, "infographic")
	assert.Equal(t, filepath.Join(parent, "report"), first.Dir)
	assert.Equal(t, filepath.Join(parent, "report-20250314-092653"), second.Dir)
	assert.Equal(t, filepath.Join(parent, "report-20250314-092653-2"), third.Dir)
}

func TestPrepareConcurrentRunsNeverShare(t *testing.T) {
	m := NewManager(t.TempDir(), PolicyTimestamp)
	m.now = fixedClock

	const runs = 16
	dirs := make([]string, runs)
	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws, err := m.Prepare("Same Title")
			if assert.NoError(t, err) {
				dirs[i] = ws.Dir
			}
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, d := range dirs {
		assert.False(t, seen[d], d)
		seen[d] = true
	}
}

func TestWriteArtifacts(t *testing.T) {
	m := NewManager(t.TempDir(), PolicyTimestamp)
	ws, err := m.Prepare("Notes")
	require.NoError(t, err)

	require.NoError(t, ws.WriteArtifacts("源文本", "# Analysis", "Overview"))
	require.NoError(t, ws.WritePrompt("draw it"))

	for path, want := range map[string]string{
		ws.SourcePath:     "源文本",
		ws.AnalysisPath:   "# Analysis",
		ws.StructuredPath: "Overview",
		ws.PromptPath:     "draw it",
	} {
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestPrepareUnwritableRoot(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewManager(blocker, PolicyTimestamp).Prepare("x")
	assert.Error(t, err)
}

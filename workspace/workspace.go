// Package workspace derives per-run output directories and writes the run's artifacts.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxSlugLen caps the slug part of a workspace directory name.
const MaxSlugLen = 50

// FallbackSlug replaces titles with no ASCII letters or digits.
const FallbackSlug = "infographic"

// Policies for naming the leaf directory.
const (
	PolicyTimestamp   = "timestamp"
	PolicyOnCollision = "on-collision"
)

// 所有产出都放在 <root>/infographic 下
const kindDir = "infographic"

const timestampLayout = "20060102-150405"

// maxAttempts bounds the numeric suffix search.
const maxAttempts = 1000

const (
	SourceFile     = "source.md"
	AnalysisFile   = "analysis.md"
	StructuredFile = "structured-content.md"
	PromptFile     = "infographic.md"
	ImageFile      = "infographic.png"
	promptsDir     = "prompts"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a lower-case, hyphen-separated ASCII identifier.
func Slugify(title string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLen {
		s = strings.TrimRight(s[:MaxSlugLen], "-")
	}
	if s == "" {
		return FallbackSlug
	}
	return s
}

// Workspace is one run's output directory.
type Workspace struct {
	Root           string
	Dir            string
	Slug           string
	SourcePath     string
	AnalysisPath   string
	StructuredPath string
	PromptPath     string
	ImagePath      string
}

// Manager creates workspaces under a single output root.
type Manager struct {
	root   string
	policy string
	now    func() time.Time
}

// NewManager returns a Manager. An unknown policy behaves like PolicyTimestamp.
func NewManager(root, policy string) *Manager {
	if policy != PolicyOnCollision {
		policy = PolicyTimestamp
	}
	return &Manager{root: root, policy: policy, now: time.Now}
}

// Root is the output root every workspace lives under.
func (m *Manager) Root() string { return m.root }

// Prepare reserves a fresh directory for title. The leaf is created with an exclusive mkdir, so
// concurrent runs with the same title never share a directory.
func (m *Manager) Prepare(title string) (*Workspace, error) {
	slug := Slugify(title)
	parent := filepath.Join(m.root, kindDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	stamped := slug + "-" + m.now().Format(timestampLayout)
	candidates := []string{stamped}
	if m.policy == PolicyOnCollision {
		candidates = []string{slug, stamped}
	}

	dir, err := reserve(parent, candidates)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, promptsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create prompts dir: %w", err)
	}

	return &Workspace{
		Root:           m.root,
		Dir:            dir,
		Slug:           slug,
		SourcePath:     filepath.Join(dir, SourceFile),
		AnalysisPath:   filepath.Join(dir, AnalysisFile),
		StructuredPath: filepath.Join(dir, StructuredFile),
		PromptPath:     filepath.Join(dir, promptsDir, PromptFile),
		ImagePath:      filepath.Join(dir, ImageFile),
	}, nil
}

// reserve tries each candidate name, then the last one with -2, -3, ... appended.
func reserve(parent string, candidates []string) (string, error) {
	try := func(name string) (string, bool, error) {
		dir := filepath.Join(parent, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, true, nil
		}
		if errors.Is(err, os.ErrExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("create workspace: %w", err)
	}

	for _, name := range candidates {
		if dir, ok, err := try(name); err != nil || ok {
			return dir, err
		}
	}
	last := candidates[len(candidates)-1]
	for n := 2; n <= maxAttempts; n++ {
		if dir, ok, err := try(fmt.Sprintf("%s-%d", last, n)); err != nil || ok {
			return dir, err
		}
	}
	return "", fmt.Errorf("create workspace: no free name for %q", last)
}

// WriteArtifacts persists the source text and both analysis documents.
func (w *Workspace) WriteArtifacts(source, analysis, structured string) error {
	files := []struct {
		path, body string
	}{
		{w.SourcePath, source},
		{w.AnalysisPath, analysis},
		{w.StructuredPath, structured},
	}
	for _, f := range files {
		if err := writeText(f.path, f.body); err != nil {
			return err
		}
	}
	return nil
}

// WritePrompt persists the composed image prompt.
func (w *Workspace) WritePrompt(prompt string) error {
	return writeText(w.PromptPath, prompt)
}

// RelImagePath is the image path relative to the output root, using forward slashes.
func (w *Workspace) RelImagePath() string {
	rel, err := filepath.Rel(w.Root, w.ImagePath)
	if err != nil {
		return filepath.ToSlash(w.ImagePath)
	}
	return filepath.ToSlash(rel)
}

func writeText(path, body string) error {
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

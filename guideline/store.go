// Package guideline looks up layout and style reference documents that are merged into the
// image prompt.
package guideline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Category names a guideline directory under the references root.
type Category string

const (
	Layouts Category = "layouts"
	Styles  Category = "styles"
)

// Defaults applied when a request leaves layout or style blank.
const (
	DefaultLayout = "bento-grid"
	DefaultStyle  = "craft-handmade"
)

const (
	defaultTTL           = 5 * time.Minute
	cacheCleanupInterval = 15 * time.Minute
)

// Lookup returns the guideline text for an id, or "" when there is none.
type Lookup interface {
	Get(category Category, id string) string
}

// FileStore reads <dir>/<category>/<id>.md from the first references directory that exists.
type FileStore struct {
	dirs   []string
	cache  *cache.Cache
	logger zerolog.Logger
}

// NewFileStore keeps the candidate directories in priority order. A leading "~" is expanded.
func NewFileStore(dirs []string, logger zerolog.Logger) *FileStore {
	expanded := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		expanded = append(expanded, expandHome(d))
	}
	return &FileStore{
		dirs:   expanded,
		cache:  cache.New(defaultTTL, cacheCleanupInterval),
		logger: logger,
	}
}

// Dir returns the first configured directory that exists.
func (s *FileStore) Dir() (string, bool) {
	for _, d := range s.dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			return d, true
		}
	}
	return "", false
}

// Get implements Lookup. Missing directories, unknown ids and unreadable files all yield "".
func (s *FileStore) Get(category Category, id string) string {
	key := string(category) + "/" + id
	if v, ok := s.cache.Get(key); ok {
		return v.(string)
	}

	path, err := s.path(category, id)
	if err != nil {
		s.logger.Debug().Err(err).Str("category", string(category)).Str("id", id).Msg("guideline lookup skipped")
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", path).Msg("read guideline failed")
		}
		return ""
	}

	content := strings.TrimSpace(string(data))
	s.cache.Set(key, content, cache.DefaultExpiration)
	return content
}

func (s *FileStore) path(category Category, id string) (string, error) {
	if category != Layouts && category != Styles {
		return "", fmt.Errorf("unknown guideline category %q", category)
	}
	if !validID(id) {
		return "", fmt.Errorf("invalid guideline id %q", id)
	}
	dir, ok := s.Dir()
	if !ok {
		return "", errors.New("no references directory found")
	}
	return filepath.Join(dir, string(category), id+".md"), nil
}

// validID keeps ids inside their category directory.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

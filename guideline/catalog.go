package guideline

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Option describes one selectable layout or style.
type Option struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Catalog lists every layout and style the references directory offers.
type Catalog struct {
	Layouts []Option `json:"layouts"`
	Styles  []Option `json:"styles"`
}

// Catalog scans the references directory. Without one, the built-in list is returned.
func (s *FileStore) Catalog() Catalog {
	dir, ok := s.Dir()
	if !ok {
		return builtinCatalog()
	}
	return Catalog{
		Layouts: s.scan(filepath.Join(dir, string(Layouts))),
		Styles:  s.scan(filepath.Join(dir, string(Styles))),
	}
}

func (s *FileStore) scan(dir string) []Option {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)

	opts := make([]Option, 0, len(matches))
	for _, path := range matches {
		id := strings.TrimSuffix(filepath.Base(path), ".md")
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("skip unreadable guideline")
			continue
		}
		title, summary := titleAndSummary(data)
		if title == "" {
			title = id
		}
		opts = append(opts, Option{ID: id, Title: title, Summary: summary})
	}
	return opts
}

// titleAndSummary returns the first level-1 heading and the first line of the first paragraph.
func titleAndSummary(src []byte) (string, string) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var title, summary string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = strings.TrimSpace(inlineText(node, src))
			}
		case *ast.Paragraph:
			if summary == "" && node.Lines().Len() > 0 {
				line := node.Lines().At(0)
				summary = strings.TrimSpace(string(line.Value(src)))
			}
		}
		if title != "" && summary != "" {
			break
		}
	}
	return title, summary
}

func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.WriteString(inlineText(c, src))
	}
	return sb.String()
}

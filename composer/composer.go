// Package composer merges analysis output and guideline documents into the final image prompt.
package composer

import (
	_ "embed"
	"strings"

	"summagraph/generator"
	"summagraph/guideline"
)

//go:embed base-prompt.md
var baseTemplate string

// 找不到参考文档时使用的兜底描述
const (
	FallbackLayoutGuideline = "Use an organized grid with clear hierarchy: group related points into sections, lead with the title, and keep reading order obvious."
	FallbackStyleGuideline  = "Clean, professional visual style with a restrained palette, consistent iconography and legible typography."
)

// Composer renders prompts from one fixed template.
type Composer struct {
	guides   guideline.Lookup
	template string
}

// New returns a Composer backed by the embedded template.
func New(guides guideline.Lookup) *Composer {
	return &Composer{guides: guides, template: baseTemplate}
}

// Compose fills every placeholder of the template. The output depends only on its inputs and
// the guideline documents.
func (c *Composer) Compose(layout, style string, lang generator.Language, aspect, content string, labels []string) string {
	r := strings.NewReplacer(
		"{{LAYOUT}}", layout,
		"{{STYLE}}", style,
		"{{ASPECT_RATIO}}", aspect,
		"{{LANGUAGE}}", lang.DisplayName(),
		"{{LAYOUT_GUIDELINES}}", c.guideline(guideline.Layouts, layout, FallbackLayoutGuideline),
		"{{STYLE_GUIDELINES}}", c.guideline(guideline.Styles, style, FallbackStyleGuideline),
		"{{CONTENT}}", strings.TrimSpace(content),
		"{{TEXT_LABELS}}", LabelBlock(labels),
	)
	return strings.TrimSpace(r.Replace(c.template))
}

func (c *Composer) guideline(category guideline.Category, id, fallback string) string {
	if c.guides == nil {
		return fallback
	}
	if text := strings.TrimSpace(c.guides.Get(category, id)); text != "" {
		return text
	}
	return fallback
}

// LabelBlock renders one "- label" line per label. No labels gives "".
func LabelBlock(labels []string) string {
	lines := make([]string, 0, len(labels))
	for _, l := range labels {
		lines = append(lines, "- "+l)
	}
	return strings.Join(lines, "\n")
}

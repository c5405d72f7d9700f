package generator

import "strings"

// Language is the target language for every piece of generated text.
type Language string

const (
	LanguageZH Language = "zh"
	LanguageEN Language = "en"
)

// ParseLanguage maps free-form input to a supported language; anything unknown is zh.
func ParseLanguage(s string) Language {
	if Language(strings.ToLower(strings.TrimSpace(s))) == LanguageEN {
		return LanguageEN
	}
	return LanguageZH
}

// DisplayName is the natural-language name embedded in prompts.
func (l Language) DisplayName() string {
	if l == LanguageEN {
		return "English"
	}
	return "中文"
}

// DefaultTitle is used when the model omits a title.
const DefaultTitle = "infographic"

// Analysis is the structured result of one analysis call.
type Analysis struct {
	Title             string   `json:"title"`
	AnalysisMarkdown  string   `json:"analysis_markdown"`
	StructuredContent string   `json:"structured_content_markdown"`
	TextLabels        []string `json:"text_labels"`
}

package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const excerptRunes = 100

// The closing fence must start a line, so fences inside JSON string values do not end the block.
var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\n\\s*```[ \\t]*(?:\\n|$)")

// ParseError reports model output that could not be decoded into an analysis object.
type ParseError struct {
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm response is not a valid JSON object: %v (response starts with %q)", e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractJSON picks the JSON source out of a model response: the interior of a ```json fence,
// else the span from the first '{' to the last '}', else the whole text.
func ExtractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

type rawAnalysis struct {
	Title             string `json:"title"`
	AnalysisMarkdown  string `json:"analysis_markdown"`
	StructuredContent string `json:"structured_content_markdown"`
	TextLabels        []any  `json:"text_labels"`
}

// PostProcess 解析模型输出并补全缺省字段。
func PostProcess(raw string) (Analysis, error) {
	var parsed *rawAnalysis
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &parsed); err != nil {
		return Analysis{}, &ParseError{Excerpt: excerpt(raw), Err: err}
	}
	if parsed == nil {
		return Analysis{}, &ParseError{Excerpt: excerpt(raw), Err: fmt.Errorf("null object")}
	}

	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = DefaultTitle
	}
	return Analysis{
		Title:             title,
		AnalysisMarkdown:  parsed.AnalysisMarkdown,
		StructuredContent: parsed.StructuredContent,
		TextLabels:        labelStrings(parsed.TextLabels),
	}, nil
}

// labelStrings keeps numeric labels such as 3.2 as written instead of rejecting the object.
func labelStrings(items []any) []string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		switch v := item.(type) {
		case nil:
			continue
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			s = fmt.Sprint(v)
		}
		if s = strings.TrimSpace(s); s != "" {
			labels = append(labels, s)
		}
	}
	return labels
}

func excerpt(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > excerptRunes {
		return string(r[:excerptRunes])
	}
	return string(r)
}

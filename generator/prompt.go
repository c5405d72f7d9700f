package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System string
	User   string
}

const analysisSystemPrompt = "你是严谨的内容编辑。"

// BuildAnalysisPrompt asks the model to turn source text into an infographic design brief.
// The source text is embedded verbatim.
func BuildAnalysisPrompt(source string, lang Language) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a world-class instructional designer and infographic expert. ")
	sb.WriteString("Turn the user's source text into a structured infographic design plan.\n\n")
	sb.WriteString("### Principles\n")
	sb.WriteString("1. Keep data verbatim: every statistic, number, quotation and key term must stay exactly as written. Never round, summarize or rewrite numbers.\n")
	sb.WriteString("2. Think visually: decide how the information splits into blocks and which parts become charts, icons or hierarchy.\n")
	sb.WriteString("3. Teach: define a clear learning objective so a viewer grasps the core idea quickly.\n\n")
	sb.WriteString("### Output\n")
	sb.WriteString(fmt.Sprintf("Return exactly one strict JSON object and nothing else. All text must be written in %s. Fields:\n", lang.DisplayName()))
	sb.WriteString(`- "title": a catchy, accurate title` + "\n")
	sb.WriteString(`- "analysis_markdown": learning objectives, the key data points listed verbatim, and a map of visual opportunities` + "\n")
	sb.WriteString(`- "structured_content_markdown": an Overview followed by sections; each section has Key Concept, Content (verbatim), Visual Element and Text Labels` + "\n")
	sb.WriteString(`- "text_labels": an array of short strings to print directly on the image (headings, labels, key values)` + "\n\n")
	sb.WriteString("### Source text:\n")
	sb.WriteString(source)
	sb.WriteString("\n")

	return Prompt{
		System: analysisSystemPrompt,
		User:   sb.String(),
	}
}

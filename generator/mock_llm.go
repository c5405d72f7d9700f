package generator

import (
	"context"
	"encoding/json"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
// It answers with a fenced JSON analysis whose structured content quotes the source text.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	source := prompt.User
	if _, after, ok := strings.Cut(source, "### Source text:\n"); ok {
		source = strings.TrimSpace(after)
	}
	title := firstLine(source)

	payload, err := json.Marshal(Analysis{
		Title:             title,
		AnalysisMarkdown:  "## Learning objective\n\n" + title,
		StructuredContent: "## Overview\n\n" + source,
		TextLabels:        []string{title},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Here is the plan:\n\n```json\n")
	sb.Write(payload)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	line = strings.TrimSpace(line)
	if r := []rune(line); len(r) > 40 {
		line = string(r[:40])
	}
	if line == "" {
		return DefaultTitle
	}
	return line
}

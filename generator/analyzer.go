package generator

import (
	"context"
	"errors"
)

// Analyzer turns source text into an Analysis with one LLM call. Transport failures are not retried.
type Analyzer struct {
	llm LLMClient
}

func NewAnalyzer(llm LLMClient) (*Analyzer, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Analyzer{llm: llm}, nil
}

// Analyze 构建提示词、调用模型并解析 JSON。
func (a *Analyzer) Analyze(ctx context.Context, source string, lang Language) (Analysis, error) {
	raw, err := a.llm.Complete(ctx, BuildAnalysisPrompt(source, lang))
	if err != nil {
		return Analysis{}, err
	}
	return PostProcess(raw)
}

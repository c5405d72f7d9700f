package pipeline

import (
	"time"

	"summagraph/generator"
)

// TotalSteps is fixed: analyze, compose, render, finalize.
const TotalSteps = 4

// Step numbers, in execution order.
const (
	StepAnalyze  = 1
	StepCompose  = 2
	StepRender   = 3
	StepFinalize = 4
)

var stepNames = map[int]string{
	StepAnalyze:  "analyze",
	StepCompose:  "compose",
	StepRender:   "render",
	StepFinalize: "finalize",
}

var stepPercents = map[int]int{
	StepAnalyze:  10,
	StepCompose:  40,
	StepRender:   70,
	StepFinalize: 100,
}

var stepMessages = map[generator.Language]map[int]string{
	generator.LanguageEN: {
		StepAnalyze:  "Analyzing text structure...",
		StepCompose:  "Building prompt and workspace...",
		StepRender:   "Generating artwork...",
		StepFinalize: "Complete!",
	},
	generator.LanguageZH: {
		StepAnalyze:  "正在分析文本结构...",
		StepCompose:  "正在构建提示词与工作目录...",
		StepRender:   "正在生成图片...",
		StepFinalize: "完成！",
	},
}

// Progress is one side-channel event. Observers must not block.
type Progress struct {
	Step      int       `json:"step"`
	Total     int       `json:"total"`
	Percent   int       `json:"percent"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Observer receives progress events for a single run.
type Observer interface {
	OnProgress(Progress)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Progress)

func (f ObserverFunc) OnProgress(p Progress) { f(p) }

// StepName returns the short name of a step, or "" for an unknown step.
func StepName(step int) string { return stepNames[step] }

func newProgress(step int, lang generator.Language, now time.Time) Progress {
	return Progress{
		Step:      step,
		Total:     TotalSteps,
		Percent:   stepPercents[step],
		Message:   stepMessages[lang][step],
		Timestamp: now,
	}
}

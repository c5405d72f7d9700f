// Package pipeline runs the fixed four-step infographic job: analyze, compose, render, finalize.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"summagraph/generator"
	"summagraph/workspace"
)

// Analyzer turns source text into a structured analysis.
type Analyzer interface {
	Analyze(ctx context.Context, source string, lang generator.Language) (generator.Analysis, error)
}

// Composer builds the image prompt.
type Composer interface {
	Compose(layout, style string, lang generator.Language, aspect, content string, labels []string) string
}

// Workspaces reserves output directories.
type Workspaces interface {
	Prepare(title string) (*workspace.Workspace, error)
}

// Renderer writes an image for prompt at targetPath.
type Renderer interface {
	Render(ctx context.Context, prompt, targetPath, aspect string) (string, error)
}

// StepError identifies the step that aborted a run.
type StepError struct {
	Step int
	Name string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d/%d (%s): %v", e.Step, TotalSteps, e.Name, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Deps are the collaborators of an Orchestrator. Metrics is optional.
type Deps struct {
	Analyzer   Analyzer
	Composer   Composer
	Workspaces Workspaces
	Renderer   Renderer
	Metrics    *Metrics
	Logger     zerolog.Logger
}

// Orchestrator runs requests one step at a time. It is safe for concurrent use as long as its
// collaborators are.
type Orchestrator struct {
	deps Deps
	now  func() time.Time
}

func New(deps Deps) *Orchestrator {
	return &Orchestrator{deps: deps, now: time.Now}
}

// Generate runs the whole pipeline for req. Progress events go to obs, which may be nil. Any
// step failure aborts the run and returns a *StepError; files already written stay on disk.
func (o *Orchestrator) Generate(ctx context.Context, req Request, obs Observer) (Result, error) {
	req, err := req.Normalize()
	if err != nil {
		return Result{}, err
	}

	id := uuid.NewString()
	r := &run{
		o:      o,
		req:    req,
		lang:   generator.ParseLanguage(req.Language),
		obs:    obs,
		id:     id,
		start:  o.now(),
		logger: o.deps.Logger.With().Str("run_id", id).Logger(),
	}

	if m := o.deps.Metrics; m != nil {
		m.Active.Inc()
		defer m.Active.Dec()
	}

	res, err := r.execute(ctx)
	if m := o.deps.Metrics; m != nil {
		status := "success"
		if err != nil {
			status = "failure"
		}
		m.Runs.WithLabelValues(status).Inc()
	}
	return res, err
}

type run struct {
	o      *Orchestrator
	req    Request
	lang   generator.Language
	obs    Observer
	id     string
	start  time.Time
	logger zerolog.Logger

	analysis generator.Analysis
	ws       *workspace.Workspace
	prompt   string
}

func (r *run) execute(ctx context.Context) (Result, error) {
	if err := r.step(ctx, StepAnalyze, r.analyze); err != nil {
		return Result{}, err
	}
	if err := r.step(ctx, StepCompose, r.compose); err != nil {
		return Result{}, err
	}
	if err := r.step(ctx, StepRender, r.render); err != nil {
		return Result{}, err
	}

	var res Result
	err := r.step(ctx, StepFinalize, func(context.Context) error {
		res = r.result()
		return nil
	})
	return res, err
}

// step emits the progress event for n, runs fn and records how long it took.
func (r *run) step(ctx context.Context, n int, fn func(context.Context) error) error {
	name := StepName(n)
	if r.obs != nil {
		r.obs.OnProgress(newProgress(n, r.lang, r.o.now()))
	}
	r.logger.Info().Int("step", n).Str("name", name).Msg("step started")

	begin := time.Now()
	err := fn(ctx)
	elapsed := time.Since(begin)
	if m := r.o.deps.Metrics; m != nil {
		m.StepDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	}

	if err != nil {
		r.logger.Error().Err(err).Int("step", n).Str("name", name).Dur("elapsed", elapsed).Msg("step failed")
		return &StepError{Step: n, Name: name, Err: err}
	}
	r.logger.Info().Int("step", n).Str("name", name).Dur("elapsed", elapsed).Msg("step finished")
	return nil
}

func (r *run) analyze(ctx context.Context) error {
	a, err := r.o.deps.Analyzer.Analyze(ctx, r.req.Text, r.lang)
	if err != nil {
		return err
	}
	r.analysis = a
	return nil
}

func (r *run) compose(context.Context) error {
	ws, err := r.o.deps.Workspaces.Prepare(r.analysis.Title)
	if err != nil {
		return err
	}
	r.ws = ws
	if err := ws.WriteArtifacts(r.req.Text, r.analysis.AnalysisMarkdown, r.analysis.StructuredContent); err != nil {
		return err
	}
	r.prompt = r.o.deps.Composer.Compose(r.req.Layout, r.req.Style, r.lang, r.req.Aspect, r.analysis.StructuredContent, r.analysis.TextLabels)
	return ws.WritePrompt(r.prompt)
}

func (r *run) render(ctx context.Context) error {
	_, err := r.o.deps.Renderer.Render(ctx, r.prompt, r.ws.ImagePath, r.req.Aspect)
	return err
}

func (r *run) result() Result {
	return Result{
		RunID:               r.id,
		Title:               r.analysis.Title,
		Layout:              r.req.Layout,
		Style:               r.req.Style,
		Aspect:              r.req.Aspect,
		Language:            string(r.lang),
		OutputDir:           r.ws.Dir,
		ImagePath:           r.ws.ImagePath,
		ImageURL:            OutputsPrefix + r.ws.RelImagePath(),
		SourcePath:          r.ws.SourcePath,
		AnalysisPath:        r.ws.AnalysisPath,
		StructuredPath:      r.ws.StructuredPath,
		PromptPath:          r.ws.PromptPath,
		ImageCountRequested: r.req.ImageCount,
		DurationMS:          r.o.now().Sub(r.start).Milliseconds(),
	}
}

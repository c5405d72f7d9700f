package pipeline

// Result is the caller-visible outcome of a successful run.
type Result struct {
	RunID               string `json:"run_id"`
	Title               string `json:"title"`
	Layout              string `json:"layout"`
	Style               string `json:"style"`
	Aspect              string `json:"aspect"`
	Language            string `json:"language"`
	OutputDir           string `json:"output_dir"`
	ImagePath           string `json:"image_path"`
	ImageURL            string `json:"image_url"`
	SourcePath          string `json:"source_path"`
	AnalysisPath        string `json:"analysis_path"`
	StructuredPath      string `json:"structured_content_path"`
	PromptPath          string `json:"prompt_path"`
	ImageCountRequested int    `json:"image_count_requested"`
	DurationMS          int64  `json:"duration_ms"`
}

// OutputsPrefix is the URL prefix under which the output root is served.
const OutputsPrefix = "/outputs/"

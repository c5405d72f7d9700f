package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"summagraph/app"
	"summagraph/pipeline"
)

var genOpts struct {
	Text       string
	File       string
	Language   string
	Layout     string
	Style      string
	Aspect     string
	OutputRoot string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one infographic from text",
	Long: `Reads source text from --text, --file or stdin, runs the pipeline and prints the result
as JSON on stdout. Progress goes to stderr.`,
	RunE: generateCommand,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genOpts.Text, "text", "t", "", "source text")
	f.StringVarP(&genOpts.File, "file", "f", "", "read source text from a file ('-' for stdin)")
	f.StringVarP(&genOpts.Language, "lang", "l", "", "output language: zh or en")
	f.StringVar(&genOpts.Layout, "layout", "", "layout id")
	f.StringVar(&genOpts.Style, "style", "", "style id")
	f.StringVarP(&genOpts.Aspect, "aspect", "a", "", "landscape, portrait or square")
	f.StringVarP(&genOpts.OutputRoot, "output-root", "o", "", "override output_root")
}

func generateCommand(cmd *cobra.Command, _ []string) error {
	text, err := readSource(genOpts.Text, genOpts.File, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if genOpts.OutputRoot != "" {
		cfg.OutputRoot = genOpts.OutputRoot
	}
	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	res, err := a.Orchestrator.Generate(cmd.Context(), pipeline.Request{
		Text:     text,
		Language: genOpts.Language,
		Layout:   genOpts.Layout,
		Style:    genOpts.Style,
		Aspect:   genOpts.Aspect,
	}, pipeline.ObserverFunc(func(p pipeline.Progress) {
		fmt.Fprintf(stderr, "[%d/%d] %3d%% %s\n", p.Step, p.Total, p.Percent, p.Message)
	}))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

// readSource picks --text, then --file, then piped stdin.
func readSource(text, file string, stdin io.Reader) (string, error) {
	switch {
	case strings.TrimSpace(text) != "":
		return text, nil
	case file == "-":
		return readAll(stdin)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read source file: %w", err)
		}
		return string(data), nil
	case isStdin():
		return readAll(stdin)
	default:
		return "", errors.New("provide --text, --file or pipe text on stdin")
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

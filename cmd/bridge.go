package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"summagraph/pipeline"
)

// bridgeCmd serves callers that spawn the binary per request: one JSON request on stdin, one
// JSON response on stdout.
var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Read a JSON request on stdin and write a JSON response on stdout",
	RunE:  bridgeCommand,
}

type bridgeRequest struct {
	Text       string `json:"text"`
	Language   string `json:"language"`
	Layout     string `json:"layout"`
	Style      string `json:"style"`
	Aspect     string `json:"aspect"`
	ImageCount int    `json:"imageCount"`
}

type bridgeImage struct {
	URL    string `json:"url"`
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Layout string `json:"layout"`
	Aspect string `json:"aspect"`
}

type bridgeData struct {
	Images []bridgeImage `json:"images"`
	Layout string        `json:"layout"`
	Aspect string        `json:"aspect"`
	Title  string        `json:"title"`
}

type bridgeResponse struct {
	Success bool        `json:"success"`
	Data    *bridgeData `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// errBridgeFailed is returned after the failure response has been written.
var errBridgeFailed = errors.New("bridge request failed")

func bridgeCommand(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	resp := runBridge(cmd.Context(), cmd.InOrStdin(), func(ctx context.Context, req pipeline.Request) (pipeline.Result, error) {
		a, err := loadApp()
		if err != nil {
			return pipeline.Result{}, err
		}
		return a.Orchestrator.Generate(ctx, req, nil)
	})
	if err := json.NewEncoder(out).Encode(resp); err != nil {
		return err
	}
	if !resp.Success {
		return errBridgeFailed
	}
	return nil
}

type generateFunc func(ctx context.Context, req pipeline.Request) (pipeline.Result, error)

func runBridge(ctx context.Context, in io.Reader, generate generateFunc) bridgeResponse {
	var br bridgeRequest
	if err := json.NewDecoder(in).Decode(&br); err != nil {
		return bridgeResponse{Error: fmt.Sprintf("invalid request: %v", err)}
	}
	res, err := generate(ctx, pipeline.Request{
		Text:       br.Text,
		Language:   br.Language,
		Layout:     br.Layout,
		Style:      br.Style,
		Aspect:     br.Aspect,
		ImageCount: br.ImageCount,
	})
	if err != nil {
		return bridgeResponse{Error: err.Error()}
	}
	return bridgeResponse{
		Success: true,
		Data: &bridgeData{
			Images: []bridgeImage{{
				URL:    res.ImageURL,
				Index:  0,
				Title:  res.Title,
				Layout: res.Layout,
				Aspect: res.Aspect,
			}},
			Layout: res.Layout,
			Aspect: res.Aspect,
			Title:  res.Title,
		},
	}
}

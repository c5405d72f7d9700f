package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"summagraph/generator"
	"summagraph/guideline"
	"summagraph/pipeline"
	"summagraph/render"
)

var errBadJSON = errors.New("invalid request body")

type healthResp struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type optionDefaults struct {
	Layout   string `json:"layout"`
	Style    string `json:"style"`
	Aspect   string `json:"aspect"`
	Language string `json:"language"`
}

type optionsResp struct {
	guideline.Catalog
	Aspects   []string       `json:"aspects"`
	Languages []string       `json:"languages"`
	Defaults  optionDefaults `json:"defaults"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResp{Status: "ok", Timestamp: time.Now().UTC()})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResp{
		Catalog:   s.catalog.Catalog(),
		Aspects:   []string{render.AspectLandscape, render.AspectPortrait, render.AspectSquare},
		Languages: []string{string(generator.LanguageZH), string(generator.LanguageEN)},
		Defaults: optionDefaults{
			Layout:   guideline.DefaultLayout,
			Style:    guideline.DefaultStyle,
			Aspect:   render.DefaultAspect,
			Language: string(generator.LanguageZH),
		},
	})
}

// decodeRequest reads and validates the body. Validation happens here so bad input is a 400
// before any pipeline work starts.
func decodeRequest(r *http.Request) (pipeline.Request, error) {
	var req pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, err
		}
		return req, fmt.Errorf("%w: %v", errBadJSON, err)
	}
	if _, err := req.Normalize(); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	ctx, cancel := s.generateContext(r.Context())
	defer cancel()

	res, err := s.gen.Generate(ctx, req, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("generate failed")
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{OK: true, Data: res})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

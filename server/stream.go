package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"summagraph/pipeline"
)

// SSE event names.
const (
	eventStart    = "start"
	eventProgress = "progress"
	eventComplete = "complete"
	eventError    = "error"
)

type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s *sseWriter) send(event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(map[string]string{"error": err.Error()})
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data)
	s.flusher.Flush()
}

// handleGenerateStream runs the pipeline and streams progress as server-sent events. The
// observer is called on the handler goroutine, so writes never interleave.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}
	req, err := decodeRequest(r)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sse := &sseWriter{w: w, flusher: flusher}
	sse.send(eventStart, map[string]int{"total": pipeline.TotalSteps})

	ctx, cancel := s.generateContext(r.Context())
	defer cancel()

	res, err := s.gen.Generate(ctx, req, pipeline.ObserverFunc(func(p pipeline.Progress) {
		sse.send(eventProgress, p)
	}))
	if err != nil {
		s.logger.Error().Err(err).Msg("generate stream failed")
		sse.send(eventError, envelope{OK: false, Error: err.Error()})
		return
	}
	sse.send(eventComplete, envelope{OK: true, Data: res})
}

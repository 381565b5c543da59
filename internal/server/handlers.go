package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bigvalue/pkg/buildinfo"
	"github.com/matzehuels/bigvalue/pkg/errors"
	"github.com/matzehuels/bigvalue/pkg/httputil"
	"github.com/matzehuels/bigvalue/pkg/observability"
	"github.com/matzehuels/bigvalue/pkg/panel"
	"github.com/matzehuels/bigvalue/pkg/pipeline"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Resolved(),
		Commit:  buildinfo.Commit,
	})
}

// handleRender renders the JSON panel file in the request body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	f, err := panel.Decode(body, panel.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	props, err := f.Props()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, props, format)
}

// handlePanel renders a panel described entirely by query parameters, so it
// can be used directly as an <img src>.
func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	props, err := propsFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, props, chi.URLParam(r, "format"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, props panel.Props, format string) {
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := renderOptions(r.URL.Query(), format)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), props, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httputil.WriteArtifact(w, r, pipeline.ContentType(format), result.Artifacts[format])
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().RequestFailed(r.Context(), observability.RequestEvent{
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: RequestIDFrom(r.Context()),
		Status:    httputil.StatusFor(err),
		Err:       err,
	})
	if httputil.StatusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFrom(r.Context()), "error", err)
	} else {
		s.logger.Debug("bad request", "id", RequestIDFrom(r.Context()), "error", err)
	}
	httputil.WriteError(w, err)
}

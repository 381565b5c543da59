package httputil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/matzehuels/bigvalue/pkg/cache"
	"github.com/matzehuels/bigvalue/pkg/errors"
)

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// StatusFor returns the HTTP status code for err.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error body. Internal errors get a generic
// message; their details belong in the server log.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	body := ErrorBody{Error: errors.UserMessage(err), Code: errors.GetCode(err)}
	if status == http.StatusInternalServerError {
		body.Error = http.StatusText(status)
	}
	WriteJSON(w, status, body)
}

// WriteJSON writes v as an indented JSON body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// ETag returns a strong entity tag for data.
func ETag(data []byte) string {
	return `"` + cache.Hash(data)[:32] + `"`
}

// WriteArtifact serves a rendered artifact. If the request carries a
// matching If-None-Match header, only 304 is sent.
func WriteArtifact(w http.ResponseWriter, r *http.Request, contentType string, data []byte) {
	etag := ETag(data)
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Cache-Control", "public, max-age=300")

	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

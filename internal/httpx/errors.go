package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"bookfinder/internal/platform/upstream"
)

// WriteUpstreamError maps errors from the catalog adapters onto the error envelope.
func WriteUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
		return
	case errors.Is(err, upstream.ErrTimeout):
		slog.Warn("upstream timeout", "request_id", RequestIDFrom(r), "error", err)
		JSONError(w, r, http.StatusInternalServerError, "UPSTREAM_TIMEOUT", "Upstream service timed out", nil)
		return
	case upstream.IsTransportError(err), upstream.IsParseError(err):
		slog.Error("upstream failure", "request_id", RequestIDFrom(r), "error", err)
	default:
		slog.Error("request failed", "request_id", RequestIDFrom(r), "error", err)
	}
	JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware turns a handler panic into a 500 envelope unless the
// handler already started its response.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordStatus(w)
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			slog.Error("panic recovered",
				"request_id", RequestIDFrom(r),
				"path", r.URL.Path,
				"panic", p,
				"stack", string(debug.Stack()),
			)
			if !rec.committed() {
				JSONError(rec, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
			}
		}()
		next.ServeHTTP(rec, r)
	})
}

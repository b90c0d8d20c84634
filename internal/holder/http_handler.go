package holder

import (
	"errors"
	"net/http"
	"strings"

	"bookfinder/internal/httpx"
)

const maxLibrariesPerQuery = 100

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Query handles GET /v1/holders
func (h *HTTPHandler) Query(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	isbn := httpx.NormalizeISBN(query.Get("isbn"))

	var names []string
	for _, name := range query["library"] {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	var details []httpx.ErrorDetail
	if !httpx.ValidISBN(isbn) {
		details = append(details, httpx.ErrorDetail{Field: "isbn", Message: "isbn must be a valid ISBN (10 or 13 digits)"})
	}
	if len(names) == 0 {
		details = append(details, httpx.ErrorDetail{Field: "library", Message: "at least one library is required"})
	} else if len(names) > maxLibrariesPerQuery {
		details = append(details, httpx.ErrorDetail{Field: "library", Message: "at most 100 libraries per query"})
	}
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	chunk, err := h.service.Query(r.Context(), query.Get("provider"), isbn, names)
	if err != nil {
		if errors.Is(err, ErrUnknownProvider) {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Unknown provider", []httpx.ErrorDetail{
				{Field: "provider", Message: "provider must be one of " + strings.Join(h.service.Providers(), ", ")},
			})
			return
		}
		httpx.WriteUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, chunk, nil)
}

// ListAcademic handles GET /v1/holders/academic
func (h *HTTPHandler) ListAcademic(w http.ResponseWriter, r *http.Request) {
	isbn := httpx.NormalizeISBN(r.URL.Query().Get("isbn"))
	pageSize, page, details := httpx.ParsePage(r)
	if !httpx.ValidISBN(isbn) {
		details = append(details, httpx.ErrorDetail{Field: "isbn", Message: "isbn must be a valid ISBN (10 or 13 digits)"})
	}
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	chunk, err := h.service.ListAcademic(r.Context(), isbn, pageSize, page)
	if err != nil {
		httpx.WriteUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, chunk, httpx.PageMeta(page, pageSize, chunk.TotalCount))
}

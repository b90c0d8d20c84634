package book

import (
	"errors"
	"net/http"
	"strings"

	"bookfinder/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles GET /v1/books
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := strings.TrimSpace(query.Get("q"))
	pageSize, page, details := httpx.ParsePage(r)
	if q == "" {
		details = append(details, httpx.ErrorDetail{Field: "q", Message: "q is required"})
	}
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	chunk, err := h.service.Search(r.Context(), query.Get("provider"), q, pageSize, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, chunk, httpx.PageMeta(page, pageSize, chunk.TotalCount))
}

// GetByISBN handles GET /v1/books/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := httpx.NormalizeISBN(r.PathValue("isbn"))
	if !httpx.ValidISBN(isbn) {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ISBN", []httpx.ErrorDetail{
			{Field: "isbn", Message: "isbn must be a valid ISBN (10 or 13 digits)"},
		})
		return
	}

	book, err := h.service.GetByISBN(r.Context(), r.URL.Query().Get("provider"), isbn)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, book, nil)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrUnknownProvider) {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Unknown provider", []httpx.ErrorDetail{
			{Field: "provider", Message: "provider must be one of " + strings.Join(h.service.Providers(), ", ")},
		})
		return
	}
	if errors.Is(err, ErrPageOutOfRange) {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", []httpx.ErrorDetail{
			{Field: "page", Message: "page is too large for page_size"},
		})
		return
	}
	httpx.WriteUpstreamError(w, r, err)
}

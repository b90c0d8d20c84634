package reservation

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"bookfinder/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	LibraryName string `json:"library_name" validate:"required,max=255"`
	ISBN        string `json:"isbn" validate:"required,isbn"`
}

// Create handles POST /v1/reservations
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.LibraryName = strings.TrimSpace(req.LibraryName)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	res, err := h.service.Create(r.Context(), userID, req.LibraryName, httpx.NormalizeISBN(req.ISBN))
	if err != nil {
		if errors.Is(err, ErrUnknownLibrary) {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []httpx.ErrorDetail{
				{Field: "library_name", Message: "library_name does not name a known library"},
			})
			return
		}
		slog.Error("create reservation", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONCreated(w, r, res)
}

// List handles GET /v1/reservations
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	pageSize, page, details := httpx.ParsePage(r)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	chunk, err := h.service.List(r.Context(), userID, pageSize, page)
	if err != nil {
		slog.Error("list reservations", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, chunk, httpx.PageMeta(page, pageSize, chunk.TotalCount))
}

// Get handles GET /v1/reservations/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid reservation ID", nil)
		return
	}

	res, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Reservation not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, res, nil)
}

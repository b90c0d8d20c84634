package library

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bookfinder/internal/httpx"
)

const (
	defaultNearbyLimit = 10
	maxNearbyLimit     = 100
)

type HTTPHandler struct {
	store *Store
}

func NewHTTPHandler(store *Store) *HTTPHandler {
	return &HTTPHandler{store: store}
}

// Refresh handles POST /v1/libraries/refresh
func (h *HTTPHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Refresh(r.Context())
	if err != nil {
		httpx.WriteUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, stats, nil)
}

// FindByRegion handles GET /v1/libraries
func (h *HTTPHandler) FindByRegion(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	prefecture := strings.TrimSpace(query.Get("prefecture"))
	city := strings.TrimSpace(query.Get("city"))

	pageSize, page, details := httpx.ParsePage(r)
	if prefecture == "" {
		details = append(details, httpx.ErrorDetail{Field: "prefecture", Message: "prefecture is required"})
	}
	if city == "" {
		details = append(details, httpx.ErrorDetail{Field: "city", Message: "city is required"})
	}
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	chunk, err := h.store.FindByRegion(prefecture, city, pageSize, page)
	if err != nil {
		httpx.WriteUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, chunk, httpx.PageMeta(page, pageSize, chunk.TotalCount))
}

// FindByName handles GET /v1/libraries/{name}
func (h *HTTPHandler) FindByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Library name is required", nil)
		return
	}

	lib, err := h.store.FindByName(name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Library not found", nil)
			return
		}
		httpx.WriteUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, lib, nil)
}

// Nearby handles GET /v1/libraries/nearby
func (h *HTTPHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var details []httpx.ErrorDetail
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		details = append(details, httpx.ErrorDetail{Field: "lat", Message: "lat must be a number between -90 and 90"})
	}
	lng, err := strconv.ParseFloat(query.Get("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		details = append(details, httpx.ErrorDetail{Field: "lng", Message: "lng must be a number between -180 and 180"})
	}

	limit := defaultNearbyLimit
	if raw := query.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxNearbyLimit {
			details = append(details, httpx.ErrorDetail{Field: "limit", Message: "limit must be between 1 and 100"})
		} else {
			limit = v
		}
	}

	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	chunk, err := h.store.RankByDistance(lat, lng, limit)
	if err != nil {
		httpx.WriteUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, chunk, nil)
}

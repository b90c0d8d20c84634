package user

import (
	"errors"
	"log/slog"
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

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Fullname string `json:"fullname" validate:"required,max=100"`
	Address  string `json:"address" validate:"max=255"`
}

// Register handles POST /v1/users
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Fullname = strings.TrimSpace(req.Fullname)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	newUser, err := h.service.Register(r.Context(), req.Email, req.Password, req.Fullname, req.Address)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Email already exists", nil)
			return
		}
		slog.Error("register user", "request_id", httpx.RequestIDFrom(r), "error", err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONCreated(w, r, newUser)
}

// Me handles GET /v1/me
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, u, nil)
}

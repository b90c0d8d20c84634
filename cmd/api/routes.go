package main

import (
	"context"
	"net/http"
	"time"

	"bookfinder/internal/auth"
	"bookfinder/internal/book"
	"bookfinder/internal/holder"
	"bookfinder/internal/httpx"
	"bookfinder/internal/library"
	"bookfinder/internal/reservation"
	"bookfinder/internal/user"
)

type handlers struct {
	library     *library.HTTPHandler
	book        *book.HTTPHandler
	holder      *holder.HTTPHandler
	user        *user.HTTPHandler
	auth        *auth.HTTPHandler
	reservation *reservation.HTTPHandler
}

// readinessFunc reports whether backing services are reachable.
type readinessFunc func(ctx context.Context) error

func newRouter(h handlers, tokens httpx.TokenResolver, internalSecret string, ready readinessFunc) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	protected := httpx.AuthMiddleware(tokens)
	internal := httpx.InternalSecretMiddleware(internalSecret)

	router.Handle("POST /v1/libraries/refresh", internal(http.HandlerFunc(h.library.Refresh)))
	router.HandleFunc("GET /v1/libraries", h.library.FindByRegion)
	router.HandleFunc("GET /v1/libraries/nearby", h.library.Nearby)
	router.HandleFunc("GET /v1/libraries/{name}", h.library.FindByName)

	router.HandleFunc("GET /v1/books", h.book.Search)
	router.HandleFunc("GET /v1/books/{isbn}", h.book.GetByISBN)

	router.HandleFunc("GET /v1/holders", h.holder.Query)
	router.HandleFunc("GET /v1/holders/academic", h.holder.ListAcademic)

	router.HandleFunc("POST /v1/users", h.user.Register)
	router.HandleFunc("POST /v1/users/login", h.auth.Login)
	router.Handle("POST /v1/users/logout", protected(http.HandlerFunc(h.auth.Logout)))
	router.Handle("GET /v1/me", protected(http.HandlerFunc(h.user.Me)))

	router.Handle("POST /v1/reservations", protected(http.HandlerFunc(h.reservation.Create)))
	router.Handle("GET /v1/reservations", protected(http.HandlerFunc(h.reservation.List)))
	router.Handle("GET /v1/reservations/{id}", protected(http.HandlerFunc(h.reservation.Get)))

	return router
}

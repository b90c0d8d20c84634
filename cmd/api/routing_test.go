package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookfinder/internal/auth"
	"bookfinder/internal/book"
	"bookfinder/internal/holder"
	"bookfinder/internal/library"
	"bookfinder/internal/reservation"
	"bookfinder/internal/user"
)

type emptySource struct{}

func (emptySource) FetchLibraries(context.Context) ([]library.Library, error) {
	return nil, nil
}

type tokenResolverFunc func(ctx context.Context, token string) (string, error)

func (f tokenResolverFunc) ResolveToken(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}

func testRouter(ready readinessFunc) http.Handler {
	store := library.NewStore(emptySource{})
	h := handlers{
		library:     library.NewHTTPHandler(store),
		book:        book.NewHTTPHandler(book.NewService(map[string]book.Provider{})),
		holder:      holder.NewHTTPHandler(holder.NewService(map[string]holder.Provider{}, nil)),
		user:        user.NewHTTPHandler(nil),
		auth:        auth.NewHTTPHandler(nil),
		reservation: reservation.NewHTTPHandler(nil),
	}
	tokens := tokenResolverFunc(func(context.Context, string) (string, error) {
		return "", errors.New("no sessions")
	})
	return newRouter(h, tokens, "s3cret", ready)
}

func TestV1Routing(t *testing.T) {
	router := testRouter(func(context.Context) error { return nil })

	tests := []struct {
		name   string
		method string
		target string
		header map[string]string
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", nil, http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", nil, http.StatusOK},
		{"refresh without secret", http.MethodPost, "/v1/libraries/refresh", nil, http.StatusForbidden},
		{"GET on refresh resolves as a library name", http.MethodGet, "/v1/libraries/refresh", nil, http.StatusNotFound},
		{"nearby on empty catalog", http.MethodGet, "/v1/libraries/nearby?lat=35.68&lng=139.76", nil, http.StatusOK},
		{"library by name", http.MethodGet, "/v1/libraries/Chuo%20Library", nil, http.StatusNotFound},
		{"region", http.MethodGet, "/v1/libraries?prefecture=Tokyo&city=Chuo", nil, http.StatusOK},
		{"unknown book provider", http.MethodGet, "/v1/books?q=go&provider=nope", nil, http.StatusBadRequest},
		{"books method not allowed", http.MethodPost, "/v1/books", nil, http.StatusMethodNotAllowed},
		{"me without token", http.MethodGet, "/v1/me", nil, http.StatusUnauthorized},
		{"logout with bad token", http.MethodPost, "/v1/users/logout", map[string]string{"Authorization": "Bearer x"}, http.StatusUnauthorized},
		{"reservations without token", http.MethodGet, "/v1/reservations", nil, http.StatusUnauthorized},
		{"reservation without token", http.MethodGet, "/v1/reservations/1", nil, http.StatusUnauthorized},
		{"unversioned path", http.MethodGet, "/books", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.target, nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestReadyz_DatabaseDown(t *testing.T) {
	router := testRouter(func(context.Context) error { return errors.New("down") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://***@localhost:5432/db", redactDSN("postgres://user:pw@localhost:5432/db"))
	assert.Equal(t, "localhost", redactDSN("localhost"))
}

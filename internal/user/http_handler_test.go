package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookfinder/internal/httpx"
)

func TestHTTPHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *User) error {
			assert.Equal(t, "reader@example.com", u.Email)
			assert.True(t, VerifyPassword(u.PasswordHash, "correct horse"))
			u.ID = "user-1"
			u.CreatedAt = time.Now()
			return nil
		})

		body := `{"email":" Reader@Example.com ","password":"correct horse","fullname":"Reader","address":"Tokyo"}`
		w := httptest.NewRecorder()
		handler.Register(w, httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"user-1"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrAlreadyExists)

		body := `{"email":"reader@example.com","password":"correct horse","fullname":"Reader"}`
		w := httptest.NewRecorder()
		handler.Register(w, httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation", func(t *testing.T) {
		body := `{"email":"nope","password":"short","fullname":""}`
		w := httptest.NewRecorder()
		handler.Register(w, httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Register(w, httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("authenticated", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(User{ID: "user-1", Email: "reader@example.com"}, nil)

		r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		r = r.WithContext(httpx.ContextWithUser(r.Context(), "user-1"))
		w := httptest.NewRecorder()
		handler.Me(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "reader@example.com")
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me(w, httptest.NewRequest(http.MethodGet, "/v1/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

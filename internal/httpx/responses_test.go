package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/apperror"
)

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, http.StatusCreated, "book added", map[string]any{"bookId": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","message":"book added","data":{"bookId":"abc"}}`, w.Body.String())
}

func TestSuccess_OmitsEmptyFields(t *testing.T) {
	w := httptest.NewRecorder()

	Success(w, http.StatusOK, "", nil)

	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
}

func TestError(t *testing.T) {
	buf := captureLog(t)

	tests := []struct {
		name    string
		err     error
		code    int
		message string
		logged  bool
	}{
		{"validation", apperror.Validation("name is required"), http.StatusBadRequest, "name is required", false},
		{"not found", apperror.NotFound("book not found"), http.StatusNotFound, "book not found", false},
		{"internal keeps message", apperror.Wrap(errors.New("x"), apperror.CodeInternal, "failed to add book"), http.StatusInternalServerError, "failed to add book", true},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "internal server error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			w := httptest.NewRecorder()

			Error(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, `{"status":"fail","message":"`+tt.message+`"}`, w.Body.String())
			assert.Equal(t, tt.logged, buf.Len() > 0)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Page int    `json:"page"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"A","page":3,"extra":true}`)), &p)
		require.NoError(t, err)
		assert.Equal(t, payload{Name: "A", Page: 3}, p)
	})

	t.Run("empty body", func(t *testing.T) {
		var p payload
		require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", nil), &p))
		assert.Equal(t, payload{}, p)
	})

	t.Run("invalid", func(t *testing.T) {
		var p payload
		err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"page":"three"}`)), &p)
		assert.ErrorIs(t, err, ErrInvalidPayload)

		w := httptest.NewRecorder()
		BadPayload(w, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"status":"fail","message":"invalid request payload"}`, w.Body.String())
	})
}

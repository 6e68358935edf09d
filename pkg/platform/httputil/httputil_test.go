package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "dispatchflow/pkg/domain-errors"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "internal_error", body["error"])
		assert.NotContains(t, body, "error_description")
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decodeBody(t, w)["error"])
	})

	t.Run("bad request includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "bad_request", body["error"])
		assert.Equal(t, "invalid input", body["error_description"])
	})

	t.Run("sync failure keeps the outer message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("relay 500"), dErrors.CodeSyncFailed, "Cloud sync failed. The record was not saved."))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "Cloud sync failed. The record was not saved.", decodeBody(t, w)["error_description"])
	})

	t.Run("fields are attached", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErrorWithFields(w, dErrors.New(dErrors.CodeValidation, "form is invalid"), map[string]string{"quantity": "Quantity must be a number"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, map[string]any{"quantity": "Quantity must be a number"}, body["fields"])
	})
}

func TestDecode(t *testing.T) {
	type payload struct {
		Image string `json:"image"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"image":"abc"}`))
		got, err := Decode[payload](httptest.NewRecorder(), r)
		require.NoError(t, err)
		assert.Equal(t, "abc", got.Image)
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		_, err := Decode[payload](httptest.NewRecorder(), r)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"image":`))
		_, err := Decode[payload](httptest.NewRecorder(), r)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
	"github.com/fajarnugraha/cetakin-backend/pkg/types"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) types.ResponseEnvelope {
	t.Helper()
	var envelope types.ResponseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, "done", map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Equal(t, "done", envelope.Message)
	assert.NotNil(t, envelope.Data)
	assert.Nil(t, envelope.Errors)
}

func TestWriteCreated(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteCreated(rec, "Order created successfully", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestWriteErrorValidation(t *testing.T) {
	rec := httptest.NewRecorder()

	err := pkgerrors.NewFieldValidation("Validation error", map[string][]string{
		"quantity": {"must be at least 1"},
	})
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Validation error", envelope.Message)

	fields, ok := envelope.Errors.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "quantity")
}

func TestWriteErrorNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "order not found", envelope.Message)
}

func TestWriteErrorStateConflict(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeStateConflict, "order is completed and can no longer change state"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(context.Background(), nil, rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "Internal server error", envelope.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

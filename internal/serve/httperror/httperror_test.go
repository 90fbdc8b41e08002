package httperror

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HTTPError_Render(t *testing.T) {
	httpErr := BadRequest("invalid file", errors.New("underlying"), map[string]interface{}{"field": "total_spent"})

	w := httptest.NewRecorder()
	httpErr.Render(w)

	resp := w.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error": "invalid file", "extras": {"field": "total_spent"}}`, string(body))
}

func Test_NewHTTPError_reusesWrappedHTTPError(t *testing.T) {
	inner := NotFound("customer not found", nil, nil)

	reused := NewHTTPError(http.StatusNotFound, "", inner, nil)
	assert.Same(t, inner, reused)

	fresh := NewHTTPError(http.StatusBadRequest, "", inner, nil)
	assert.NotSame(t, inner, fresh)
}

func Test_HTTPError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying")
	httpErr := BadRequest("bad", underlying, nil)
	assert.ErrorIs(t, httpErr, underlying)
}

func Test_InternalError_reportsTheError(t *testing.T) {
	var reportedErr error
	var reportedMsg string
	SetDefaultReportErrorFunc(func(ctx context.Context, err error, msg string) {
		reportedErr = err
		reportedMsg = msg
	})
	defer SetDefaultReportErrorFunc(func(ctx context.Context, err error, msg string) {})

	underlying := errors.New("boom")
	httpErr := InternalError(context.Background(), "Cannot import customers", underlying, nil)

	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, underlying, reportedErr)
	assert.Equal(t, "Cannot import customers", reportedMsg)
}

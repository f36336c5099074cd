package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/api/httperrors"
	"github/chapool/go-disperse/internal/types"
)

// GenericPayload is an arbitrary JSON request body.
type GenericPayload map[string]interface{}

// PerformRequest runs a request against the server's echo instance without
// opening a socket.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set(echoHeaderContentType, echoMIMEApplicationJSON)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	return rec
}

const (
	echoHeaderContentType   = "Content-Type"
	echoMIMEApplicationJSON = "application/json"
)

// ParseResponseAndValidate unmarshals the recorded response body into v.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v))
}

// RequireHTTPError asserts the recorded response matches the expected public
// error payload.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, expected *httperrors.HTTPError) {
	t.Helper()

	require.Equal(t, int(*expected.Code), res.Result().StatusCode)

	var actual types.PublicHTTPError
	ParseResponseAndValidate(t, res, &actual)

	require.Equal(t, *expected.Code, *actual.Code)
	require.Equal(t, *expected.Type, *actual.Type)
	require.Equal(t, *expected.Title, *actual.Title)
}

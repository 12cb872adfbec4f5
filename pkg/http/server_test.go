package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes func(e *echo.Echo)

func (r routes) RegisterRoutes(e *echo.Echo) { r(e) }

type errorBody struct {
	Status int               `json:"status"`
	Data   []ValidationError `json:"data"`
}

func serve(t *testing.T, s *Server, method, path string) (int, errorBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestServerErrorEnvelopes(t *testing.T) {
	s := NewServer([]Handler{routes(func(e *echo.Echo) {
		e.GET("/panic", func(echo.Context) error { panic("boom") })
		e.GET("/bad", func(echo.Context) error { return BadRequestError("ERR_EVENT", errors.New("unknown event")) })
		e.GET("/oops", func(echo.Context) error { return errors.New("db password leaked") })
	})}, WithMetricsPath(""))

	code, body := serve(t, s, http.MethodGet, "/bad")
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ERR_EVENT", body.Data[0].Code)
	assert.Equal(t, "unknown event", body.Data[0].Message)

	code, body = serve(t, s, http.MethodGet, "/oops")
	assert.Equal(t, http.StatusInternalServerError, code)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "internal error", body.Data[0].Message)

	code, body = serve(t, s, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, http.StatusInternalServerError, body.Status)

	code, body = serve(t, s, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, code)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "ERR_HTTP_404", body.Data[0].Code)
}

func TestServerAddr(t *testing.T) {
	s := NewServer(nil, WithHost("127.0.0.1"), WithPort(9090), WithMetricsPath(""))
	assert.Equal(t, "127.0.0.1:9090", s.Addr())
}

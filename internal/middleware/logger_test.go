package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestNewLogger(t *testing.T) {
	var prod, dev bytes.Buffer

	l := newLogger(configpkg.Config{Environment: "production"}, &prod, &dev)
	require.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	require.NotContains(t, prod.String(), "hidden")
	require.Contains(t, prod.String(), `"message":"shown"`)
	require.Zero(t, dev.Len())

	prod.Reset()

	l = newLogger(configpkg.Config{Environment: configpkg.Development}, &prod, &dev)
	require.Equal(t, zerolog.TraceLevel, l.GetLevel())

	l.Debug().Msg("verbose")
	require.Contains(t, dev.String(), "verbose")
	require.Zero(t, prod.Len())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	engine := gin.New()
	engine.Use(RequestLogger(logger))
	engine.GET("/ping", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside handler")
		c.Status(http.StatusTeapot)
	})

	testCases := []struct {
		name      string
		requestID string
	}{
		{name: "GeneratedRequestID"},
		{name: "PropagatedRequestID", requestID: "req-123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()

			request := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tc.requestID != "" {
				request.Header.Set(RequestIDHeader, tc.requestID)
			}

			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, request)

			require.Equal(t, http.StatusTeapot, recorder.Code)

			gotID := recorder.Header().Get(RequestIDHeader)
			require.NotEmpty(t, gotID)

			if tc.requestID != "" {
				require.Equal(t, tc.requestID, gotID)
			}

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			require.Len(t, lines, 2)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(lines[1], &entry))
			require.Equal(t, gotID, entry["request_id"])
			require.Equal(t, "/ping", entry["path"])
			require.EqualValues(t, http.StatusTeapot, entry["status_code"])
			require.Contains(t, string(lines[0]), "inside handler")
		})
	}
}

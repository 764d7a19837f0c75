package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/chrissnell/jyotish/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const mockResponse = `{"chart":{"graha":{"Sy":{"longitude":286.41,"rashi":10,"nakshatra":{"name":"Shravana","pada":1}},` +
	`"Ch":{"longitude":340.2,"rashi":12}},` +
	`"panchanga":{"tithi":{"name":"Panchami","paksha":"Shukla","left":41.25},"vara":{"name":"Somavara"}},` +
	`"rising":{"Sy":[{"rising":"07:26","setting":"17:04"}]}}}`

type mockService struct {
	server   *httptest.Server
	requests int32
}

func newMockService(t *testing.T, status int, body string) *mockService {
	t.Helper()
	m := &mockService{}
	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.requests, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockService) count() int32 {
	return atomic.LoadInt32(&m.requests)
}

func testConfig(t *testing.T, endpoint string) *config.ConfigData {
	t.Helper()
	cfg := config.Defaults()
	cfg.Service.Endpoint = endpoint
	cfg.Output.File = filepath.Join(t.TempDir(), "chart_response.json")
	return &cfg
}

func TestRun(t *testing.T) {
	svc := newMockService(t, http.StatusOK, mockResponse)
	cfg := testConfig(t, svc.server.URL)

	var out bytes.Buffer
	a := New(cfg, zap.NewNop().Sugar(), WithOutput(&out))
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, int32(1), svc.count())

	saved, err := os.ReadFile(cfg.Output.File)
	require.NoError(t, err)
	expected, err := chart.Indent([]byte(mockResponse))
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(saved))
	assert.JSONEq(t, mockResponse, string(saved))

	report := out.String()
	assert.Contains(t, report, "\nSun (Surya):\n  Longitude: 286.41°\n  Sign (Rashi): Makara (Capricorn)\n")
	assert.Contains(t, report, "Panchanga Details:")
	assert.Contains(t, report, "Tithi: Panchami (Shukla Paksha)")
	assert.Contains(t, report, "Rising and Setting Times:")
	assert.NotContains(t, report, "Local Estimate:")
}

func TestRunWithEstimate(t *testing.T) {
	svc := newMockService(t, http.StatusOK, mockResponse)
	cfg := testConfig(t, svc.server.URL)

	var out bytes.Buffer
	a := New(cfg, zap.NewNop().Sugar(), WithOutput(&out), WithEstimate(true))
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "Local Estimate:")
}

func TestRunParseErrorMakesNoRequest(t *testing.T) {
	svc := newMockService(t, http.StatusOK, mockResponse)
	cfg := testConfig(t, svc.server.URL)
	cfg.Birth.Time = "12-00"

	var out bytes.Buffer
	err := New(cfg, zap.NewNop().Sugar(), WithOutput(&out)).Run(context.Background())

	var parseErr *chart.ParseError
	require.True(t, errors.As(err, &parseErr), "expected *chart.ParseError, got %T", err)
	assert.Equal(t, int32(0), svc.count())
	assert.NoFileExists(t, cfg.Output.File)
	assert.Empty(t, out.String())
}

func TestRunFetchErrorWritesNothing(t *testing.T) {
	for name, tc := range map[string]struct {
		status int
		body   string
	}{
		"server error":   {http.StatusBadGateway, `{"error":"upstream"}`},
		"malformed body": {http.StatusOK, `{"chart":`},
	} {
		t.Run(name, func(t *testing.T) {
			svc := newMockService(t, tc.status, tc.body)
			cfg := testConfig(t, svc.server.URL)

			var out bytes.Buffer
			err := New(cfg, zap.NewNop().Sugar(), WithOutput(&out)).Run(context.Background())

			var fetchErr *chart.FetchError
			require.True(t, errors.As(err, &fetchErr), "expected *chart.FetchError, got %T", err)
			assert.Equal(t, int32(1), svc.count())
			assert.NoFileExists(t, cfg.Output.File)
			assert.Empty(t, out.String())
		})
	}
}

func TestRunIOError(t *testing.T) {
	svc := newMockService(t, http.StatusOK, mockResponse)
	cfg := testConfig(t, svc.server.URL)
	cfg.Output.File = filepath.Join(t.TempDir(), "missing", "chart_response.json")

	var out bytes.Buffer
	err := New(cfg, zap.NewNop().Sugar(), WithOutput(&out)).Run(context.Background())

	var ioErr *chart.IOError
	require.True(t, errors.As(err, &ioErr), "expected *chart.IOError, got %T", err)
	assert.Equal(t, int32(1), svc.count())
	assert.Empty(t, out.String())
}

const wholeDegreeResponse = `{"chart":{"graha":{"Sy":{"longitude":280.0,"rashi":10},` +
	`"Ch":{"longitude":10.0,"rashi":1},"Ma":{"longitude":10.5,"rashi":1},` +
	`"Bu":{"longitude":270.0,"rashi":10,"speed":1.25}},` +
	`"panchanga":{"tithi":{"name":"Panchami","paksha":"Shukla","left":41.0},"vara":{"name":"Somavara"}},` +
	`"rising":{"Sy":[{"rising":"07:26","setting":"17:04"}]}}}`

func TestRenderSaved(t *testing.T) {
	for _, format := range []string{config.FormatJSON, config.FormatMsgPack} {
		t.Run(format, func(t *testing.T) {
			svc := newMockService(t, http.StatusOK, wholeDegreeResponse)
			cfg := testConfig(t, svc.server.URL)
			cfg.Output.Format = format

			var live bytes.Buffer
			require.NoError(t, New(cfg, zap.NewNop().Sugar(), WithOutput(&live)).Run(context.Background()))

			var saved bytes.Buffer
			require.NoError(t, New(cfg, zap.NewNop().Sugar(), WithOutput(&saved)).RenderSaved(cfg.Output.File))

			assert.Equal(t, live.String(), saved.String())
			assert.Equal(t, int32(1), svc.count())

			report := saved.String()
			assert.Contains(t, report, "\nSun (Surya):\n  Longitude: 280.0°\n  Sign (Rashi): Makara (Capricorn)\n")
			assert.Contains(t, report, "  Longitude: 270.0°\n")
			assert.Contains(t, report, "  Remaining: 41.0%\n")

			sun := strings.Index(report, "Sun (Surya):")
			moon := strings.Index(report, "Moon (Chandra):")
			mars := strings.Index(report, "Mars (Mangal):")
			mercury := strings.Index(report, "Mercury (Buddha):")
			assert.True(t, sun < moon && moon < mars && mars < mercury, "graha order lost:\n%s", report)
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestYAMLProvider(t *testing.T) {
	path := writeFile(t, "config.yaml", `
service:
  endpoint: http://localhost:9000
  timeout: 30s
output:
  file: charts/mumbai.json
birth:
  date: "1985-07-14"
  time: "06:45"
  latitude: 19.076
  longitude: 72.8777
  timezone: Asia/Kolkata
`)

	cfg, err := NewYAMLProvider(path).LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Service.Endpoint)
	assert.Equal(t, DefaultPath, cfg.Service.Path)
	assert.Equal(t, 30*time.Second, cfg.Service.Timeout)
	assert.Equal(t, "charts/mumbai.json", cfg.Output.File)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, BirthData{
		Date:      "1985-07-14",
		Time:      "06:45",
		Latitude:  19.076,
		Longitude: 72.8777,
		Timezone:  "Asia/Kolkata",
	}, cfg.Birth)
}

func TestYAMLProviderDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", "output:\n  format: msgpack\n")

	cfg, err := NewYAMLProvider(path).LoadConfig()
	require.NoError(t, err)

	d := Defaults()
	assert.Equal(t, d.Service, cfg.Service)
	assert.Equal(t, d.Birth, cfg.Birth)
	assert.Equal(t, d.Output.File, cfg.Output.File)
	assert.Equal(t, FormatMsgPack, cfg.Output.Format)
}

func TestYAMLProviderErrors(t *testing.T) {
	_, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig()
	assert.Error(t, err)

	path := writeFile(t, "bad.yaml", "service: [unterminated")
	_, err = NewYAMLProvider(path).LoadConfig()
	assert.Error(t, err)

	path = writeFile(t, "format.yaml", "output:\n  format: xml\n")
	_, err = NewYAMLProvider(path).LoadConfig()
	assert.Error(t, err)
}

func TestEnvProvider(t *testing.T) {
	envFile := writeFile(t, ".env", `
JYOTISH_API_URL=http://dotenv.example
JYOTISH_BIRTH_DATE=2001-09-09
JYOTISH_LATITUDE=12.9716
`)

	t.Cleanup(func() {
		os.Unsetenv(EnvBirthDate)
		os.Unsetenv(EnvLatitude)
	})

	// variables already in the environment win over the .env file
	t.Setenv(EnvEndpoint, "http://env.example")
	t.Setenv(EnvTimeout, "5s")
	t.Setenv(EnvLongitude, "77.5946")
	t.Setenv(EnvTimezone, "Asia/Kolkata")

	cfg, err := NewEnvProvider(envFile).LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://env.example", cfg.Service.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Service.Timeout)
	assert.Equal(t, "2001-09-09", cfg.Birth.Date)
	assert.Equal(t, "12:00", cfg.Birth.Time)
	assert.Equal(t, 12.9716, cfg.Birth.Latitude)
	assert.Equal(t, 77.5946, cfg.Birth.Longitude)
	assert.Equal(t, "Asia/Kolkata", cfg.Birth.Timezone)
	assert.Equal(t, "chart_response.json", cfg.Output.File)
}

func TestEnvProviderMissingFile(t *testing.T) {
	cfg, err := NewEnvProvider(filepath.Join(t.TempDir(), ".env")).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, cfg.Service.Endpoint)
}

func TestEnvProviderInvalidValues(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".env")

	t.Run("latitude", func(t *testing.T) {
		t.Setenv(EnvLatitude, "north")
		_, err := NewEnvProvider(missing).LoadConfig()
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Setenv(EnvTimeout, "soon")
		_, err := NewEnvProvider(missing).LoadConfig()
		assert.Error(t, err)
	})

	t.Run("format", func(t *testing.T) {
		t.Setenv(EnvOutputFormat, "csv")
		_, err := NewEnvProvider(missing).LoadConfig()
		assert.Error(t, err)
	})
}

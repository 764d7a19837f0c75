package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by EnvProvider
const (
	EnvEndpoint     = "JYOTISH_API_URL"
	EnvPath         = "JYOTISH_API_PATH"
	EnvTimeout      = "JYOTISH_TIMEOUT"
	EnvOutputFile   = "JYOTISH_OUTPUT_FILE"
	EnvOutputFormat = "JYOTISH_OUTPUT_FORMAT"
	EnvBirthDate    = "JYOTISH_BIRTH_DATE"
	EnvBirthTime    = "JYOTISH_BIRTH_TIME"
	EnvLatitude     = "JYOTISH_LATITUDE"
	EnvLongitude    = "JYOTISH_LONGITUDE"
	EnvTimezone     = "JYOTISH_TIMEZONE"
)

// EnvProvider implements ConfigProvider from environment variables, after loading
// any .env files. Variables already set in the environment win over .env entries.
type EnvProvider struct {
	files []string
}

// NewEnvProvider creates a provider that loads the given .env files (".env" when none
// are named). Missing files are not an error.
func NewEnvProvider(files ...string) *EnvProvider {
	if len(files) == 0 {
		files = []string{".env"}
	}
	return &EnvProvider{files: files}
}

// LoadConfig builds the configuration from the environment
func (e *EnvProvider) LoadConfig() (*ConfigData, error) {
	for _, f := range e.files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	config := Defaults()

	setString(&config.Service.Endpoint, EnvEndpoint)
	setString(&config.Service.Path, EnvPath)
	setString(&config.Output.File, EnvOutputFile)
	setString(&config.Output.Format, EnvOutputFormat)
	setString(&config.Birth.Date, EnvBirthDate)
	setString(&config.Birth.Time, EnvBirthTime)
	setString(&config.Birth.Timezone, EnvTimezone)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		config.Service.Timeout = d
	}
	if err := setFloat(&config.Birth.Latitude, EnvLatitude); err != nil {
		return nil, err
	}
	if err := setFloat(&config.Birth.Longitude, EnvLongitude); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

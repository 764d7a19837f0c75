package config

import (
	"fmt"
	"time"
)

// Service defaults
const (
	DefaultEndpoint = "https://jyotish-api.onrender.com"
	DefaultPath     = "/api/calculate"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration, with defaults applied for anything unset
	LoadConfig() (*ConfigData, error)
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Service ServiceData `json:"service"`
	Output  OutputData  `json:"output"`
	Birth   BirthData   `json:"birth"`
}

// ServiceData locates the chart calculation service. A zero Timeout leaves the
// HTTP client without a deadline.
type ServiceData struct {
	Endpoint string        `json:"endpoint"`
	Path     string        `json:"path"`
	Timeout  time.Duration `json:"timeout,omitempty"`
}

// OutputData controls where and how the response is persisted
type OutputData struct {
	File   string `json:"file"`
	Format string `json:"format"`
}

// BirthData is the moment and place a chart is computed for
type BirthData struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Defaults returns the configuration used when nothing else is supplied: the example
// chart for Rasht, Iran saved to chart_response.json.
func Defaults() ConfigData {
	return ConfigData{
		Service: ServiceData{
			Endpoint: DefaultEndpoint,
			Path:     DefaultPath,
		},
		Output: OutputData{
			File:   "chart_response.json",
			Format: FormatJSON,
		},
		Birth: BirthData{
			Date:      "1990-01-01",
			Time:      "12:00",
			Latitude:  37.28077,
			Longitude: 49.583057,
			Timezone:  "Asia/Tehran",
		},
	}
}

// applyDefaults fills unset string fields from Defaults. Coordinates are left alone
// because 0,0 is a valid location; a missing birth date replaces the whole birth block.
func (c *ConfigData) applyDefaults() {
	d := Defaults()

	if c.Service.Endpoint == "" {
		c.Service.Endpoint = d.Service.Endpoint
	}
	if c.Service.Path == "" {
		c.Service.Path = d.Service.Path
	}
	if c.Output.File == "" {
		c.Output.File = d.Output.File
	}
	if c.Output.Format == "" {
		c.Output.Format = d.Output.Format
	}
	if c.Birth.Date == "" && c.Birth.Time == "" {
		c.Birth = d.Birth
	}
	if c.Birth.Timezone == "" {
		c.Birth.Timezone = d.Birth.Timezone
	}
}

// Validate checks the values this program interprets itself. Birth data is passed
// through to the service untouched.
func (c *ConfigData) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatMsgPack:
	default:
		return fmt.Errorf("unsupported output format %q: use %q or %q", c.Output.Format, FormatJSON, FormatMsgPack)
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service timeout must not be negative, got %v", c.Service.Timeout)
	}
	return nil
}

package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Service struct {
			Endpoint string        `yaml:"endpoint,omitempty"`
			Path     string        `yaml:"path,omitempty"`
			Timeout  time.Duration `yaml:"timeout,omitempty"`
		} `yaml:"service,omitempty"`
		Output struct {
			File   string `yaml:"file,omitempty"`
			Format string `yaml:"format,omitempty"`
		} `yaml:"output,omitempty"`
		Birth struct {
			Date      string  `yaml:"date"`
			Time      string  `yaml:"time"`
			Latitude  float64 `yaml:"latitude"`
			Longitude float64 `yaml:"longitude"`
			Timezone  string  `yaml:"timezone"`
		} `yaml:"birth,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Service: ServiceData{
			Endpoint: yamlConfig.Service.Endpoint,
			Path:     yamlConfig.Service.Path,
			Timeout:  yamlConfig.Service.Timeout,
		},
		Output: OutputData{
			File:   yamlConfig.Output.File,
			Format: yamlConfig.Output.Format,
		},
		Birth: BirthData{
			Date:      yamlConfig.Birth.Date,
			Time:      yamlConfig.Birth.Time,
			Latitude:  yamlConfig.Birth.Latitude,
			Longitude: yamlConfig.Birth.Longitude,
			Timezone:  yamlConfig.Birth.Timezone,
		},
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

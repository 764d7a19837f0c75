package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/chrissnell/jyotish/internal/app"
	"github.com/chrissnell/jyotish/internal/log"
	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/chrissnell/jyotish/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the CLI and returns the process exit status. Deferred log syncing
// happens here so it is not skipped by os.Exit.
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("jyotish", flag.ContinueOnError)
	cfgFile := fs.String("config", "config.yaml", "Path to configuration source:\n\t\t\t  YAML: config.yaml\n\t\t\t  env: one or more .env files, comma separated")
	cfgBackend := fs.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'env' for environment variables and .env files")
	debug := fs.Bool("debug", false, "Turn on debugging output")
	showVersion := fs.Bool("version", false, "Show version and exit")
	date := fs.String("date", "", "Birth date (YYYY-MM-DD)")
	clock := fs.String("time", "", "Birth time (HH:MM, 24 hour)")
	lat := fs.Float64("lat", 0, "Birth latitude in decimal degrees")
	lon := fs.Float64("lon", 0, "Birth longitude in decimal degrees (east positive)")
	tz := fs.String("tz", "", "Birth timezone (IANA name, e.g. Asia/Tehran)")
	out := fs.String("out", "", "File to save the service response to")
	from := fs.String("from", "", "Print reports from a previously saved response instead of calling the service")
	estimate := fs.Bool("estimate", false, "Also print a locally computed estimate of the chart")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "jyotish %s\n", version)
		return 0
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Load configuration
	cfgData, err := loadConfig(*cfgFile, *cfgBackend, set["config"])
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		return 1
	}

	if set["date"] {
		cfgData.Birth.Date = *date
	}
	if set["time"] {
		cfgData.Birth.Time = *clock
	}
	if set["lat"] {
		cfgData.Birth.Latitude = *lat
	}
	if set["lon"] {
		cfgData.Birth.Longitude = *lon
	}
	if set["tz"] {
		cfgData.Birth.Timezone = *tz
	}
	if set["out"] {
		cfgData.Output.File = *out
	}

	application := app.New(cfgData, log.GetSugaredLogger(), app.WithOutput(stdout), app.WithEstimate(*estimate))

	if *from != "" {
		if err := application.RenderSaved(*from); err != nil {
			log.Errorf("Failed to render %s: %v", *from, err)
			return 1
		}
		return 0
	}

	if err := application.Run(context.Background()); err != nil {
		var parseErr *chart.ParseError
		var fetchErr *chart.FetchError
		var ioErr *chart.IOError
		switch {
		case errors.As(err, &parseErr):
			log.Errorf("Invalid birth data, no request was made: %v", err)
		case errors.As(err, &fetchErr):
			log.Errorf("Failed to fetch chart: %v", err)
		case errors.As(err, &ioErr):
			log.Errorf("Failed to save chart: %v", err)
		default:
			log.Errorf("Application error: %v", err)
		}
		return 1
	}
	return 0
}

// loadConfig reads the configuration source. Without an explicit -config, a missing
// config.yaml is not an error and the built-in example chart is used.
func loadConfig(cfgFile, cfgBackend string, explicit bool) (*config.ConfigData, error) {
	var provider config.ConfigProvider

	switch cfgBackend {
	case "yaml":
		filename, _ := filepath.Abs(cfgFile)
		if _, err := os.Stat(filename); err != nil && !explicit {
			d := config.Defaults()
			return &d, nil
		}
		provider = config.NewYAMLProvider(filename)
	case "env":
		if explicit {
			provider = config.NewEnvProvider(strings.Split(cfgFile, ",")...)
		} else {
			provider = config.NewEnvProvider()
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'env'", cfgBackend)
	}

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}

package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leg100/roadmap/internal/logging"
	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"
)

type config struct {
	APIURL  string
	Timeout time.Duration
	LogFile string
	Topic   string
	Email   string
	Debug   bool
	Version bool

	loggingOptions logging.Options
}

// set config in order of precedence:
// 1. flags > 2. env vars > 3. config file
func parse(stderr io.Writer, args []string) (config, error) {
	var cfg config

	home, err := os.UserHomeDir()
	if err != nil {
		return config{}, fmt.Errorf("retrieving user's home directory: %w", err)
	}
	defaultConfigFile := filepath.Join(home, ".roadmap.yaml")

	fs := ff.NewFlagSet("roadmap")
	fs.StringVar(&cfg.APIURL, 'u', "api-url", roadmap.DefaultURL, "Address of the roadmap service.")
	fs.DurationVar(&cfg.Timeout, 0, "timeout", 0, "Timeout for each request to the roadmap service. Zero means no timeout.")
	fs.StringVar(&cfg.Topic, 't', "topic", "", "Topic to search for on startup.")
	fs.StringVar(&cfg.Email, 'e', "email", "", "Email address to send the roadmap to.")
	fs.StringVar(&cfg.LogFile, 0, "log-file", "", "Also write logs to this file.")
	fs.BoolVar(&cfg.Debug, 'd', "debug", "Log bubbletea messages to messages.log")
	fs.BoolVar(&cfg.Version, 'v', "version", "Print version.")
	_ = fs.String('c', "config", defaultConfigFile, "Path to config file.")

	{
		usage := fmt.Sprintf("Logging level (valid: %s).", strings.Join(logging.ValidLevels(), ","))
		fs.StringEnumVar(&cfg.loggingOptions.Level, 'l', "log-level", usage, logging.ValidLevels()...)
	}

	err = ff.Parse(fs, args,
		ff.WithEnvVarPrefix("ROADMAP"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
		ff.WithConfigAllowMissingFile(),
	)
	if err != nil {
		// ff.Parse returns an error if there is an error or if -h/--help is
		// passed; in either case print flag usage in addition to error message.
		fmt.Fprintln(stderr, ffhelp.Flags(fs))
		return config{}, err
	}
	return cfg, nil
}

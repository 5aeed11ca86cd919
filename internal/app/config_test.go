package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leg100/roadmap/internal/logging"
	"github.com/leg100/roadmap/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	// Unset environment variables set on host computer
	t.Setenv("ROADMAP_API_URL", "")
	t.Setenv("ROADMAP_DEBUG", "")
	t.Setenv("ROADMAP_LOG_LEVEL", "")
	t.Setenv("ROADMAP_TOPIC", "")
	t.Setenv("ROADMAP_EMAIL", "")
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		file string
		args []string
		envs []string
		want func(t *testing.T, got config)
	}{
		{
			"defaults",
			"",
			nil,
			nil,
			func(t *testing.T, got config) {
				want := config{
					APIURL: "http://localhost:8080",
					loggingOptions: logging.Options{
						Level: "info",
					},
				}
				assert.Equal(t, want, got)
			},
		},
		{
			"config file override default",
			"api-url: http://roadmap.example.com\n",
			nil,
			nil,
			func(t *testing.T, got config) {
				assert.Equal(t, "http://roadmap.example.com", got.APIURL)
			},
		},
		{
			"config file with timeout override default",
			"timeout: 30s\n",
			nil,
			nil,
			func(t *testing.T, got config) {
				assert.Equal(t, 30*time.Second, got.Timeout)
			},
		},
		{
			"env var override default",
			"",
			nil,
			[]string{"ROADMAP_API_URL=http://roadmap.example.com"},
			func(t *testing.T, got config) {
				assert.Equal(t, "http://roadmap.example.com", got.APIURL)
			},
		},
		{
			"flag override default",
			"",
			[]string{"--api-url", "http://roadmap.example.com"},
			nil,
			func(t *testing.T, got config) {
				assert.Equal(t, "http://roadmap.example.com", got.APIURL)
			},
		},
		{
			"env var overrides config file",
			"api-url: http://file.example.com\n",
			nil,
			[]string{"ROADMAP_API_URL=http://env.example.com"},
			func(t *testing.T, got config) {
				assert.Equal(t, "http://env.example.com", got.APIURL)
			},
		},
		{
			"flag overrides env var",
			"",
			[]string{"-u", "http://flag.example.com"},
			[]string{"ROADMAP_API_URL=http://env.example.com"},
			func(t *testing.T, got config) {
				assert.Equal(t, "http://flag.example.com", got.APIURL)
			},
		},
		{
			"flag overrides both env var and config",
			"api-url: http://file.example.com\n",
			[]string{"--api-url", "http://flag.example.com"},
			[]string{"ROADMAP_API_URL=http://env.example.com"},
			func(t *testing.T, got config) {
				assert.Equal(t, "http://flag.example.com", got.APIURL)
			},
		},
		{
			"set topic and email",
			"",
			[]string{"-t", "Web Development", "-e", "me@example.com"},
			nil,
			func(t *testing.T, got config) {
				assert.Equal(t, "Web Development", got.Topic)
				assert.Equal(t, "me@example.com", got.Email)
			},
		},
		{
			"set log level via environment variable",
			"",
			nil,
			[]string{"ROADMAP_LOG_LEVEL=debug"},
			func(t *testing.T, got config) {
				assert.Equal(t, "debug", got.loggingOptions.Level)
			},
		},
		{
			"enable debug and version",
			"",
			[]string{"-d", "-v"},
			nil,
			func(t *testing.T, got config) {
				assert.True(t, got.Debug)
				assert.True(t, got.Version)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// change into a temp dir in case the host computer has a
			// .roadmap.yaml file
			testutils.ChTempDir(t, t.TempDir())

			// set env vars
			for _, ev := range tt.envs {
				name, val, _ := strings.Cut(ev, "=")
				t.Setenv(name, val)
			}

			// set config file
			path := filepath.Join(os.Getenv("HOME"), ".roadmap.yaml")
			if tt.file != "" {
				err := os.WriteFile(path, []byte(tt.file), 0o644)
				require.NoError(t, err)
				t.Cleanup(func() { os.Remove(path) })
			}

			// and pass in flags
			got, err := parse(io.Discard, tt.args)
			require.NoError(t, err)

			tt.want(t, got)
		})
	}
}

func TestConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var stderr bytes.Buffer
	_, err := parse(&stderr, []string{"--log-level", "verbose"})
	require.Error(t, err)

	// usage is printed on error
	assert.Contains(t, stderr.String(), "--api-url")
}

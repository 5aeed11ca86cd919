package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/leg100/roadmap/internal/logging"
	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setupOption func(*config)

func withTopic(topic string) setupOption {
	return func(cfg *config) {
		cfg.Topic = topic
	}
}

func setup(t *testing.T, url string, sopts ...setupOption) *teatest.TestModel {
	t.Helper()

	// Cancel context once test finishes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config{
		APIURL: url,
		loggingOptions: logging.Options{
			Level: "debug",
			AdditionalWriters: []io.Writer{
				&testLogger{t},
			},
		},
	}
	for _, fn := range sopts {
		fn(&cfg)
	}

	app, m, err := newApp(ctx, cfg)
	require.NoError(t, err)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 50),
	)
	cleanup := app.start(ctx, tm)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err, "cleaning up app resources")
	})
	return tm
}

// backend is a stub of the roadmap service.
type backend struct {
	*httptest.Server

	skills    []roadmap.Skill
	resources map[string][]roadmap.Resource

	emails chan roadmap.Roadmap
}

func newBackend(t *testing.T, skills []roadmap.Skill, resources map[string][]roadmap.Resource) *backend {
	t.Helper()

	b := &backend{
		skills:    skills,
		resources: resources,
		emails:    make(chan roadmap.Roadmap, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+roadmap.SkillsPath, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic string `json:"topic"`
		}
		if !b.decode(w, r, &req) {
			return
		}
		b.reply(w, b.skills)
	})
	mux.HandleFunc("POST "+roadmap.ResourcesPath, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SkillName string `json:"skillName"`
		}
		if !b.decode(w, r, &req) {
			return
		}
		resources, ok := b.resources[req.SkillName]
		if !ok {
			resources = []roadmap.Resource{}
		}
		b.reply(w, resources)
	})
	mux.HandleFunc("POST "+roadmap.EmailPath, func(w http.ResponseWriter, r *http.Request) {
		var req roadmap.Roadmap
		if !b.decode(w, r, &req) {
			return
		}
		b.emails <- req
		b.reply(w, map[string]string{"message": "Roadmap sent to " + req.Email})
	})
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

func (b *backend) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (b *backend) reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// testLogger relays roadmap log records to the go test logger
type testLogger struct {
	t *testing.T
}

func (l *testLogger) Write(b []byte) (int, error) {
	l.t.Helper()

	l.t.Log(string(b))
	return len(b), nil
}

func waitFor(t *testing.T, tm *teatest.TestModel, cond func(s string) bool) {
	t.Helper()

	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			return cond(string(b))
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*10),
	)
}

func waitForText(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()

	waitFor(t, tm, func(s string) bool {
		return strings.Contains(s, text)
	})
}

func pressEnter(tm *teatest.TestModel) {
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

func pressTab(tm *teatest.TestModel) {
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
}

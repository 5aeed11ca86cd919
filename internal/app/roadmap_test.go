package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/stretchr/testify/assert"
)

var (
	htmlSkill = roadmap.Skill{Name: "HTML", Description: "Markup language for the structure of web pages."}
	cssSkill  = roadmap.Skill{Name: "CSS", Description: "Style sheet language for the presentation of web pages."}
	mdn       = roadmap.Resource{Title: "MDN HTML Guide", URL: "https://developer.mozilla.org/en-US/docs/Web/HTML", Type: "documentation"}
)

func TestRoadmap(t *testing.T) {
	t.Parallel()

	b := newBackend(t,
		[]roadmap.Skill{htmlSkill, cssSkill},
		map[string][]roadmap.Resource{"HTML": {mdn}},
	)
	tm := setup(t, b.URL)

	// Search for skills
	tm.Type("Web Development")
	pressEnter(tm)
	waitForText(t, tm, "Markup language for the structure of web pages.")

	// Get resources for the first skill
	pressEnter(tm)
	waitForText(t, tm, "MDN HTML Guide (documentation)")

	// Email roadmap
	pressTab(tm)
	tm.Type("me@example.com")
	pressEnter(tm)
	waitForText(t, tm, "Email sent successfully!")

	select {
	case got := <-b.emails:
		want := roadmap.Roadmap{
			Topic: "Web Development",
			Email: "me@example.com",
			Skills: []roadmap.RoadmapSkill{
				{Name: "HTML", Description: htmlSkill.Description, Resources: []roadmap.Resource{mdn}},
				{Name: "CSS", Description: cssSkill.Description, Resources: []roadmap.Resource{}},
			},
		}
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("email not received by backend")
	}
}

func TestRoadmap_SearchOnStartup(t *testing.T) {
	t.Parallel()

	b := newBackend(t, []roadmap.Skill{htmlSkill}, nil)
	tm := setup(t, b.URL, withTopic("Web Development"))

	waitForText(t, tm, "Markup language for the structure of web pages.")
}

func TestRoadmap_NoResources(t *testing.T) {
	t.Parallel()

	b := newBackend(t, []roadmap.Skill{cssSkill}, nil)
	tm := setup(t, b.URL, withTopic("Web Development"))

	waitForText(t, tm, "Style sheet language")

	pressEnter(tm)
	waitForText(t, tm, "No resources available.")
}

func TestRoadmap_ServiceError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	tm := setup(t, srv.URL, withTopic("Web Development"))

	waitForText(t, tm, "Error: fetching skills: POST /api/v1/openai/generate-skills: 500")
}

func TestRoadmap_EmptyTopic(t *testing.T) {
	t.Parallel()

	b := newBackend(t, nil, nil)
	tm := setup(t, b.URL)

	pressEnter(tm)
	waitForText(t, tm, "Please enter a topic.")
}

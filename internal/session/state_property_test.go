package session

import (
	"fmt"
	"testing"

	"github.com/leg100/roadmap/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var (
	topics     = []string{"", " ", "Web Development", "Go", "Machine Learning"}
	skillNames = []string{"HTML", "CSS", "JavaScript", "Go"}
)

// pending is an outstanding request awaiting a response.
type pending struct {
	kind  string
	gen   Generation
	skill string
}

// sessionMachine drives a State with random user actions and randomly ordered
// responses, checking invariants after every step.
type sessionMachine struct {
	state   State
	pending []pending

	// fetched counts successful resource fetches per generation and skill.
	fetched map[string]int
}

func (m *sessionMachine) search(t *rapid.T) {
	topic := rapid.SampledFrom(topics).Draw(t, "topic")
	next, req, err := m.state.WithTopic(topic).StartSearch()
	if err != nil {
		assert.Equal(t, m.state.Generation(), next.Generation())
		m.state = next
		return
	}
	assert.Equal(t, EmailIdle, next.EmailStatus())
	assert.Empty(t, next.InFlight())
	assert.Equal(t, "", next.Expanded())
	m.state = next
	m.pending = append(m.pending, pending{kind: "skills", gen: req.Generation})
}

func (m *sessionMachine) requestResources(t *rapid.T) {
	skill := rapid.SampledFrom(skillNames).Draw(t, "skill")
	_, cached := m.state.Resources(skill)
	inflight := m.state.IsLoading(skill) || contains(m.state.InFlight(), skill)

	next, req := m.state.RequestResources(skill)
	switch {
	case cached:
		assert.Nil(t, req, "cached skill must not be fetched")
		assert.True(t, next.IsExpanded(skill))
	case inflight:
		assert.Nil(t, req, "in flight skill must not be fetched twice")
	default:
		if assert.NotNil(t, req) {
			m.pending = append(m.pending, pending{kind: "resources", gen: req.Generation, skill: skill})
		}
	}
	m.state = next
}

func (m *sessionMachine) sendEmail(t *rapid.T) {
	email := rapid.SampledFrom([]string{"", "me@example.com"}).Draw(t, "email")
	next, req, err := m.state.WithEmail(email).StartEmail()
	m.state = next
	if err != nil {
		return
	}
	assert.Equal(t, EmailSending, next.EmailStatus())
	assert.Len(t, req.Roadmap.Skills, len(next.Skills()))
	m.pending = append(m.pending, pending{kind: "email", gen: req.Generation})
}

func (m *sessionMachine) respond(t *rapid.T) {
	if len(m.pending) == 0 {
		t.Skip("nothing pending")
	}
	i := rapid.IntRange(0, len(m.pending)-1).Draw(t, "response")
	p := m.pending[i]
	m.pending = append(m.pending[:i], m.pending[i+1:]...)
	ok := rapid.Bool().Draw(t, "ok")

	before := m.state
	switch p.kind {
	case "skills":
		if ok {
			n := rapid.IntRange(0, len(skillNames)).Draw(t, "skills")
			skills := make([]roadmap.Skill, n)
			for j := range skills {
				skills[j] = roadmap.Skill{Name: skillNames[j]}
			}
			m.state = m.state.SkillsLoaded(p.gen, skills)
		} else {
			m.state = m.state.SkillsFailed(p.gen)
		}
	case "resources":
		if ok {
			m.state = m.state.ResourcesLoaded(p.gen, p.skill, []roadmap.Resource{{Title: p.skill}})
			if p.gen == before.Generation() {
				m.fetched[fmt.Sprintf("%d/%s", p.gen, p.skill)]++
			}
		} else {
			m.state = m.state.ResourcesFailed(p.gen, p.skill)
		}
	case "email":
		if ok {
			m.state = m.state.EmailDelivered(p.gen)
		} else {
			m.state = m.state.EmailFailed(p.gen)
		}
	}
	if p.gen != before.Generation() {
		assert.Equal(t, before, m.state, "stale response must not change state")
	}
}

func (m *sessionMachine) check(t *rapid.T) {
	if loading := m.state.LoadingSkill(); loading != "" {
		assert.Contains(t, m.state.InFlight(), loading)
	}
	if expanded := m.state.Expanded(); expanded != "" {
		_, ok := m.state.Resources(expanded)
		assert.True(t, ok, "expanded skill must have cached resources")
	}
	for key, n := range m.fetched {
		assert.LessOrEqual(t, n, 1, "resources for %s fetched more than once", key)
	}
}

func TestSessionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := &sessionMachine{state: New(), fetched: make(map[string]int)}
		t.Repeat(map[string]func(*rapid.T){
			"search":           m.search,
			"requestResources": m.requestResources,
			"sendEmail":        m.sendEmail,
			"respond":          m.respond,
			"":                 m.check,
		})
	})
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

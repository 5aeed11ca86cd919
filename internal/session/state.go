// Package session models the state of a roadmap session as an immutable
// value. Every transition returns a new State and leaves the receiver
// untouched, so a State may be freely shared and compared.
package session

import (
	"errors"
	"slices"
	"strings"

	"github.com/leg100/roadmap/internal/roadmap"
	"golang.org/x/exp/maps"
)

var (
	ErrEmptyTopic       = errors.New("please enter a topic")
	ErrEmptyEmail       = errors.New("please enter your email address")
	ErrNoSkills         = errors.New("there is no roadmap to send")
	ErrSearchInProgress = errors.New("a search is already in progress")
	ErrEmailInProgress  = errors.New("an email is already being sent")
)

// Generation identifies a search. Results of requests issued under an older
// generation are stale and are discarded.
type Generation uint64

// SkillsRequest asks for the skills of a topic.
type SkillsRequest struct {
	Generation Generation
	Topic      string
}

// ResourcesRequest asks for the resources of a skill.
type ResourcesRequest struct {
	Generation Generation
	Skill      string
}

// EmailRequest asks for a roadmap to be emailed.
type EmailRequest struct {
	Generation Generation
	Roadmap    roadmap.Roadmap
}

// State is the state of a session.
type State struct {
	topic  string
	email  string
	skills []roadmap.Skill

	expanded     string
	loadingSkill string
	searching    bool
	emailStatus  EmailStatus

	// resources caches resources by skill name. Copied on write.
	resources map[string][]roadmap.Resource
	// inflight is the set of skills with an outstanding resources request.
	// Copied on write.
	inflight map[string]struct{}

	generation Generation
}

// New constructs the state of a new session.
func New() State {
	return State{}
}

func (s State) Topic() string                { return s.topic }
func (s State) Email() string                { return s.email }
func (s State) Skills() []roadmap.Skill      { return slices.Clone(s.skills) }
func (s State) Expanded() string             { return s.expanded }
func (s State) LoadingSkill() string         { return s.loadingSkill }
func (s State) Searching() bool              { return s.searching }
func (s State) EmailStatus() EmailStatus     { return s.emailStatus }
func (s State) Generation() Generation       { return s.generation }
func (s State) IsExpanded(skill string) bool { return skill != "" && s.expanded == skill }
func (s State) IsLoading(skill string) bool  { return skill != "" && s.loadingSkill == skill }

// Resources retrieves the cached resources for a skill.
func (s State) Resources(skill string) ([]roadmap.Resource, bool) {
	r, ok := s.resources[skill]
	return slices.Clone(r), ok
}

// InFlight lists the skills with an outstanding resources request, sorted by
// name.
func (s State) InFlight() []string {
	keys := maps.Keys(s.inflight)
	slices.Sort(keys)
	return keys
}

// Busy is true if any request is outstanding.
func (s State) Busy() bool {
	return s.searching || len(s.inflight) > 0 || s.emailStatus == EmailSending
}

// Roadmap assembles the roadmap from the current snapshot.
func (s State) Roadmap() roadmap.Roadmap {
	return roadmap.NewRoadmap(s.topic, s.email, s.skills, s.Resources)
}

func (s State) WithTopic(topic string) State {
	s.topic = topic
	return s
}

func (s State) WithEmail(email string) State {
	s.email = email
	return s
}

// StartSearch begins a search for the skills of the current topic. The cache
// of resources, the expanded skill and the email status are reset. The
// existing skills are retained until the search completes.
func (s State) StartSearch() (State, SkillsRequest, error) {
	topic := strings.TrimSpace(s.topic)
	if topic == "" {
		return s, SkillsRequest{}, ErrEmptyTopic
	}
	if s.searching {
		return s, SkillsRequest{}, ErrSearchInProgress
	}
	s.searching = true
	s.resources = nil
	s.inflight = nil
	s.expanded = ""
	s.loadingSkill = ""
	s.emailStatus = EmailIdle
	s.generation++
	return s, SkillsRequest{Generation: s.generation, Topic: topic}, nil
}

// SkillsLoaded replaces the skills with those returned by a search.
func (s State) SkillsLoaded(gen Generation, skills []roadmap.Skill) State {
	if gen != s.generation {
		return s
	}
	s.skills = slices.Clone(skills)
	s.searching = false
	return s
}

// SkillsFailed ends a search that failed, leaving the skills unchanged.
func (s State) SkillsFailed(gen Generation) State {
	if gen != s.generation {
		return s
	}
	s.searching = false
	return s
}

// RequestResources expands a skill, requesting its resources if they have not
// already been fetched. A nil request is returned if the resources are already
// cached or are already being fetched.
func (s State) RequestResources(skill string) (State, *ResourcesRequest) {
	if _, ok := s.resources[skill]; ok {
		s.expanded = skill
		return s, nil
	}
	if _, ok := s.inflight[skill]; ok {
		return s, nil
	}
	s.inflight = cloneAdd(s.inflight, skill)
	s.loadingSkill = skill
	return s, &ResourcesRequest{Generation: s.generation, Skill: skill}
}

// ResourcesLoaded caches the resources of a skill and expands it.
func (s State) ResourcesLoaded(gen Generation, skill string, resources []roadmap.Resource) State {
	if gen != s.generation {
		return s
	}
	if resources == nil {
		resources = []roadmap.Resource{}
	}
	s.resources = maps.Clone(s.resources)
	if s.resources == nil {
		s.resources = make(map[string][]roadmap.Resource, 1)
	}
	s.resources[skill] = slices.Clone(resources)
	s.expanded = skill
	return s.settle(skill)
}

// ResourcesFailed ends a failed resources request, leaving the cache
// unchanged.
func (s State) ResourcesFailed(gen Generation, skill string) State {
	if gen != s.generation {
		return s
	}
	return s.settle(skill)
}

// settle removes a skill from the set of in-flight requests.
func (s State) settle(skill string) State {
	s.inflight = cloneDelete(s.inflight, skill)
	if s.loadingSkill == skill {
		s.loadingSkill = ""
	}
	return s
}

// Collapse hides the resources of the expanded skill.
func (s State) Collapse() State {
	s.expanded = ""
	return s
}

// StartEmail begins sending the roadmap to the current email address.
func (s State) StartEmail() (State, EmailRequest, error) {
	email := strings.TrimSpace(s.email)
	if email == "" {
		return s, EmailRequest{}, ErrEmptyEmail
	}
	if len(s.skills) == 0 {
		return s, EmailRequest{}, ErrNoSkills
	}
	if s.emailStatus == EmailSending {
		return s, EmailRequest{}, ErrEmailInProgress
	}
	s.emailStatus = EmailSending
	rm := roadmap.NewRoadmap(s.topic, email, s.skills, s.Resources)
	return s, EmailRequest{Generation: s.generation, Roadmap: rm}, nil
}

// EmailDelivered records a successful send.
func (s State) EmailDelivered(gen Generation) State {
	return s.finishEmail(gen, EmailSent)
}

// EmailFailed records a failed send.
func (s State) EmailFailed(gen Generation) State {
	return s.finishEmail(gen, EmailError)
}

func (s State) finishEmail(gen Generation, status EmailStatus) State {
	if gen != s.generation || s.emailStatus != EmailSending {
		return s
	}
	s.emailStatus = status
	return s
}

func cloneAdd(set map[string]struct{}, key string) map[string]struct{} {
	cloned := make(map[string]struct{}, len(set)+1)
	for k := range set {
		cloned[k] = struct{}{}
	}
	cloned[key] = struct{}{}
	return cloned
}

func cloneDelete(set map[string]struct{}, key string) map[string]struct{} {
	if _, ok := set[key]; !ok {
		return set
	}
	cloned := make(map[string]struct{}, len(set))
	for k := range set {
		if k != key {
			cloned[k] = struct{}{}
		}
	}
	return cloned
}

// Package roadmap holds the roadmap data model and the client for the remote
// service that generates skills and resources and emails roadmaps.
package roadmap

// Skill is a named learning topic with a short description, one node in a
// roadmap.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Resource is a single learning material associated with a skill.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Roadmap is the topic together with its skills and their resources, as sent
// for email delivery.
type Roadmap struct {
	Topic  string         `json:"topic"`
	Email  string         `json:"email"`
	Skills []RoadmapSkill `json:"skills"`
}

type RoadmapSkill struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Resources   []Resource `json:"resources"`
}

// ResourceLookup retrieves the resources fetched for a skill, if any.
type ResourceLookup func(skill string) ([]Resource, bool)

// NewRoadmap assembles a roadmap, retaining the order of skills. A skill whose
// resources have not been fetched is given an empty list of resources.
func NewRoadmap(topic, email string, skills []Skill, lookup ResourceLookup) Roadmap {
	rm := Roadmap{
		Topic:  topic,
		Email:  email,
		Skills: make([]RoadmapSkill, len(skills)),
	}
	for i, skill := range skills {
		resources, ok := lookup(skill.Name)
		if !ok || resources == nil {
			resources = []Resource{}
		}
		rm.Skills[i] = RoadmapSkill{
			Name:        skill.Name,
			Description: skill.Description,
			Resources:   resources,
		}
	}
	return rm
}

// ResourceCount returns the total number of resources across all skills.
func (r Roadmap) ResourceCount() (n int) {
	for _, skill := range r.Skills {
		n += len(skill.Resources)
	}
	return
}

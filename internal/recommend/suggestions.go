package recommend

import (
	"strings"

	"github.com/spigell/job-recommender/internal/utils"
)

const (
	maxSuggestions    = 3
	genericSuggestion = "Search on Udemy, Coursera, or YouTube"
)

var learningResources = map[string]string{
	"python":           "Python.org tutorials, Codecademy Python course",
	"javascript":       "freeCodeCamp, JavaScript.info",
	"react":            "React official docs, Scrimba React course",
	"node.js":          "Node.js official guides, The Odin Project",
	"aws":              "AWS Free Tier, A Cloud Guru",
	"docker":           "Docker official tutorials, Play with Docker",
	"kubernetes":       "Kubernetes docs, KodeKloud",
	"sql":              "SQLZoo, Mode Analytics SQL Tutorial",
	"machine learning": "Coursera ML, Fast.ai",
	"data science":     "Kaggle Learn, DataCamp",
}

// Suggestion points at resources for learning a missing skill.
type Suggestion struct {
	Skill     string `json:"skill"`
	Resources string `json:"resources"`
}

func (s Suggestion) String() string {
	return s.Skill + ": " + s.Resources
}

// LearningSuggestions returns resources for the first three missing skills.
func LearningSuggestions(missing []string) []Suggestion {
	out := make([]Suggestion, 0, maxSuggestions)
	for _, skill := range missing {
		if len(out) == maxSuggestions {
			break
		}
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}

		resources, ok := learningResources[key]
		if !ok {
			resources = genericSuggestion
		}
		out = append(out, Suggestion{Skill: utils.TitleCase(key), Resources: resources})
	}
	return out
}

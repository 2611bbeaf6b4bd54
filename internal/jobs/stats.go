package jobs

import (
	"sort"
	"strings"
)

// UniqueSkills returns every distinct skill in the corpus, sorted.
func (c *Corpus) UniqueSkills() []string {
	set := make(map[string]struct{})
	for i := range c.Postings {
		for _, skill := range c.Postings[i].SkillList() {
			set[skill] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// UniqueCompanies returns every distinct non-empty company, sorted.
func (c *Corpus) UniqueCompanies() []string {
	set := make(map[string]struct{})
	for i := range c.Postings {
		if company := strings.TrimSpace(c.Postings[i].Company); company != "" {
			set[company] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// UniqueLocations returns every distinct raw location, sorted.
func (c *Corpus) UniqueLocations() []string {
	set := make(map[string]struct{})
	for i := range c.Postings {
		if loc := strings.TrimSpace(c.Postings[i].Location); loc != "" {
			set[loc] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// NormalizedLocations maps every location through normalize and returns the
// distinct results accepted by keep, sorted.
func (c *Corpus) NormalizedLocations(normalize func(string) string, keep func(string) bool) []string {
	set := make(map[string]struct{})
	for i := range c.Postings {
		canonical := normalize(c.Postings[i].Location)
		if keep != nil && !keep(canonical) {
			continue
		}
		set[canonical] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Package location maps free-text job locations to canonical city names.
package location

import "strings"

const (
	Remote  = "Remote"
	India   = "India"
	Other   = "Other"
	Unknown = "Unknown"
)

type city struct {
	name     string
	keywords []string
}

// Order matters: the first city with a matching keyword wins.
var cities = []city{
	{name: "Mumbai", keywords: []string{"mumbai", "powai", "goregaon", "andheri", "charni", "prabhadevi", "trombay", "nana peth"}},
	{name: "Bangalore", keywords: []string{"bangalore", "madivala", "muthusandra", "banasavangee"}},
	{name: "Hyderabad", keywords: []string{"hyderabad", "kyasaram"}},
	{name: "Pune", keywords: []string{"pune", "baner", "vadgaon", "hadapsar", "warje", "nana peth"}},
	{name: "Chennai", keywords: []string{"chennai", "injambakkam", "chintadripet", "ttti taramani", "egmore", "gopalapuram"}},
	{name: "Delhi", keywords: []string{"delhi", "new delhi", "north delhi", "south delhi", "chandni chowk", "timarpur", "jeevan park", "lajpat nagar", "sarita vihar", "sansad marg"}},
	{name: Remote, keywords: []string{"remote"}},
}

// Normalize returns the canonical city for raw, e.g. "Powai Iit, Mumbai" -> "Mumbai".
// Unmatched text becomes India when it mentions the country, Other otherwise.
// Blank input is Unknown.
func Normalize(raw string) string {
	loc := strings.ToLower(strings.TrimSpace(raw))
	if loc == "" {
		return Unknown
	}

	for _, c := range cities {
		for _, keyword := range c.keywords {
			if strings.Contains(loc, keyword) {
				return c.name
			}
		}
	}

	if strings.Contains(loc, "india") {
		return India
	}

	return Other
}

// IsSpecific reports whether canonical names a concrete place or remote work.
func IsSpecific(canonical string) bool {
	switch canonical {
	case Other, Unknown, India, "":
		return false
	default:
		return true
	}
}

package recommend

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/job-recommender/internal/utils"
)

// Signal weights. They sum to 1.
const (
	SkillsWeight     = 0.7
	ExperienceWeight = 0.2
	LocationWeight   = 0.1
)

const (
	neutralExperience   = 0.5
	overqualified       = 0.9
	deficitPenaltyYear  = 0.2
	maxMissingSkills    = 5
	anyLocationSentinel = "any"
)

var numberPattern = regexp.MustCompile(`\d+`)

// YearRange is an inclusive range of years of experience.
type YearRange struct {
	Lo int
	Hi int
}

// Midpoint returns the centre of the range.
func (r YearRange) Midpoint() float64 {
	return float64(r.Lo+r.Hi) / 2
}

// Contains reports whether years lies within the range, bounds included.
func (r YearRange) Contains(years float64) bool {
	return years >= float64(r.Lo) && years <= float64(r.Hi)
}

// ParseExperience turns strings like "2-5 years", "3 years" or "senior" into a
// year range. Empty input has no range.
func ParseExperience(s string) (YearRange, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return YearRange{}, false
	}

	numbers := parseNumbers(s)
	switch {
	case len(numbers) >= 2:
		return YearRange{Lo: numbers[0], Hi: numbers[1]}, true
	case len(numbers) == 1:
		return YearRange{Lo: numbers[0], Hi: numbers[0] + 2}, true
	}

	switch {
	case strings.Contains(s, "fresher"), strings.Contains(s, "entry"):
		return YearRange{Lo: 0, Hi: 2}, true
	case strings.Contains(s, "senior"), strings.Contains(s, "lead"):
		return YearRange{Lo: 5, Hi: 10}, true
	default:
		return YearRange{Lo: 2, Hi: 5}, true
	}
}

// UserYears reduces a profile's experience string to a single comparable number:
// the value itself for "3 years", the midpoint for ranges and keywords.
func UserYears(s string) (float64, bool) {
	numbers := parseNumbers(s)
	if len(numbers) == 1 {
		return float64(numbers[0]), true
	}

	r, ok := ParseExperience(s)
	if !ok {
		return 0, false
	}
	return r.Midpoint(), true
}

func parseNumbers(s string) []int {
	var out []int
	for _, m := range numberPattern.FindAllString(s, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ExperienceMatch scores a user against a posting's experience requirement in [0,1].
func ExperienceMatch(userYears float64, userKnown bool, jobExperience string) float64 {
	job, ok := ParseExperience(jobExperience)
	if !ok || !userKnown {
		return neutralExperience
	}

	switch {
	case job.Contains(userYears):
		return 1
	case userYears < float64(job.Lo):
		return math.Max(0, 1-deficitPenaltyYear*(float64(job.Lo)-userYears))
	default:
		return overqualified
	}
}

// NoLocationPreference reports whether the user accepts any location.
func NoLocationPreference(pref string) bool {
	pref = strings.TrimSpace(pref)
	return pref == "" || strings.EqualFold(pref, anyLocationSentinel)
}

// locationMatcher scores postings against a fixed user preference.
type locationMatcher struct {
	normalize func(string) string
	any       bool
	raw       string
	canonical string
	// fuzzy is set when the preference did not normalize to a known place;
	// raw strings are compared then.
	fuzzy bool
}

func newLocationMatcher(pref string, normalize func(string) string) *locationMatcher {
	m := &locationMatcher{normalize: normalize, any: NoLocationPreference(pref)}
	if m.any {
		return m
	}

	m.raw = strings.ToLower(strings.TrimSpace(pref))
	m.canonical = strings.ToLower(normalize(pref))
	m.fuzzy = m.canonical == "other" || m.canonical == "unknown"

	return m
}

// Match returns 1 for the preferred place or remote work and 0 otherwise.
func (m *locationMatcher) Match(jobLocation string) float64 {
	if m.any {
		return 1
	}

	canonical := strings.ToLower(m.normalize(jobLocation))
	if strings.Contains(canonical, "remote") {
		return 1
	}

	if m.fuzzy {
		if strings.ToLower(strings.TrimSpace(jobLocation)) == m.raw {
			return 1
		}
		return 0
	}

	if canonical == m.canonical {
		return 1
	}
	return 0
}

// explainSkills splits a posting's skills into the ones the user has and the
// ones they lack, keeping corpus order and spelling. missing is capped at 5.
func explainSkills(userSkills map[string]struct{}, jobSkills string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, skill := range utils.SplitList(jobSkills) {
		if _, ok := userSkills[strings.ToLower(skill)]; ok {
			matched = append(matched, skill)
			continue
		}
		if len(missing) < maxMissingSkills {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

func percent(x float64) float64 {
	return math.Round(x*100*100) / 100
}

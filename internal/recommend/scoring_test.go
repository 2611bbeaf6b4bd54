package recommend

import (
	"math"
	"reflect"
	"testing"

	"github.com/spigell/job-recommender/internal/location"
)

func TestParseExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect YearRange
		ok     bool
	}{
		{input: "2-5 years", expect: YearRange{2, 5}, ok: true},
		{input: "5 to 10 yrs, 12 preferred", expect: YearRange{5, 10}, ok: true},
		{input: "3 years", expect: YearRange{3, 5}, ok: true},
		{input: "Fresher", expect: YearRange{0, 2}, ok: true},
		{input: "Entry level", expect: YearRange{0, 2}, ok: true},
		{input: "Senior", expect: YearRange{5, 10}, ok: true},
		{input: "Team Lead", expect: YearRange{5, 10}, ok: true},
		{input: "experienced", expect: YearRange{2, 5}, ok: true},
		{input: "  ", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseExperience(tt.input)
			if ok != tt.ok || got != tt.expect {
				t.Fatalf("ParseExperience(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.expect, tt.ok)
			}
		})
	}
}

func TestUserYears(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"3 years":   3,
		"2-5 years": 3.5,
		"fresher":   1,
		"senior":    7.5,
	}
	for in, want := range cases {
		got, ok := UserYears(in)
		if !ok || got != want {
			t.Fatalf("UserYears(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}

	if _, ok := UserYears(""); ok {
		t.Fatalf("expected empty experience to be unknown")
	}
}

func TestExperienceMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		user      float64
		userKnown bool
		job       string
		expect    float64
	}{
		{name: "inside range", user: 3, userKnown: true, job: "2-5 years", expect: 1},
		{name: "lower bound", user: 2, userKnown: true, job: "2-5 years", expect: 1},
		{name: "upper bound", user: 5, userKnown: true, job: "2-5 years", expect: 1},
		{name: "two years short", user: 3, userKnown: true, job: "5-10 years", expect: 0.6},
		{name: "five years short", user: 0, userKnown: true, job: "5-10 years", expect: 0},
		{name: "far too junior", user: 0, userKnown: true, job: "8-12 years", expect: 0},
		{name: "overqualified", user: 3, userKnown: true, job: "fresher", expect: 0.9},
		{name: "no job requirement", user: 3, userKnown: true, job: "", expect: 0.5},
		{name: "unknown user", user: 0, userKnown: false, job: "2-5 years", expect: 0.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExperienceMatch(tt.user, tt.userKnown, tt.job); math.Abs(got-tt.expect) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestLocationMatcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pref   string
		job    string
		expect float64
	}{
		{name: "no preference", pref: "", job: "Mumbai", expect: 1},
		{name: "any sentinel", pref: "ANY", job: "Berlin", expect: 1},
		{name: "same city", pref: "Bangalore", job: "Madivala, Bangalore", expect: 1},
		{name: "user area normalizes too", pref: "Powai", job: "Andheri East, Mumbai", expect: 1},
		{name: "remote always matches", pref: "Bangalore", job: "Remote", expect: 1},
		{name: "other city excluded", pref: "Bangalore", job: "Mumbai", expect: 0},
		{name: "unknown job location excluded", pref: "Pune", job: "", expect: 0},
		{name: "unmapped preference compares raw text", pref: "Berlin", job: " berlin ", expect: 1},
		{name: "unmapped preference excludes others", pref: "Berlin", job: "Munich", expect: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newLocationMatcher(tt.pref, location.Normalize)
			if got := m.Match(tt.job); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestExplainSkills(t *testing.T) {
	t.Parallel()

	user := skillSet([]string{"python", " DJANGO ", ""})
	matched, missing := explainSkills(user, "Python, Django, AWS, Docker, Kubernetes, SQL, Redis, Kafka")

	if want := []string{"Python", "Django"}; !reflect.DeepEqual(matched, want) {
		t.Fatalf("matched: expected %v, got %v", want, matched)
	}
	if want := []string{"AWS", "Docker", "Kubernetes", "SQL", "Redis"}; !reflect.DeepEqual(missing, want) {
		t.Fatalf("missing: expected %v, got %v", want, missing)
	}

	matched, missing = explainSkills(user, "")
	if len(matched) != 0 || len(missing) != 0 {
		t.Fatalf("expected no skills for an empty posting")
	}
}

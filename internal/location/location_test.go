package location

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "plain city", input: "Bangalore", expect: "Bangalore"},
		{name: "area maps to parent city", input: "Powai Iit, Mumbai", expect: "Mumbai"},
		{name: "area without city", input: "Hadapsar", expect: "Pune"},
		{name: "shared keyword resolves to first city", input: "Nana Peth", expect: "Mumbai"},
		{name: "remote", input: "Remote (India)", expect: Remote},
		{name: "city wins over remote", input: "Remote / Chennai", expect: "Chennai"},
		{name: "country only", input: "Somewhere, India", expect: India},
		{name: "unmapped", input: "Berlin", expect: Other},
		{name: "blank", input: "   ", expect: Unknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestIsSpecific(t *testing.T) {
	t.Parallel()

	for _, c := range []string{Other, Unknown, India, ""} {
		if IsSpecific(c) {
			t.Fatalf("expected %q to be unspecific", c)
		}
	}
	for _, c := range []string{"Mumbai", Remote} {
		if !IsSpecific(c) {
			t.Fatalf("expected %q to be specific", c)
		}
	}
}

package jobs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleCSV = `job_id,title,company,location,skills,experience,salary_min,salary_max,description,url,category,posted_date
1,Backend Developer,Acme,"Powai, Mumbai","Python, Django",2-5 years,50000,"80,000",Build APIs,https://example.com/1,IT Jobs,2024-05-01T10:00:00Z
2,Java Developer,Globex,Bangalore,"Java, Spring",5-10 years,n/a,-5,,https://example.com/2,IT Jobs,2024-05-02
,Orphan,Nobody,Pune,Go,,,,,,,
3,Data Engineer,Acme,Remote,"Python, SQL",fresher,,,Pipelines,https://example.com/3,IT Jobs,not a date
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	corpus, err := ReadCSV(strings.NewReader(sampleCSV), zap.New(core))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if corpus.Len() != 3 {
		t.Fatalf("expected 3 postings, got %d", corpus.Len())
	}
	if logs.FilterMessage("skipping row without job_id").Len() != 1 {
		t.Fatalf("expected a warning for the row without job_id")
	}

	first := corpus.Postings[0]
	if first.SalaryMin != 50000 || first.SalaryMax != 80000 {
		t.Fatalf("unexpected salaries: %d-%d", first.SalaryMin, first.SalaryMax)
	}
	if first.Location != "Powai, Mumbai" {
		t.Fatalf("unexpected location %q", first.Location)
	}
	if !first.PostedDate.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected posted date %v", first.PostedDate)
	}

	second := corpus.Postings[1]
	if second.SalaryMin != 0 || second.SalaryMax != 0 {
		t.Fatalf("expected unparseable salaries to be 0, got %d-%d", second.SalaryMin, second.SalaryMax)
	}
	if second.Description != "" {
		t.Fatalf("expected empty description, got %q", second.Description)
	}
	if !second.PostedDate.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected posted date %v", second.PostedDate)
	}

	if !corpus.Postings[2].PostedDate.IsZero() {
		t.Fatalf("expected zero posted date for garbage input")
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader("job_id,title,description\n1,a,b\n"), nil)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	corpus, err := ReadCSV(strings.NewReader("job_id,title,skills,description\n"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if corpus.Len() != 0 {
		t.Fatalf("expected empty corpus, got %d", corpus.Len())
	}
}

func TestLoadLatestCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	old := filepath.Join(dir, "jobs_2024_01_01.csv")
	newer := filepath.Join(dir, "jobs_2024_02_01.csv")

	if err := os.WriteFile(old, []byte("job_id,title,skills,description\nold,Old,,\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newer, []byte("job_id,title,skills,description\nnew,New,,\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	corpus, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if corpus.Len() != 1 || corpus.Postings[0].JobID != "new" {
		t.Fatalf("expected newest file to be loaded, got %+v", corpus.Postings)
	}
	if corpus.Source != newer {
		t.Fatalf("unexpected source %q", corpus.Source)
	}
}

func TestLoadLatestCSVMissingDir(t *testing.T) {
	t.Parallel()

	corpus, err := LoadLatestCSV(filepath.Join(t.TempDir(), "absent"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if corpus.Len() != 0 {
		t.Fatalf("expected empty corpus")
	}
}

func TestCorpusHelpers(t *testing.T) {
	t.Parallel()

	corpus := NewCorpus([]Posting{
		{JobID: "1", Company: "Acme", Location: "Powai, Mumbai", Skills: "Python, Django"},
		{JobID: "2", Company: "Globex", Location: "Berlin", Skills: "Go,Python"},
		{JobID: "3", Company: "Acme", Location: "Remote", Skills: ""},
	})

	if got, want := corpus.UniqueSkills(), []string{"Django", "Go", "Python"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("skills: expected %v, got %v", want, got)
	}
	if got, want := corpus.UniqueCompanies(), []string{"Acme", "Globex"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("companies: expected %v, got %v", want, got)
	}

	upper := func(s string) string { return strings.ToUpper(s) }
	notBerlin := func(s string) bool { return s != "BERLIN" }
	if got, want := corpus.NormalizedLocations(upper, notBerlin), []string{"POWAI, MUMBAI", "REMOTE"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("locations: expected %v, got %v", want, got)
	}

	clone := corpus.Clone()
	clone.Postings[0].Title = "changed"
	if corpus.Postings[0].Title == "changed" {
		t.Fatalf("clone must not alias the original postings")
	}

	kept, dropped := corpus.Keep(func(p *Posting) bool { return p.Company == "Acme" })
	if kept.Len() != 2 || !reflect.DeepEqual(dropped, []string{"2"}) {
		t.Fatalf("unexpected keep result: %d kept, dropped %v", kept.Len(), dropped)
	}

	if corpus.FindByID("3") == nil || corpus.FindByID("404") != nil {
		t.Fatalf("unexpected FindByID results")
	}
}

func TestCombinedText(t *testing.T) {
	t.Parallel()

	p := Posting{Title: "Dev", Skills: "Go", Description: "APIs"}
	if got := p.CombinedText(); got != "Dev Go APIs" {
		t.Fatalf("unexpected combined text %q", got)
	}
}

// Package jobs holds the typed job corpus consumed by the recommendation engine.
package jobs

import (
	"strings"
	"time"

	"github.com/spigell/job-recommender/internal/utils"
)

// Posting is a single row of the corpus. JobID is unique within one corpus snapshot.
type Posting struct {
	JobID       string    `json:"job_id" mapstructure:"job_id"`
	Title       string    `json:"title" mapstructure:"title"`
	Company     string    `json:"company" mapstructure:"company"`
	Location    string    `json:"location" mapstructure:"location"`
	Skills      string    `json:"skills" mapstructure:"skills"`
	Experience  string    `json:"experience" mapstructure:"experience"`
	SalaryMin   int       `json:"salary_min" mapstructure:"salary_min"`
	SalaryMax   int       `json:"salary_max" mapstructure:"salary_max"`
	Description string    `json:"description" mapstructure:"description"`
	URL         string    `json:"url" mapstructure:"url"`
	Category    string    `json:"category" mapstructure:"category"`
	PostedDate  time.Time `json:"posted_date" mapstructure:"posted_date"`
}

// SkillList returns the posting's comma-separated skills, trimmed, in corpus order.
func (p *Posting) SkillList() []string {
	return utils.SplitList(p.Skills)
}

// CombinedText is the text the vectorizer sees for this posting.
func (p *Posting) CombinedText() string {
	return strings.Join([]string{p.Title, p.Skills, p.Description}, " ")
}

// Corpus is an ordered set of postings.
type Corpus struct {
	Postings []Posting
	// Source describes where the corpus was loaded from, if anywhere.
	Source string
}

// NewCorpus wraps postings into a corpus.
func NewCorpus(postings []Posting) *Corpus {
	return &Corpus{Postings: postings}
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Postings)
}

// Clone returns a copy that shares no postings storage with c.
func (c *Corpus) Clone() *Corpus {
	if c == nil {
		return &Corpus{}
	}
	postings := make([]Posting, len(c.Postings))
	copy(postings, c.Postings)
	return &Corpus{Postings: postings, Source: c.Source}
}

// FindByID returns the posting with the given id or nil.
func (c *Corpus) FindByID(id string) *Posting {
	if c == nil {
		return nil
	}
	for i := range c.Postings {
		if c.Postings[i].JobID == id {
			return &c.Postings[i]
		}
	}
	return nil
}

// Keep returns a new corpus with the postings for which keep returns true,
// along with the ids of the dropped ones.
func (c *Corpus) Keep(keep func(p *Posting) bool) (*Corpus, []string) {
	out := &Corpus{Source: c.Source, Postings: make([]Posting, 0, c.Len())}
	var dropped []string
	for i := range c.Postings {
		if keep(&c.Postings[i]) {
			out.Postings = append(out.Postings, c.Postings[i])
			continue
		}
		dropped = append(dropped, c.Postings[i].JobID)
	}
	return out, dropped
}

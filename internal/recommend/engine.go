// Package recommend ranks job postings against a user profile using TF-IDF text
// similarity combined with experience and location signals.
//
// An Engine is not safe for concurrent Train and CalculateMatch calls; callers
// serialize access or keep one engine per corpus.
package recommend

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/jobs"
	"github.com/spigell/job-recommender/internal/location"
	"github.com/spigell/job-recommender/internal/logger"
)

// Profile describes what the user is looking for.
type Profile struct {
	Skills     []string `json:"skills" mapstructure:"skills"`
	Role       string   `json:"role" mapstructure:"role"`
	Experience string   `json:"experience" mapstructure:"experience"`
	// Location is a free-text city, or empty / "Any" for no preference.
	Location string `json:"location" mapstructure:"location"`
}

// MatchResult is one ranked posting. All scores are percentages in [0,100].
type MatchResult struct {
	Job             jobs.Posting `json:"job"`
	MatchScore      float64      `json:"match_score"`
	SkillsMatch     float64      `json:"skills_match"`
	ExperienceMatch float64      `json:"experience_match"`
	LocationMatch   float64      `json:"location_match"`
	MatchedSkills   []string     `json:"matched_skills"`
	MissingSkills   []string     `json:"missing_skills"`
}

// model is the fitted state. It is never mutated after construction.
type model struct {
	vectorizer *Vectorizer
	vectors    []Vector
	corpus     *jobs.Corpus
}

// Engine owns one fitted model at a time.
type Engine struct {
	logger    *zap.Logger
	normalize func(string) string
	model     *model
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLocationNormalizer replaces location.Normalize.
func WithLocationNormalizer(fn func(string) string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.normalize = fn
		}
	}
}

// New returns an untrained engine.
func New(l *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger:    logger.WithComponent(l, "recommend"),
		normalize: location.Normalize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Trained reports whether the engine holds a fitted model.
func (e *Engine) Trained() bool {
	return e.model != nil && e.model.vectorizer.Fitted()
}

// Corpus returns a copy of the postings the model was fitted on, or nil.
func (e *Engine) Corpus() *jobs.Corpus {
	if e.model == nil {
		return nil
	}
	return e.model.corpus.Clone()
}

// Train fits a new model on corpus, replacing any previous one. An empty corpus
// leaves the engine untrained without an error.
func (e *Engine) Train(corpus *jobs.Corpus) error {
	e.model = nil

	if corpus.Len() == 0 {
		e.logger.Warn("empty corpus provided for training")
		return nil
	}

	snapshot := corpus.Clone()
	docs := make([]string, snapshot.Len())
	for i := range snapshot.Postings {
		docs[i] = snapshot.Postings[i].CombinedText()
	}

	vectorizer := NewVectorizer()
	vectors, err := vectorizer.Fit(docs)
	if err != nil {
		e.logger.Error("training failed", zap.Error(err), zap.Int("jobs", snapshot.Len()))
		return opError("train", err)
	}

	e.model = &model{vectorizer: vectorizer, vectors: vectors, corpus: snapshot}

	e.logger.Info("model trained",
		zap.Int("jobs", snapshot.Len()),
		zap.Int("features", len(vectorizer.Vocabulary)),
	)

	return nil
}

// CalculateMatch ranks the trained corpus against profile and returns at most
// topN results, best first. An untrained engine yields no results.
func (e *Engine) CalculateMatch(profile Profile, topN int) []MatchResult {
	if !e.Trained() {
		e.logger.Warn("model not trained, no recommendations produced")
		return nil
	}

	m := e.model
	query := strings.TrimSpace(strings.Join(profile.Skills, " ") + " " + profile.Role)
	queryVector, err := m.vectorizer.Transform(query)
	if err != nil {
		e.logger.Warn("vectorizing profile failed", zap.Error(err))
		return nil
	}

	userYears, userKnown := UserYears(profile.Experience)
	locations := newLocationMatcher(profile.Location, e.normalize)
	userSkills := skillSet(profile.Skills)

	type scored struct {
		idx                          int
		final, skills, exp, location float64
	}

	all := make([]scored, m.corpus.Len())
	for i := range m.corpus.Postings {
		job := &m.corpus.Postings[i]
		s := scored{
			idx:      i,
			skills:   Cosine(queryVector, m.vectors[i]),
			exp:      ExperienceMatch(userYears, userKnown, job.Experience),
			location: locations.Match(job.Location),
		}
		s.final = SkillsWeight*s.skills + ExperienceWeight*s.exp + LocationWeight*s.location
		all[i] = s
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].final > all[j].final })

	if topN < 0 {
		topN = 0
	}
	if topN > len(all) {
		topN = len(all)
	}

	results := make([]MatchResult, 0, topN)
	for _, s := range all[:topN] {
		job := m.corpus.Postings[s.idx]
		matched, missing := explainSkills(userSkills, job.Skills)
		results = append(results, MatchResult{
			Job:             job,
			MatchScore:      percent(s.final),
			SkillsMatch:     percent(s.skills),
			ExperienceMatch: percent(s.exp),
			LocationMatch:   percent(s.location),
			MatchedSkills:   matched,
			MissingSkills:   missing,
		})
	}

	e.logger.Debug("recommendations generated",
		zap.Int("results", len(results)),
		zap.Int("jobs", m.corpus.Len()),
	)

	return results
}

package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/jobs"
)

type uniqueIDsFilter struct {
	toggle
	logger *zap.Logger
}

// NewUniqueIDs creates a filter that keeps only the first posting for every job_id.
func NewUniqueIDs(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &uniqueIDsFilter{logger: logger}
}

func (f *uniqueIDsFilter) Name() string { return "unique_ids" }

func (f *uniqueIDsFilter) Validate() error { return nil }

func (f *uniqueIDsFilter) Apply(_ context.Context, c *jobs.Corpus) (*jobs.Corpus, Step, error) {
	seen := make(map[string]struct{}, c.Len())
	left, dropped := c.Keep(func(p *jobs.Posting) bool {
		if _, ok := seen[p.JobID]; ok {
			return false
		}
		seen[p.JobID] = struct{}{}
		return true
	})

	if len(dropped) > 0 {
		f.logger.Info("dropping duplicate postings",
			zap.Strings("duplicate_ids", dropped),
			zap.Int("postings_left", left.Len()),
		)
	}

	return left, stepOf(c, left), nil
}

func (f *uniqueIDsFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

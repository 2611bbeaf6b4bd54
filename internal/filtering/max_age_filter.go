package filtering

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/jobs"
)

type maxAgeFilter struct {
	toggle
	days   int
	now    func() time.Time
	logger *zap.Logger
}

// NewMaxAge creates a filter that drops postings older than days. Postings
// without a posted date are kept. Non-positive days disable the filter.
func NewMaxAge(days int, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &maxAgeFilter{days: days, now: time.Now, logger: logger}
	if days <= 0 {
		f.Disable("max age is not set")
	}
	return f
}

func (f *maxAgeFilter) Name() string { return "max_age" }

func (f *maxAgeFilter) Validate() error {
	if f.days <= 0 {
		return fmt.Errorf("max age must be positive, got %d", f.days)
	}
	return nil
}

func (f *maxAgeFilter) Apply(_ context.Context, c *jobs.Corpus) (*jobs.Corpus, Step, error) {
	cutoff := f.now().Add(-time.Duration(f.days) * 24 * time.Hour)
	left, dropped := c.Keep(func(p *jobs.Posting) bool {
		return p.PostedDate.IsZero() || !p.PostedDate.Before(cutoff)
	})

	if len(dropped) > 0 {
		f.logger.Info("dropping stale postings",
			zap.Time("cutoff", cutoff),
			zap.Int("dropped", len(dropped)),
			zap.Int("postings_left", left.Len()),
		)
	}

	return left, stepOf(c, left), nil
}

func (f *maxAgeFilter) Status() Status {
	details := map[string]string{}
	if f.days > 0 {
		details["days"] = strconv.Itoa(f.days)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/jobs"
)

type excludeFileFilter struct {
	toggle
	path   string
	logger *zap.Logger
}

// NewExcludeFile creates a filter that removes postings listed in the exclude file.
// An empty path disables it.
func NewExcludeFile(path string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &excludeFileFilter{path: strings.TrimSpace(path), logger: logger}
	if f.path == "" {
		f.Disable("exclude file is not set")
	}
	return f
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate() error {
	if f.path == "" {
		return fmt.Errorf("exclude file path is required")
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, c *jobs.Corpus) (*jobs.Corpus, Step, error) {
	excluded, err := ReadExcludedJobs(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded postings from file: %w", err)
	}

	ids := make(map[string]struct{}, len(excluded.Items))
	for _, id := range excluded.IDs() {
		ids[id] = struct{}{}
	}

	left, removed := c.Keep(func(p *jobs.Posting) bool {
		_, ok := ids[p.JobID]
		return !ok
	})

	if len(removed) > 0 {
		f.logger.Info("excluding postings based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_postings", removed),
			zap.Int("postings_left", left.Len()),
		)
	}

	return left, stepOf(c, left), nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/jobs"
)

type companiesFilter struct {
	toggle
	companies []string
	logger    *zap.Logger
}

// NewExcludedCompanies creates a filter that removes postings by the given companies.
// Names are compared case-insensitively.
func NewExcludedCompanies(companies []string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &companiesFilter{companies: companies, logger: logger}
}

func (f *companiesFilter) Name() string { return "companies" }

func (f *companiesFilter) Validate() error { return nil }

func (f *companiesFilter) Apply(_ context.Context, c *jobs.Corpus) (*jobs.Corpus, Step, error) {
	if len(f.companies) == 0 {
		return c, stepOf(c, c), nil
	}

	excluded := make(map[string]struct{}, len(f.companies))
	for _, company := range f.companies {
		if company = strings.ToLower(strings.TrimSpace(company)); company != "" {
			excluded[company] = struct{}{}
		}
	}

	left, dropped := c.Keep(func(p *jobs.Posting) bool {
		_, ok := excluded[strings.ToLower(strings.TrimSpace(p.Company))]
		return !ok
	})

	if len(dropped) > 0 {
		f.logger.Info("excluding postings by companies",
			zap.Strings("excluded_companies", f.companies),
			zap.Strings("excluded_postings", dropped),
			zap.Int("postings_left", left.Len()),
		)
	}

	return left, stepOf(c, left), nil
}

func (f *companiesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

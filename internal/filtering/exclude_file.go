package filtering

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/spigell/job-recommender/internal/jobs"
)

// ExcludedJobs is the on-disk list of postings the user never wants to see again.
type ExcludedJobs struct {
	Items []*ExcludedJob
}

type ExcludedJob struct {
	ID         string
	URL        string
	Company    string
	ExcludedAt time.Time
}

// ToExcluded converts postings into exclude file entries stamped with now.
func ToExcluded(postings []jobs.Posting, now time.Time) *ExcludedJobs {
	excluded := &ExcludedJobs{}
	for _, p := range postings {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:         p.JobID,
			URL:        p.URL,
			Company:    p.Company,
			ExcludedAt: now.UTC(),
		})
	}
	return excluded
}

// ReadExcludedJobs reads the exclude file. A missing or empty file is an empty list.
func ReadExcludedJobs(path string) (*ExcludedJobs, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ExcludedJobs{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedJobs) Append(s *ExcludedJobs) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedJobs) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, job := range e.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// ToFile overwrites path with the list.
func (e *ExcludedJobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

package jobs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// RequiredColumns must be present in every corpus file header.
var RequiredColumns = []string{"job_id", "title", "skills", "description"}

// ErrMissingColumn is returned when the corpus header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// LoadCSV reads a corpus from a CSV file with a header row.
func LoadCSV(path string, logger *zap.Logger) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	corpus, err := ReadCSV(file, logger)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	corpus.Source = path

	return corpus, nil
}

// LoadLatestCSV loads the most recently modified .csv file in dir.
// A missing directory or a directory without CSV files yields an empty corpus.
func LoadLatestCSV(dir string, logger *zap.Logger) (*Corpus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("corpus directory not found", zap.String("dir", dir))
			return &Corpus{}, nil
		}
		return nil, err
	}

	var (
		latest   string
		latestAt time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		if latest == "" || info.ModTime().After(latestAt) {
			latest = filepath.Join(dir, entry.Name())
			latestAt = info.ModTime()
		}
	}

	if latest == "" {
		logger.Warn("no csv files found", zap.String("dir", dir))
		return &Corpus{}, nil
	}

	return LoadCSV(latest, logger)
}

// Load reads a corpus from path, which may be a CSV file or a directory of them.
func Load(path string, logger *zap.Logger) (*Corpus, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return LoadLatestCSV(path, logger)
	}
	return LoadCSV(path, logger)
}

// ReadCSV decodes corpus rows from r. Rows without a job_id are skipped.
func ReadCSV(r io.Reader, logger *zap.Logger) (*Corpus, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[i] = name
		present[name] = true
	}
	for _, required := range RequiredColumns {
		if !present[required] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	corpus := &Corpus{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		row := make(map[string]any, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}

		posting, err := DecodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode line %d: %w", line, err)
		}

		if posting.JobID == "" {
			logger.Warn("skipping row without job_id", zap.Int("line", line))
			continue
		}

		corpus.Postings = append(corpus.Postings, *posting)
	}

	logger.Debug("corpus decoded", zap.Int("jobs", corpus.Len()))

	return corpus, nil
}

// DecodeRow converts a loosely typed column->value map into a Posting.
func DecodeRow(row map[string]any) (*Posting, error) {
	var posting Posting

	cfg := &mapstructure.DecoderConfig{
		Result:           &posting,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			salaryHook,
			dateHook,
		),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(row); err != nil {
		return nil, err
	}

	return &posting, nil
}

// salaryHook turns free-form numbers into non-negative ints; anything unparseable is 0.
func salaryHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}

	s := strings.ReplaceAll(strings.TrimSpace(data.(string)), ",", "")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, nil
	}

	return int(f), nil
}

func dateHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}

	return ParseDate(data.(string)), nil
}

// ParseDate parses the date formats seen in scraped corpora. It returns the zero
// time when nothing matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

package recommend

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-recommender/internal/jobs"
	"github.com/spigell/job-recommender/internal/logger"
)

// DefaultModelPath is where the CLI keeps the persisted model.
const DefaultModelPath = "models/recommendation_model.json.gz"

const modelFormatVersion = 1

type modelFile struct {
	Version    int            `json:"version"`
	SavedAt    time.Time      `json:"saved_at"`
	Vectorizer *Vectorizer    `json:"vectorizer"`
	Vectors    []Vector       `json:"vectors"`
	Jobs       []jobs.Posting `json:"jobs"`
}

// Save writes the fitted model to path as gzip-compressed JSON. The file is
// replaced atomically; parent directories are created.
func (e *Engine) Save(path string) error {
	if !e.Trained() {
		return opError("save", ErrNotTrained)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return opError("save", fmt.Errorf("creating model directory: %w", err))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return opError("save", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeModel(tmp, e.model); err != nil {
		tmp.Close()
		return opError("save", err)
	}
	if err := tmp.Close(); err != nil {
		return opError("save", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return opError("save", fmt.Errorf("replacing %s: %w", path, err))
	}

	fields := []zap.Field{
		zap.Int("jobs", e.model.corpus.Len()),
		zap.Int("features", len(e.model.vectorizer.Vocabulary)),
	}
	if info, err := os.Stat(path); err == nil {
		fields = append(fields, zap.Int64("bytes", info.Size()))
	}
	e.logger.Info("model saved", append(fields, logger.StringFields(
		logger.StringField{Key: logger.FieldModelPath, Value: path},
	)...)...)

	return nil
}

func writeModel(f *os.File, m *model) error {
	zw := gzip.NewWriter(f)
	payload := modelFile{
		Version:    modelFormatVersion,
		SavedAt:    time.Now().UTC(),
		Vectorizer: m.vectorizer,
		Vectors:    m.vectors,
		Jobs:       m.corpus.Postings,
	}
	if err := json.NewEncoder(zw).Encode(payload); err != nil {
		zw.Close()
		return fmt.Errorf("encoding model: %w", err)
	}
	return zw.Close()
}

// Load replaces the engine state with the model stored at path. It never fails
// hard: on a missing, unreadable or structurally invalid file the engine is
// left untrained and false is returned.
func (e *Engine) Load(path string) bool {
	pathField := logger.StringFields(logger.StringField{Key: logger.FieldModelPath, Value: path})

	m, err := readModel(path)
	if err != nil {
		e.model = nil
		if errors.Is(err, fs.ErrNotExist) {
			e.logger.Warn("model file not found", pathField...)
		} else {
			e.logger.Warn("model loading failed", append(pathField, zap.Error(err))...)
		}
		return false
	}

	e.model = m
	e.logger.Info("model loaded", append(pathField,
		zap.Int("jobs", m.corpus.Len()),
		zap.Int("features", len(m.vectorizer.Vocabulary)),
	)...)

	return true
}

func readModel(path string) (*model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	defer zr.Close()

	var payload modelFile
	if err := json.NewDecoder(zr).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}

	if err := validate(&payload); err != nil {
		return nil, err
	}

	return &model{
		vectorizer: payload.Vectorizer,
		vectors:    payload.Vectors,
		corpus:     jobs.NewCorpus(payload.Jobs),
	}, nil
}

func validate(p *modelFile) error {
	if p.Version != modelFormatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorruptModel, p.Version)
	}
	if !p.Vectorizer.Fitted() {
		return fmt.Errorf("%w: vectorizer idf table is not fitted", ErrCorruptModel)
	}
	if len(p.Jobs) == 0 || len(p.Vectors) != len(p.Jobs) {
		return fmt.Errorf("%w: %d vectors for %d jobs", ErrCorruptModel, len(p.Vectors), len(p.Jobs))
	}

	features := len(p.Vectorizer.IDF)
	for i, v := range p.Vectors {
		if len(v.Indices) != len(v.Values) {
			return fmt.Errorf("%w: vector %d is malformed", ErrCorruptModel, i)
		}
		for _, idx := range v.Indices {
			if idx < 0 || idx >= features {
				return fmt.Errorf("%w: vector %d references feature %d", ErrCorruptModel, i, idx)
			}
		}
	}
	return nil
}

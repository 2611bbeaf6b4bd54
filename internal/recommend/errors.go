package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTrained is returned when an operation needs a fitted model.
	ErrNotTrained = errors.New("model is not trained")
	// ErrEmptyVocabulary means the corpus contained no usable terms.
	ErrEmptyVocabulary = errors.New("empty vocabulary: corpus contains only stop words or no text")
	// ErrCorruptModel means a persisted model failed structural validation.
	ErrCorruptModel = errors.New("persisted model is corrupt")
)

// EngineError carries the failing engine operation and its cause.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("recommendation engine %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &EngineError{Op: op, Err: err}
}

package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldComponent names the subsystem that emitted the entry.
	FieldComponent = "component"
	// FieldModelPath is the persisted model location.
	FieldModelPath = "model_path"
	// FieldCorpusPath is the location the corpus was read from.
	FieldCorpusPath = "corpus_path"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithComponent attaches the component name to the logger.
// A nil logger becomes a no-op logger.
func WithComponent(l *zap.Logger, component string) *zap.Logger {
	l = OrNop(l)

	fields := StringFields(StringField{Key: FieldComponent, Value: component})
	if len(fields) == 0 {
		return l
	}

	return l.With(fields...)
}

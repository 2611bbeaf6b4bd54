package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFieldsSkipsEmpty(t *testing.T) {
	t.Parallel()

	fields := StringFields(
		StringField{Key: " ", Value: "x"},
		StringField{Key: FieldModelPath, Value: "  "},
		StringField{Key: FieldCorpusPath, Value: " data/jobs.csv "},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != FieldCorpusPath || fields[0].String != "data/jobs.csv" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}
}

func TestWithComponent(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	WithComponent(zap.New(core), "engine").Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()[FieldComponent]; got != "engine" {
		t.Fatalf("expected component engine, got %v", got)
	}
}

func TestWithComponentNilLogger(t *testing.T) {
	t.Parallel()

	if WithComponent(nil, "") == nil {
		t.Fatalf("expected a no-op logger")
	}
}

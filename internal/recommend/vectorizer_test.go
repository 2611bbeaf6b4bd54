package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestVectorizerFit(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	vectors, err := v.Fit([]string{"Python Django", "Python Flask"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]int{"django": 0, "flask": 1, "python": 2, "python django": 3, "python flask": 4}
	if !reflect.DeepEqual(v.Vocabulary, want) {
		t.Fatalf("unexpected vocabulary %v", v.Vocabulary)
	}

	if got := v.IDF[v.Vocabulary["python"]]; math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected idf 1 for a term in every doc, got %v", got)
	}
	rare := math.Log(3.0/2.0) + 1
	if got := v.IDF[v.Vocabulary["django"]]; math.Abs(got-rare) > 1e-9 {
		t.Fatalf("expected idf %v, got %v", rare, got)
	}

	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	for i, vec := range vectors {
		if math.Abs(vec.Norm()-1) > 1e-9 {
			t.Fatalf("vector %d is not unit length: %v", i, vec.Norm())
		}
		if !reflect.DeepEqual(vec.Indices, map[int][]int{0: {0, 2, 3}, 1: {1, 2, 4}}[i]) {
			t.Fatalf("vector %d has unexpected indices %v", i, vec.Indices)
		}
	}

	if !v.Fitted() {
		t.Fatalf("expected vectorizer to be fitted")
	}
}

func TestVectorizerStopWords(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	if _, err := v.Fit([]string{"the developer and a tester"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, term := range []string{"the", "and", "a", "the developer"} {
		if _, ok := v.Vocabulary[term]; ok {
			t.Fatalf("stop word term %q must not be in vocabulary", term)
		}
	}
	// bigrams are built after stop word removal
	if _, ok := v.Vocabulary["developer tester"]; !ok {
		t.Fatalf("expected bigram across removed stop words, got %v", v.Vocabulary)
	}
}

func TestVectorizerMaxFeatures(t *testing.T) {
	t.Parallel()

	v := &Vectorizer{MaxFeatures: 2, NGramMax: 1}
	if _, err := v.Fit([]string{"kafka kafka redis", "kafka postgres redis", "mongo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]int{"kafka": 0, "redis": 1}
	if !reflect.DeepEqual(v.Vocabulary, want) {
		t.Fatalf("expected the most frequent terms, got %v", v.Vocabulary)
	}
}

func TestVectorizerEmptyVocabulary(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	_, err := v.Fit([]string{"the and of", "", "a"})
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
	if v.Fitted() {
		t.Fatalf("vectorizer must stay unfitted")
	}
}

func TestVectorizerTransform(t *testing.T) {
	t.Parallel()

	if _, err := NewVectorizer().Transform("python"); !errors.Is(err, ErrNotTrained) {
		t.Fatalf("expected ErrNotTrained for an unfitted vectorizer, got %v", err)
	}

	v := NewVectorizer()
	vectors, err := v.Fit([]string{"Machine Learning engineer", "Frontend engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unknown, err := v.Transform("cobol fortran")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unknown.Indices) != 0 {
		t.Fatalf("out of vocabulary terms must be dropped, got %v", unknown.Indices)
	}

	query, err := v.Transform("machine learning")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.Vocabulary["machine learning"]; !ok {
		t.Fatalf("expected bigram in vocabulary")
	}
	if Cosine(query, vectors[0]) <= Cosine(query, vectors[1]) {
		t.Fatalf("expected the ML posting to be closer to the query")
	}
}

func TestCosine(t *testing.T) {
	t.Parallel()

	a := Vector{Indices: []int{0, 2}, Values: []float64{1, 1}}
	b := Vector{Indices: []int{1, 2}, Values: []float64{1, 1}}

	if got := Cosine(a, b); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := Cosine(a, a); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected 1, got %v", got)
	}
	if got := Cosine(a, Vector{}); got != 0 {
		t.Fatalf("expected 0 for an empty vector, got %v", got)
	}
}

package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultMaxFeatures caps the vocabulary size.
	DefaultMaxFeatures = 500
	// DefaultNGramMax builds unigrams and bigrams.
	DefaultNGramMax = 2
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vector is a sparse row. Indices are ascending and unique.
type Vector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// Norm returns the euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	var (
		sum  float64
		i, j int
	)
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of v and o, 0 when either is empty.
func Cosine(v, o Vector) float64 {
	nv, no := v.Norm(), o.Norm()
	if nv == 0 || no == 0 {
		return 0
	}
	sim := v.Dot(o) / (nv * no)
	return math.Max(0, math.Min(1, sim))
}

// Vectorizer turns text into L2-normalized TF-IDF vectors.
// The zero value is unfitted; Fit populates Vocabulary and IDF.
type Vectorizer struct {
	MaxFeatures int            `json:"max_features"`
	NGramMax    int            `json:"ngram_max"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
}

// NewVectorizer returns an unfitted vectorizer with the default settings.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MaxFeatures: DefaultMaxFeatures, NGramMax: DefaultNGramMax}
}

// Fitted reports whether the vectorizer carries a usable idf table.
func (v *Vectorizer) Fitted() bool {
	if v == nil || len(v.IDF) == 0 || len(v.IDF) != len(v.Vocabulary) {
		return false
	}
	for _, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return false
		}
	}
	return true
}

// Fit learns the vocabulary and idf weights from docs and returns one vector per doc.
func (v *Vectorizer) Fit(docs []string) ([]Vector, error) {
	analyzed := make([][]string, len(docs))
	totals := make(map[string]int)
	for i, doc := range docs {
		analyzed[i] = v.analyze(doc)
		for _, term := range analyzed[i] {
			totals[term]++
		}
	}
	if len(totals) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.SliceStable(terms, func(i, j int) bool { return totals[terms[i]] > totals[terms[j]] })
		terms = terms[:v.MaxFeatures]
		sort.Strings(terms)
	}

	vocabulary := make(map[string]int, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
	}

	df := make([]int, len(terms))
	for _, doc := range analyzed {
		seen := make(map[int]struct{})
		for _, term := range doc {
			idx, ok := vocabulary[term]
			if !ok {
				continue
			}
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			df[idx]++
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	v.Vocabulary = vocabulary
	v.IDF = idf

	vectors := make([]Vector, len(analyzed))
	for i, doc := range analyzed {
		vectors[i] = v.vectorize(doc)
	}
	return vectors, nil
}

// Transform vectorizes text with the fitted vocabulary. Unknown terms are ignored.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.Fitted() {
		return Vector{}, ErrNotTrained
	}
	return v.vectorize(v.analyze(text)), nil
}

func (v *Vectorizer) vectorize(terms []string) Vector {
	counts := make(map[int]int)
	for _, term := range terms {
		if idx, ok := v.Vocabulary[term]; ok {
			counts[idx]++
		}
	}

	out := Vector{Indices: make([]int, 0, len(counts)), Values: make([]float64, 0, len(counts))}
	for idx := range counts {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)

	var sum float64
	for _, idx := range out.Indices {
		w := float64(counts[idx]) * v.IDF[idx]
		out.Values = append(out.Values, w)
		sum += w * w
	}
	if norm := math.Sqrt(sum); norm > 0 {
		for i := range out.Values {
			out.Values[i] /= norm
		}
	}
	return out
}

// analyze lowercases, tokenizes, drops stop words and emits 1..NGramMax grams.
func (v *Vectorizer) analyze(text string) []string {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	maxN := v.NGramMax
	if maxN < 1 {
		maxN = 1
	}

	terms := make([]string, 0, len(tokens)*maxN)
	terms = append(terms, tokens...)
	for n := 2; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

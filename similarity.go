package glove

import (
	"fmt"
	"math"
	"sort"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/floats"
)

// Embeddings are finished word vectors keyed by vocabulary word.
type Embeddings struct {
	Words   []string
	IDs     map[string]int
	Vectors [][]float64
}

// WordSimilarity pairs a word with its cosine similarity to a query.
type WordSimilarity struct {
	Word       string
	Similarity float64
}

// NewEmbeddings composes final word vectors from trained parameters as the
// sum of focal and context vectors (W + W̃, as in the paper).
func NewEmbeddings(vocab *Vocabulary, params *ModelParams) *Embeddings {
	vectors := make([][]float64, vocab.Len())
	for id := range vectors {
		vec := make([]float64, params.EmbeddingSize())
		floats.AddTo(vec, params.Focal[id], params.Context[id])
		vectors[id] = vec
	}

	words := append([]string(nil), vocab.Words...)
	ids := make(map[string]int, len(words))
	for id, word := range words {
		ids[word] = id
	}
	return &Embeddings{Words: words, IDs: ids, Vectors: vectors}
}

// Len returns the number of embedded words.
func (e *Embeddings) Len() int {
	return len(e.Words)
}

// Vector returns the vector for word, if embedded.
func (e *Embeddings) Vector(word string) ([]float64, bool) {
	id, ok := e.IDs[word]
	if !ok {
		return nil, false
	}
	return e.Vectors[id], true
}

// CosineSimilarity computes the cosine of the angle between two vectors,
// or 0 when either has zero norm or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	normA := math.Sqrt(vek.Dot(a, a))
	normB := math.Sqrt(vek.Dot(b, b))
	if normA == 0 || normB == 0 {
		return 0
	}
	return vek.Dot(a, b) / (normA * normB)
}

// MostSimilar returns up to topN words ranked by descending cosine
// similarity to word, excluding word itself.
func (e *Embeddings) MostSimilar(word string, topN int) ([]WordSimilarity, error) {
	query, ok := e.Vector(word)
	if !ok {
		return nil, fmt.Errorf("glove: word %q is not in the embeddings", word)
	}
	return e.rank(query, topN, map[string]bool{word: true}), nil
}

// Analogy solves a:b :: c:? and returns up to topN candidate words, best
// first. The inputs themselves are excluded from the candidates.
func (e *Embeddings) Analogy(a, b, c string, topN int) ([]string, error) {
	vecA, okA := e.Vector(a)
	vecB, okB := e.Vector(b)
	vecC, okC := e.Vector(c)
	if !okA || !okB || !okC {
		return nil, fmt.Errorf("glove: analogy words must all be embedded: %q %q %q", a, b, c)
	}

	// Candidate direction: b - a + c
	target := make([]float64, len(vecA))
	floats.SubTo(target, vecB, vecA)
	floats.Add(target, vecC)

	ranked := e.rank(target, topN, map[string]bool{a: true, b: true, c: true})
	words := make([]string, len(ranked))
	for i, r := range ranked {
		words[i] = r.Word
	}
	return words, nil
}

func (e *Embeddings) rank(query []float64, topN int, exclude map[string]bool) []WordSimilarity {
	ranked := make([]WordSimilarity, 0, len(e.Words))
	for id, word := range e.Words {
		if exclude[word] {
			continue
		}
		ranked = append(ranked, WordSimilarity{
			Word:       word,
			Similarity: CosineSimilarity(query, e.Vectors[id]),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

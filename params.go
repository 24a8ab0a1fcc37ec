package glove

import "math/rand"

// ModelParams is a dense in-memory Parameters implementation: one embedding
// matrix and one bias vector per role. The loss and trainer treat it as
// externally owned state; the co-occurrence core never touches it.
type ModelParams struct {
	Focal         [][]float64
	Context       [][]float64
	FocalBiases   []float64
	ContextBiases []float64
}

// NewModelParams allocates zeroed parameters for a vocabulary.
func NewModelParams(vocabSize, embeddingSize int) *ModelParams {
	p := &ModelParams{
		Focal:         make([][]float64, vocabSize),
		Context:       make([][]float64, vocabSize),
		FocalBiases:   make([]float64, vocabSize),
		ContextBiases: make([]float64, vocabSize),
	}
	for i := range vocabSize {
		p.Focal[i] = make([]float64, embeddingSize)
		p.Context[i] = make([]float64, embeddingSize)
	}
	return p
}

// NewRandomParams initializes all parameters uniformly in
// [-0.5, 0.5] / embeddingSize, the usual starting point for training.
func NewRandomParams(vocabSize, embeddingSize int, seed int64) *ModelParams {
	p := NewModelParams(vocabSize, embeddingSize)
	rng := rand.New(rand.NewSource(seed))
	initRange := 0.5 / float64(embeddingSize)
	for i := range vocabSize {
		for k := range embeddingSize {
			p.Focal[i][k] = (rng.Float64() - 0.5) * 2 * initRange
			p.Context[i][k] = (rng.Float64() - 0.5) * 2 * initRange
		}
		p.FocalBiases[i] = (rng.Float64() - 0.5) * 2 * initRange
		p.ContextBiases[i] = (rng.Float64() - 0.5) * 2 * initRange
	}
	return p
}

// VocabSize returns the number of words the parameters cover.
func (p *ModelParams) VocabSize() int {
	return len(p.Focal)
}

// EmbeddingSize returns the vector dimensionality.
func (p *ModelParams) EmbeddingSize() int {
	if len(p.Focal) == 0 {
		return 0
	}
	return len(p.Focal[0])
}

func (p *ModelParams) FocalVector(id int) []float64   { return p.Focal[id] }
func (p *ModelParams) ContextVector(id int) []float64 { return p.Context[id] }
func (p *ModelParams) FocalBias(id int) float64       { return p.FocalBiases[id] }
func (p *ModelParams) ContextBias(id int) float64     { return p.ContextBiases[id] }

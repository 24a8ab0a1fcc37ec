// Package glove builds weighted word co-occurrence statistics from a
// tokenized corpus and evaluates the GloVe weighted least-squares objective
// over them. The package owns the statistics side of training: windowed,
// distance-weighted co-occurrence aggregation, vocabulary selection, the
// sparse co-occurrence matrix, and the weighted loss. Parameter storage and
// an AdaGrad trainer are provided alongside as consumers of the core.
package glove

import (
	"fmt"
	"iter"
)

// Model ties a configuration to the vocabulary and co-occurrence matrix
// produced by Fit. A fitted model is immutable until the next Fit call and
// safe to share across concurrent loss evaluations.
type Model struct {
	cfg    Config
	vocab  *Vocabulary
	matrix *CooccurrenceMatrix
}

// New applies defaults to cfg, validates it, and returns an unfitted model.
// Fails with ErrInvalidConfig when no valid model can be built.
func New(cfg Config) (*Model, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Model{cfg: cfg}, nil
}

// Config returns the resolved configuration.
func (m *Model) Config() Config {
	return m.cfg
}

// Fit consumes the corpus exactly once and builds the vocabulary and
// co-occurrence matrix. Both are rebuilt wholesale; nothing carries over
// from a previous fit. Fails with ErrEmptyCorpus when the scan observes no
// co-occurrence pairs.
func (m *Model) Fit(corpus iter.Seq[[]string]) error {
	return m.fit(corpus, 1)
}

// FitParallel is Fit with the corpus scan sharded across workers. The
// resulting statistics are identical to a sequential Fit.
func (m *Model) FitParallel(corpus iter.Seq[[]string], workers int) error {
	return m.fit(corpus, workers)
}

func (m *Model) fit(corpus iter.Seq[[]string], workers int) error {
	stats, err := scanCorpusParallel(corpus, m.cfg.Window, workers)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	vocab := buildVocabulary(stats, m.cfg.VocabSize, m.cfg.MinOccurrences)
	m.vocab = vocab
	m.matrix = buildMatrix(stats, vocab)
	return nil
}

// Vocabulary returns the fitted vocabulary, or nil before Fit.
func (m *Model) Vocabulary() *Vocabulary {
	return m.vocab
}

// Matrix returns the fitted co-occurrence matrix, or nil before Fit.
func (m *Model) Matrix() *CooccurrenceMatrix {
	return m.matrix
}

// Loss evaluates the weighted objective over parallel batches using the
// model's XMax and Alpha. See WeightedLoss.
func (m *Model) Loss(params Parameters, focal, context []int, counts []float64) (float64, error) {
	return WeightedLoss(params, focal, context, counts, m.cfg.XMax, m.cfg.Alpha)
}

// SliceCorpus adapts in-memory sequences to a corpus. Unlike a streaming
// corpus it is restartable: every range starts over from the first sequence.
func SliceCorpus(sequences [][]string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for _, seq := range sequences {
			if !yield(seq) {
				return
			}
		}
	}
}

package glove

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/viterin/vek"
)

const (
	// DefaultLearningRate is the initial AdaGrad step size.
	DefaultLearningRate = 0.05

	// Small value keeping AdaGrad divisions finite
	adagradEps = 1e-8

	// Striped locks for parameter updates; power of two for fast masking.
	numShards = 8192
)

// TrainingProgress describes one finished training iteration.
type TrainingProgress struct {
	Iteration     int           // Current iteration (1-based)
	MaxIterations int           // Total number of iterations
	Cost          float64       // Weighted loss summed over all matrix entries
	Elapsed       time.Duration // Time since training started
}

// ProgressFunc receives progress updates after each iteration.
type ProgressFunc func(TrainingProgress)

// Trainer fits ModelParams to a fitted model's co-occurrence matrix with
// AdaGrad, minimizing the same objective WeightedLoss reports. The zero
// value trains single-threaded with default iterations and learning rate.
type Trainer struct {
	Iterations   int          // Number of passes over the matrix (default 50)
	Workers      int          // Concurrent update goroutines (default 1)
	LearningRate float64      // Initial step size (default DefaultLearningRate)
	Seed         int64        // Shuffle seed; 0 derives one from the clock
	Logger       *slog.Logger // Optional per-iteration progress logging
	Progress     ProgressFunc // Optional per-iteration callback
}

// adagrad holds accumulated squared gradients, mirroring the parameter
// shapes. Starting the accumulators at 1 keeps early steps bounded.
type adagrad struct {
	focal         [][]float64
	context       [][]float64
	focalBiases   []float64
	contextBiases []float64
}

func newAdagrad(vocabSize, embeddingSize int) *adagrad {
	g := &adagrad{
		focal:         make([][]float64, vocabSize),
		context:       make([][]float64, vocabSize),
		focalBiases:   make([]float64, vocabSize),
		contextBiases: make([]float64, vocabSize),
	}
	for i := range vocabSize {
		g.focal[i] = make([]float64, embeddingSize)
		g.context[i] = make([]float64, embeddingSize)
		for k := range embeddingSize {
			g.focal[i][k] = 1.0
			g.context[i][k] = 1.0
		}
		g.focalBiases[i] = 1.0
		g.contextBiases[i] = 1.0
	}
	return g
}

// Train runs the configured number of AdaGrad iterations over the model's
// co-occurrence matrix, updating params in place.
func (t *Trainer) Train(m *Model, params *ModelParams) error {
	matrix := m.Matrix()
	if matrix == nil {
		return fmt.Errorf("glove: train: model is not fitted")
	}
	if params.VocabSize() < m.Vocabulary().Len() {
		return fmt.Errorf("glove: train: params cover %d words, vocabulary has %d",
			params.VocabSize(), m.Vocabulary().Len())
	}

	iterations := t.Iterations
	if iterations <= 0 {
		iterations = 50
	}
	workers := t.Workers
	if workers < 1 {
		workers = 1
	}
	baseLR := t.LearningRate
	if baseLR <= 0 {
		baseLR = DefaultLearningRate
	}
	seed := t.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := m.Config()
	entries := matrix.Entries()
	grads := newAdagrad(params.VocabSize(), params.EmbeddingSize())
	shards := make([]sync.Mutex, numShards)
	rng := rand.New(rand.NewSource(seed))
	started := time.Now()

	for iter := range iterations {
		// Linear annealing with a small floor
		lr := baseLR
		if iterations > 1 {
			lr = baseLR * (1.0 - float64(iter)/float64(iterations))
			if lr < baseLR*0.1 {
				lr = baseLR * 0.1
			}
		}

		// Shuffle entries for SGD
		rng.Shuffle(len(entries), func(i, j int) {
			entries[i], entries[j] = entries[j], entries[i]
		})

		totalCost := 0.0
		block := (len(entries) + workers - 1) / workers

		var wg sync.WaitGroup
		costCh := make(chan float64, workers)

		for w := range workers {
			start := w * block
			if start >= len(entries) {
				break
			}
			end := min(start+block, len(entries))

			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()
				localCost := 0.0

				// Per-goroutine buffers keep the inner loop allocation-free.
				focalVec := make([]float64, params.EmbeddingSize())
				contextVec := make([]float64, params.EmbeddingSize())

				for idx := start; idx < end; idx++ {
					entry := entries[idx]
					i, j, x := entry.Focal, entry.Context, entry.Weight

					var focalBias, contextBias float64
					withShardLocks(shards, i, j, func() {
						copy(focalVec, params.Focal[i])
						copy(contextVec, params.Context[j])
						focalBias = params.FocalBiases[i]
						contextBias = params.ContextBiases[j]
					})

					// Dot product outside the lock
					dot := vek.Dot(focalVec, contextVec)

					residual := dot + focalBias + contextBias + math.Log(x)
					weight := weightFactor(x, cfg.XMax, cfg.Alpha)

					localCost += weight * residual * residual
					scale := 2.0 * weight * residual

					withShardLocks(shards, i, j, func() {
						updateParameters(params, grads, i, j, scale, lr)
					})
				}

				costCh <- localCost
			}(start, end)
		}

		wg.Wait()
		close(costCh)
		for c := range costCh {
			totalCost += c
		}

		progress := TrainingProgress{
			Iteration:     iter + 1,
			MaxIterations: iterations,
			Cost:          totalCost,
			Elapsed:       time.Since(started),
		}
		if t.Logger != nil {
			t.Logger.Info("training iteration",
				"iteration", progress.Iteration,
				"max_iterations", progress.MaxIterations,
				"cost", progress.Cost,
				"elapsed", progress.Elapsed,
			)
		}
		if t.Progress != nil {
			t.Progress(progress)
		}
	}

	return nil
}

// updateParameters applies one AdaGrad step for the pair (i, j). Callers
// hold the shard locks for both ids.
func updateParameters(params *ModelParams, grads *adagrad, i, j int, scale, lr float64) {
	for k := range params.Focal[i] {
		gradFocal := scale * params.Context[j][k]
		gradContext := scale * params.Focal[i][k]

		grads.focal[i][k] += gradFocal * gradFocal
		params.Focal[i][k] -= lr * gradFocal / math.Sqrt(grads.focal[i][k]+adagradEps)

		grads.context[j][k] += gradContext * gradContext
		params.Context[j][k] -= lr * gradContext / math.Sqrt(grads.context[j][k]+adagradEps)
	}

	grads.focalBiases[i] += scale * scale
	params.FocalBiases[i] -= lr * scale / math.Sqrt(grads.focalBiases[i]+adagradEps)

	grads.contextBiases[j] += scale * scale
	params.ContextBiases[j] -= lr * scale / math.Sqrt(grads.contextBiases[j]+adagradEps)
}

// withShardLocks runs fn holding the stripe locks for ids i and j, acquired
// in shard order to prevent deadlock.
func withShardLocks(shards []sync.Mutex, i, j int, fn func()) {
	iShard := i & (numShards - 1)
	jShard := j & (numShards - 1)

	if iShard == jShard {
		shards[iShard].Lock()
		defer shards[iShard].Unlock()
	} else {
		first, second := iShard, jShard
		if first > second {
			first, second = second, first
		}
		shards[first].Lock()
		defer shards[first].Unlock()
		shards[second].Lock()
		defer shards[second].Unlock()
	}

	fn()
}

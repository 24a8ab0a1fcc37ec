package glove

import (
	"errors"
	"iter"
	"sync"
)

// ErrEmptyCorpus is returned when a full corpus scan observed no
// co-occurrence pairs. This means the corpus was empty, or a single-use
// corpus iterator was already exhausted by a prior pass.
var ErrEmptyCorpus = errors.New("glove: no co-occurrences in corpus (empty corpus, or single-use corpus already consumed?)")

// wordPair is an ordered (focal, context) token pair. Order matters:
// (a, b) and (b, a) accumulate independently.
type wordPair struct {
	Focal   string
	Context string
}

// corpusStats accumulates word frequencies and distance-weighted
// co-occurrence weights over a stream of sequences. All updates are plain
// per-key additions (or minimums, for first-seen ranks), so independent
// accumulators built from disjoint corpus shards merge into the same result
// as a single sequential scan.
type corpusStats struct {
	freq      map[string]int
	firstSeen map[string]int64
	pairs     map[wordPair]float64
}

func newCorpusStats() *corpusStats {
	return &corpusStats{
		freq:      make(map[string]int),
		firstSeen: make(map[string]int64),
		pairs:     make(map[wordPair]float64),
	}
}

// seenRank orders token occurrences across the whole corpus by sequence
// index, then position. Vocabulary tie-breaking sorts on it, which keeps
// the vocabulary deterministic under parallel scans.
func seenRank(seqIndex, pos int) int64 {
	return int64(seqIndex)<<32 | int64(pos)
}

// addSequence folds one sequence into the accumulator: every token's
// frequency is incremented, and every (focal, context) pair within the
// window gains 1/(distance) weight per side.
func (s *corpusStats) addSequence(seqIndex int, seq []string, window ContextWindow) {
	for pos, tok := range seq {
		s.freq[tok]++
		rank := seenRank(seqIndex, pos)
		if cur, ok := s.firstSeen[tok]; !ok || rank < cur {
			s.firstSeen[tok] = rank
		}
	}
	for w := range contextWindows(seq, window.Left, window.Right) {
		// Left context walks nearest-to-focal first, so reverse it.
		for k := range w.Left {
			ctx := w.Left[len(w.Left)-1-k]
			s.pairs[wordPair{w.Focal, ctx}] += 1.0 / float64(k+1)
		}
		for k, ctx := range w.Right {
			s.pairs[wordPair{w.Focal, ctx}] += 1.0 / float64(k+1)
		}
	}
}

// merge folds other into s by per-key addition. Commutative and
// associative: merging shards in any order yields identical weights.
func (s *corpusStats) merge(other *corpusStats) {
	for tok, n := range other.freq {
		s.freq[tok] += n
	}
	for tok, rank := range other.firstSeen {
		if cur, ok := s.firstSeen[tok]; !ok || rank < cur {
			s.firstSeen[tok] = rank
		}
	}
	for p, weight := range other.pairs {
		s.pairs[p] += weight
	}
}

// scanCorpus consumes the corpus once, sequentially.
func scanCorpus(corpus iter.Seq[[]string], window ContextWindow) (*corpusStats, error) {
	stats := newCorpusStats()
	index := 0
	for seq := range corpus {
		stats.addSequence(index, seq, window)
		index++
	}
	if len(stats.pairs) == 0 {
		return nil, ErrEmptyCorpus
	}
	return stats, nil
}

// scanCorpusParallel shards sequences across workers, each owning a private
// accumulator, and merges the shards afterwards. The merged weights equal a
// sequential scan's for any worker count.
func scanCorpusParallel(corpus iter.Seq[[]string], window ContextWindow, workers int) (*corpusStats, error) {
	if workers < 2 {
		return scanCorpus(corpus, window)
	}

	type task struct {
		index int
		seq   []string
	}
	tasks := make(chan task, workers)
	shards := make([]*corpusStats, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(shard int) {
			defer wg.Done()
			local := newCorpusStats()
			for t := range tasks {
				local.addSequence(t.index, t.seq, window)
			}
			shards[shard] = local
		}(i)
	}

	index := 0
	for seq := range corpus {
		tasks <- task{index: index, seq: seq}
		index++
	}
	close(tasks)
	wg.Wait()

	stats := shards[0]
	for _, shard := range shards[1:] {
		stats.merge(shard)
	}
	if len(stats.pairs) == 0 {
		return nil, ErrEmptyCorpus
	}
	return stats, nil
}

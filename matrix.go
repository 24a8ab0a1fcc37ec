package glove

// CoocEntry is one sparse co-occurrence matrix cell.
type CoocEntry struct {
	Focal   int     // Focal word id
	Context int     // Context word id
	Weight  float64 // Accumulated distance-weighted count
}

// CooccurrenceMatrix maps ordered (focal id, context id) pairs to their
// accumulated distance-weighted co-occurrence weight. It is immutable once
// built and safe for concurrent readers. Do not assume symmetry: with an
// asymmetric window, (i, j) and (j, i) differ.
type CooccurrenceMatrix struct {
	weights map[uint64]float64
}

// pairKey packs two vocabulary ids into a single map key.
func pairKey(focal, context int) uint64 {
	return uint64(focal)<<32 | uint64(uint32(context))
}

// unpairKey extracts the ids from a key.
func unpairKey(key uint64) (focal, context int) {
	return int(key >> 32), int(uint32(key))
}

// buildMatrix re-keys raw token-pair weights through the vocabulary's id
// assignment. Pairs referencing out-of-vocabulary tokens are dropped
// silently: vocabulary truncation is expected, not exceptional.
func buildMatrix(stats *corpusStats, vocab *Vocabulary) *CooccurrenceMatrix {
	m := &CooccurrenceMatrix{weights: make(map[uint64]float64, len(stats.pairs))}
	for p, weight := range stats.pairs {
		focal, ok := vocab.IDs[p.Focal]
		if !ok {
			continue
		}
		context, ok := vocab.IDs[p.Context]
		if !ok {
			continue
		}
		m.weights[pairKey(focal, context)] = weight
	}
	return m
}

// Weight returns the accumulated weight for an ordered (focal, context)
// pair. The second return is false when the pair never co-occurred.
func (m *CooccurrenceMatrix) Weight(focal, context int) (float64, bool) {
	w, ok := m.weights[pairKey(focal, context)]
	return w, ok
}

// Len returns the number of non-zero cells.
func (m *CooccurrenceMatrix) Len() int {
	return len(m.weights)
}

// Entries returns the non-zero cells as a slice, in no particular order.
func (m *CooccurrenceMatrix) Entries() []CoocEntry {
	entries := make([]CoocEntry, 0, len(m.weights))
	for key, w := range m.weights {
		focal, context := unpairKey(key)
		entries = append(entries, CoocEntry{Focal: focal, Context: context, Weight: w})
	}
	return entries
}

package glove

import "sort"

// Vocabulary is the finalized, size- and frequency-filtered set of tracked
// words. Ids are dense: Words[id] and IDs[word] are inverse mappings, and
// Counts[id] is the word's corpus frequency. Read-only after Fit.
type Vocabulary struct {
	Words  []string
	IDs    map[string]int
	Counts []int
}

// buildVocabulary takes the maxSize most frequent words (ties broken by
// first-seen order in the corpus), then drops any below minCount. Ids are
// assigned 0..n-1 in the resulting frequency-descending order.
func buildVocabulary(stats *corpusStats, maxSize, minCount int) *Vocabulary {
	words := make([]string, 0, len(stats.freq))
	for tok := range stats.freq {
		words = append(words, tok)
	}
	sort.Slice(words, func(i, j int) bool {
		if stats.freq[words[i]] != stats.freq[words[j]] {
			return stats.freq[words[i]] > stats.freq[words[j]]
		}
		return stats.firstSeen[words[i]] < stats.firstSeen[words[j]]
	})

	if len(words) > maxSize {
		words = words[:maxSize]
	}

	// Truncation happens before the frequency floor, so a rare word never
	// displaces a frequent one.
	kept := words[:0]
	for _, tok := range words {
		if stats.freq[tok] >= minCount {
			kept = append(kept, tok)
		}
	}
	words = kept

	v := &Vocabulary{
		Words:  words,
		IDs:    make(map[string]int, len(words)),
		Counts: make([]int, len(words)),
	}
	for id, tok := range words {
		v.IDs[tok] = id
		v.Counts[id] = stats.freq[tok]
	}
	return v
}

// Len returns the number of tracked words.
func (v *Vocabulary) Len() int {
	return len(v.Words)
}

// ID returns the dense id for word, if tracked.
func (v *Vocabulary) ID(word string) (int, bool) {
	id, ok := v.IDs[word]
	return id, ok
}

// Word returns the word with the given id.
func (v *Vocabulary) Word(id int) string {
	return v.Words[id]
}

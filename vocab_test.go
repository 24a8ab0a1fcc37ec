package glove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsWithCounts(counts map[string]int, order []string) *corpusStats {
	stats := newCorpusStats()
	for pos, word := range order {
		stats.freq[word] = counts[word]
		stats.firstSeen[word] = seenRank(0, pos)
	}
	return stats
}

func TestBuildVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		counts   map[string]int
		order    []string
		maxSize  int
		minCount int
		want     []string
	}{
		{
			name:     "size cap keeps most frequent",
			counts:   map[string]int{"a": 5, "b": 3, "c": 1},
			order:    []string{"a", "b", "c"},
			maxSize:  2,
			minCount: 1,
			want:     []string{"a", "b"},
		},
		{
			name:     "frequency floor applies after the cap",
			counts:   map[string]int{"a": 5, "b": 3, "c": 1},
			order:    []string{"a", "b", "c"},
			maxSize:  2,
			minCount: 4,
			want:     []string{"a"},
		},
		{
			name:     "ties break by first-seen order",
			counts:   map[string]int{"x": 2, "y": 2, "z": 2},
			order:    []string{"y", "z", "x"},
			maxSize:  10,
			minCount: 1,
			want:     []string{"y", "z", "x"},
		},
		{
			name:     "floor can drop everything",
			counts:   map[string]int{"a": 1, "b": 1},
			order:    []string{"a", "b"},
			maxSize:  10,
			minCount: 5,
			want:     []string{},
		},
		{
			name:     "descending frequency order",
			counts:   map[string]int{"low": 1, "high": 9, "mid": 4},
			order:    []string{"low", "high", "mid"},
			maxSize:  10,
			minCount: 1,
			want:     []string{"high", "mid", "low"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocab := buildVocabulary(statsWithCounts(tt.counts, tt.order), tt.maxSize, tt.minCount)
			assert.Equal(t, tt.want, vocab.Words)
		})
	}
}

func TestVocabularyIDsAreBijective(t *testing.T) {
	stats := statsWithCounts(map[string]int{"a": 5, "b": 3, "c": 2, "d": 2}, []string{"a", "b", "c", "d"})
	vocab := buildVocabulary(stats, 10, 1)

	require.Equal(t, 4, vocab.Len())
	require.Len(t, vocab.IDs, vocab.Len())
	for id, word := range vocab.Words {
		gotID, ok := vocab.ID(word)
		require.True(t, ok, "word %q", word)
		assert.Equal(t, id, gotID, "word %q", word)
		assert.Equal(t, word, vocab.Word(id))
	}
}

func TestVocabularyCounts(t *testing.T) {
	stats := statsWithCounts(map[string]int{"a": 5, "b": 3}, []string{"a", "b"})
	vocab := buildVocabulary(stats, 10, 1)

	require.Equal(t, []string{"a", "b"}, vocab.Words)
	assert.Equal(t, []int{5, 3}, vocab.Counts)
}

func TestVocabularyDeterministicAcrossScans(t *testing.T) {
	sequences := [][]string{
		{"pear", "plum", "pear", "fig"},
		{"plum", "fig", "date", "plum"},
		{"fig", "date", "pear"},
	}

	sequential, err := scanCorpus(SliceCorpus(sequences), SymmetricWindow(1))
	require.NoError(t, err)
	parallel, err := scanCorpusParallel(SliceCorpus(sequences), SymmetricWindow(1), 3)
	require.NoError(t, err)

	want := buildVocabulary(sequential, 100, 1)
	got := buildVocabulary(parallel, 100, 1)
	assert.Equal(t, want.Words, got.Words)
}

package glove

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// ReadCorpus returns a lazy, single-use corpus over r: one non-blank line
// per sequence, lowercased and whitespace-tokenized. Sequences are yielded
// as the reader is consumed, so the corpus can only be ranged once; a
// second pass yields nothing and Fit on it fails with ErrEmptyCorpus. A
// read error ends the corpus at the last complete line; use LoadCorpus to
// surface read errors.
func ReadCorpus(r io.Reader) iter.Seq[[]string] {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	return func(yield func([]string) bool) {
		for scanner.Scan() {
			line := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if line == "" {
				continue
			}
			if !yield(strings.Fields(line)) {
				return
			}
		}
	}
}

// LoadCorpus reads the whole input eagerly with the same line and token
// rules as ReadCorpus. The result adapts to a restartable corpus through
// SliceCorpus.
func LoadCorpus(r io.Reader) ([][]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var sequences [][]string
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}
		sequences = append(sequences, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sequences, nil
}

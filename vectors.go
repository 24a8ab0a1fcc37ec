package glove

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Save writes the embeddings in the word2vec text format: one word per
// line followed by its vector components.
func (e *Embeddings) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for id, word := range e.Words {
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		for _, v := range e.Vectors[id] {
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'f', 6, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveFile writes the embeddings to a file. See Save.
func (e *Embeddings) SaveFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := e.Save(f); err != nil {
		return err
	}
	return f.Close()
}

// LoadEmbeddings reads embeddings in the word2vec text format. Every line
// must carry the same number of components.
func LoadEmbeddings(r io.Reader) (*Embeddings, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	e := &Embeddings{IDs: make(map[string]int)}
	dim := -1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("glove: vectors line %d: need a word and at least one component", lineNo)
		}

		word := fields[0]
		if _, dup := e.IDs[word]; dup {
			return nil, fmt.Errorf("glove: vectors line %d: duplicate word %q", lineNo, word)
		}
		if dim == -1 {
			dim = len(fields) - 1
		} else if len(fields)-1 != dim {
			return nil, fmt.Errorf("glove: vectors line %d: got %d components, want %d", lineNo, len(fields)-1, dim)
		}

		vec := make([]float64, dim)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("glove: vectors line %d: %w", lineNo, err)
			}
			vec[i] = v
		}

		e.IDs[word] = len(e.Words)
		e.Words = append(e.Words, word)
		e.Vectors = append(e.Vectors, vec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(e.Words) == 0 {
		return nil, fmt.Errorf("glove: no vectors found")
	}
	return e, nil
}

// LoadEmbeddingsFile reads embeddings from a file. See LoadEmbeddings.
func LoadEmbeddingsFile(filename string) (*Embeddings, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadEmbeddings(f)
}

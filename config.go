package glove

import (
	"errors"
	"fmt"
)

// Hyperparameter defaults from the paper
const (
	DefaultVocabSize      = 100000
	DefaultMinOccurrences = 1
	DefaultXMax           = 100.0 // Cutoff parameter for the weighting function
	DefaultAlpha          = 0.75  // Exponent for the weighting function (3/4)
)

// ErrInvalidConfig is returned by New when the configuration cannot
// describe a valid model.
var ErrInvalidConfig = errors.New("glove: invalid config")

// ContextWindow is the number of context tokens considered on each side of
// a focal token. The two sides are independent; an asymmetric window yields
// an asymmetric co-occurrence matrix.
type ContextWindow struct {
	Left  int
	Right int
}

// SymmetricWindow is a window of size tokens on both sides.
func SymmetricWindow(size int) ContextWindow {
	return ContextWindow{Left: size, Right: size}
}

// AsymmetricWindow is a window with independently sized sides.
func AsymmetricWindow(left, right int) ContextWindow {
	return ContextWindow{Left: left, Right: right}
}

// Config holds the model hyperparameters. All fields are fixed once the
// model is constructed. Zero values for VocabSize, MinOccurrences, XMax and
// Alpha select the defaults above.
type Config struct {
	// EmbeddingSize is the word vector dimensionality. It is passed
	// through to parameter storage; the co-occurrence statistics do not
	// depend on it.
	EmbeddingSize int

	// Window bounds the context considered around each focal token.
	Window ContextWindow

	// VocabSize caps the number of distinct tracked words.
	VocabSize int

	// MinOccurrences drops words rarer than this from the vocabulary.
	MinOccurrences int

	// XMax is the co-occurrence count above which the loss weighting
	// factor saturates at 1.
	XMax float64

	// Alpha is the weighting function exponent.
	Alpha float64
}

func (c Config) withDefaults() Config {
	if c.VocabSize == 0 {
		c.VocabSize = DefaultVocabSize
	}
	if c.MinOccurrences == 0 {
		c.MinOccurrences = DefaultMinOccurrences
	}
	if c.XMax == 0 {
		c.XMax = DefaultXMax
	}
	if c.Alpha == 0 {
		c.Alpha = DefaultAlpha
	}
	return c
}

func (c Config) validate() error {
	if c.EmbeddingSize <= 0 {
		return fmt.Errorf("%w: embedding size must be positive, got %d", ErrInvalidConfig, c.EmbeddingSize)
	}
	if c.Window.Left < 0 || c.Window.Right < 0 {
		return fmt.Errorf("%w: window sizes must be non-negative, got left=%d right=%d",
			ErrInvalidConfig, c.Window.Left, c.Window.Right)
	}
	if c.Window.Left == 0 && c.Window.Right == 0 {
		return fmt.Errorf("%w: context window is empty on both sides", ErrInvalidConfig)
	}
	if c.VocabSize < 0 {
		return fmt.Errorf("%w: vocab size must be positive, got %d", ErrInvalidConfig, c.VocabSize)
	}
	if c.MinOccurrences < 0 {
		return fmt.Errorf("%w: min occurrences must be positive, got %d", ErrInvalidConfig, c.MinOccurrences)
	}
	if c.XMax < 0 {
		return fmt.Errorf("%w: x_max must be positive, got %v", ErrInvalidConfig, c.XMax)
	}
	if c.Alpha < 0 {
		return fmt.Errorf("%w: alpha must be non-negative, got %v", ErrInvalidConfig, c.Alpha)
	}
	return nil
}

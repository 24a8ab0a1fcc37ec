package glove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowConstructors(t *testing.T) {
	assert.Equal(t, ContextWindow{Left: 3, Right: 3}, SymmetricWindow(3))
	assert.Equal(t, ContextWindow{Left: 1, Right: 4}, AsymmetricWindow(1, 4))
}

func TestNewAppliesDefaults(t *testing.T) {
	model, err := New(Config{EmbeddingSize: 50, Window: SymmetricWindow(2)})
	require.NoError(t, err)

	cfg := model.Config()
	assert.Equal(t, 50, cfg.EmbeddingSize)
	assert.Equal(t, DefaultVocabSize, cfg.VocabSize)
	assert.Equal(t, DefaultMinOccurrences, cfg.MinOccurrences)
	assert.Equal(t, DefaultXMax, cfg.XMax)
	assert.Equal(t, DefaultAlpha, cfg.Alpha)
}

func TestNewKeepsExplicitValues(t *testing.T) {
	model, err := New(Config{
		EmbeddingSize:  10,
		Window:         AsymmetricWindow(2, 5),
		VocabSize:      1000,
		MinOccurrences: 3,
		XMax:           10,
		Alpha:          0.5,
	})
	require.NoError(t, err)

	cfg := model.Config()
	assert.Equal(t, AsymmetricWindow(2, 5), cfg.Window)
	assert.Equal(t, 1000, cfg.VocabSize)
	assert.Equal(t, 3, cfg.MinOccurrences)
	assert.Equal(t, 10.0, cfg.XMax)
	assert.Equal(t, 0.5, cfg.Alpha)
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "zero embedding size",
			cfg:  Config{Window: SymmetricWindow(2)},
		},
		{
			name: "negative embedding size",
			cfg:  Config{EmbeddingSize: -1, Window: SymmetricWindow(2)},
		},
		{
			name: "negative left window",
			cfg:  Config{EmbeddingSize: 10, Window: AsymmetricWindow(-1, 2)},
		},
		{
			name: "negative right window",
			cfg:  Config{EmbeddingSize: 10, Window: AsymmetricWindow(2, -1)},
		},
		{
			name: "window empty on both sides",
			cfg:  Config{EmbeddingSize: 10, Window: ContextWindow{}},
		},
		{
			name: "negative vocab size",
			cfg:  Config{EmbeddingSize: 10, Window: SymmetricWindow(2), VocabSize: -5},
		},
		{
			name: "negative min occurrences",
			cfg:  Config{EmbeddingSize: 10, Window: SymmetricWindow(2), MinOccurrences: -2},
		},
		{
			name: "negative x_max",
			cfg:  Config{EmbeddingSize: 10, Window: SymmetricWindow(2), XMax: -1},
		},
		{
			name: "negative alpha",
			cfg:  Config{EmbeddingSize: 10, Window: SymmetricWindow(2), Alpha: -0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

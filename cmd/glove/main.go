// Command glove trains GloVe word vectors from a text corpus and evaluates
// them with similarity and analogy queries.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	glove "github.com/nlpforge/go-glove"
)

// trainOptions are the train subcommand's hyperparameters. Every field can
// come from flags or from a YAML file; flags win.
type trainOptions struct {
	EmbeddingSize  int     `yaml:"embedding_size"`
	LeftWindow     int     `yaml:"left_window"`
	RightWindow    int     `yaml:"right_window"`
	VocabSize      int     `yaml:"vocab_size"`
	MinOccurrences int     `yaml:"min_occurrences"`
	XMax           float64 `yaml:"x_max"`
	Alpha          float64 `yaml:"alpha"`
	Iterations     int     `yaml:"iterations"`
	Workers        int     `yaml:"workers"`
	LearningRate   float64 `yaml:"learning_rate"`
	Seed           int64   `yaml:"seed"`
}

func defaultTrainOptions() trainOptions {
	return trainOptions{
		EmbeddingSize:  100,
		LeftWindow:     10,
		RightWindow:    10,
		VocabSize:      glove.DefaultVocabSize,
		MinOccurrences: 5,
		XMax:           glove.DefaultXMax,
		Alpha:          glove.DefaultAlpha,
		Iterations:     50,
		Workers:        runtime.NumCPU(),
		LearningRate:   glove.DefaultLearningRate,
	}
}

func loadTrainOptions(path string) (trainOptions, error) {
	opts := defaultTrainOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse %s: %w", path, err)
	}
	return opts, nil
}

func newTrainCmd(logger *slog.Logger) *cobra.Command {
	opts := defaultTrainOptions()
	var (
		corpusFile string
		outputFile string
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train word vectors from a text corpus",
		Long:  "Builds co-occurrence statistics from the corpus (one sequence per line) and trains word vectors with AdaGrad.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				fileOpts, err := loadTrainOptions(configFile)
				if err != nil {
					return err
				}
				// Flags set explicitly override the file.
				flagOpts := opts
				opts = fileOpts
				for name, dst := range map[string]func(){
					"embedding-size":  func() { opts.EmbeddingSize = flagOpts.EmbeddingSize },
					"left-window":     func() { opts.LeftWindow = flagOpts.LeftWindow },
					"right-window":    func() { opts.RightWindow = flagOpts.RightWindow },
					"vocab-size":      func() { opts.VocabSize = flagOpts.VocabSize },
					"min-occurrences": func() { opts.MinOccurrences = flagOpts.MinOccurrences },
					"x-max":           func() { opts.XMax = flagOpts.XMax },
					"alpha":           func() { opts.Alpha = flagOpts.Alpha },
					"iterations":      func() { opts.Iterations = flagOpts.Iterations },
					"workers":         func() { opts.Workers = flagOpts.Workers },
					"learning-rate":   func() { opts.LearningRate = flagOpts.LearningRate },
					"seed":            func() { opts.Seed = flagOpts.Seed },
				} {
					if cmd.Flags().Changed(name) {
						dst()
					}
				}
			}

			model, err := glove.New(glove.Config{
				EmbeddingSize:  opts.EmbeddingSize,
				Window:         glove.AsymmetricWindow(opts.LeftWindow, opts.RightWindow),
				VocabSize:      opts.VocabSize,
				MinOccurrences: opts.MinOccurrences,
				XMax:           opts.XMax,
				Alpha:          opts.Alpha,
			})
			if err != nil {
				return err
			}

			f, err := os.Open(corpusFile)
			if err != nil {
				return err
			}
			defer f.Close()

			logger.Info("scanning corpus", "file", corpusFile, "workers", opts.Workers)
			if err := model.FitParallel(glove.ReadCorpus(f), opts.Workers); err != nil {
				return err
			}
			logger.Info("corpus statistics built",
				"vocabulary", model.Vocabulary().Len(),
				"cooccurrence_pairs", model.Matrix().Len(),
			)

			params := glove.NewRandomParams(model.Vocabulary().Len(), opts.EmbeddingSize, opts.Seed)
			trainer := glove.Trainer{
				Iterations:   opts.Iterations,
				Workers:      opts.Workers,
				LearningRate: opts.LearningRate,
				Seed:         opts.Seed,
				Logger:       logger,
			}
			if err := trainer.Train(model, params); err != nil {
				return err
			}

			embeddings := glove.NewEmbeddings(model.Vocabulary(), params)
			if err := embeddings.SaveFile(outputFile); err != nil {
				return err
			}
			logger.Info("vectors saved", "file", outputFile, "words", embeddings.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusFile, "corpus", "corpus.txt", "text corpus file, one sequence per line")
	cmd.Flags().StringVar(&outputFile, "output", "glove_vectors.txt", "output file for trained vectors")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML file with hyperparameters")
	cmd.Flags().IntVar(&opts.EmbeddingSize, "embedding-size", opts.EmbeddingSize, "vector dimensionality")
	cmd.Flags().IntVar(&opts.LeftWindow, "left-window", opts.LeftWindow, "context window size to the left")
	cmd.Flags().IntVar(&opts.RightWindow, "right-window", opts.RightWindow, "context window size to the right")
	cmd.Flags().IntVar(&opts.VocabSize, "vocab-size", opts.VocabSize, "maximum vocabulary size")
	cmd.Flags().IntVar(&opts.MinOccurrences, "min-occurrences", opts.MinOccurrences, "minimum word frequency")
	cmd.Flags().Float64Var(&opts.XMax, "x-max", opts.XMax, "weighting function cutoff")
	cmd.Flags().Float64Var(&opts.Alpha, "alpha", opts.Alpha, "weighting function exponent")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "training iterations")
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "concurrent workers for scanning and training")
	cmd.Flags().Float64Var(&opts.LearningRate, "learning-rate", opts.LearningRate, "initial AdaGrad learning rate")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 = from clock)")
	return cmd
}

func newSimilarCmd() *cobra.Command {
	var (
		vectorsFile string
		topN        int
	)

	cmd := &cobra.Command{
		Use:   "similar <word>",
		Short: "Show the words most similar to a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			embeddings, err := glove.LoadEmbeddingsFile(vectorsFile)
			if err != nil {
				return err
			}
			similar, err := embeddings.MostSimilar(args[0], topN)
			if err != nil {
				return err
			}
			for _, s := range similar {
				fmt.Printf("%-20s %.4f\n", s.Word, s.Similarity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vectorsFile, "vectors", "glove_vectors.txt", "trained vectors file")
	cmd.Flags().IntVar(&topN, "top", 10, "number of results")
	return cmd
}

func newAnalogyCmd() *cobra.Command {
	var (
		vectorsFile string
		topN        int
	)

	cmd := &cobra.Command{
		Use:   "analogy <a:b::c>",
		Short: "Solve an analogy a:b :: c:?",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := strings.Split(args[0], "::")
			if len(parts) != 2 {
				return fmt.Errorf("analogy must look like a:b::c, got %q", args[0])
			}
			pair := strings.Split(parts[0], ":")
			if len(pair) != 2 || parts[1] == "" {
				return fmt.Errorf("analogy must look like a:b::c, got %q", args[0])
			}

			embeddings, err := glove.LoadEmbeddingsFile(vectorsFile)
			if err != nil {
				return err
			}
			answers, err := embeddings.Analogy(pair[0], pair[1], parts[1], topN)
			if err != nil {
				return err
			}
			for i, word := range answers {
				fmt.Printf("%d. %s\n", i+1, word)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&vectorsFile, "vectors", "glove_vectors.txt", "trained vectors file")
	cmd.Flags().IntVar(&topN, "top", 5, "number of results")
	return cmd
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:           "glove",
		Short:         "GloVe word vector training and evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTrainCmd(logger), newSimilarCmd(), newAnalogyCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

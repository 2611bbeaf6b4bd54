package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigell/job-recommender/internal/recommend"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNothingToTrain = errors.New("corpus is empty after loading and filtering")

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the recommendation model on the corpus and persist it",
	Run: func(_ *cobra.Command, _ []string) {
		train()
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func train() {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the training", zap.String("version", version))

	engine := recommend.New(logger)
	if err := trainAndSave(ctx, engine, config, logger); err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}
}

// trainAndSave refits engine on the configured corpus and persists the result.
func trainAndSave(ctx context.Context, engine *recommend.Engine, config *Config, logger *zap.Logger) error {
	corpus, err := loadCorpus(ctx, config, logger)
	if err != nil {
		return err
	}

	if err := engine.Train(corpus); err != nil {
		return err
	}
	if !engine.Trained() {
		return errNothingToTrain
	}

	if err := engine.Save(config.Model); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}

	return nil
}

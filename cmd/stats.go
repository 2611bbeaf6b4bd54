package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spigell/job-recommender/internal/filtering"
	"github.com/spigell/job-recommender/internal/location"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type corpusStats struct {
	Jobs            int                `json:"jobs"`
	UniqueSkills    int                `json:"unique_skills"`
	UniqueCompanies int                `json:"unique_companies"`
	Locations       []string           `json:"locations"`
	Filters         []filtering.Status `json:"filters"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the filtered corpus",
	Run: func(_ *cobra.Command, _ []string) {
		stats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func stats() {
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	corpus, err := loadCorpus(context.Background(), config, logger)
	if err != nil {
		logger.Fatal("loading corpus", zap.Error(err))
	}

	summary := corpusStats{
		Jobs:            corpus.Len(),
		UniqueSkills:    len(corpus.UniqueSkills()),
		UniqueCompanies: len(corpus.UniqueCompanies()),
		Locations:       corpus.NormalizedLocations(location.Normalize, location.IsSpecific),
		Filters:         prepareFilters(config, logger).Describe(),
	}

	pretty, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(pretty))
}

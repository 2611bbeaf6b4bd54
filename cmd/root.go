package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/job-recommender/internal/filtering"
	"github.com/spigell/job-recommender/internal/jobs"
	"github.com/spigell/job-recommender/internal/logger"
	"github.com/spigell/job-recommender/internal/recommend"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "job-recommender"

	defaultTopN = 10
	maxTopN     = 100
)

type Config struct {
	Corpus  string             `mapstructure:"corpus"`
	Model   string             `mapstructure:"model"`
	TopN    int                `mapstructure:"top-n"`
	Profile *recommend.Profile `mapstructure:"profile"`
	Filters *FiltersConfig     `mapstructure:"filters"`
}

type FiltersConfig struct {
	MaxAgeDays       int      `mapstructure:"max-age-days"`
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	ExcludeFile      string   `mapstructure:"exclude-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-recommender ranks scraped job postings against your skills, experience and location",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("corpus", "JOBREC_CORPUS"); err != nil {
		log.Fatalf("binding JOBREC_CORPUS environment variable: %v", err)
	}
	if err := viper.BindEnv("model", "JOBREC_MODEL"); err != nil {
		log.Fatalf("binding JOBREC_MODEL environment variable: %v", err)
	}

	viper.SetDefault("model", recommend.DefaultModelPath)
	viper.SetDefault("top-n", defaultTopN)
	viper.SetDefault("profile.role", "Software Engineer")
	viper.SetDefault("profile.experience", "0-2 years")
	viper.SetDefault("profile.location", "Any")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-recommender.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("corpus", "", "corpus csv file or a directory with csv files (the newest is used)")
	rootCmd.PersistentFlags().String("model", "", "persisted model path (default is "+recommend.DefaultModelPath+")")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("corpus", rootCmd.PersistentFlags().Lookup("corpus"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a flag, so a missing default config file is fine.
	// A broken or explicitly requested one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Profile == nil {
		config.Profile = &recommend.Profile{}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}

	return config, nil
}

// newLogger builds the logger from global flags or exits.
func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// clampTopN keeps the requested result count within 1..maxTopN.
func clampTopN(n int) int {
	switch {
	case n <= 0:
		return defaultTopN
	case n > maxTopN:
		return maxTopN
	default:
		return n
	}
}

// loadCorpus reads the configured corpus and runs it through the filters.
func loadCorpus(ctx context.Context, config *Config, l *zap.Logger) (*jobs.Corpus, error) {
	source := strings.TrimSpace(config.Corpus)
	if source == "" {
		return nil, errors.New("corpus is not configured (set --corpus, the 'corpus' key or JOBREC_CORPUS)")
	}

	corpus, err := jobs.Load(source, l)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	l.Info("corpus loaded", append(logger.StringFields(
		logger.StringField{Key: logger.FieldCorpusPath, Value: corpus.Source},
	), zap.Int("jobs", corpus.Len()))...)

	filtered, err := prepareFilters(config, l).RunFilters(ctx, corpus)
	if err != nil {
		return nil, fmt.Errorf("filtering corpus: %w", err)
	}

	return filtered, nil
}

func prepareFilters(config *Config, l *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewUniqueIDs(l),
		filtering.NewMaxAge(config.Filters.MaxAgeDays, l),
		filtering.NewExcludedCompanies(config.Filters.ExcludeCompanies, l),
		filtering.NewExcludeFile(config.Filters.ExcludeFile, l),
	}

	return filtering.New(steps, l)
}

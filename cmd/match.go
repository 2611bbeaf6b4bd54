package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spigell/job-recommender/internal/filtering"
	"github.com/spigell/job-recommender/internal/jobs"
	"github.com/spigell/job-recommender/internal/recommend"
	"github.com/spigell/job-recommender/internal/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptBack                = "exit"
	PromptAppendToExcludeFile = "Append all results to exclude file"

	descriptionLimit = 200
	outputJSON       = "json"
	outputText       = "text"
)

var errExit = errors.New("exit requested")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank postings against a profile",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

// recommendation is a match result together with learning hints for the
// skills it lacks.
type recommendation struct {
	recommend.MatchResult
	Suggestions []recommend.Suggestion `json:"learning_suggestions"`
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringSliceP("skills", "s", nil, "your skills, comma separated")
	matchCmd.Flags().StringP("role", "r", "", "desired role")
	matchCmd.Flags().StringP("experience", "e", "", "your experience, e.g. \"3 years\" or \"senior\"")
	matchCmd.Flags().StringP("location", "l", "", "preferred city, or \"Any\"")
	matchCmd.Flags().IntP("top-n", "n", 0, "number of recommendations (1-100)")
	matchCmd.Flags().Bool("retrain", false, "ignore the persisted model and retrain on the corpus")
	matchCmd.Flags().BoolP("interactive", "i", false, "browse recommendations interactively")
	matchCmd.Flags().StringP("output", "o", outputText, "output format: text or json")

	viper.BindPFlag("profile.skills", matchCmd.Flags().Lookup("skills"))
	viper.BindPFlag("profile.role", matchCmd.Flags().Lookup("role"))
	viper.BindPFlag("profile.experience", matchCmd.Flags().Lookup("experience"))
	viper.BindPFlag("profile.location", matchCmd.Flags().Lookup("location"))
	viper.BindPFlag("top-n", matchCmd.Flags().Lookup("top-n"))
}

func match(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		logger.Fatal("unsupported output format", zap.String("output", output))
	}

	profile := *config.Profile
	if len(profile.Skills) == 0 {
		logger.Fatal("at least one skill is required",
			zap.String("hint", "pass --skills or set profile.skills in the configuration file"),
		)
	}

	pretty, _ := json.MarshalIndent(profile, "", "  ")
	logger.Debug(fmt.Sprintf("matching profile: \n %s", pretty))

	engine := recommend.New(logger)

	retrain, _ := cmd.Flags().GetBool("retrain")
	if retrain || !engine.Load(config.Model) {
		logger.Info("training a fresh model", zap.Bool("forced", retrain))
		if err := trainAndSave(ctx, engine, config, logger); err != nil {
			logger.Fatal("training failed", zap.Error(err))
		}
	}

	results := engine.CalculateMatch(profile, clampTopN(config.TopN))
	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no recommendations"))
		return
	}

	recommendations := make([]recommendation, 0, len(results))
	for _, r := range results {
		recommendations = append(recommendations, recommendation{
			MatchResult: r,
			Suggestions: recommend.LearningSuggestions(r.MissingSkills),
		})
	}

	if output == outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(recommendations); err != nil {
			logger.Fatal("encoding recommendations", zap.Error(err))
		}
	} else {
		for i := range recommendations {
			logRecommendation(logger, i+1, &recommendations[i])
		}
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := browse(logger, config, recommendations); err != nil && !errors.Is(err, errExit) {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func logRecommendation(logger *zap.Logger, rank int, r *recommendation) {
	logger.Info("recommendation",
		zap.Int("rank", rank),
		zap.String("job_id", r.Job.JobID),
		zap.String("title", r.Job.Title),
		zap.String("company", r.Job.Company),
		zap.String("location", r.Job.Location),
		zap.Float64("match_score", r.MatchScore),
		zap.Float64("skills_match", r.SkillsMatch),
		zap.Float64("experience_match", r.ExperienceMatch),
		zap.Float64("location_match", r.LocationMatch),
		zap.Strings("matched_skills", r.MatchedSkills),
		zap.Strings("missing_skills", r.MissingSkills),
		zap.String("url", r.Job.URL),
	)
}

// browse lets the user inspect recommendations one by one.
func browse(logger *zap.Logger, config *Config, recommendations []recommendation) error {
	excludeFile := strings.TrimSpace(config.Filters.ExcludeFile)

	for {
		items := make([]string, 0, len(recommendations)+2)
		for _, r := range recommendations {
			items = append(items, fmt.Sprintf("%s %.2f%% %s / %s / %s",
				r.Job.JobID, r.MatchScore, r.Job.Title, r.Job.Company, r.Job.Location,
			))
		}

		if excludeFile != "" && len(recommendations) != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		recommendationPrompt := promptui.Select{
			Label: "Choose a recommendation and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		_, selected, err := recommendationPrompt.Run()
		if err != nil {
			return err
		}

		switch selected {
		case PromptBack:
			return errExit
		case PromptAppendToExcludeFile:
			if err := appendToExcludeFile(excludeFile, recommendations); err != nil {
				return err
			}
			logger.Info("appended to exclude file", zap.String("filename", excludeFile))
			recommendations = nil
		default:
			jobID := strings.Split(selected, " ")[0]
			found := false
			for i := range recommendations {
				if recommendations[i].Job.JobID == jobID {
					printDetails(&recommendations[i])
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("there is no such job id %s", jobID)
			}
		}
	}
}

func appendToExcludeFile(path string, recommendations []recommendation) error {
	excluded, err := filtering.ReadExcludedJobs(path)
	if err != nil {
		return err
	}

	postings := make([]jobs.Posting, 0, len(recommendations))
	for _, r := range recommendations {
		postings = append(postings, r.Job)
	}
	excluded.Append(filtering.ToExcluded(postings, time.Now()))

	return excluded.ToFile(path)
}

func printDetails(r *recommendation) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s at %s (%s)\n", r.Job.Title, r.Job.Company, r.Job.Location)
	fmt.Fprintf(&b, "Match: %.2f%% (skills %.2f%%, experience %.2f%%, location %.2f%%)\n",
		r.MatchScore, r.SkillsMatch, r.ExperienceMatch, r.LocationMatch)
	if r.Job.Experience != "" {
		fmt.Fprintf(&b, "Experience: %s\n", r.Job.Experience)
	}
	if r.Job.SalaryMin > 0 || r.Job.SalaryMax > 0 {
		fmt.Fprintf(&b, "Salary: %d-%d\n", r.Job.SalaryMin, r.Job.SalaryMax)
	}
	fmt.Fprintf(&b, "Matched skills: %s\n", strings.Join(r.MatchedSkills, ", "))
	fmt.Fprintf(&b, "Missing skills: %s\n", strings.Join(r.MissingSkills, ", "))
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	if desc := utils.Truncate(r.Job.Description, descriptionLimit); desc != "" {
		fmt.Fprintf(&b, "%s\n", desc)
	}
	if r.Job.URL != "" {
		fmt.Fprintf(&b, "%s\n", r.Job.URL)
	}
	fmt.Println(b.String())
}

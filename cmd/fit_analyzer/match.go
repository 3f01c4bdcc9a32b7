package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-fit-analyzer/internal/ingestion"
	"github.com/jonathan/resume-fit-analyzer/internal/pipeline"
	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

var (
	matchResumePath      string
	matchJobPath         string
	matchConfigPath      string
	matchExperienceYears float64
	matchJSONOutput      bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one resume against one job requirement",
	Long: `Score a resume file against a job requirement file and print the explained result.

The resume file may be plain text or HTML (detected by .html/.htm extension).
The job file is JSON: {"title", "description", "required_skills", "preferred_skills", "min_experience_years"}.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchResumePath, "resume", "r", "", "Path to resume file (text or HTML)")
	matchCmd.Flags().StringVarP(&matchJobPath, "job", "j", "", "Path to job requirement JSON file")
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file")
	matchCmd.Flags().Float64Var(&matchExperienceYears, "experience-years", -1, "Candidate experience in years (detected from resume text when omitted)")
	matchCmd.Flags().BoolVar(&matchJSONOutput, "json", false, "Print the full result as JSON instead of the explanation")
	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(matchConfigPath)
	if err != nil {
		return err
	}

	resumeText, err := loadResume(matchResumePath)
	if err != nil {
		return err
	}

	jobData, err := os.ReadFile(matchJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	var job types.JobRequirement
	if err := json.Unmarshal(jobData, &job); err != nil {
		return fmt.Errorf("failed to parse job file: %w", err)
	}
	if job.Title == "" {
		return fmt.Errorf("job file must set a title")
	}

	svc, err := pipeline.NewService(cmd.Context(), cfg, pipeline.Options{})
	if err != nil {
		return fmt.Errorf("failed to create pipeline service: %w", err)
	}
	defer svc.Close()

	in := pipeline.MatchInput{ResumeText: resumeText, Job: job}
	if matchExperienceYears >= 0 {
		in.ExperienceYears = &matchExperienceYears
	}

	result, err := svc.Match(cmd.Context(), in)
	if err != nil {
		return err
	}

	if matchJSONOutput {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	fmt.Println(result.Explanation)
	if result.Degraded {
		fmt.Println("\nNote: model extraction was unavailable, results are lexicon-only.")
	}
	return nil
}

// loadResume reads the resume file, reducing HTML to plain text when the
// extension says so.
func loadResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		text, err := ingestion.HTMLToText(string(data))
		if err != nil {
			return "", err
		}
		return text, nil
	}
	return string(data), nil
}

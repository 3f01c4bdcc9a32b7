package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-fit-analyzer/internal/config"
	"github.com/jonathan/resume-fit-analyzer/internal/pipeline"
	"github.com/jonathan/resume-fit-analyzer/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /match for scoring resumes against job requirements.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	svc, err := pipeline.NewService(cmd.Context(), cfg, pipeline.Options{})
	if err != nil {
		return fmt.Errorf("failed to create pipeline service: %w", err)
	}

	srv := server.New(server.Config{Port: cfg.Port}, svc)
	return srv.Start()
}

// resolveConfig loads configuration in precedence order: defaults, then the
// optional config file, then environment variables.
func resolveConfig(path string) (config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}
	cfg.FromEnv()
	return cfg, nil
}

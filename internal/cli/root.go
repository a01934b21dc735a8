// Package cli implements the relevancer command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"relevancer/internal/config"
	"relevancer/internal/errors"
)

type contextKey string

const (
	configContextKey contextKey = "config"
	loggerContextKey contextKey = "logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "relevancer",
	Short: "Score how well a resume matches a job description",
	Long: `Relevancer parses plain-text resumes and job descriptions into
structured records and scores their fit across skills, experience,
education and semantic similarity.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		logger, err := errors.New(cfg.App.LogLevel)
		if err != nil {
			return err
		}

		ctx := context.WithValue(cmd.Context(), configContextKey, cfg)
		ctx = context.WithValue(ctx, loggerContextKey, logger)
		cmd.SetContext(ctx)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., $HOME/.relevancer, /etc/relevancer)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(parseResumeCmd)
	rootCmd.AddCommand(parseJobCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the command tree.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func configFromContext(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configContextKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not found in command context")
	}
	return cfg, nil
}

func loggerFromContext(ctx context.Context) (*errors.Logger, error) {
	logger, ok := ctx.Value(loggerContextKey).(*errors.Logger)
	if !ok || logger == nil {
		return nil, fmt.Errorf("logger not found in command context")
	}
	return logger, nil
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().StringP("format", "f", "", "output format: json, text or markdown")

	cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func outputFlags(cmd *cobra.Command, cfg *config.Config) (format, output string) {
	format, _ = cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.App.DefaultFormat
	}
	output, _ = cmd.Flags().GetString("output")
	return format, output
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"relevancer/internal/ai"
	"relevancer/internal/common"
	"relevancer/internal/engine"
	"relevancer/internal/parser"
	"relevancer/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <resume-file> <job-file>",
	Short: "Evaluate a resume against a job description",
	Long: `Parse both documents and score the candidate's fit for the role.
Both files must be plain UTF-8 text.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := configFromContext(ctx)
		if err != nil {
			return err
		}
		logger, err := loggerFromContext(ctx)
		if err != nil {
			return err
		}

		embedder, err := ai.NewEmbedder(ctx, cfg, logger)
		if err != nil {
			return err
		}
		eng := engine.New(cfg.EngineSettings(), engine.DefaultTables(), embedder, logger)
		resumes := parser.NewResumeParser(logger)
		jobs := parser.NewJobParser(logger)

		format, output := outputFlags(cmd, cfg)
		spec := common.CommandSpec{Config: cfg, Logger: logger, Format: format, OutputFile: output}

		return common.RunFileCommand(ctx, spec, args,
			func(ctx context.Context, contents []string) (types.EvaluationResult, error) {
				profile := resumes.Parse(contents[0])
				role := jobs.Parse(contents[1])
				result := eng.Evaluate(ctx, profile, role)

				logger.Info("Evaluation completed",
					"resume", args[0],
					"job", args[1],
					"score", result.RelevanceScore,
					"verdict", result.Verdict,
					"kind", result.Kind,
				)
				return result, nil
			})
	},
}

func init() {
	addOutputFlags(evaluateCmd)
}

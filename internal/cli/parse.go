package cli

import (
	"context"

	"github.com/spf13/cobra"

	"relevancer/internal/common"
	"relevancer/internal/parser"
	"relevancer/internal/types"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume <file>",
	Short: "Parse a resume into a structured candidate profile",
	Args:  cobra.ExactArgs(1),
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

		p := parser.NewResumeParser(logger)
		format, output := outputFlags(cmd, cfg)
		spec := common.CommandSpec{Config: cfg, Logger: logger, Format: format, OutputFile: output}

		return common.RunFileCommand(ctx, spec, args,
			func(_ context.Context, contents []string) (types.CandidateProfile, error) {
				profile := p.Parse(contents[0])
				logger.Debug("Resume parsed",
					"file", args[0],
					"skills", len(profile.Skills),
					"experience_entries", len(profile.Experience),
				)
				return profile, nil
			})
	},
}

var parseJobCmd = &cobra.Command{
	Use:   "parse-job <file>",
	Short: "Parse a job description into a structured role requirement",
	Args:  cobra.ExactArgs(1),
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

		p := parser.NewJobParser(logger)
		format, output := outputFlags(cmd, cfg)
		spec := common.CommandSpec{Config: cfg, Logger: logger, Format: format, OutputFile: output}

		return common.RunFileCommand(ctx, spec, args,
			func(_ context.Context, contents []string) (types.RoleRequirement, error) {
				role := p.Parse(contents[0])
				logger.Debug("Job description parsed",
					"file", args[0],
					"must_have_skills", len(role.MustHaveSkills),
					"good_to_have_skills", len(role.GoodToHaveSkills),
				)
				return role, nil
			})
	},
}

func init() {
	addOutputFlags(parseResumeCmd)
	addOutputFlags(parseJobCmd)
}

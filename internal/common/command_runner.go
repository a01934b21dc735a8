package common

import (
	"context"

	"relevancer/internal/config"
	"relevancer/internal/errors"
)

// CommandSpec describes one file-driven CLI command: how many input files
// it takes and how to render its result.
type CommandSpec struct {
	Config     *config.Config
	Logger     *errors.Logger
	Format     string
	OutputFile string
}

// RunFileCommand is the shared skeleton for commands that read input files,
// run one operation and write a formatted result.
func RunFileCommand[Output any](
	ctx context.Context,
	spec CommandSpec,
	paths []string,
	operate func(ctx context.Context, contents []string) (Output, error),
) error {
	format, err := ValidateFormat(spec.Format, spec.Config.App.SupportedFormats)
	if err != nil {
		return err
	}

	fp := NewFileProcessor(spec.Logger, spec.Config.App.MaxFileSize)
	contents, err := fp.ReadDocuments(paths)
	if err != nil {
		return err
	}

	result, err := operate(ctx, contents)
	if err != nil {
		return err
	}

	return NewOutputHandler(spec.Logger).Write(result, format, spec.OutputFile)
}

package common

import (
	"fmt"
	"os"

	"relevancer/internal/errors"
	"relevancer/internal/formatters"
)

// OutputHandler formats results and writes them to stdout or a file
type OutputHandler struct {
	logger *errors.Logger
}

// NewOutputHandler creates an output handler.
func NewOutputHandler(logger *errors.Logger) *OutputHandler {
	return &OutputHandler{logger: logger}
}

// Write formats data and writes it to outputFile, or stdout when
// outputFile is empty.
func (oh *OutputHandler) Write(data any, format, outputFile string) error {
	rendered, err := formatters.GlobalRegistry.Format(format, data)
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(rendered)
		return nil
	}

	if err := os.WriteFile(outputFile, []byte(rendered+"\n"), 0o644); err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to write output file", err).
			WithContext("path", outputFile)
	}
	if oh.logger != nil {
		oh.logger.Info("Output written", "path", outputFile, "format", format)
	}
	return nil
}

// Package common holds the shared plumbing between CLI commands: input
// file handling, output handling and the command runner.
package common

import (
	"os"

	"relevancer/internal/errors"
	"relevancer/internal/utils"
)

// FileProcessor reads and validates the text documents commands operate on
type FileProcessor struct {
	logger      *errors.Logger
	maxFileSize int64
}

// NewFileProcessor creates a processor enforcing the given size limit.
func NewFileProcessor(logger *errors.Logger, maxFileSize int64) *FileProcessor {
	return &FileProcessor{logger: logger, maxFileSize: maxFileSize}
}

// ReadDocument validates and reads one input file as UTF-8 text.
func (fp *FileProcessor) ReadDocument(path string) (string, error) {
	if err := utils.ValidateInputFile(path, fp.maxFileSize); err != nil {
		return "", err
	}

	if !utils.LooksLikeText(path) && fp.logger != nil {
		fp.logger.Warn("Input file does not look like plain text, parsing may degrade", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeFileNotReadable, "failed to read file", err).
			WithContext("path", path)
	}
	if len(data) == 0 {
		return "", errors.NewValidationError(errors.ErrCodeEmptyDocument, "file is empty", nil).
			WithContext("path", path)
	}
	return string(data), nil
}

// ReadDocuments reads several input files, failing on the first problem.
func (fp *FileProcessor) ReadDocuments(paths []string) ([]string, error) {
	contents := make([]string, 0, len(paths))
	for _, p := range paths {
		c, err := fp.ReadDocument(p)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, nil
}

// Package utils holds small filesystem helpers shared by the CLI.
package utils

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"relevancer/internal/errors"
)

var textExtensions = map[string]struct{}{
	".txt": {}, ".text": {}, ".md": {}, ".markdown": {}, ".rst": {},
}

// ValidateInputFile checks that path names a readable regular file within
// the size limit. maxSize <= 0 disables the size check.
func ValidateInputFile(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewIOError(errors.ErrCodeFileNotFound, "file does not exist", err).
				WithContext("path", path)
		}
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "cannot access file", err).
			WithContext("path", path)
	}

	if !info.Mode().IsRegular() {
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "not a regular file", nil).
			WithContext("path", path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "file exceeds the size limit", nil).
			WithContext("path", path).
			WithContext("size", info.Size()).
			WithContext("limit", maxSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable, "file is not readable", err).
			WithContext("path", path)
	}
	f.Close()
	return nil
}

// LooksLikeText reports whether the file is plausibly plain text, first by
// extension and then by sniffing the leading bytes for valid UTF-8 without
// NUL bytes. Binary formats (PDF, DOCX) are out of scope for parsing.
func LooksLikeText(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := textExtensions[ext]; ok {
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if n == 0 || (err != nil && n <= 0) {
		return false
	}
	buf = buf[:n]

	for _, b := range buf {
		if b == 0 {
			return false
		}
	}
	return utf8.Valid(buf) || n == 512
}

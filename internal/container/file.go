package container

import (
	"os"

	"github.com/sfingram/nsfnotate/internal/notation"
)

// WriteFile marshals data and writes it to path, opening the file once
// and closing it on every exit path (spec.md §5).
func WriteFile(path string, data notation.NotationFile) error {
	raw, err := Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// ReadFile loads path fully into memory and decodes it (spec.md §5:
// files are expected to be at most tens of MB).
func ReadFile(path string) (notation.NotationFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return notation.NotationFile{}, err
	}
	return Unmarshal(raw)
}

package upload

import (
	"fmt"
	"io"
	"os"
)

// DefaultMaxFileBytes is the import ceiling.
const DefaultMaxFileBytes = 500000

// ReadTranscriptFile returns the file's text verbatim. Files larger than
// max bytes are rejected from their size alone, before any read, and the
// read itself never goes past the ceiling.
func ReadTranscriptFile(path string, max int64) (string, error) {
	if max <= 0 {
		max = DefaultMaxFileBytes
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat transcript file: %w", err)
	}
	if err := checkSize(path, info, max); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open transcript file: %w", err)
	}
	defer f.Close()
	// The path may have been replaced since the first stat.
	if info, err = f.Stat(); err != nil {
		return "", fmt.Errorf("stat transcript file: %w", err)
	}
	if err := checkSize(path, info, max); err != nil {
		return "", err
	}
	data, err := readLimited(f, max)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func checkSize(path string, info os.FileInfo, max int64) error {
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > max {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, info.Size(), max)
	}
	return nil
}

// readLimited reads at most max bytes; a reader with more is too large.
func readLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read transcript file: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, max)
	}
	return data, nil
}

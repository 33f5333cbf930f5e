package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MoveFile moves or renames a file
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move file from %s to %s: %w", src, dst, err)
	}
	return nil
}

// WithSuffix inserts a suffix between a file's stem and its extension:
// WithSuffix("song.txt", "_pitched") -> "song_pitched.txt".
func WithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

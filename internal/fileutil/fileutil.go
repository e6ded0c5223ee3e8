package fileutil

import (
	"fmt"
	"os"
)

// WriteFileAtomic writes data to path so that the destination either keeps
// its previous contents or holds the complete new contents, never a partial
// write. The data lands in a sibling temp file that is renamed over path.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

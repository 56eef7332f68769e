package output

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If MERGECHECK_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.mergecheck/logs/mergecheck.log
func GetLogFilePath() string {
	if customPath := os.Getenv("MERGECHECK_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "mergecheck.log"
	}

	return filepath.Join(homeDir, ".mergecheck", "logs", "mergecheck.log")
}

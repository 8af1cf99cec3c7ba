package errors

import (
	"fmt"
	"os"

	"github.com/adibhanna/startracker/internal/logger"
)

// Format prefixes err with "Error: ". A nil error formats as "".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr and exits with status 1. It does
// nothing when err is nil.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

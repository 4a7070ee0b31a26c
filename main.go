package main

import (
	"log"
	"os"
	"strings"

	"csvcombine/cmd"
	"csvcombine/pkg/logging"
	"csvcombine/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := logging.Setup(false, version.AppName, version.Version); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.Logger

	if err := cmd.Execute(logger); err != nil {
		// Fatal exits without running deferred calls; it syncs the logger itself.
		logger.Fatal("csvcombine execution failed", zap.Error(err))
	}

	// Syncing a pipe or character device such as /dev/stderr can fail with
	// "invalid argument"; only sync when it is meaningful.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}

package seed

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/minglehq/mingle/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	logger.Init("")

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return err
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mingle Seed Tool
================

Populates a running mingle service with a random social graph and
verifies the recommendations it serves.

Usage:
  go run cmd/seed/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -users int
        Number of users to create (default 200)
  -friendships int
        Number of random friendships to create (default 600)
  -limit int
        Recommendation list size to request (default 5)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for created users (default: seeded_users_TIMESTAMP.json)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed/main.go

  # Seed a dense graph
  go run cmd/seed/main.go -users 1000 -friendships 8000

  # Seed a remote instance
  go run cmd/seed/main.go -url http://mingle.internal:9080 -verbose
`)
}

package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/minglehq/mingle/internal/seed"
)

// Default configuration constants.
const (
	defaultNumUsers       = 200
	defaultNumFriendships = 600
	defaultLimit          = 5
	defaultWorkers        = 2 // multiplier for runtime.NumCPU()
	defaultTimeout        = 30 * time.Second
	defaultRunTimeout     = 10 * time.Minute
)

func main() {
	var (
		baseURL        = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numUsers       = flag.Int("users", defaultNumUsers, "Number of users to create")
		numFriendships = flag.Int("friendships", defaultNumFriendships, "Number of random friendships to create")
		limit          = flag.Int("limit", defaultLimit, "Recommendation list size to request")
		workers        = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout        = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile     = flag.String("output", "", "Output file for created users (default: seeded_users_TIMESTAMP.json)")
		logFile        = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
		help           = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := seed.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seed.Config{
		BaseURL:        *baseURL,
		NumUsers:       *numUsers,
		NumFriendships: *numFriendships,
		Limit:          *limit,
		Workers:        *workers,
		Timeout:        *timeout,
		OutputFile:     *outputFile,
		LogFile:        *logFile,
		Verbose:        *verbose,
	}

	if err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"seo-ai/internal/config"
	"seo-ai/internal/service"
	"seo-ai/pkg/logger"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func main() {
	var (
		urlList    = flag.String("urls", getEnvOrDefault("MONITOR_URLS", ""), "Comma-separated URLs to check instead of the stored watch list (env: MONITOR_URLS)")
		configPath = flag.String("config", getEnvOrDefault("SEOAI_CONFIG", "config/dev.yaml"), "Configuration file path (env: SEOAI_CONFIG)")
		workers    = flag.Int("workers", getEnvIntOrDefault("MONITOR_WORKERS", 0), "Concurrent URL checks, 0 keeps the configured value (env: MONITOR_WORKERS)")
		save       = flag.Bool("save", getEnvBoolOrDefault("MONITOR_SAVE", false), "Store -urls as the new watch list (env: MONITOR_SAVE)")
		debug      = flag.Bool("debug", getEnvBoolOrDefault("DEBUG", false), "Enable debug logging (env: DEBUG)")
		timeout    = flag.Duration("timeout", 10*time.Minute, "Upper bound for the whole cycle")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	cfg, err := config.NewManager().Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Logger.Level = "debug"
	}
	if *workers > 0 {
		cfg.Monitor.Workers = *workers
	}
	// Keep stdout clean for the JSON summary.
	if cfg.Logger.Output == "" || cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "stderr"
	}
	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().WithField("component", "main")

	container, err := service.NewContainer(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to build services")
	}

	urls := container.Monitor.WatchURLs()
	if *urlList != "" {
		urls = splitURLs(*urlList)
		if *save {
			if urls, err = container.Monitor.SetWatchURLs(urls); err != nil {
				log.WithError(err).Fatal("Failed to save watch list")
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.WithField("urls", len(urls)).Info("Starting monitoring cycle")
	run := container.Monitor.RunURLs(ctx, urls)

	failed := 0
	for _, r := range run.Results {
		if r.Error != "" {
			failed++
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		log.WithError(err).Fatal("Failed to write summary")
	}

	if failed > 0 && failed == len(run.Results) {
		os.Exit(1)
	}
}

func splitURLs(s string) []string {
	var urls []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func printUsage() {
	fmt.Println("seo-ai one-shot monitor")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./seo-ai [OPTIONS]")
	fmt.Println("")
	fmt.Println("Runs one monitoring cycle over the watch list (or -urls) and prints")
	fmt.Println("the results as JSON. Exits 1 when every URL failed.")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -urls string      Comma-separated URLs (env: MONITOR_URLS)")
	fmt.Println("    -save             Persist -urls as the watch list (env: MONITOR_SAVE)")
	fmt.Println("    -config string    Config file (default: config/dev.yaml, env: SEOAI_CONFIG)")
	fmt.Println("    -workers int      Concurrent checks (env: MONITOR_WORKERS)")
	fmt.Println("    -timeout duration Cycle timeout (default: 10m)")
	fmt.Println("    -debug            Enable debug logging (env: DEBUG)")
	fmt.Println("    -help             Show this help message")
	fmt.Println("")
	fmt.Println("EXAMPLES:")
	fmt.Println("    ./seo-ai -urls \"https://example.com,https://example.org\"")
	fmt.Println("    MONITOR_URLS=https://example.com ./seo-ai -save")
}

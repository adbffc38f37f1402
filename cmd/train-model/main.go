package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"seo-ai/pkg/scorer"
)

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	defaults := scorer.DefaultTrainOptions()

	var (
		out     = flag.String("out", getEnvOrDefault("SEOAI_MODEL_PATH", "data/model.json"), "Where to write the model JSON (env: SEOAI_MODEL_PATH)")
		samples = flag.Int("samples", getEnvIntOrDefault("SEOAI_MODEL_SAMPLES", defaults.Samples), "Synthetic pages to generate (env: SEOAI_MODEL_SAMPLES)")
		trees   = flag.Int("trees", getEnvIntOrDefault("SEOAI_MODEL_TREES", defaults.Trees), "Number of trees in the forest (env: SEOAI_MODEL_TREES)")
		seed    = flag.Int64("seed", defaults.Seed, "Random seed")
	)
	flag.Parse()

	p, err := scorer.Train(scorer.TrainOptions{Samples: *samples, Trees: *trees, Seed: *seed})
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	fmt.Printf("Trained on %d rows, evaluated on %d rows\n", p.Metrics.TrainRows, p.Metrics.TestRows)
	fmt.Printf("MAE: %.3f\n", p.Metrics.MAE)
	fmt.Printf("R2 : %.3f\n", p.Metrics.R2)

	if err := p.Save(*out); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	fmt.Printf("Saved model to %s\n", *out)
}

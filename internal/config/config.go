package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Data   DataConfig
	Output OutputConfig
}

// DataConfig holds the input resource locations
type DataConfig struct {
	SignalPath   string
	SummaryPath  string
	VariancePath string
}

// OutputConfig holds result persistence settings
type OutputConfig struct {
	Dir         string
	DatabaseURL string // when set, resources and results live in Postgres
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing values fall back to the conventional data/ and
// results/ directories next to the binary.
func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	dataDir := getEnv("SLEEPHMM_DATA_DIR", "data")
	cfg := &Config{
		Data: DataConfig{
			SignalPath:   getEnv("SLEEPHMM_SIGNAL_PATH", filepath.Join(dataDir, "signal_data.csv")),
			SummaryPath:  getEnv("SLEEPHMM_SUMMARY_PATH", filepath.Join(dataDir, "summary_statistics.csv")),
			VariancePath: getEnv("SLEEPHMM_VARIANCE_PATH", filepath.Join(dataDir, "total_variance.csv")),
		},
		Output: OutputConfig{
			Dir:         getEnv("SLEEPHMM_OUTPUT_DIR", "results"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

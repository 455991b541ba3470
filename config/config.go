package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5400"`

		// Comma-separated list of allowed CORS origins
		AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/smartestate.db"`
	}

	// External collaborator configuration
	Collaborators struct {
		// Trading-Economics-style economic data API key; empty key
		// switches the client to deterministic sample data
		EconomicAPIKey string `env:"ECONOMIC_API_KEY"`

		// Geocoding / places API key; empty key switches to mock data
		MapsAPIKey string `env:"MAPS_API_KEY"`

		// Timeout for collaborator HTTP calls (in seconds)
		HTTPTimeout int `env:"COLLABORATOR_TIMEOUT" envDefault:"10"`

		// Default country for economic indicator queries
		DefaultCountry string `env:"DEFAULT_COUNTRY" envDefault:"United States"`
	}

	// IndicatorRefresh controls the background indicator refresh job
	IndicatorRefresh struct {
		// Interval between refresh runs (in minutes)
		IntervalMinutes int `env:"INDICATOR_REFRESH_MINUTES" envDefault:"60"`

		// Maximum number of indicators to accumulate before persisting
		MaxBatchSize int `env:"INDICATOR_BATCH_SIZE" envDefault:"100"`

		// Number of concurrent batch persisters
		ProcessorCount int `env:"INDICATOR_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"INDICATOR_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"INDICATOR_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// validateConfig validates the final configuration: struct-tag rules for the
// tool's own settings plus the shipping triplets for every configured source.
func validateConfig(cfg Config) error {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for source, ship := range cfg.Shipping.Sources {
		if ship.LogGroupARN == "" {
			continue
		}
		if _, err := logconf.ParseLogGroupARN(ship.LogGroupARN); err != nil {
			return fmt.Errorf("source %s: %w", source, err)
		}
		if _, err := logconf.NormalizeLevel(ship.LogLevel); err != nil {
			return fmt.Errorf("source %s: %w", source, err)
		}
	}

	return nil
}

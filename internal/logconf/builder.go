package logconf

import (
	"fmt"
	"path/filepath"
)

// Build assembles the complete logging configuration mapping for the given
// settings. It starts from the stock configuration and registers a CloudWatch
// shipping handler for every source whose log group ARN is set. The input is
// not mutated and the returned mapping shares no memory with the base.
func Build(settings Settings) (*Config, error) {
	settings = settings.withDefaults()
	cfg := Base(expandUser(settings.BaseLogFolder))

	if err := applyTask(cfg, settings); err != nil {
		return nil, err
	}
	if err := applyDagProcessing(cfg, settings); err != nil {
		return nil, err
	}
	for _, source := range SubprocessSources() {
		ship := settings.shipping(source)
		if err := applySubprocess(cfg, ship, string(source)); err != nil {
			return nil, err
		}
		// The requirements-install phase of each subprocess ships to the same
		// log group under its own stream prefix.
		if err := applySubprocess(cfg, ship, string(source)+"_requirements"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyTask swaps the per-task file handler for the CloudWatch task handler
// and adjusts the task logger level. The logger keeps its existing handler
// list because the handler is replaced under the same name.
func applyTask(cfg *Config, settings Settings) error {
	ship := settings.shipping(SourceTask)
	if ship.LogGroupARN == "" {
		return nil
	}
	level, err := validateShipping(SourceTask, ship)
	if err != nil {
		return err
	}

	cfg.Handlers[taskHandlerName] = &Handler{
		Class:         taskShippingHandlerClass,
		Formatter:     airflowFormatter,
		Filters:       []string{maskSecretsFilter},
		BaseLogFolder: expandUser(settings.BaseLogFolder),
		LogGroupARN:   ship.LogGroupARN,
		Enabled:       boolPtr(ship.Enabled),
	}

	if logger, ok := cfg.Loggers[taskLoggerName]; ok {
		logger.Level = level
	} else {
		cfg.Loggers[taskLoggerName] = &Logger{
			Handlers:  []string{taskHandlerName},
			Level:     level,
			Propagate: boolPtr(false),
		}
	}
	return nil
}

// applyDagProcessing registers two shipping handlers from one source: the
// DAG processor manager (a single well-known stream) and the per-file DAG
// processors (stream names derived from a template).
func applyDagProcessing(cfg *Config, settings Settings) error {
	ship := settings.shipping(SourceDagProcessing)
	if ship.LogGroupARN == "" {
		return nil
	}
	level, err := validateShipping(SourceDagProcessing, ship)
	if err != nil {
		return err
	}

	cfg.Handlers["processor_manager"] = &Handler{
		Class:       processorManagerShippingHandlerClass,
		Formatter:   airflowFormatter,
		LogGroupARN: ship.LogGroupARN,
		StreamName:  filepath.Base(settings.ProcessorManagerLogLocation),
		Enabled:     boolPtr(ship.Enabled),
	}
	cfg.Loggers["airflow.processor_manager"] = &Logger{
		Handlers:  []string{"processor_manager"},
		Level:     level,
		Propagate: boolPtr(false),
	}

	cfg.Handlers[processorHandlerName] = &Handler{
		Class:              dagProcessingShippingHandlerClass,
		Formatter:          airflowFormatter,
		LogGroupARN:        ship.LogGroupARN,
		StreamNameTemplate: settings.ProcessorFilenameTemplate,
		Enabled:            boolPtr(ship.Enabled),
	}
	cfg.Loggers[processorLoggerName] = &Logger{
		Handlers:  []string{processorHandlerName},
		Level:     level,
		Propagate: boolPtr(false),
	}
	return nil
}

// applySubprocess registers the shipping handler and dedicated logger for one
// named subprocess channel.
func applySubprocess(cfg *Config, ship Shipping, name string) error {
	if ship.LogGroupARN == "" {
		return nil
	}
	level, err := validateShipping(Source(name), ship)
	if err != nil {
		return err
	}

	handlerName := "mwaa_" + name
	cfg.Handlers[handlerName] = &Handler{
		Class:            subprocessShippingHandlerClass,
		Formatter:        airflowFormatter,
		Filters:          []string{maskSecretsFilter},
		LogGroupARN:      ship.LogGroupARN,
		StreamNamePrefix: name,
		SubprocessName:   name,
		Enabled:          boolPtr(ship.Enabled),
	}
	cfg.Loggers["mwaa."+name] = &Logger{
		Handlers:  []string{handlerName},
		Level:     level,
		Propagate: boolPtr(false),
	}
	return nil
}

func validateShipping(source Source, ship Shipping) (string, error) {
	if _, err := ParseLogGroupARN(ship.LogGroupARN); err != nil {
		return "", fmt.Errorf("source %s: %w", source, err)
	}
	level, err := NormalizeLevel(ship.LogLevel)
	if err != nil {
		return "", fmt.Errorf("source %s: %w", source, err)
	}
	return level, nil
}

package logconf

import (
	"os"
	"path/filepath"
	"strings"
)

// Stock filesystem locations used when the environment does not override them.
const (
	DefaultBaseLogFolder               = "~/airflow/logs"
	DefaultProcessorManagerLogLocation = "~/airflow/logs/dag_processor_manager/dag_processor_manager.log"
	DefaultProcessorFilenameTemplate   = "{{ filename }}.log"
)

// Record layouts of the stock Airflow formatters.
const (
	logFormat          = "[%(asctime)s] {%(filename)s:%(lineno)d} %(levelname)s - %(message)s"
	colouredLogFormat  = "[%(blue)s%(asctime)s%(reset)s] {%(blue)s%(filename)s:%(reset)s%(lineno)d} %(log_color)s%(levelname)s%(reset)s - %(log_color)s%(message)s%(reset)s"
	processorLogFormat = "[%(asctime)s] [SOURCE:DAG_PROCESSOR] {%(filename)s:%(lineno)d} %(levelname)s - %(message)s"
)

// Dotted paths of the host-side classes the base configuration references.
const (
	colouredFormatterClass    = "airflow.utils.log.colored_log.CustomTTYColoredFormatter"
	secretsMaskerClass        = "airflow.utils.log.secrets_masker.SecretsMasker"
	consoleHandlerClass       = "airflow.utils.log.logging_mixin.RedirectStdHandler"
	fileTaskHandlerClass      = "airflow.utils.log.file_task_handler.FileTaskHandler"
	fileProcessorHandlerClass = "airflow.utils.log.file_processor_handler.FileProcessorHandler"
)

// Dotted paths of the host-side CloudWatch shipping handler classes.
const (
	taskShippingHandlerClass             = "mwaa.logging.cloudwatch_handlers.TaskLogHandler"
	processorManagerShippingHandlerClass = "mwaa.logging.cloudwatch_handlers.DagProcessorManagerLogHandler"
	dagProcessingShippingHandlerClass    = "mwaa.logging.cloudwatch_handlers.DagProcessingLogHandler"
	subprocessShippingHandlerClass       = "mwaa.logging.cloudwatch_handlers.SubprocessLogHandler"
)

// Names shared between the base configuration and the shipping overlays.
const (
	airflowFormatter         = "airflow"
	airflowColouredFormatter = "airflow_coloured"
	maskSecretsFilter        = "mask_secrets"
	taskHandlerName          = "task"
	processorHandlerName     = "processor"
	consoleHandlerName       = "console"
	taskLoggerName           = "airflow.task"
	processorLoggerName      = "airflow.processor"
)

// Base returns a fresh copy of the stock Airflow logging configuration:
// console output for the root logger, per-task log files, and per-file DAG
// processor logs, all masked through the secrets filter. baseLogFolder must
// already be user-expanded.
func Base(baseLogFolder string) *Config {
	return &Config{
		Version:                1,
		DisableExistingLoggers: false,
		Formatters: map[string]*Formatter{
			airflowFormatter: {Format: logFormat},
			airflowColouredFormatter: {
				Format: colouredLogFormat,
				Class:  colouredFormatterClass,
			},
			"source_processor": {Format: processorLogFormat},
		},
		Filters: map[string]*Filter{
			maskSecretsFilter: {Factory: secretsMaskerClass},
		},
		Handlers: map[string]*Handler{
			consoleHandlerName: {
				Class:     consoleHandlerClass,
				Formatter: airflowColouredFormatter,
				Filters:   []string{maskSecretsFilter},
				Stream:    "sys.stdout",
			},
			taskHandlerName: {
				Class:         fileTaskHandlerClass,
				Formatter:     airflowFormatter,
				Filters:       []string{maskSecretsFilter},
				BaseLogFolder: baseLogFolder,
			},
			processorHandlerName: {
				Class:            fileProcessorHandlerClass,
				Formatter:        airflowFormatter,
				Filters:          []string{maskSecretsFilter},
				BaseLogFolder:    filepath.Join(baseLogFolder, "scheduler"),
				FilenameTemplate: DefaultProcessorFilenameTemplate,
			},
		},
		Loggers: map[string]*Logger{
			processorLoggerName: {
				Handlers:  []string{processorHandlerName},
				Level:     DefaultLogLevel,
				Propagate: boolPtr(false),
			},
			taskLoggerName: {
				Handlers:  []string{taskHandlerName},
				Level:     DefaultLogLevel,
				Propagate: boolPtr(false),
				Filters:   []string{maskSecretsFilter},
			},
			"flask_appbuilder": {
				Handlers:  []string{consoleHandlerName},
				Level:     "WARNING",
				Propagate: boolPtr(true),
			},
		},
		Root: &Logger{
			Handlers: []string{consoleHandlerName},
			Level:    DefaultLogLevel,
			Filters:  []string{maskSecretsFilter},
		},
	}
}

// expandUser resolves a leading "~" the same way the host does before it
// hands paths to file handlers.
func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

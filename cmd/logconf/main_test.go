package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eugenenazirov/airflow-logconf/internal/config"
	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
)

func testConfig() config.Config {
	return config.Config{
		Shipping: logconf.Settings{
			BaseLogFolder: "/usr/local/airflow/logs",
			Sources: map[logconf.Source]logconf.Shipping{
				logconf.SourceTask: {
					LogGroupARN: "arn:aws:logs:us-east-1:123456789012:log-group:Env-Task",
					LogLevel:    "WARNING",
					Enabled:     true,
				},
			},
		},
	}
}

func TestRunRenderWritesJSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := runRender(&buf, testConfig(), "json", "", false); err != nil {
		t.Fatalf("runRender returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"handlers"`) {
		t.Fatalf("expected handlers section in output, got:\n%s", out)
	}
	if !strings.Contains(out, "mwaa.logging.cloudwatch_handlers.TaskLogHandler") {
		t.Fatalf("expected task handler class in output, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newline on rendered output")
	}
}

func TestRunRenderWritesYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := runRender(&buf, testConfig(), "yaml", "", false); err != nil {
		t.Fatalf("runRender returned error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "{") {
		t.Fatalf("expected block-style YAML, got:\n%s", out)
	}
	if !strings.Contains(out, "disable_existing_loggers: false") {
		t.Fatalf("expected dictConfig preamble in YAML output, got:\n%s", out)
	}
}

func TestRunRenderWritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.json")
	var buf bytes.Buffer

	if err := runRender(&buf, testConfig(), "json", path, true); err != nil {
		t.Fatalf("runRender returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing on stdout when writing to a file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), `"version":1`) {
		t.Fatalf("expected compact JSON in output file, got:\n%s", data)
	}
}

func TestRunRenderRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := runRender(&buf, testConfig(), "toml", "", false); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestRunRenderReportsBuildError(t *testing.T) {
	cfg := testConfig()
	cfg.Shipping.Sources[logconf.SourceTask] = logconf.Shipping{
		LogGroupARN: "not-an-arn",
		LogLevel:    "INFO",
	}

	var buf bytes.Buffer
	if err := runRender(&buf, cfg, "json", "", false); err == nil {
		t.Fatalf("expected error for malformed log group ARN")
	}
}

func TestRunCheckReportsPerSourceStatus(t *testing.T) {
	var buf bytes.Buffer
	if err := runCheck(&buf, testConfig()); err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "task") || !strings.Contains(out, "shipping enabled") {
		t.Fatalf("expected task source to report enabled shipping, got:\n%s", out)
	}
	if !strings.Contains(out, "region=us-east-1") || !strings.Contains(out, "group=Env-Task") {
		t.Fatalf("expected parsed ARN details in output, got:\n%s", out)
	}
	if !strings.Contains(out, "local file logging") {
		t.Fatalf("expected unconfigured sources to report local file logging, got:\n%s", out)
	}
	if !strings.Contains(out, "configuration valid") {
		t.Fatalf("expected summary line, got:\n%s", out)
	}
}

func TestRunCheckFailsForInvalidEnvironment(t *testing.T) {
	cfg := testConfig()
	cfg.Shipping.Sources[logconf.SourceScheduler] = logconf.Shipping{
		LogGroupARN: "arn:aws:logs:us-east-1:123456789012:log-group:Env-Scheduler",
		LogLevel:    "VERBOSE",
	}

	var buf bytes.Buffer
	if err := runCheck(&buf, cfg); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}

// Package config resolves runtime configuration from multiple sources (YAML
// files, environment variables, CLI flags) with precedence: CLI flags > YAML
// config > Environment variables > Defaults. It owns the environment variable
// contract for per-source log shipping (the MWAA__LOGGING__AIRFLOW_* triplets)
// and exposes strongly typed settings to the rest of the application.
package config

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
	"github.com/eugenenazirov/airflow-logconf/internal/store"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the configuration store into HTTP handlers. Settings are
// resolved through a function rather than captured once, so the settings
// endpoint reports the same environment state a refresh builds from.
type Handler struct {
	store    *store.Store
	settings func() logconf.Settings

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(st *store.Store, settings func() logconf.Settings, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:    st,
		settings: settings,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetLoggingConfig(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Get()
	resp := loggingConfigResponse{
		LoggingConfig: snap.Config,
		BuiltAt:       snap.BuiltAt,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	settings := h.settings()
	sources := make([]sourceSettings, 0, len(logconf.Sources()))
	for _, source := range logconf.Sources() {
		ship := settings.Sources[source]
		entry := sourceSettings{
			Source:      string(source),
			Configured:  ship.LogGroupARN != "",
			LogGroupARN: ship.LogGroupARN,
			LogLevel:    ship.LogLevel,
			Enabled:     ship.Enabled,
		}
		if arn, err := logconf.ParseLogGroupARN(ship.LogGroupARN); err == nil {
			entry.Region = arn.Region
			entry.LogGroup = arn.Name
		}
		sources = append(sources, entry)
	}

	resp := settingsResponse{
		BaseLogFolder: settings.BaseLogFolder,
		Sources:       sources,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.store.Refresh()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid logging environment", err.Error())
		return
	}

	resp := refreshResponse{
		BuiltAt:  snap.BuiltAt,
		Handlers: len(snap.Config.Handlers),
		Loggers:  len(snap.Config.Loggers),
		Message:  "Logging configuration rebuilt successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type loggingConfigResponse struct {
	LoggingConfig *logconf.Config `json:"loggingConfig"`
	BuiltAt       time.Time       `json:"builtAt"`
}

type settingsResponse struct {
	BaseLogFolder string           `json:"baseLogFolder"`
	Sources       []sourceSettings `json:"sources"`
}

type sourceSettings struct {
	Source      string `json:"source"`
	Configured  bool   `json:"configured"`
	LogGroupARN string `json:"logGroupArn,omitempty"`
	LogLevel    string `json:"logLevel"`
	Enabled     bool   `json:"enabled"`
	Region      string `json:"region,omitempty"`
	LogGroup    string `json:"logGroup,omitempty"`
}

type refreshResponse struct {
	BuiltAt  time.Time `json:"builtAt"`
	Handlers int       `json:"handlers"`
	Loggers  int       `json:"loggers"`
	Message  string    `json:"message"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

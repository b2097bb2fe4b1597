package main

import (
	"net/http"
	"os"
	osSignal "os/signal"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/airflow-logconf/internal/application"
	"github.com/eugenenazirov/airflow-logconf/internal/config"
	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
)

func TestShutdownStopsConfiguredServer(t *testing.T) {
	t.Cleanup(func() {
		signalNotify = osSignal.Notify
	})

	signalNotify = func(ch chan<- os.Signal, _ ...os.Signal) {
		go func() {
			ch <- syscall.SIGTERM
		}()
	}

	cfg := config.Config{
		Port:                "0",
		ShutdownGracePeriod: 50 * time.Millisecond,
		ReadHeaderTimeout:   time.Second,
		WriteTimeout:        time.Second,
		IdleTimeout:         time.Second,
		Shipping:            logconf.Settings{BaseLogFolder: "/usr/local/airflow/logs"},
	}

	server := application.NewServer(cfg, http.NewServeMux())
	called := make(chan struct{}, 1)
	server.RegisterOnShutdown(func() {
		called <- struct{}{}
	})

	shutdown(server, cfg.ShutdownGracePeriod, zaptest.NewLogger(t))

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatalf("expected the serve shutdown path to stop the configured server")
	}
}

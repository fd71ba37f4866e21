package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/gateway"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/config"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/dashboard"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/handlers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultEnvFiles...)
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	addr := flags.String("addr", ":"+strconv.Itoa(cfg.Port), "listen address")
	flags.StringVar(&cfg.Gateway.URL, "gateway-url", cfg.Gateway.URL, "base URL of the employee gateway")
	flags.StringVar(&cfg.DashboardData, "dashboard", cfg.DashboardData, "YAML file with dashboard figures")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cfg.Logger()
	gw, err := gateway.New(cfg.Gateway.URL, gateway.WithTimeout(cfg.Gateway.Timeout))
	if err != nil {
		return err
	}
	dash, err := dashboard.Load(cfg.DashboardData)
	if err != nil {
		return err
	}

	h := handlers.New(gw, handlers.Options{
		PageSize:          cfg.PageSize,
		MaxUploadSize:     cfg.Upload.MaxSize,
		MaxImageDimension: cfg.Upload.MaxDimension,
		NotifyTTL:         cfg.NotifyTTL,
		SessionTTL:        cfg.SessionTTL,
		Dashboard:         dash,
		Metrics:           cfg.MetricsEnabled,
		Logger:            log,
	})
	srv := &http.Server{
		Addr:              *addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.WithField("gateway", cfg.Gateway.URL).Infof("gestionEmpl dashboard running on http://localhost%s", *addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// devgateway serves the employee REST contract from a local SQLite file so
// the dashboard can run without the OCR backend.
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

	sqliteadapter "github.com/NaoufalLabrihmi/EMP-Gestion/internal/adapters/sqlite"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/config"
	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/devgateway"
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

	flags := pflag.NewFlagSet("devgateway", pflag.ContinueOnError)
	addr := flags.String("addr", ":"+strconv.Itoa(cfg.DevGateway.Port), "listen address")
	flags.StringVar(&cfg.DevGateway.DBPath, "db", cfg.DevGateway.DBPath, "SQLite database file")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	log := cfg.Logger()
	repo, err := sqliteadapter.New(cfg.DevGateway.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	s := devgateway.New(repo, devgateway.Options{
		MaxUploadSize: cfg.Upload.MaxSize,
		CORSOrigins:   cfg.DevGateway.Origins(),
		Logger:        log,
	})
	srv := &http.Server{
		Addr:              *addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.WithField("db", cfg.DevGateway.DBPath).Infof("dev gateway running on http://localhost%s", *addr)
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

//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/sirupsen/logrus"
)

const (
	serverBin  = "bin/gestionempl"
	gatewayBin = "bin/gestionempl-devgateway"
)

// Build tidies deps, then compiles both binaries into ./bin.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building server binary...")
	if err := sh.Run("go", "build", "-o", serverBin, "./cmd/server"); err != nil {
		return err
	}
	fmt.Println(">> Building dev gateway binary...")
	return sh.Run("go", "build", "-o", gatewayBin, "./cmd/devgateway")
}

// Run builds then executes the dashboard server.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server on :8080 ...")
	return sh.Run("./" + serverBin)
}

// DevGateway starts the SQLite-backed stand-in for the employee backend.
func DevGateway() error {
	fmt.Println(">> Dev gateway: go run ./cmd/devgateway ...")
	cmd := exec.Command("go", "run", "./cmd/devgateway")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Dev runs the dev gateway in the background and the dashboard in the
// foreground, pointed at it. Ctrl-C stops both.
func Dev() error {
	fmt.Println(">> Starting dev gateway (go run)...")
	gateway := exec.Command("go", "run", "./cmd/devgateway")
	gateway.Stdout = os.Stdout
	gateway.Stderr = os.Stderr
	if err := gateway.Start(); err != nil {
		return fmt.Errorf("start dev gateway: %w", err)
	}

	fmt.Println(">> Starting server (go run)...")
	server := exec.Command("go", "run", "./cmd/server")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr
	server.Env = append(os.Environ(), "PORT=8080", "GATEWAY_URL=http://localhost:8000", "LOG_LEVEL=debug")
	if err := server.Start(); err != nil {
		gateway.Process.Kill()
		return fmt.Errorf("start server: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n>> Shutting down...")
	server.Process.Kill()
	gateway.Process.Kill()
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.Run("go", "test", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the dev gateway's SQLite file.
func Clean() error {
	fmt.Println(">> Cleaning...")
	if err := os.RemoveAll("bin"); err != nil {
		return err
	}
	db := os.Getenv("DB_PATH")
	if db == "" {
		db = "employees.db"
	}
	if err := os.Remove(db); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Install builds and installs both binaries to $GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	if err := sh.Run("go", "install", "./cmd/server"); err != nil {
		return err
	}
	return sh.Run("go", "install", "./cmd/devgateway")
}

func init() {
	err := godotenv.Load()
	if err != nil {
		logrus.WithError(err).Warn("error loading .env file")
	}
}

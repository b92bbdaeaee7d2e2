package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/lngateway/lngateway/config"
	"github.com/lngateway/lngateway/lib"
	"github.com/lngateway/lngateway/lib/service"
	"github.com/lngateway/lngateway/lib/session"
	"github.com/lngateway/lngateway/ln"
)

func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		fmt.Printf("Error loading environment variables: %v\n", err)
		os.Exit(1)
	}

	// Setup logging to STDOUT or a configured log file
	logger := lib.Logger(c.LogFilePath)

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:          c.SentryDSN,
			IgnoreErrors: []string{"401"},
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// Backend selection and credentials come from config.toml
	settings, err := config.Load(c.ConfigPath)
	if err != nil {
		logger.Fatalf("Error loading node settings: %v", err)
	}
	if settings.Api.PasswordHash == "" {
		logger.Warnf("No api.password_hash configured, all logins will be rejected. Run set-password first.")
	}

	startupCtx := context.Background()

	// Build the one configured backend adapter behind the shared handle.
	// This is the only place connection and credential errors surface.
	node, err := ln.Connect(startupCtx, settings)
	if err != nil {
		logger.Fatalf("Error initializing the %s connection: %v", settings.Node.Type, err)
	}
	logger.Infof("Connected to %s backend", settings.Node.Type)

	// The cookie-signing key is generated once and reused across restarts
	sessionKey, err := session.LoadOrCreateKey(c.SessionKeyPath)
	if err != nil {
		logger.Fatalf("Error loading session key: %v", err)
	}

	sessions := session.NewStore(time.Duration(c.SessionTTL) * time.Second)

	svc := &service.GatewayService{
		Config:     c,
		Settings:   settings,
		Node:       node,
		Logger:     logger,
		Sessions:   sessions,
		SessionKey: sessionKey,
	}

	sweepCtx, stopSweep := context.WithCancel(startupCtx)
	defer stopSweep()
	go sessions.StartSweeper(sweepCtx, time.Duration(c.SessionSweep)*time.Second)

	e := initEcho(c, logger)
	e.Use(createLoggingMiddleware(logger))
	RegisterEndpoints(e, svc)

	port := settings.Api.Port
	if c.Port != 0 {
		port = c.Port
	}
	addr := fmt.Sprintf("%s:%d", settings.Api.Host, port)

	// Start server
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal(err)
	}
}

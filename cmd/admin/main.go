package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"productadmin/config"
	"productadmin/internal/clients"
	"productadmin/internal/console"
	"productadmin/internal/session"
	"productadmin/internal/usecase"
)

func main() {
	logger := setupLogger()
	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}

	logger.Info("Starting product admin console...")
	logger.Infof("API target: %s", cfg.APIBaseURL)

	tokenStore := session.NewFileStore(cfg.TokenFile)
	sess := session.New(tokenStore, logger)

	api := clients.NewProductHTTPClient(cfg.APIBaseURL, cfg.HTTPTimeout, sess, logger)

	ui := console.New(os.Stdin, os.Stdout, sess, logger)
	loginFlow := usecase.NewLoginFlow(api, sess, ui, logger)
	productManager := usecase.NewProductManager(api, sess, logger)
	ui.Attach(loginFlow, productManager)

	if err := ui.Run(context.Background()); err != nil {
		logger.Fatalf("Console exited with error: %v", err)
	}
	logger.Info("Bye.")
}

func setupLogger() *logrus.Logger {
	logger := logrus.New()
	// Console prompts share stdout; keep log lines on stderr.
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

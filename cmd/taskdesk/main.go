package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/pflag"

	"github.com/demandvibes/taskdesk/internal/config"
	"github.com/demandvibes/taskdesk/internal/gateway"
	"github.com/demandvibes/taskdesk/internal/logger"
	"github.com/demandvibes/taskdesk/internal/service"
	"github.com/demandvibes/taskdesk/internal/session"
	storage "github.com/demandvibes/taskdesk/internal/storage/minio"
	"github.com/demandvibes/taskdesk/internal/ui"
	"github.com/demandvibes/taskdesk/internal/xdg"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	recoveryLink := pflag.String("recovery-link", "", "password recovery link received by email")
	showVersion := pflag.BoolP("version", "v", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("taskdesk %s (built %s, commit %s)\n", buildVersion, buildDate, buildCommit)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	stateDir := xdg.StateDir()
	if err := xdg.EnsureDir(stateDir); err != nil {
		log.Fatalf("failed to create state directory: %v", err)
	}

	// The TUI owns the terminal, so logs go to a file in the state dir.
	logFile, err := os.OpenFile(filepath.Join(stateDir, "taskdesk.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	logger := logger.New(logFile, cfg.LogLevel)

	logger.Info("starting taskdesk",
		"version", buildVersion,
		"gateway", cfg.Gateway.URL)

	httpClient := &http.Client{Timeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second}
	gatewayClient := gateway.NewClient(cfg.Gateway.URL, cfg.Gateway.AnonKey, httpClient, logger, cfg.Gateway.AuthRPS)
	defer gatewayClient.Close()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	sessionStore := session.NewStore(stateDir, logger)
	authService := service.NewAuth(gatewayClient, sessionStore, logger)
	tasksService := service.NewTasks(gatewayClient, storageClient, logger)

	downloadDir := filepath.Join(xdg.DataDir(), "attachments")

	// Consume the recovery link before constructing the UI so the
	// forced reset-password page is in place at first render.
	if *recoveryLink != "" {
		if err := gatewayClient.ConsumeRecoveryLink(*recoveryLink); err != nil {
			logger.Error("failed to consume recovery link", "error", err)
			fmt.Fprintln(os.Stderr, "This recovery link is invalid or has expired. Please request a new one.")
			os.Exit(1)
		}
	}

	app := ui.NewApp(ctx, authService, tasksService, gatewayClient, sessionStore, downloadDir, logger)

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		logger.Fatal("program exited with error", "error", err)
	}

	logger.Info("taskdesk stopped")
}

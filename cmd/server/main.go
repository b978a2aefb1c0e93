package main

import (
	"clinic-chat/auth"
	"clinic-chat/domain/chat"
	"clinic-chat/infrastructure/http/server"
	"clinic-chat/infrastructure/storage"
	"clinic-chat/internal"
	"clinic-chat/moderation"
	"clinic-chat/observability"
	"clinic-chat/runtime"
	"clinic-chat/runtime/workers"
	"clinic-chat/services"
	"clinic-chat/sink"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const (
	shutdownTimeout = 10 * time.Second
	debugTailSize   = 100
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and blocks until a signal or a server failure.
// Returning instead of exiting lets the deferred closes flush badger and bluge.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	rooms := storage.NewRoomRepository(db, logger)
	messages := storage.NewMessageRepository(db, logger)
	patients := storage.NewProfileRepository(db, chat.CategoryPatient, logger)
	providers := storage.NewProfileRepository(db, chat.CategoryProvider, logger)
	index := storage.NewSearchIndex(blugeWriter, logger)

	if config.DirectorySeedFile != "" {
		seeded, err := storage.SeedProfilesFromFile(config.DirectorySeedFile, patients, providers)
		if err != nil {
			return exitConfig, fmt.Errorf("directory seed failed: %w", err)
		}
		logger.Info("Directories seeded", "profiles", seeded, "file", config.DirectorySeedFile)
	}

	// 3. Moderation
	var moderator *moderation.Moderator
	if config.EnableModeration {
		m, err := runtime.LoadModerator(charReplacement, logger)
		if err != nil {
			return exitConfig, fmt.Errorf("moderation loading failed: %w", err)
		}
		moderator = &m
	}

	// 4. Supervision & Orchestration
	monitoring := observability.NewMonitoringManager(logger, config.BufferSize)
	sup := workers.NewSupervisor(logger, monitoring, config.RestartInterval)
	registry := runtime.NewRegistry()
	orchestrator := runtime.NewOrchestrator(logger, sup, registry, monitoring,
		config.BufferSize, config.SinkTimeout, config.MetricInterval)

	// 5. Services
	enricher := services.NewEnricher(services.NewDirectories(logger, monitoring, patients, providers))
	chatService := services.NewChatService(logger,
		services.NewRoomDirectory(logger, rooms),
		services.NewMessageStore(logger, rooms, messages, index, enricher, moderator, monitoring, config.MaxContentLength),
		services.NewConversationAggregator(logger, rooms, messages, index, enricher),
		orchestrator.Registry(), orchestrator)

	// 6. Transport
	tokens := auth.NewTokens(config.AuthSecret, config.AuthTokenDuration)
	handler := server.NewRouter(logger, tokens,
		server.NewChatServer(logger, chatService, config.DefaultPageLimit, config.MaxPageLimit),
		server.NewWebsocketServer(logger, chatService, config.ConnectionBufferSize, config.Origins()),
		server.NewMonitoringServer(monitoring),
		config.Origins())
	httpServer := &http.Server{
		Addr:              config.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 2)
	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var debugServer *http.Server
	if config.DebugPort > 0 && logger.Enabled(ctx, slog.LevelDebug) {
		tail := sink.NewRecentTimeline("debug", debugTailSize)
		orchestrator.Add(tail)
		debugServer = internal.NewDebugServer(logger, db, config.DebugPort,
			func() any { return monitoring.GetLatest() },
			func() any { return tail.Messages() })
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://%s/inspect", debugServer.Addr))
		go func() {
			if err := debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("Debug server stopped", "error", err)
			}
		}()
	}

	// 7. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 8. Final Cleanup
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	if debugServer != nil {
		_ = debugServer.Shutdown(shutdownCtx)
	}
	stop()
	orchestrator.Stop()
	<-orchestratorDone
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

package main

import (
	"context"
	stderrors "errors"
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
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"flack/httpapi"
	"flack/internal"
	"flack/moderation"
	"flack/observability"
	"flack/projection"
	"flack/repositories"
	"flack/runtime"
	"flack/runtime/workers"
	"flack/services"
	"flack/ws"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 5 * time.Second

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for HTTP and background workers.
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
	ctx := context.Background()

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
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

	// 3. Moderation
	censored, err := moderation.LoadCensoredWords()
	if err != nil {
		return exitRuntime, fmt.Errorf("loading censored words failed: %w", err)
	}
	moderator, err := moderation.NewModerator(censored.Words, charReplacement, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("moderator init failed: %w", err)
	}
	logger.Info("Moderation ready", "words", len(censored.Words), "languages", censored.Languages)

	// 4. Repositories & Services
	messageRepository := repositories.NewMessageRepository(db, logger, config.LimitMessages)
	replyRepository := repositories.NewReplyRepository(db, logger)
	channelRepository := repositories.NewChannelRepository(db, logger)
	userRepository := repositories.NewUserRepository(db)
	indexRepository := repositories.NewIndexRepository(blugeWriter, logger)

	messageService := services.NewMessageService(messageRepository, &moderator, logger)
	replyService := services.NewReplyService(replyRepository, &moderator, logger)
	channelService := services.NewChannelService(channelRepository, logger)
	searchService := services.NewSearchService(indexRepository, logger)
	authService := services.NewAuthService(userRepository, config.AuthTokenDuration)

	// 5. Realtime hub
	stats := observability.NewHubStats()
	registry := runtime.NewRegistry()
	router := runtime.NewRouter(logger, registry, stats, config.SinkTimeout)

	timeline := projection.NewTimeline(config.HistoryLimit)
	router.Add(timeline)

	collaborators := runtime.Collaborators{
		Messages: messageService,
		Replies:  replyService,
		Search:   searchService,
		Channels: channelService,
		Auth:     authService,
	}
	gateway := ws.NewGateway(logger, registry, router, collaborators, stats, config.ConnectionBufferSize)

	// 6. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Supervision
	sup := workers.NewSupervisor(logger)
	sup.Add(
		workers.NewHeartbeatWorker(logger, stats, config.MetricInterval),
		workers.NewJanitorWorker(logger, db, config.GCInterval),
	)
	go sup.Run(ctx)

	// 8. HTTP Server Setup
	gin.SetMode(gin.ReleaseMode)
	engine := httpapi.SetupRouter(ctx, httpapi.Deps{
		Log:         logger,
		Auth:        authService,
		Channels:    channelService,
		Messages:    messageService,
		Search:      searchService,
		Timeline:    timeline,
		Stats:       stats,
		Gateway:     gateway,
		StaticDir:   config.StaticDir,
		SearchLimit: config.SearchLimit,
	})

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: engine}

	// Use an error channel to capture ListenAndServe issues asynchronously.
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 10. Final Cleanup (Graceful Shutdown)
	// Active websockets end when their read pumps observe the closed server.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Forced shutdown", "error", err)
	}
	sup.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}

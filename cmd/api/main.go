package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/himasha0421/FinTracker/internal/api/handlers"
	"github.com/himasha0421/FinTracker/internal/api/middleware"
	"github.com/himasha0421/FinTracker/internal/config"
	"github.com/himasha0421/FinTracker/internal/logger"
	"github.com/himasha0421/FinTracker/internal/statement"
	"github.com/himasha0421/FinTracker/internal/summary"
	"github.com/himasha0421/FinTracker/internal/youtube"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Load configuration once; components receive it explicitly.
	cfg := config.Load()

	// Command-line flags override the environment
	var (
		port = flag.String("port", cfg.Port, "HTTP server port")
	)
	flag.Parse()

	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set - statement reading and summarization will fail upstream")
	}
	if cfg.YouTubeAPIKey == "" {
		log.Warn().Msg("YOUTUBE_API_KEY not set - video metadata will fall back to defaults")
	}

	ctx := context.Background()

	// External-service clients, created once for the process lifetime.
	reader, err := statement.NewGeminiReader(ctx, cfg.GeminiAPIKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create statement reader")
	}

	summarizer, err := summary.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create summarizer")
	}

	metadataFetcher, err := youtube.NewMetadataFetcher(ctx, cfg.YouTubeAPIKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create metadata fetcher")
	}

	transcriptFetcher := youtube.NewTranscriptFetcher(log)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(reader, log)
	youtubeHandler := handlers.NewYouTubeHandler(metadataFetcher, transcriptFetcher, summarizer, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/youtube-summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			youtubeHandler.Summarize(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(cfg.FrontendOrigin)(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

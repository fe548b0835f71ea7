package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipscribe/internal/config"
	"clipscribe/internal/downloader"
	"clipscribe/internal/instagram"
	"clipscribe/internal/scraper"
	"clipscribe/internal/server"
	"clipscribe/internal/transcriber"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP scraping API",
	Long: `Start an HTTP server that accepts scrape requests.

API Endpoints:
  GET  /api/health        # Health check
  POST /api/scrape        # Scrape a URL`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (default: 8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg := config.LoadOrDefault()

	// Resolve port (flag > config > default)
	port := servePort
	if port == 0 {
		if cfg.Server.Port > 0 {
			port = cfg.Server.Port
		} else {
			port = 8080
		}
	}

	if err := os.MkdirAll(cfg.WorkDir, 0755); err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}

	// A misconfigured provider should refuse to start, not fail on the
	// first transcription request.
	speech, err := transcriber.New(cfg.Transcription)
	if err != nil {
		return fmt.Errorf("transcription provider: %w", err)
	}
	log.Printf("Using %s transcription provider", speech.Name())

	registry := scraper.NewRegistry(scraper.Deps{
		Downloader: downloader.New(cfg.WorkDir),
		Posts:      instagram.NewClient(),
		Speech:     speech,
		Language:   cfg.Transcription.Language,
		WorkDir:    cfg.WorkDir,
	})

	srv := server.NewServer(port, cfg.Server.APIKey, registry)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(ctx)
	}()

	log.Printf("Work directory: %s", cfg.WorkDir)

	return srv.Start()
}

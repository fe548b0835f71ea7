package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"clipscribe/internal/config"
	"clipscribe/internal/downloader"
	"clipscribe/internal/instagram"
	"clipscribe/internal/platform"
	"clipscribe/internal/scraper"
	"clipscribe/internal/transcriber"
)

var (
	scrapeTranscribe bool
	scrapePlatform   int32
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a single URL and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScrape(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	scrapeCmd.Flags().BoolVarP(&scrapeTranscribe, "transcribe", "t", false, "transcribe the speech track")
	scrapeCmd.Flags().Int32VarP(&scrapePlatform, "platform", "p", 0, "platform hint (0=auto, 1=tiktok, 2=youtube, 3=instagram, 4=web)")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(url string) error {
	if !platform.IsValid(url) {
		return fmt.Errorf("invalid URL: %s", url)
	}

	cfg := config.LoadOrDefault()

	// The transcription provider is only needed (and only validated)
	// when a transcript was actually asked for.
	var speech scraper.SpeechToText
	if scrapeTranscribe {
		t, err := transcriber.New(cfg.Transcription)
		if err != nil {
			return err
		}
		speech = t
	}

	registry := scraper.NewRegistry(scraper.Deps{
		Downloader: downloader.New(cfg.WorkDir),
		Posts:      instagram.NewClient(),
		Speech:     speech,
		Language:   cfg.Transcription.Language,
		WorkDir:    cfg.WorkDir,
	})

	s := registry.Get(url, platform.FromCode(scrapePlatform))
	result := s.Scrape(context.Background(), url, scrapeTranscribe)

	if result.Error != "" {
		color.Red("scrape failed: %s", result.Error)
	} else {
		color.Green("scraped via %s", s.Name())
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if result.Error != "" {
		os.Exit(1)
	}
	return nil
}

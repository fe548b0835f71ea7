package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipscribe/internal/config"
	"clipscribe/internal/downloader"
	"clipscribe/internal/platform"
)

var infoCmd = &cobra.Command{
	Use:   "info <url>",
	Short: "Print video metadata without downloading",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(url string) error {
	if !platform.IsValid(url) {
		return fmt.Errorf("invalid URL: %s", url)
	}

	cfg := config.LoadOrDefault()

	meta, err := downloader.New(cfg.WorkDir).Probe(context.Background(), url)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(map[string]any{
		"platform":    platform.Detect(url).String(),
		"title":       meta.Title,
		"description": meta.Description,
		"author":      meta.Author,
		"duration":    meta.Duration,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

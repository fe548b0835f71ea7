// Package cli implements the clipscribe command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"clipscribe/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "clipscribe",
	Short:   "Extract captions, metadata and speech transcripts from video and recipe URLs",
	Version: version.Version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipscribe/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Create ~/.config/clipscribe/config.yml with default settings if it does not exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if config.Exists() {
			fmt.Printf("Config already exists at %s\n", path)
			return
		}
		if err := config.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

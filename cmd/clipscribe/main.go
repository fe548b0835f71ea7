package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"clipscribe/internal/cli"
)

func main() {
	// Optional .env for API keys in development.
	godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/adrianliechti/docsmith/pkg/backend"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docsmith:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch backend.KindOf(err) {
	case backend.ErrorInvalidRequest:
		return 2

	case backend.ErrorUnknownBackend:
		return 3

	case backend.ErrorUnavailable:
		return 4

	default:
		return 1
	}
}

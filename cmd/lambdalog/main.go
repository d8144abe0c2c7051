package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/lambdalog/lambdalog/internal/cli"
)

func main() {
	// Optional .env for LAMBDALOG_ADDR / LAMBDALOG_DB overrides.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the single-binary entrypoint for mapai.
package main

import (
	"github.com/joho/godotenv"

	"github.com/enttlevo/mapai/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Optional .env for local development; missing files are fine.
	_ = godotenv.Load()

	cli.Execute(version)
}

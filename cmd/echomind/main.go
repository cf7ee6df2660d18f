package main

import (
	"fmt"
	"os"

	"github.com/spacesedan/echomind/config"
	"github.com/spacesedan/echomind/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "echomind: %s\n", err)
		os.Exit(1)
	}
}

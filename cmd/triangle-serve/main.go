// SPDX-License-Identifier: Unlicense OR MIT

// Command triangle-serve serves the page that hosts the triangle wasm
// program. The page embeds the vertex and fragment shaders as script
// elements and passes the configured options to the program.
//
// Build the program first:
//
//	GOOS=js GOARCH=wasm go build -o out/main.wasm ./cmd/triangle
//	cp "$(go env GOROOT)/misc/wasm/wasm_exec.js" out/
//	triangle-serve -dir out
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

var (
	configPath = flag.String("config", "triangle.yaml", "configuration file")
	addr       = flag.String("addr", "", "listen address (overrides config and $PORT)")
	dir        = flag.String("dir", "", "directory containing main.wasm and wasm_exec.js")
	verbose    = flag.Bool("v", false, "log every request")
)

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if err := run(logger); err != nil {
		logger.Error("triangle-serve", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = fmt.Sprintf(":%s", port)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dir != "" {
		cfg.Dir = *dir
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Dir); err != nil {
		return err
	}
	index, err := renderPage(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg.Addr, newHandler(index, cfg.Dir, logger), logger)
}

//go:build js && wasm
// +build js,wasm

// SPDX-License-Identifier: Unlicense OR MIT

// Command triangle draws a single WebGL triangle into the lower-left
// quarter of the page canvas. Build it with GOOS=js GOARCH=wasm and load
// it from the page served by triangle-serve; flags are read from the
// "argv" URL query parameter.
package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/web"
)

var (
	canvasID   = flag.String("canvas", "", "id of the canvas element")
	clearColor = flag.String("clear", "", "clear color name or #rrggbb")
	kinds      = flag.String("kinds", "", "comma separated context kinds to try")
	debug      = flag.Bool("debug", false, "check for GL errors after every call")
	verbose    = flag.Bool("v", false, "log stage transitions")
)

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := web.DefaultConfig()
	cfg.Debug = *debug
	if *canvasID != "" {
		cfg.CanvasID = *canvasID
	}
	if *kinds != "" {
		cfg.ContextKinds = strings.Split(*kinds, ",")
	}
	if *clearColor != "" {
		c, err := web.ParseColor(*clearColor)
		if err != nil {
			logger.Error("triangle: invalid -clear", "error", err)
			os.Exit(2)
		}
		cfg.ClearColor = c
	}
	if err := web.Main(cfg, logger); err != nil {
		logger.Error("triangle: startup failed", "error", err)
		os.Exit(1)
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

// Package web hosts the triangle renderer in a browser page: it finds the
// canvas and shader sources in the document and reports failures with
// window.alert.
package web

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
	"github.com/jooo0922/2-2-loading-shaders-from-dom/render"
)

// Start draws the triangle on s with shaders from src and returns the
// renderer in its final state.
func Start(s render.Surface, src render.SourceLookup, cfg Config, n render.Notifier, logger *slog.Logger) (*render.Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Debug {
		s = debugSurface{Surface: s, logger: logger}
	}
	r := render.New(render.Options{
		ContextKinds: cfg.ContextKinds,
		VertexID:     cfg.VertexID,
		FragmentID:   cfg.FragmentID,
		ClearColor:   cfg.ClearColor,
		Notifier:     n,
		Logger:       logger,
	})
	if err := r.Run(s, src); err != nil {
		return r, err
	}
	logger.Info("web: triangle drawn", "context", r.ContextKind(), "viewport", r.Viewport())
	return r, nil
}

// debugSurface wraps every context it hands out with gl.Debug.
type debugSurface struct {
	render.Surface
	logger *slog.Logger
}

func (d debugSurface) Context(kind string) (gl.Functions, error) {
	f, err := d.Surface.Context(kind)
	if err != nil || f == nil {
		return f, err
	}
	return gl.Debug(f, d.logger), nil
}

// missingSurface stands in for a canvas that could not be found. It
// refuses every context kind.
type missingSurface struct {
	id string
}

func (m missingSurface) Size() image.Point {
	return image.Point{}
}

func (m missingSurface) Context(kind string) (gl.Functions, error) {
	return nil, fmt.Errorf("web: no canvas with id %q", m.id)
}

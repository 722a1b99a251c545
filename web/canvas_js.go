// SPDX-License-Identifier: Unlicense OR MIT

package web

import (
	"fmt"
	"image"
	"log/slog"
	"syscall/js"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
	"github.com/jooo0922/2-2-loading-shaders-from-dom/render"
)

// Canvas is a render.Surface backed by an HTML canvas element.
type Canvas struct {
	cnv js.Value
}

// LookupCanvas finds the canvas element with the given id in doc.
func LookupCanvas(doc js.Value, id string) (*Canvas, error) {
	cnv := doc.Call("getElementById", id)
	if cnv.IsNull() || cnv.IsUndefined() {
		return nil, fmt.Errorf("web: no canvas with id %q", id)
	}
	if cnv.Get("getContext").Type() != js.TypeFunction {
		return nil, fmt.Errorf("web: element %q is not a canvas", id)
	}
	return &Canvas{cnv: cnv}, nil
}

// Size returns the size of the canvas drawing buffer.
func (c *Canvas) Size() image.Point {
	return image.Point{
		X: c.cnv.Get("width").Int(),
		Y: c.cnv.Get("height").Int(),
	}
}

// Context calls getContext. A JavaScript exception thrown by getContext,
// as some browsers do for unsupported kinds, is returned as an error.
func (c *Canvas) Context(kind string) (f gl.Functions, err error) {
	defer func() {
		if v := recover(); v != nil {
			jsErr, ok := v.(js.Error)
			if !ok {
				panic(v)
			}
			f, err = nil, fmt.Errorf("web: getContext(%q): %w", kind, jsErr)
		}
	}()
	ctx := c.cnv.Call("getContext", kind)
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, nil
	}
	return gl.NewFunctions(ctx), nil
}

// DOMSources looks up shader sources in script elements of a document.
// The element's type attribute is the shader type tag.
type DOMSources struct {
	Doc js.Value
}

func (d DOMSources) Lookup(id string) (render.Source, error) {
	el := d.Doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return render.Source{}, fmt.Errorf("%w: %q", render.ErrSourceNotFound, id)
	}
	var tag string
	if t := el.Call("getAttribute", "type"); t.Type() == js.TypeString {
		tag = t.String()
	}
	return render.Source{
		Tag:  tag,
		Text: el.Get("textContent").String(),
	}, nil
}

// Alert reports messages with window.alert.
type Alert struct{}

func (Alert) Notify(msg string) {
	js.Global().Call("alert", msg)
}

// Main draws the triangle on the page according to cfg.
func Main(cfg Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	doc := js.Global().Get("document")
	var s render.Surface
	c, err := LookupCanvas(doc, cfg.CanvasID)
	if err != nil {
		// Let the renderer report the missing context.
		logger.Error("web: canvas lookup failed", "error", err)
		s = missingSurface{id: cfg.CanvasID}
	} else {
		s = c
	}
	_, err = Start(s, DOMSources{Doc: doc}, cfg, Alert{}, logger)
	return err
}

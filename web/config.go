// SPDX-License-Identifier: Unlicense OR MIT

package web

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/render"
)

// Config names the page elements the program reads and how it draws.
type Config struct {
	// CanvasID is the id of the canvas element to draw into.
	CanvasID   string
	VertexID   string
	FragmentID string
	// ContextKinds lists the context types to request, in order.
	ContextKinds []string
	ClearColor   color.Color
	// Debug checks for GL errors after every call.
	Debug bool
}

// DefaultConfig returns the configuration matching the bundled page.
func DefaultConfig() Config {
	return Config{
		CanvasID:     "myGLCanvas",
		VertexID:     render.DefaultVertexID,
		FragmentID:   render.DefaultFragmentID,
		ContextKinds: append([]string(nil), render.DefaultContextKinds...),
		ClearColor:   colornames.Lime,
	}
}

// ParseColor parses an SVG colour name such as "lime" or a "#rrggbb" or
// "#rrggbbaa" hex colour.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		// Named colours are opaque.
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return color.NRGBA{}, fmt.Errorf("web: unknown color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("web: invalid color %q: %w", s, err)
	}
	if len(s) == 7 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

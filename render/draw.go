// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/shader"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
)

// Draw clears the lower-left quarter of the surface and draws the
// uploaded vertices into it as a triangle list. It runs once; there is
// no render loop.
func (r *Renderer) Draw() error {
	if err := r.expect(BufferReady, "Draw"); err != nil {
		return err
	}
	inputs := r.program.Vertex.Inputs
	if len(inputs) != 1 {
		return r.fail(fmt.Errorf("render: Draw: got %d vertex inputs, expected 1", len(inputs)))
	}
	inp, layout := inputs[0], r.buffer.Layout
	if inp.Size != layout.Size {
		return r.fail(fmt.Errorf("render: Draw: data size mismatch for %q: got %d expected %d", inp.Name, layout.Size, inp.Size))
	}
	var gltyp gl.Enum
	switch layout.Type {
	case shader.DataTypeFloat:
		gltyp = gl.FLOAT
	default:
		return r.fail(fmt.Errorf("render: Draw: unsupported data type %v", layout.Type))
	}

	sz := r.surface.Size()
	r.viewport = image.Rect(0, 0, sz.X/2, sz.Y/2)
	cr, cg, cb, ca := clearColor(r.opts.ClearColor)
	r.funcs.ClearColor(cr, cg, cb, ca)
	r.funcs.Viewport(0, 0, r.viewport.Dx(), r.viewport.Dy())
	r.funcs.Clear(gl.COLOR_BUFFER_BIT)

	r.funcs.BindBuffer(gl.ARRAY_BUFFER, r.buffer.Handle)
	r.funcs.VertexAttribPointer(r.program.Position, layout.Size, gltyp, false, 0, layout.Offset)
	r.funcs.EnableVertexAttribArray(r.program.Position)
	r.funcs.DrawArrays(gl.TRIANGLES, 0, r.buffer.ItemCount)
	r.advance(Drawn)
	return nil
}

// clearColor converts c to the normalized, non-premultiplied components
// expected by clearColor.
func clearColor(c color.Color) (float32, float32, float32, float32) {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return 0, 0, 0, 0
	}
	const m = 0xffff
	fa := float32(a) / m
	return float32(r) / m / fa, float32(g) / m / fa, float32(b) / m / fa, fa
}

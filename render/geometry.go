// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"fmt"

	"gioui.org/shader"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
)

const (
	coordsPerVertex     = 3
	triangleVertexCount = 3
	bytesPerFloat       = 4
)

// TriangleVertices is the x, y, z position of each triangle corner.
var TriangleVertices = []float32{
	0.0, 0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
}

// InputDesc describes a vertex attribute as laid out in a buffer.
type InputDesc struct {
	Type shader.DataType
	Size int

	Offset int
}

// VertexBuffer is an immutable GPU buffer of tightly packed vertices.
type VertexBuffer struct {
	Handle gl.Buffer
	// ItemSize is the number of components per vertex.
	ItemSize int
	// ItemCount is the number of vertices.
	ItemCount int
	// ByteLen is the size of the uploaded data.
	ByteLen int
	Layout  InputDesc
}

// UploadGeometry uploads TriangleVertices.
func (r *Renderer) UploadGeometry() error {
	return r.UploadVertices(TriangleVertices, coordsPerVertex)
}

// UploadVertices uploads verts as static data into a new array buffer,
// itemSize float components per vertex.
func (r *Renderer) UploadVertices(verts []float32, itemSize int) error {
	if err := r.expect(ProgramReady, "UploadVertices"); err != nil {
		return err
	}
	if itemSize < 1 || itemSize > 4 {
		return r.fail(fmt.Errorf("render: invalid vertex size %d", itemSize))
	}
	if len(verts) == 0 || len(verts)%itemSize != 0 {
		return r.fail(fmt.Errorf("render: %d floats do not form %d-component vertices", len(verts), itemSize))
	}
	data := gl.Float32Bytes(verts)
	buf := VertexBuffer{
		ItemSize:  itemSize,
		ItemCount: len(verts) / itemSize,
		ByteLen:   len(data),
		Layout: InputDesc{
			Type:   shader.DataTypeFloat,
			Size:   itemSize,
			Offset: 0,
		},
	}
	if buf.ItemSize*buf.ItemCount*bytesPerFloat != buf.ByteLen {
		return r.fail(fmt.Errorf("render: buffer of %d bytes does not hold %d×%d floats", buf.ByteLen, buf.ItemCount, buf.ItemSize))
	}
	buf.Handle = r.funcs.CreateBuffer()
	if !buf.Handle.Valid() {
		return r.fail(errors.New("render: createBuffer failed"))
	}
	r.funcs.BindBuffer(gl.ARRAY_BUFFER, buf.Handle)
	r.funcs.BufferData(gl.ARRAY_BUFFER, gl.STATIC_DRAW, data)
	r.buffer = buf
	r.logger.Debug("render: vertices uploaded", "items", buf.ItemCount, "size", buf.ItemSize, "bytes", buf.ByteLen)
	r.advance(BufferReady)
	return nil
}

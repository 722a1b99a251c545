// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"log/slog"
)

type debugFunctions struct {
	f      Functions
	logger *slog.Logger
}

// Debug returns Functions that check GetError after every call and log
// any error together with the name of the failing call. A nil logger
// means slog.Default.
func Debug(f Functions, logger *slog.Logger) Functions {
	if logger == nil {
		logger = slog.Default()
	}
	return &debugFunctions{f: f, logger: logger}
}

func (d *debugFunctions) check(call string) {
	for {
		e := d.f.GetError()
		if e == NO_ERROR {
			return
		}
		d.logger.Error("gl: call failed", "call", call, "error", ErrorString(e), "code", uint(e))
		if e == CONTEXT_LOST_WEBGL {
			// getError keeps reporting a lost context.
			return
		}
	}
}

func (d *debugFunctions) CreateShader(ty Enum) Shader {
	s := d.f.CreateShader(ty)
	d.check("createShader")
	return s
}

func (d *debugFunctions) ShaderSource(s Shader, src string) {
	d.f.ShaderSource(s, src)
	d.check("shaderSource")
}

func (d *debugFunctions) CompileShader(s Shader) {
	d.f.CompileShader(s)
	d.check("compileShader")
}

func (d *debugFunctions) GetShaderi(s Shader, pname Enum) int {
	v := d.f.GetShaderi(s, pname)
	d.check("getShaderParameter")
	return v
}

func (d *debugFunctions) GetShaderInfoLog(s Shader) string {
	v := d.f.GetShaderInfoLog(s)
	d.check("getShaderInfoLog")
	return v
}

func (d *debugFunctions) DeleteShader(s Shader) {
	d.f.DeleteShader(s)
	d.check("deleteShader")
}

func (d *debugFunctions) CreateProgram() Program {
	p := d.f.CreateProgram()
	d.check("createProgram")
	return p
}

func (d *debugFunctions) DeleteProgram(p Program) {
	d.f.DeleteProgram(p)
	d.check("deleteProgram")
}

func (d *debugFunctions) AttachShader(p Program, s Shader) {
	d.f.AttachShader(p, s)
	d.check("attachShader")
}

func (d *debugFunctions) LinkProgram(p Program) {
	d.f.LinkProgram(p)
	d.check("linkProgram")
}

func (d *debugFunctions) GetProgrami(p Program, pname Enum) int {
	v := d.f.GetProgrami(p, pname)
	d.check("getProgramParameter")
	return v
}

func (d *debugFunctions) GetProgramInfoLog(p Program) string {
	v := d.f.GetProgramInfoLog(p)
	d.check("getProgramInfoLog")
	return v
}

func (d *debugFunctions) UseProgram(p Program) {
	d.f.UseProgram(p)
	d.check("useProgram")
}

func (d *debugFunctions) GetAttribLocation(p Program, name string) int {
	v := d.f.GetAttribLocation(p, name)
	d.check("getAttribLocation")
	return v
}

func (d *debugFunctions) CreateBuffer() Buffer {
	b := d.f.CreateBuffer()
	d.check("createBuffer")
	return b
}

func (d *debugFunctions) BindBuffer(target Enum, b Buffer) {
	d.f.BindBuffer(target, b)
	d.check("bindBuffer")
}

func (d *debugFunctions) BufferData(target Enum, usage Enum, data []byte) {
	d.f.BufferData(target, usage, data)
	d.check("bufferData")
}

func (d *debugFunctions) Viewport(x, y, width, height int) {
	d.f.Viewport(x, y, width, height)
	d.check("viewport")
}

func (d *debugFunctions) ClearColor(red, green, blue, alpha float32) {
	d.f.ClearColor(red, green, blue, alpha)
	d.check("clearColor")
}

func (d *debugFunctions) Clear(mask Enum) {
	d.f.Clear(mask)
	d.check("clear")
}

func (d *debugFunctions) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	d.f.VertexAttribPointer(dst, size, ty, normalized, stride, offset)
	d.check("vertexAttribPointer")
}

func (d *debugFunctions) EnableVertexAttribArray(a Attrib) {
	d.f.EnableVertexAttribArray(a)
	d.check("enableVertexAttribArray")
}

func (d *debugFunctions) DrawArrays(mode Enum, first, count int) {
	d.f.DrawArrays(mode, first, count)
	d.check("drawArrays")
}

func (d *debugFunctions) GetError() Enum {
	return d.f.GetError()
}

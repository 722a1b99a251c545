// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"syscall/js"
)

// FunctionCaller issues Functions calls on a WebGL rendering context.
type FunctionCaller struct {
	Ctx js.Value

	// Cached reference to the Uint8Array JS type.
	uint8Array js.Value

	// Cached backing store for uploads.
	arrayBuf js.Value
}

var _ Functions = (*FunctionCaller)(nil)

// NewFunctions wraps the WebGLRenderingContext ctx.
func NewFunctions(ctx js.Value) *FunctionCaller {
	return &FunctionCaller{
		Ctx:        ctx,
		uint8Array: js.Global().Get("Uint8Array"),
	}
}

func (f *FunctionCaller) AttachShader(p Program, s Shader) {
	f.Ctx.Call("attachShader", js.Value(p), js.Value(s))
}
func (f *FunctionCaller) BindBuffer(target Enum, b Buffer) {
	f.Ctx.Call("bindBuffer", int(target), js.Value(b))
}
func (f *FunctionCaller) BufferData(target Enum, usage Enum, data []byte) {
	f.Ctx.Call("bufferData", int(target), f.byteArrayOf(data), int(usage))
}
func (f *FunctionCaller) Clear(mask Enum) {
	f.Ctx.Call("clear", int(mask))
}
func (f *FunctionCaller) ClearColor(red, green, blue, alpha float32) {
	f.Ctx.Call("clearColor", red, green, blue, alpha)
}
func (f *FunctionCaller) CompileShader(s Shader) {
	f.Ctx.Call("compileShader", js.Value(s))
}
func (f *FunctionCaller) CreateBuffer() Buffer {
	return Buffer(f.Ctx.Call("createBuffer"))
}
func (f *FunctionCaller) CreateProgram() Program {
	return Program(f.Ctx.Call("createProgram"))
}
func (f *FunctionCaller) CreateShader(ty Enum) Shader {
	return Shader(f.Ctx.Call("createShader", int(ty)))
}
func (f *FunctionCaller) DeleteProgram(p Program) {
	f.Ctx.Call("deleteProgram", js.Value(p))
}
func (f *FunctionCaller) DeleteShader(s Shader) {
	f.Ctx.Call("deleteShader", js.Value(s))
}
func (f *FunctionCaller) DrawArrays(mode Enum, first, count int) {
	f.Ctx.Call("drawArrays", int(mode), first, count)
}
func (f *FunctionCaller) EnableVertexAttribArray(a Attrib) {
	f.Ctx.Call("enableVertexAttribArray", int(a))
}
func (f *FunctionCaller) GetAttribLocation(p Program, name string) int {
	return f.Ctx.Call("getAttribLocation", js.Value(p), name).Int()
}
func (f *FunctionCaller) GetError() Enum {
	return Enum(f.Ctx.Call("getError").Int())
}
func (f *FunctionCaller) GetProgrami(p Program, pname Enum) int {
	return paramVal(f.Ctx.Call("getProgramParameter", js.Value(p), int(pname)))
}
func (f *FunctionCaller) GetProgramInfoLog(p Program) string {
	return stringVal(f.Ctx.Call("getProgramInfoLog", js.Value(p)))
}
func (f *FunctionCaller) GetShaderi(s Shader, pname Enum) int {
	return paramVal(f.Ctx.Call("getShaderParameter", js.Value(s), int(pname)))
}
func (f *FunctionCaller) GetShaderInfoLog(s Shader) string {
	return stringVal(f.Ctx.Call("getShaderInfoLog", js.Value(s)))
}
func (f *FunctionCaller) LinkProgram(p Program) {
	f.Ctx.Call("linkProgram", js.Value(p))
}
func (f *FunctionCaller) ShaderSource(s Shader, src string) {
	f.Ctx.Call("shaderSource", js.Value(s), src)
}
func (f *FunctionCaller) UseProgram(p Program) {
	f.Ctx.Call("useProgram", js.Value(p))
}
func (f *FunctionCaller) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.Ctx.Call("vertexAttribPointer", int(dst), size, int(ty), normalized, stride, offset)
}
func (f *FunctionCaller) Viewport(x, y, width, height int) {
	f.Ctx.Call("viewport", x, y, width, height)
}

func (f *FunctionCaller) byteArrayOf(data []byte) js.Value {
	if len(data) == 0 {
		return js.Null()
	}
	f.resizeByteBuffer(len(data))
	ba := f.uint8Array.New(f.arrayBuf, int(0), int(len(data)))
	js.CopyBytesToJS(ba, data)
	return ba
}

func (f *FunctionCaller) resizeByteBuffer(n int) {
	if n == 0 {
		return
	}
	if !f.arrayBuf.IsUndefined() && f.arrayBuf.Get("byteLength").Int() >= n {
		return
	}
	f.arrayBuf = js.Global().Get("ArrayBuffer").New(n)
}

func paramVal(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if b := v.Bool(); b {
			return 1
		} else {
			return 0
		}
	case js.TypeNumber:
		return v.Int()
	case js.TypeNull, js.TypeUndefined:
		// Lost contexts answer every query with null.
		return 0
	default:
		panic("unknown parameter type")
	}
}

func stringVal(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

//go:build !js
// +build !js

// SPDX-License-Identifier: Unlicense OR MIT

// Package gltest provides a recording gl.Functions for tests that cannot
// reach a real WebGL context.
package gltest

import (
	"strings"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
)

// Call is one recorded gl.Functions invocation.
type Call struct {
	Name string
	Args []interface{}
}

// ShaderState is the recorded state of one shader object.
type ShaderState struct {
	Type     gl.Enum
	Source   string
	Compiled bool
	Deleted  bool
}

// ProgramState is the recorded state of one program object.
type ProgramState struct {
	Attached []gl.Shader
	Linked   bool
	Deleted  bool
}

// Recorder records calls in order and emulates just enough object state
// for the status queries the renderer issues.
type Recorder struct {
	// CompileErrors fails the compilation of any shader whose source
	// contains a key; the value becomes the info log.
	CompileErrors map[string]string
	// LinkError, if set, fails every link with the value as info log.
	LinkError string
	// Attribs maps attribute names to locations. If nil every name
	// resolves to location 0; otherwise unknown names resolve to -1.
	Attribs map[string]int
	// Errors is drained by GetError, one per call.
	Errors []gl.Enum

	Calls    []Call
	Shaders  map[uint]*ShaderState
	Programs map[uint]*ProgramState
	Buffers  map[uint][]byte

	next       uint
	arrayBuf   uint
	program    uint
	shaderLogs map[uint]string
}

var _ gl.Functions = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Shaders:    make(map[uint]*ShaderState),
		Programs:   make(map[uint]*ProgramState),
		Buffers:    make(map[uint][]byte),
		shaderLogs: make(map[uint]string),
	}
}

// Count returns the number of recorded calls named name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls named name.
func (r *Recorder) Find(name string) []Call {
	var calls []Call
	for _, c := range r.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// Names returns the names of all recorded calls in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// ActiveProgram returns the program last passed to UseProgram.
func (r *Recorder) ActiveProgram() gl.Program {
	return gl.Program{V: r.program}
}

func (r *Recorder) record(name string, args ...interface{}) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc() uint {
	r.next++
	return r.next
}

func (r *Recorder) CreateShader(ty gl.Enum) gl.Shader {
	r.record("CreateShader", ty)
	id := r.alloc()
	r.Shaders[id] = &ShaderState{Type: ty}
	return gl.Shader{V: id}
}

func (r *Recorder) ShaderSource(s gl.Shader, src string) {
	r.record("ShaderSource", s, src)
	if st, ok := r.Shaders[s.V]; ok {
		st.Source = src
	}
}

func (r *Recorder) CompileShader(s gl.Shader) {
	r.record("CompileShader", s)
	st, ok := r.Shaders[s.V]
	if !ok {
		return
	}
	for frag, log := range r.CompileErrors {
		if strings.Contains(st.Source, frag) {
			r.shaderLogs[s.V] = log
			return
		}
	}
	st.Compiled = true
}

func (r *Recorder) GetShaderi(s gl.Shader, pname gl.Enum) int {
	r.record("GetShaderi", s, pname)
	st, ok := r.Shaders[s.V]
	if !ok {
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		if st.Compiled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(r.shaderLogs[s.V])
	}
	return 0
}

func (r *Recorder) GetShaderInfoLog(s gl.Shader) string {
	r.record("GetShaderInfoLog", s)
	return r.shaderLogs[s.V]
}

func (r *Recorder) DeleteShader(s gl.Shader) {
	r.record("DeleteShader", s)
	if st, ok := r.Shaders[s.V]; ok {
		st.Deleted = true
	}
}

func (r *Recorder) CreateProgram() gl.Program {
	r.record("CreateProgram")
	id := r.alloc()
	r.Programs[id] = &ProgramState{}
	return gl.Program{V: id}
}

func (r *Recorder) DeleteProgram(p gl.Program) {
	r.record("DeleteProgram", p)
	if st, ok := r.Programs[p.V]; ok {
		st.Deleted = true
	}
}

func (r *Recorder) AttachShader(p gl.Program, s gl.Shader) {
	r.record("AttachShader", p, s)
	if st, ok := r.Programs[p.V]; ok {
		st.Attached = append(st.Attached, s)
	}
}

func (r *Recorder) LinkProgram(p gl.Program) {
	r.record("LinkProgram", p)
	st, ok := r.Programs[p.V]
	if !ok || r.LinkError != "" {
		return
	}
	var vs, fs bool
	for _, s := range st.Attached {
		sh := r.Shaders[s.V]
		if sh == nil || !sh.Compiled {
			return
		}
		vs = vs || sh.Type == gl.VERTEX_SHADER
		fs = fs || sh.Type == gl.FRAGMENT_SHADER
	}
	st.Linked = vs && fs
}

func (r *Recorder) GetProgrami(p gl.Program, pname gl.Enum) int {
	r.record("GetProgrami", p, pname)
	st, ok := r.Programs[p.V]
	if !ok {
		return 0
	}
	if pname == gl.LINK_STATUS && st.Linked {
		return gl.TRUE
	}
	return gl.FALSE
}

func (r *Recorder) GetProgramInfoLog(p gl.Program) string {
	r.record("GetProgramInfoLog", p)
	if st, ok := r.Programs[p.V]; ok && !st.Linked {
		return r.LinkError
	}
	return ""
}

func (r *Recorder) UseProgram(p gl.Program) {
	r.record("UseProgram", p)
	r.program = p.V
}

func (r *Recorder) GetAttribLocation(p gl.Program, name string) int {
	r.record("GetAttribLocation", p, name)
	if st, ok := r.Programs[p.V]; !ok || !st.Linked {
		return -1
	}
	if r.Attribs == nil {
		return 0
	}
	if loc, ok := r.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) CreateBuffer() gl.Buffer {
	r.record("CreateBuffer")
	id := r.alloc()
	r.Buffers[id] = nil
	return gl.Buffer{V: id}
}

func (r *Recorder) BindBuffer(target gl.Enum, b gl.Buffer) {
	r.record("BindBuffer", target, b)
	if target == gl.ARRAY_BUFFER {
		r.arrayBuf = b.V
	}
}

func (r *Recorder) BufferData(target gl.Enum, usage gl.Enum, data []byte) {
	r.record("BufferData", target, usage, data)
	if target == gl.ARRAY_BUFFER && r.arrayBuf != 0 {
		r.Buffers[r.arrayBuf] = append([]byte(nil), data...)
	}
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask gl.Enum) {
	r.record("Clear", mask)
}

func (r *Recorder) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(a gl.Attrib) {
	r.record("EnableVertexAttribArray", a)
}

func (r *Recorder) DrawArrays(mode gl.Enum, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) GetError() gl.Enum {
	if len(r.Errors) == 0 {
		return gl.NO_ERROR
	}
	e := r.Errors[0]
	r.Errors = r.Errors[1:]
	return e
}

// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"fmt"
	"strings"

	"gioui.org/shader"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
)

// Shader is a compiled shader object.
type Shader struct {
	Handle  gl.Shader
	Kind    ShaderKind
	Sources shader.Sources
}

// Program is a linked vertex and fragment shader pair.
type Program struct {
	Handle gl.Program
	// Position is the location of the vertex position attribute.
	Position gl.Attrib
	Vertex   shader.Sources
	Fragment shader.Sources
}

// BuildProgram compiles the vertex and fragment sources found in src,
// links them, makes the program current and resolves the vertex
// position attribute. Any failure is fatal: no program is attached or
// used after a shader fails, and a program that fails to link is never
// made current.
func (r *Renderer) BuildProgram(src SourceLookup) error {
	if err := r.expect(ContextReady, "BuildProgram"); err != nil {
		return err
	}
	vs, err := r.compile(src, r.opts.VertexID, VertexShader)
	if err != nil {
		return r.fail(err)
	}
	fs, err := r.compile(src, r.opts.FragmentID, FragmentShader)
	if err != nil {
		r.funcs.DeleteShader(vs.Handle)
		return r.fail(err)
	}
	prog, err := r.link(vs, fs)
	if err != nil {
		return r.fail(err)
	}
	r.program = prog
	r.advance(ProgramReady)
	return nil
}

// CompileShader loads the source stored under id and compiles it. The
// returned shader is owned by the caller.
func (r *Renderer) CompileShader(src SourceLookup, id string) (Shader, error) {
	if r.state == Failed {
		return Shader{}, r.err
	}
	if r.funcs == nil {
		return Shader{}, fmt.Errorf("%w: CompileShader requires %s, renderer is %s", ErrInvalidState, ContextReady, r.state)
	}
	return r.compile(src, id, 0)
}

// compile creates a shader from the source stored under id. If want is
// non-zero the source must be tagged with that kind.
func (r *Renderer) compile(src SourceLookup, id string, want ShaderKind) (Shader, error) {
	s, err := src.Lookup(id)
	if err != nil {
		return Shader{}, &Error{Kind: ShaderCompileFailed, ID: id, Err: err}
	}
	kind, err := ParseShaderKind(s.Tag)
	if err != nil {
		return Shader{}, &Error{Kind: ShaderCompileFailed, ID: id, Err: err}
	}
	if want != 0 && kind != want {
		err := fmt.Errorf("%w: got %s shader, expected %s", ErrUnknownShaderType, kind, want)
		return Shader{}, &Error{Kind: ShaderCompileFailed, ID: id, Err: err}
	}
	sh := r.funcs.CreateShader(kind.glEnum())
	if !sh.Valid() {
		return Shader{}, &Error{Kind: ShaderCompileFailed, ID: id, Err: errors.New("createShader failed")}
	}
	r.funcs.ShaderSource(sh, s.Text)
	r.funcs.CompileShader(sh)
	if r.funcs.GetShaderi(sh, gl.COMPILE_STATUS) == gl.FALSE {
		log := strings.TrimSpace(r.funcs.GetShaderInfoLog(sh))
		r.funcs.DeleteShader(sh)
		if log == "" {
			log = "no diagnostic available"
		}
		return Shader{}, &Error{Kind: ShaderCompileFailed, ID: id, Log: log}
	}
	r.logger.Debug("render: shader compiled", "id", id, "kind", kind)
	return Shader{
		Handle: sh,
		Kind:   kind,
		Sources: shader.Sources{
			Name:      id,
			GLSL100ES: s.Text,
		},
	}, nil
}

func (r *Renderer) link(vs, fs Shader) (Program, error) {
	// The program keeps the shaders alive once attached.
	defer r.funcs.DeleteShader(vs.Handle)
	defer r.funcs.DeleteShader(fs.Handle)
	prog := r.funcs.CreateProgram()
	if !prog.Valid() {
		return Program{}, &Error{Kind: ProgramLinkFailed, Err: errors.New("createProgram failed")}
	}
	r.funcs.AttachShader(prog, vs.Handle)
	r.funcs.AttachShader(prog, fs.Handle)
	r.funcs.LinkProgram(prog)
	if r.funcs.GetProgrami(prog, gl.LINK_STATUS) == gl.FALSE {
		log := strings.TrimSpace(r.funcs.GetProgramInfoLog(prog))
		r.funcs.DeleteProgram(prog)
		return Program{}, &Error{Kind: ProgramLinkFailed, Log: log}
	}
	r.funcs.UseProgram(prog)
	name := r.opts.PositionAttrib
	loc := r.funcs.GetAttribLocation(prog, name)
	if loc < 0 {
		r.funcs.DeleteProgram(prog)
		err := fmt.Errorf("attribute %s not found", name)
		return Program{}, &Error{Kind: ProgramLinkFailed, Err: err}
	}
	vert := vs.Sources
	vert.Inputs = []shader.InputLocation{{
		Name:     name,
		Location: loc,
		Type:     shader.DataTypeFloat,
		Size:     coordsPerVertex,
	}}
	return Program{
		Handle:   prog,
		Position: gl.Attrib(loc),
		Vertex:   vert,
		Fragment: fs.Sources,
	}, nil
}

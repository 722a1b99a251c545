//go:build !js
// +build !js

// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"gioui.org/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl/gltest"
)

const (
	vertexSrc = `attribute vec3 aVertexPosition;
void main() {
	gl_Position = vec4(aVertexPosition, 1.0);
}`
	fragmentSrc = `precision mediump float;
void main() {
	gl_FragColor = vec4(1.0, 1.0, 1.0, 1.0);
}`
)

type kindResult struct {
	funcs gl.Functions
	err   error
}

type testSurface struct {
	size      image.Point
	kinds     map[string]kindResult
	requested []string
}

func (s *testSurface) Size() image.Point {
	return s.size
}

func (s *testSurface) Context(kind string) (gl.Functions, error) {
	s.requested = append(s.requested, kind)
	res := s.kinds[kind]
	return res.funcs, res.err
}

type notifications []string

func (n *notifications) Notify(msg string) {
	*n = append(*n, msg)
}

func newSurface(f gl.Functions) *testSurface {
	return &testSurface{
		size:  image.Pt(640, 480),
		kinds: map[string]kindResult{"webgl": {funcs: f}},
	}
}

func validSources() MapSources {
	return MapSources{
		DefaultVertexID:   {Tag: VertexTag, Text: vertexSrc},
		DefaultFragmentID: {Tag: FragmentTag, Text: fragmentSrc},
	}
}

func newTestRenderer() (*Renderer, *notifications) {
	n := new(notifications)
	r := New(Options{
		Notifier: n,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return r, n
}

func TestAcquireContextPreferenceOrder(t *testing.T) {
	primary, fallback := gltest.NewRecorder(), gltest.NewRecorder()
	s := &testSurface{kinds: map[string]kindResult{
		"webgl":              {funcs: primary},
		"experimental-webgl": {funcs: fallback},
	}}
	r, n := newTestRenderer()
	require.NoError(t, r.AcquireContext(s))

	assert.Equal(t, ContextReady, r.State())
	assert.Same(t, primary, r.Functions())
	assert.Equal(t, "webgl", r.ContextKind())
	assert.Equal(t, []string{"webgl"}, s.requested)
	assert.Empty(t, *n)
}

func TestAcquireContextSkipsFailingKinds(t *testing.T) {
	fallback := gltest.NewRecorder()
	s := &testSurface{kinds: map[string]kindResult{
		"webgl":              {err: errors.New("NotSupportedError")},
		"experimental-webgl": {funcs: fallback},
	}}
	r, n := newTestRenderer()
	require.NoError(t, r.AcquireContext(s))

	assert.Same(t, fallback, r.Functions())
	assert.Equal(t, "experimental-webgl", r.ContextKind())
	assert.Equal(t, []string{"webgl", "experimental-webgl"}, s.requested)
	assert.Empty(t, *n)
}

func TestAcquireContextUnavailable(t *testing.T) {
	s := &testSurface{kinds: map[string]kindResult{
		"webgl": {err: errors.New("NotSupportedError")},
	}}
	r, n := newTestRenderer()
	err := r.AcquireContext(s)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrContextUnavailable)
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, ContextUnavailable, kind)
	assert.Equal(t, Failed, r.State())
	assert.Equal(t, []string{"Failed to create WebGL context!"}, []string(*n))
	assert.Nil(t, r.Functions())

	// Later stages short-circuit with the original failure.
	assert.Equal(t, err, r.BuildProgram(validSources()))
	assert.Equal(t, err, r.UploadGeometry())
	assert.Equal(t, err, r.Draw())
	assert.Len(t, *n, 1)
}

func TestParseShaderKind(t *testing.T) {
	k, err := ParseShaderKind("x-shader/x-vertex")
	require.NoError(t, err)
	assert.Equal(t, VertexShader, k)

	k, err = ParseShaderKind("x-shader/x-fragment")
	require.NoError(t, err)
	assert.Equal(t, FragmentShader, k)

	_, err = ParseShaderKind("text/javascript")
	assert.ErrorIs(t, err, ErrUnknownShaderType)
}

func TestCompileShaderClassification(t *testing.T) {
	f := gltest.NewRecorder()
	r, _ := newTestRenderer()
	require.NoError(t, r.AcquireContext(newSurface(f)))

	src := validSources()
	src["bogus"] = Source{Tag: "text/plain", Text: vertexSrc}

	vs, err := r.CompileShader(src, DefaultVertexID)
	require.NoError(t, err)
	assert.Equal(t, VertexShader, vs.Kind)
	assert.Equal(t, gl.Enum(gl.VERTEX_SHADER), f.Shaders[vs.Handle.V].Type)
	assert.Equal(t, DefaultVertexID, vs.Sources.Name)
	assert.Equal(t, vertexSrc, vs.Sources.GLSL100ES)

	fs, err := r.CompileShader(src, DefaultFragmentID)
	require.NoError(t, err)
	assert.Equal(t, FragmentShader, fs.Kind)
	assert.Equal(t, gl.Enum(gl.FRAGMENT_SHADER), f.Shaders[fs.Handle.V].Type)

	before := f.Count("CreateShader")
	_, err = r.CompileShader(src, "bogus")
	assert.ErrorIs(t, err, ErrUnknownShaderType)
	_, err = r.CompileShader(src, "missing")
	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.Equal(t, before, f.Count("CreateShader"))
}

func TestCompileShaderRequiresContext(t *testing.T) {
	r, _ := newTestRenderer()
	_, err := r.CompileShader(validSources(), DefaultVertexID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestBuildProgram(t *testing.T) {
	f := gltest.NewRecorder()
	f.Attribs = map[string]int{"aVertexPosition": 2}
	r, n := newTestRenderer()
	require.NoError(t, r.AcquireContext(newSurface(f)))
	require.NoError(t, r.BuildProgram(validSources()))

	assert.Equal(t, ProgramReady, r.State())
	prog := r.Program()
	assert.True(t, f.Programs[prog.Handle.V].Linked)
	assert.Equal(t, prog.Handle, f.ActiveProgram())
	assert.Equal(t, gl.Attrib(2), prog.Position)
	assert.Equal(t, []shader.InputLocation{{
		Name:     "aVertexPosition",
		Location: 2,
		Type:     shader.DataTypeFloat,
		Size:     3,
	}}, prog.Vertex.Inputs)
	assert.Equal(t, fragmentSrc, prog.Fragment.GLSL100ES)
	assert.Empty(t, *n)

	// Link status is queried before the program is made current.
	names := f.Names()
	assert.Less(t, indexOf(names, "GetProgrami"), indexOf(names, "UseProgram"))
	assert.Less(t, indexOf(names, "UseProgram"), indexOf(names, "GetAttribLocation"))
}

func TestBuildProgramCompileFailure(t *testing.T) {
	f := gltest.NewRecorder()
	f.CompileErrors = map[string]string{"gl_FragColor": "ERROR: 0:3: 'gl_FragColor' : syntax error\n"}
	r, n := newTestRenderer()

	err := r.Run(newSurface(f), validSources())
	require.Error(t, err)

	kind, _ := KindOf(err)
	assert.Equal(t, ShaderCompileFailed, kind)
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, DefaultFragmentID, rerr.ID)
	assert.Equal(t, "ERROR: 0:3: 'gl_FragColor' : syntax error", rerr.Log)

	require.Len(t, *n, 1)
	assert.Equal(t, "Error compiling shader: ERROR: 0:3: 'gl_FragColor' : syntax error", (*n)[0])
	assert.Equal(t, Failed, r.State())

	// Both shaders were released and nothing was linked or drawn.
	for id, sh := range f.Shaders {
		assert.True(t, sh.Deleted, "shader %d not deleted", id)
	}
	assert.Zero(t, f.Count("CreateProgram"))
	assert.Zero(t, f.Count("AttachShader"))
	assert.Zero(t, f.Count("DrawArrays"))
	assert.Zero(t, f.Count("CreateBuffer"))
}

func TestBuildProgramCompileFailureWithoutLog(t *testing.T) {
	f := gltest.NewRecorder()
	f.CompileErrors = map[string]string{"aVertexPosition": ""}
	r, n := newTestRenderer()

	err := r.Run(newSurface(f), validSources())
	require.Error(t, err)
	require.Len(t, *n, 1)
	assert.Equal(t, "Error compiling shader: no diagnostic available", (*n)[0])
	assert.Zero(t, f.Count("DrawArrays"))
}

func TestBuildProgramBadSources(t *testing.T) {
	tests := []struct {
		name string
		src  MapSources
		want error
	}{
		{
			name: "missing vertex",
			src:  MapSources{DefaultFragmentID: {Tag: FragmentTag, Text: fragmentSrc}},
			want: ErrSourceNotFound,
		},
		{
			name: "unknown tag",
			src: MapSources{
				DefaultVertexID:   {Tag: "text/javascript", Text: vertexSrc},
				DefaultFragmentID: {Tag: FragmentTag, Text: fragmentSrc},
			},
			want: ErrUnknownShaderType,
		},
		{
			name: "swapped stages",
			src: MapSources{
				DefaultVertexID:   {Tag: FragmentTag, Text: fragmentSrc},
				DefaultFragmentID: {Tag: VertexTag, Text: vertexSrc},
			},
			want: ErrUnknownShaderType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := gltest.NewRecorder()
			r, n := newTestRenderer()
			err := r.Run(newSurface(f), tt.src)

			assert.ErrorIs(t, err, tt.want)
			kind, _ := KindOf(err)
			assert.Equal(t, ShaderCompileFailed, kind)
			assert.Len(t, *n, 1)
			assert.Zero(t, f.Count("AttachShader"))
			assert.Zero(t, f.Count("DrawArrays"))
		})
	}
}

func TestBuildProgramLinkFailure(t *testing.T) {
	f := gltest.NewRecorder()
	f.LinkError = "varying vColor not written by vertex shader"
	r, n := newTestRenderer()

	err := r.Run(newSurface(f), validSources())
	require.Error(t, err)

	kind, _ := KindOf(err)
	assert.Equal(t, ProgramLinkFailed, kind)
	assert.Contains(t, err.Error(), f.LinkError)
	assert.Equal(t, []string{"Failed to setup shaders"}, []string(*n))
	assert.Zero(t, f.Count("UseProgram"))
	assert.Zero(t, f.Count("DrawArrays"))
	assert.Equal(t, Failed, r.State())

	// The unlinked program and both shaders are released.
	require.Equal(t, 1, f.Count("CreateProgram"))
	assert.Equal(t, 1, f.Count("DeleteProgram"))
	for id, p := range f.Programs {
		assert.True(t, p.Deleted, "program %d not deleted", id)
	}
	for id, sh := range f.Shaders {
		assert.True(t, sh.Deleted, "shader %d not deleted", id)
	}
}

func TestBuildProgramMissingAttribute(t *testing.T) {
	f := gltest.NewRecorder()
	f.Attribs = map[string]int{"aPosition": 0}
	r, n := newTestRenderer()

	err := r.Run(newSurface(f), validSources())
	kind, _ := KindOf(err)
	assert.Equal(t, ProgramLinkFailed, kind)
	assert.Contains(t, err.Error(), "aVertexPosition")
	assert.Len(t, *n, 1)
	assert.Zero(t, f.Count("DrawArrays"))
	assert.Equal(t, 1, f.Count("DeleteProgram"))
	for id, p := range f.Programs {
		assert.True(t, p.Deleted, "program %d not deleted", id)
	}
}

func TestUploadGeometry(t *testing.T) {
	f := gltest.NewRecorder()
	r, _ := newTestRenderer()
	require.NoError(t, r.AcquireContext(newSurface(f)))
	require.NoError(t, r.BuildProgram(validSources()))
	require.NoError(t, r.UploadGeometry())

	assert.Equal(t, BufferReady, r.State())
	buf := r.Buffer()
	assert.Equal(t, 3, buf.ItemSize)
	assert.Equal(t, 3, buf.ItemCount)
	assert.Equal(t, 36, buf.ByteLen)
	assert.Equal(t, buf.ItemSize*buf.ItemCount*4, buf.ByteLen)
	assert.Equal(t, InputDesc{Type: shader.DataTypeFloat, Size: 3}, buf.Layout)

	data := f.Buffers[buf.Handle.V]
	assert.Len(t, data, 36)
	assert.Equal(t, gl.Float32Bytes([]float32{0, .5, 0, -.5, -.5, 0, .5, -.5, 0}), data)

	calls := f.Find("BufferData")
	require.Len(t, calls, 1)
	assert.Equal(t, gl.Enum(gl.ARRAY_BUFFER), calls[0].Args[0])
	assert.Equal(t, gl.Enum(gl.STATIC_DRAW), calls[0].Args[1])
}

func TestUploadVerticesInvalid(t *testing.T) {
	f := gltest.NewRecorder()
	r, n := newTestRenderer()
	require.NoError(t, r.AcquireContext(newSurface(f)))
	require.NoError(t, r.BuildProgram(validSources()))

	err := r.UploadVertices([]float32{0, 1, 2, 3}, 3)
	require.Error(t, err)
	assert.Equal(t, Failed, r.State())
	assert.Zero(t, f.Count("CreateBuffer"))
	// Only the three user-facing failures notify.
	assert.Empty(t, *n)
}

func TestDraw(t *testing.T) {
	tests := []struct {
		size image.Point
		want []interface{}
	}{
		{image.Pt(640, 480), []interface{}{0, 0, 320, 240}},
		{image.Pt(301, 201), []interface{}{0, 0, 150, 100}},
	}
	for _, tt := range tests {
		f := gltest.NewRecorder()
		f.Attribs = map[string]int{"aVertexPosition": 1}
		s := newSurface(f)
		s.size = tt.size
		r, n := newTestRenderer()
		require.NoError(t, r.Run(s, validSources()))

		assert.Equal(t, Drawn, r.State())
		assert.Empty(t, *n)
		assert.Equal(t, image.Rect(0, 0, tt.size.X/2, tt.size.Y/2), r.Viewport())

		vp := f.Find("Viewport")
		require.Len(t, vp, 1)
		assert.Equal(t, tt.want, vp[0].Args)

		cc := f.Find("ClearColor")
		require.Len(t, cc, 1)
		assert.Equal(t, []interface{}{float32(0), float32(1), float32(0), float32(1)}, cc[0].Args)

		clr := f.Find("Clear")
		require.Len(t, clr, 1)
		assert.Equal(t, []interface{}{gl.Enum(gl.COLOR_BUFFER_BIT)}, clr[0].Args)

		ptr := f.Find("VertexAttribPointer")
		require.Len(t, ptr, 1)
		assert.Equal(t, []interface{}{gl.Attrib(1), 3, gl.Enum(gl.FLOAT), false, 0, 0}, ptr[0].Args)

		enable := f.Find("EnableVertexAttribArray")
		require.Len(t, enable, 1)
		assert.Equal(t, []interface{}{gl.Attrib(1)}, enable[0].Args)

		draws := f.Find("DrawArrays")
		require.Len(t, draws, 1)
		assert.Equal(t, []interface{}{gl.Enum(gl.TRIANGLES), 0, 3}, draws[0].Args)

		names := f.Names()
		assert.Less(t, indexOf(names, "Viewport"), indexOf(names, "Clear"))
		assert.Less(t, indexOf(names, "Clear"), indexOf(names, "VertexAttribPointer"))
		assert.Less(t, indexOf(names, "EnableVertexAttribArray"), indexOf(names, "DrawArrays"))
		assert.Equal(t, "DrawArrays", names[len(names)-1])
	}
}

func TestDrawClearColor(t *testing.T) {
	f := gltest.NewRecorder()
	r := New(Options{
		ClearColor: color.NRGBA{R: 0xff, A: 0x80},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, r.Run(newSurface(f), validSources()))

	cc := f.Find("ClearColor")
	require.Len(t, cc, 1)
	assert.InDelta(t, 1.0, cc[0].Args[0], 1e-3)
	assert.InDelta(t, 0.0, cc[0].Args[1], 1e-3)
	assert.InDelta(t, 0.502, cc[0].Args[3], 1e-3)
}

func TestStagesOutOfOrder(t *testing.T) {
	f := gltest.NewRecorder()
	r, n := newTestRenderer()

	assert.ErrorIs(t, r.BuildProgram(validSources()), ErrInvalidState)
	assert.ErrorIs(t, r.Draw(), ErrInvalidState)
	assert.Equal(t, Uninitialized, r.State())

	require.NoError(t, r.AcquireContext(newSurface(f)))
	assert.ErrorIs(t, r.UploadGeometry(), ErrInvalidState)
	assert.ErrorIs(t, r.AcquireContext(newSurface(f)), ErrInvalidState)
	assert.Equal(t, ContextReady, r.State())
	assert.Empty(t, f.Calls)
	assert.Empty(t, *n)
}

func TestDrawOnce(t *testing.T) {
	f := gltest.NewRecorder()
	r, _ := newTestRenderer()
	require.NoError(t, r.Run(newSurface(f), validSources()))
	assert.ErrorIs(t, r.Draw(), ErrInvalidState)
	assert.Equal(t, 1, f.Count("DrawArrays"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "BufferReady", BufferReady.String())
	assert.Equal(t, "Failed", Failed.String())
	assert.Equal(t, "State(42)", State(42).String())
	assert.Equal(t, "vertex", VertexShader.String())
	assert.Equal(t, "ProgramLinkFailed", ProgramLinkFailed.String())
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

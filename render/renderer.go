// SPDX-License-Identifier: Unlicense OR MIT

/*
Package render draws a single triangle with WebGL.

A Renderer walks a fixed sequence of stages, each consuming the result of
the previous one:

	AcquireContext -> BuildProgram -> UploadGeometry -> Draw

Every stage either advances the Renderer to the next State or moves it to
the terminal Failed state. Once failed, all later stages return the
original error without issuing GL calls.

Failures of kind ContextUnavailable, ShaderCompileFailed and
ProgramLinkFailed are reported once to the configured Notifier at the
point they are detected.
*/
package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/colornames"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
)

// Default source identifiers and attribute name.
const (
	DefaultVertexID       = "shader-vs"
	DefaultFragmentID     = "shader-fs"
	DefaultPositionAttrib = "aVertexPosition"
)

// DefaultContextKinds lists the WebGL context types in preference order.
var DefaultContextKinds = []string{"webgl", "experimental-webgl"}

// Surface is a drawing surface that hands out GPU contexts.
type Surface interface {
	// Size returns the drawing buffer size in pixels.
	Size() image.Point
	// Context requests a context of the given kind. A nil Functions and
	// nil error means the kind is known but no context is available; an
	// error means the request failed outright.
	Context(kind string) (gl.Functions, error)
}

// Notifier presents failure messages to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

// LogNotifier reports messages to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(msg string) {
	l := n.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Warn(msg)
}

// Options configure a Renderer. The zero value selects the defaults.
type Options struct {
	// ContextKinds overrides DefaultContextKinds.
	ContextKinds []string
	VertexID     string
	FragmentID   string
	// PositionAttrib names the vertex position input of the vertex shader.
	PositionAttrib string
	// ClearColor is the background colour; nil means colornames.Lime.
	ClearColor color.Color
	Notifier   Notifier
	Logger     *slog.Logger
}

// Renderer owns the context, program and vertex buffer of one surface.
type Renderer struct {
	opts   Options
	logger *slog.Logger
	notify Notifier

	state State
	err   error

	surface  Surface
	funcs    gl.Functions
	kind     string
	program  Program
	buffer   VertexBuffer
	viewport image.Rectangle
}

// New returns an Uninitialized Renderer.
func New(opts Options) *Renderer {
	if len(opts.ContextKinds) == 0 {
		opts.ContextKinds = DefaultContextKinds
	}
	if opts.VertexID == "" {
		opts.VertexID = DefaultVertexID
	}
	if opts.FragmentID == "" {
		opts.FragmentID = DefaultFragmentID
	}
	if opts.PositionAttrib == "" {
		opts.PositionAttrib = DefaultPositionAttrib
	}
	if opts.ClearColor == nil {
		opts.ClearColor = colornames.Lime
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{Logger: opts.Logger}
	}
	return &Renderer{
		opts:   opts,
		logger: opts.Logger,
		notify: opts.Notifier,
	}
}

// State returns the current state.
func (r *Renderer) State() State {
	return r.state
}

// Err returns the error that moved the Renderer to Failed, or nil.
func (r *Renderer) Err() error {
	return r.err
}

// Functions returns the acquired context, or nil before ContextReady.
func (r *Renderer) Functions() gl.Functions {
	return r.funcs
}

// ContextKind returns the kind of the acquired context.
func (r *Renderer) ContextKind() string {
	return r.kind
}

// Program returns the linked program. It is valid from ProgramReady on.
func (r *Renderer) Program() Program {
	return r.program
}

// Buffer returns the uploaded vertex buffer. It is valid from
// BufferReady on.
func (r *Renderer) Buffer() VertexBuffer {
	return r.buffer
}

// Viewport returns the viewport set by Draw.
func (r *Renderer) Viewport() image.Rectangle {
	return r.viewport
}

// Run executes every stage in order and returns the first failure.
func (r *Renderer) Run(s Surface, src SourceLookup) error {
	if err := r.AcquireContext(s); err != nil {
		return err
	}
	if err := r.BuildProgram(src); err != nil {
		return err
	}
	if err := r.UploadGeometry(); err != nil {
		return err
	}
	return r.Draw()
}

// AcquireContext requests a context from s for each configured kind in
// order and keeps the first one returned. Errors from individual kinds
// are logged and skipped.
func (r *Renderer) AcquireContext(s Surface) error {
	if err := r.expect(Uninitialized, "AcquireContext"); err != nil {
		return err
	}
	for _, kind := range r.opts.ContextKinds {
		f, err := s.Context(kind)
		if err != nil {
			r.logger.Debug("render: context kind failed", "kind", kind, "error", err)
			continue
		}
		if f == nil {
			r.logger.Debug("render: context kind unavailable", "kind", kind)
			continue
		}
		r.surface = s
		r.funcs = f
		r.kind = kind
		r.advance(ContextReady)
		return nil
	}
	return r.fail(&Error{Kind: ContextUnavailable, Err: ErrContextUnavailable})
}

func (r *Renderer) expect(want State, stage string) error {
	if r.state == Failed {
		return r.err
	}
	if r.state != want {
		return fmt.Errorf("%w: %s requires %s, renderer is %s", ErrInvalidState, stage, want, r.state)
	}
	return nil
}

func (r *Renderer) advance(s State) {
	r.logger.Debug("render: state", "from", r.state, "to", s)
	r.state = s
}

// fail moves the Renderer to Failed and reports kinded errors to the
// user.
func (r *Renderer) fail(err error) error {
	r.logger.Error("render: stage failed", "state", r.state, "error", err)
	r.state = Failed
	r.err = err
	if e, ok := err.(*Error); ok {
		r.notify.Notify(e.message())
	}
	return err
}

// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"
	"fmt"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/internal/gl"
)

// Type tags of shader source containers.
const (
	VertexTag   = "x-shader/x-vertex"
	FragmentTag = "x-shader/x-fragment"
)

var (
	ErrSourceNotFound    = errors.New("render: shader source not found")
	ErrUnknownShaderType = errors.New("render: unknown shader type")
)

// ShaderKind is the pipeline stage of a shader.
type ShaderKind uint8

const (
	VertexShader ShaderKind = iota + 1
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderKind(%d)", uint8(k))
	}
}

func (k ShaderKind) glEnum() gl.Enum {
	if k == VertexShader {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

// ParseShaderKind classifies a source container by its type tag.
func ParseShaderKind(tag string) (ShaderKind, error) {
	switch tag {
	case VertexTag:
		return VertexShader, nil
	case FragmentTag:
		return FragmentShader, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownShaderType, tag)
	}
}

// Source is the text of a shader together with its type tag.
type Source struct {
	Tag  string
	Text string
}

// SourceLookup finds shader sources by identifier.
type SourceLookup interface {
	// Lookup returns an error wrapping ErrSourceNotFound if no source
	// is stored under id.
	Lookup(id string) (Source, error)
}

// MapSources is a SourceLookup backed by a map.
type MapSources map[string]Source

func (m MapSources) Lookup(id string) (Source, error) {
	s, ok := m[id]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrSourceNotFound, id)
	}
	return s, nil
}

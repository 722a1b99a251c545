// SPDX-License-Identifier: Unlicense OR MIT

// Package gl is a minimal binding to the WebGL entry points needed to
// compile a shader program, upload a vertex buffer and issue a draw.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER        = 0x8892
	COLOR_BUFFER_BIT    = 0x4000
	COMPILE_STATUS      = 0x8b81
	FALSE               = 0
	FLOAT               = 0x1406
	FRAGMENT_SHADER     = 0x8b30
	INFO_LOG_LENGTH     = 0x8B84
	LINK_STATUS         = 0x8b82
	STATIC_DRAW         = 0x88e4
	TRIANGLES           = 0x4
	TRUE                = 1
	VERTEX_SHADER       = 0x8b31
	NO_ERROR            = 0x0
	INVALID_ENUM        = 0x500
	INVALID_VALUE       = 0x501
	INVALID_OPERATION   = 0x502
	OUT_OF_MEMORY       = 0x505
	CONTEXT_LOST_WEBGL  = 0x9242
	INVALID_FRAMEBUFFER = 0x506
)

// Functions is the set of WebGL calls issued by the renderer.
type Functions interface {
	CreateShader(ty Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	DeleteProgram(p Program)
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	// GetAttribLocation returns -1 if name is not an active attribute.
	GetAttribLocation(p Program, name string) int

	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, usage Enum, data []byte)

	Viewport(x, y, width, height int)
	ClearColor(red, green, blue, alpha float32)
	Clear(mask Enum)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	EnableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)

	GetError() Enum
}

// ErrorString returns the symbolic name of a GL error code.
func ErrorString(e Enum) string {
	switch e {
	case NO_ERROR:
		return "NO_ERROR"
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case INVALID_FRAMEBUFFER:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case CONTEXT_LOST_WEBGL:
		return "CONTEXT_LOST_WEBGL"
	default:
		return "unknown error"
	}
}

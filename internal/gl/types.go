//go:build !js
// +build !js

// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Buffer  struct{ V uint }
	Program struct{ V uint }
	Shader  struct{ V uint }
)

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (s Shader) Valid() bool {
	return s.V != 0
}

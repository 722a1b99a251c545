// SPDX-License-Identifier: Unlicense OR MIT

package render

import "fmt"

// State is the position of a Renderer in its one-way startup sequence.
type State uint8

const (
	Uninitialized State = iota
	ContextReady
	ProgramReady
	BufferReady
	Drawn
	// Failed is terminal.
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case ContextReady:
		return "ContextReady"
	case ProgramReady:
		return "ProgramReady"
	case BufferReady:
		return "BufferReady"
	case Drawn:
		return "Drawn"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"encoding/binary"
	"math"
)

// Float32Bytes encodes vertex data in the little-endian layout WebGL
// expects for FLOAT attributes.
func Float32Bytes(data []float32) []byte {
	b := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

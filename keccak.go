// Package keccak provides Ethereum's Keccak-256 over packed 64-bit lanes.
//
// This is the machine-word rendition of the hash: the 1600-bit state lives in
// a [25]uint64 and the permutation runs on native XOR/AND/rotate instructions.
// The sibling packages sponge and circuit implement the exact same pipeline
// with every bit tracked individually; this package is the oracle they are
// tested against.
//
// Keccak-256 uses domain separator 0x01 (NOT SHA-3's 0x06), which is why
// neither stdlib crypto/sha3 nor the SHA3 constructors in x/crypto apply here;
// x/crypto's sha3.NewLegacyKeccak256 is the compatible reference.
package keccak

import "encoding/binary"

const (
	// rate is the sponge rate for Keccak-256: (1600 - 2*256) / 8 = 136 bytes.
	rate = 136
)

// Sum256 computes the Keccak-256 hash of data.
func Sum256(data []byte) [32]byte {
	var a [25]uint64

	// Absorb full blocks.
	for len(data) >= rate {
		xorIn(&a, data[:rate])
		keccakF1600(&a)
		data = data[rate:]
	}

	// Absorb remaining bytes + Keccak padding.
	var last [rate]byte
	copy(last[:], data)
	last[len(data)] = 0x01
	// pad10*1 end bit.
	last[rate-1] ^= 0x80
	xorIn(&a, last[:])
	keccakF1600(&a)

	return squeeze(&a)
}

// Hasher is a streaming Keccak-256 hasher. Designed for stack allocation.
type Hasher struct {
	a        [25]uint64
	buf      [rate]byte
	absorbed int
}

// Reset resets the hasher to its initial state.
func (h *Hasher) Reset() {
	h.a = [25]uint64{}
	h.absorbed = 0
}

// Write absorbs data into the hasher.
func (h *Hasher) Write(p []byte) {
	if h.absorbed > 0 {
		n := copy(h.buf[h.absorbed:rate], p)
		h.absorbed += n
		p = p[n:]
		if h.absorbed == rate {
			xorIn(&h.a, h.buf[:])
			keccakF1600(&h.a)
			h.absorbed = 0
		}
	}

	for len(p) >= rate {
		xorIn(&h.a, p[:rate])
		keccakF1600(&h.a)
		p = p[rate:]
	}

	if len(p) > 0 {
		h.absorbed = copy(h.buf[:], p)
	}
}

// Sum256 finalizes and returns the 32-byte Keccak-256 digest.
// Does not modify the hasher state.
func (h *Hasher) Sum256() [32]byte {
	a := h.a
	var last [rate]byte
	copy(last[:], h.buf[:h.absorbed])
	last[h.absorbed] = 0x01
	last[rate-1] ^= 0x80
	xorIn(&a, last[:])
	keccakF1600(&a)
	return squeeze(&a)
}

// xorIn XORs data into the rate portion of the state, 8 bytes per lane.
// data must not exceed one rate block.
func xorIn(a *[25]uint64, data []byte) {
	n := len(data) >> 3
	for i := 0; i < n; i++ {
		a[i] ^= binary.LittleEndian.Uint64(data[8*i:])
	}
	// Tail bytes (< 8) land in the low end of the next lane.
	for i := n << 3; i < len(data); i++ {
		a[i>>3] ^= uint64(data[i]) << (8 * (i & 7))
	}
}

// squeeze reads the first 32 bytes of the state, little-endian per lane.
func squeeze(a *[25]uint64) [32]byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(out[8*i:], a[i])
	}
	return out
}

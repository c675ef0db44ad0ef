// Package bitvec implements fixed-size vectors of individually tracked bits.
//
// Every element of a Vec is exactly 0 or 1. The sponge package builds the
// whole Keccak pipeline out of the elementwise operators defined here, so
// that each bit of the hash state stays observable on its own — the same
// shape the computation takes when lowered to a constraint system.
package bitvec

type Vec []byte

// New returns an all-zero vector of n bits.
func New(n int) Vec {
	return make(Vec, n)
}

// FromBytes expands p into bits, least significant bit of each byte first.
// This is the Ethereum convention for feeding byte strings into a bit-level
// Keccak: bit 8*i+j of the result is bit j of p[i].
func FromBytes(p []byte) Vec {
	v := make(Vec, 8*len(p))
	for i, b := range p {
		for j := 0; j < 8; j++ {
			v[8*i+j] = (b >> j) & 1
		}
	}
	return v
}

// Bytes packs the vector back into bytes, inverting FromBytes.
// The length must be a multiple of 8.
func (v Vec) Bytes() []byte {
	if len(v)%8 != 0 {
		panic("bitvec: length not a multiple of 8")
	}
	p := make([]byte, len(v)/8)
	for i, bit := range v {
		p[i/8] |= bit << (i % 8)
	}
	return p
}

// FromUint64 returns the 64 bits of x, least significant first.
func FromUint64(x uint64) Vec {
	v := make(Vec, 64)
	for z := 0; z < 64; z++ {
		v[z] = byte((x >> z) & 1)
	}
	return v
}

// Uint64 packs a 64-bit vector into a word, bit z at significance z.
func (v Vec) Uint64() uint64 {
	if len(v) != 64 {
		panic("bitvec: not a 64-bit vector")
	}
	var x uint64
	for z, bit := range v {
		x |= uint64(bit) << z
	}
	return x
}

// Clone returns a copy of v sharing no storage with it.
func (v Vec) Clone() Vec {
	out := make(Vec, len(v))
	copy(out, v)
	return out
}

// IsBoolean reports whether every element is 0 or 1.
func (v Vec) IsBoolean() bool {
	for _, bit := range v {
		if bit > 1 {
			return false
		}
	}
	return true
}

// Xor returns the elementwise XOR of two equal-length vectors.
func Xor(a, b Vec) Vec {
	if len(a) != len(b) {
		panic("bitvec: length mismatch")
	}
	out := make(Vec, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// And returns the elementwise AND of two equal-length vectors.
func And(a, b Vec) Vec {
	if len(a) != len(b) {
		panic("bitvec: length mismatch")
	}
	out := make(Vec, len(a))
	for i := range a {
		out[i] = a[i] & b[i]
	}
	return out
}

// Not returns the elementwise complement of a.
func Not(a Vec) Vec {
	out := make(Vec, len(a))
	for i := range a {
		out[i] = 1 ^ a[i]
	}
	return out
}

// RotL rotates v left by k positions: bit i of the result is bit (i-k) mod n
// of v. For a 64-bit lane this matches a left rotate of the packed word.
func RotL(v Vec, k int) Vec {
	n := len(v)
	s := k % n
	out := make(Vec, 0, n)
	out = append(out, v[n-s:]...)
	out = append(out, v[:n-s]...)
	return out
}

// Package sponge implements Ethereum's Keccak-256 with every bit of the
// state tracked individually.
//
// All stages are pure functions over bitvec.Vec values with sizes fixed by
// the Keccak-256 parameters: no stage branches on input bit values, no stage
// mutates its argument, and each returns a brand-new state. The pipeline is
//
//	Pad -> Blocks -> AbsorbAll -> Squeeze
//
// and mirrors, stage for stage, both the packed-word oracle in the root
// package and the constraint gadget in the circuit package.
package sponge

import (
	"fmt"

	"github.com/jasonmorton/keccak256-circom/bitvec"
)

const (
	// Rate is the sponge rate in bits: state bits directly XORed with input.
	Rate = 1088
	// Capacity is the remaining state, never touched by message bits.
	Capacity = 512
	// Width is the permutation width, Rate + Capacity.
	Width = 1600
	// LaneBits is the size of one lane of the 5x5 state grid.
	LaneBits = 64
	// Lanes is the number of lanes, 25.
	Lanes = Width / LaneBits
	// Rounds is the number of permutation rounds.
	Rounds = 24
	// DigestBits is the Keccak-256 output size.
	DigestBits = 256

	rateLanes = Rate / LaneBits
)

// State is the 1600-bit permutation state as 25 lanes of 64 bits each,
// lane (x,y) at index x+5y, bit z of a lane at position z. The flat
// concatenation of lanes 0..16 is exactly the rate portion.
type State [Lanes]bitvec.Vec

// NewState returns the all-zero state.
func NewState() State {
	var s State
	for i := range s {
		s[i] = bitvec.New(LaneBits)
	}
	return s
}

// Flat returns the state as a single 1600-bit vector, lanes in order.
func (s State) Flat() bitvec.Vec {
	out := make(bitvec.Vec, 0, Width)
	for _, lane := range s {
		out = append(out, lane...)
	}
	return out
}

// Pad appends the multi-rate "10*1" padding: a 1 bit at position m, zeros,
// and a final 1 bit, so that the result is the smallest multiple of Rate
// that holds at least m+2 bits. When the message ends 2 bits short of a
// block boundary the two 1 bits are adjacent; when it ends exactly on one,
// a whole block of padding is emitted.
//
// The message length must be a multiple of 8; Digest enforces this.
func Pad(msg bitvec.Vec) bitvec.Vec {
	m := len(msg)
	z := (Rate - m%Rate + Rate - 2) % Rate
	padded := make(bitvec.Vec, m+2+z)
	copy(padded, msg)
	padded[m] = 1
	padded[m+1+z] = 1
	return padded
}

// Blocks splits a padded message into Rate-sized blocks, in absorption order.
func Blocks(padded bitvec.Vec) []bitvec.Vec {
	if len(padded)%Rate != 0 {
		panic("sponge: padded length not a multiple of the rate")
	}
	blocks := make([]bitvec.Vec, 0, len(padded)/Rate)
	for off := 0; off < len(padded); off += Rate {
		blocks = append(blocks, padded[off:off+Rate])
	}
	return blocks
}

// Absorb XORs one block into the rate portion of the state, leaves the
// capacity untouched, and applies the full permutation.
func Absorb(s State, block bitvec.Vec) State {
	if len(block) != Rate {
		panic("sponge: block is not one rate in size")
	}
	var next State
	for i := 0; i < rateLanes; i++ {
		next[i] = bitvec.Xor(s[i], block[i*LaneBits:(i+1)*LaneBits])
	}
	for i := rateLanes; i < Lanes; i++ {
		next[i] = s[i].Clone()
	}
	return Permute(next)
}

// AbsorbAll runs the multi-block sponge: starting from the zero state it
// absorbs each block in sequence, threading the state through. The chain is
// inherently sequential; the capacity of each state depends nonlinearly on
// the previous block.
func AbsorbAll(blocks []bitvec.Vec) State {
	s := NewState()
	for _, b := range blocks {
		s = Absorb(s, b)
	}
	return s
}

// Squeeze returns the first n bits of the state in flat lane order.
// n must not exceed one rate; Keccak-256 needs 256.
func Squeeze(s State, n int) bitvec.Vec {
	if n > Rate {
		panic("sponge: output exceeds one rate, multi-squeeze unsupported")
	}
	out := make(bitvec.Vec, 0, n)
	for i := 0; len(out) < n; i++ {
		take := n - len(out)
		if take > LaneBits {
			take = LaneBits
		}
		out = append(out, s[i][:take]...)
	}
	return out
}

// Digest hashes msg and returns the first outputBits bits of the final
// state. The message length must be a multiple of 8 and every element must
// be 0 or 1; outputBits must be in (0, Rate].
func Digest(msg bitvec.Vec, outputBits int) (bitvec.Vec, error) {
	if len(msg)%8 != 0 {
		return nil, fmt.Errorf("sponge: message length %d bits is not byte-aligned", len(msg))
	}
	if !msg.IsBoolean() {
		return nil, fmt.Errorf("sponge: message contains a non-boolean element")
	}
	if outputBits <= 0 || outputBits > Rate {
		return nil, fmt.Errorf("sponge: output length %d bits outside (0, %d]", outputBits, Rate)
	}
	return Squeeze(AbsorbAll(Blocks(Pad(msg))), outputBits), nil
}

// Digest256 hashes msg to the 256-bit Keccak-256 digest.
func Digest256(msg bitvec.Vec) (bitvec.Vec, error) {
	return Digest(msg, DigestBits)
}

// Sum256 hashes a byte string through the bit-level pipeline and packs the
// digest back into bytes, matching the root package's Sum256.
func Sum256(data []byte) [32]byte {
	d, err := Digest256(bitvec.FromBytes(data))
	if err != nil {
		// FromBytes output is always byte-aligned and boolean.
		panic(err)
	}
	var out [32]byte
	copy(out[:], d.Bytes())
	return out
}

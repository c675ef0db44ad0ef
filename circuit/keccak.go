// Package circuit expresses Ethereum's Keccak-256 as a gnark gadget over
// individual bit wires.
//
// Every operation is a fixed-size transformation chosen at circuit
// definition time: XOR and AND emit one constraint per bit, NOT is XOR with
// the constant 1, and lane rotation is pure wire reindexing with zero
// constraints. The message length is fixed when the circuit is built, which
// is what makes the whole computation a static constraint graph. The stage
// structure is identical to the sponge package, so the two can be checked
// against each other bit for bit.
package circuit

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
)

const (
	rate       = 1088
	laneBits   = 64
	lanes      = 25
	rateLanes  = rate / laneBits
	rounds     = 24
	digestBits = 256
)

var roundConstants = [rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var rotations = [lanes]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

var destinations = [lanes]int{
	0, 10, 20, 5, 15,
	16, 1, 11, 21, 6,
	7, 17, 2, 12, 22,
	23, 8, 18, 3, 13,
	14, 24, 9, 19, 4,
}

// State is the 1600-bit permutation state: 25 lanes of 64 bit wires, lane
// (x,y) at index x+5y, bit z of a lane at position z.
type State [lanes][]frontend.Variable

// NewState returns the all-zero state as constant wires.
func NewState() State {
	var s State
	for i := range s {
		s[i] = make([]frontend.Variable, laneBits)
		for z := range s[i] {
			s[i][z] = 0
		}
	}
	return s
}

func xorLane(api frontend.API, a, b []frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, laneBits)
	for z := range out {
		out[z] = api.Xor(a[z], b[z])
	}
	return out
}

func andLane(api frontend.API, a, b []frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, laneBits)
	for z := range out {
		out[z] = api.And(a[z], b[z])
	}
	return out
}

func notLane(api frontend.API, a []frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, laneBits)
	for z := range out {
		out[z] = api.Sub(1, a[z])
	}
	return out
}

// rotl reindexes the wires of a lane: bit z of the result is bit (z-k) mod 64
// of the input. No constraints are emitted.
func rotl(a []frontend.Variable, k int) []frontend.Variable {
	s := k % laneBits
	out := make([]frontend.Variable, 0, laneBits)
	out = append(out, a[laneBits-s:]...)
	return append(out, a[:laneBits-s]...)
}

// Round applies one round of Keccak-f[1600]: θ, ρ+π, χ, ι.
func Round(api frontend.API, s State, round int) State {
	// θ
	var c [5][]frontend.Variable
	for x := 0; x < 5; x++ {
		c[x] = xorLane(api,
			xorLane(api, s[x], s[x+5]),
			xorLane(api, xorLane(api, s[x+10], s[x+15]), s[x+20]),
		)
	}
	var after State
	for x := 0; x < 5; x++ {
		d := xorLane(api, c[(x+4)%5], rotl(c[(x+1)%5], 1))
		for y := 0; y < lanes; y += 5 {
			after[x+y] = xorLane(api, s[x+y], d)
		}
	}

	// ρ and π: rotation plus lane relocation, wires only.
	var b State
	for i := 0; i < lanes; i++ {
		b[destinations[i]] = rotl(after[i], rotations[i])
	}

	// χ
	var out State
	for y := 0; y < lanes; y += 5 {
		for x := 0; x < 5; x++ {
			out[y+x] = xorLane(api, b[y+x], andLane(api, notLane(api, b[y+(x+1)%5]), b[y+(x+2)%5]))
		}
	}

	// ι: flip lane (0,0) bits where the round constant is set.
	first := make([]frontend.Variable, laneBits)
	copy(first, out[0])
	for z := 0; z < laneBits; z++ {
		if (roundConstants[round]>>z)&1 == 1 {
			first[z] = api.Sub(1, out[0][z])
		}
	}
	out[0] = first
	return out
}

// Permute chains all 24 rounds.
func Permute(api frontend.API, s State) State {
	for r := 0; r < rounds; r++ {
		s = Round(api, s, r)
	}
	return s
}

// Pad appends the multi-rate "10*1" padding as constant wires, producing a
// whole number of rate blocks. len(msg) must be a multiple of 8.
func Pad(msg []frontend.Variable) []frontend.Variable {
	m := len(msg)
	z := (rate - m%rate + rate - 2) % rate
	padded := make([]frontend.Variable, m+2+z)
	copy(padded, msg)
	padded[m] = 1
	for i := m + 1; i < m+1+z; i++ {
		padded[i] = 0
	}
	padded[m+1+z] = 1
	return padded
}

// Absorb XORs one rate block into the first 17 lanes and permutes.
func Absorb(api frontend.API, s State, block []frontend.Variable) State {
	var next State
	for i := 0; i < rateLanes; i++ {
		next[i] = xorLane(api, s[i], block[i*laneBits:(i+1)*laneBits])
	}
	for i := rateLanes; i < lanes; i++ {
		next[i] = s[i]
	}
	return Permute(api, next)
}

// Squeeze returns the first n state bits in flat lane order, wires only.
func Squeeze(s State, n int) []frontend.Variable {
	out := make([]frontend.Variable, 0, n)
	for i := 0; len(out) < n; i++ {
		take := n - len(out)
		if take > laneBits {
			take = laneBits
		}
		out = append(out, s[i][:take]...)
	}
	return out
}

// Keccak256 hashes a fixed-length bit message, little-endian per byte, to
// its 256 digest bits. The message length is fixed by the circuit and must
// be a multiple of 8.
func Keccak256(api frontend.API, msg []frontend.Variable) []frontend.Variable {
	padded := Pad(msg)
	s := NewState()
	for off := 0; off < len(padded); off += rate {
		s = Absorb(api, s, padded[off:off+rate])
	}
	return Squeeze(s, digestBits)
}

// Keccak256Circuit proves knowledge of a message whose Keccak-256 digest
// equals the public Digest bits.
type Keccak256Circuit struct {
	Msg    []frontend.Variable
	Digest [digestBits]frontend.Variable `gnark:",public"`
}

// NewKeccak256Circuit allocates a circuit for messages of exactly inputBits
// bits. The length is part of the circuit's shape.
func NewKeccak256Circuit(inputBits int) (*Keccak256Circuit, error) {
	if inputBits <= 0 || inputBits%8 != 0 {
		return nil, fmt.Errorf("circuit: input length %d bits is not byte-aligned", inputBits)
	}
	return &Keccak256Circuit{Msg: make([]frontend.Variable, inputBits)}, nil
}

// Define builds the constraint graph: message bits are constrained boolean,
// hashed, and compared bit for bit to the public digest.
func (c *Keccak256Circuit) Define(api frontend.API) error {
	for i := range c.Msg {
		api.AssertIsBoolean(c.Msg[i])
	}
	out := Keccak256(api, c.Msg)
	for i := range out {
		api.AssertIsEqual(out[i], c.Digest[i])
	}
	return nil
}

package sponge

import "github.com/jasonmorton/keccak256-circom/bitvec"

// roundConstants are the ι injection values, one per round.
var roundConstants = [Rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// roundConstantBits holds the same constants pre-expanded to bit vectors.
var roundConstantBits = func() [Rounds]bitvec.Vec {
	var rcs [Rounds]bitvec.Vec
	for i, c := range roundConstants {
		rcs[i] = bitvec.FromUint64(c)
	}
	return rcs
}()

// rotations is the ρ offset for lane x+5y.
var rotations = [Lanes]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// destinations maps lane x+5y to its π target y + 5*((2x+3y) mod 5).
var destinations = [Lanes]int{
	0, 10, 20, 5, 15,
	16, 1, 11, 21, 6,
	7, 17, 2, 12, 22,
	23, 8, 18, 3, 13,
	14, 24, 9, 19, 4,
}

// Theta XORs into every lane the parity of its own column's neighbour
// columns: D[x] = C[x-1] XOR rotl(C[x+1], 1), applied for all five y.
func Theta(s State) State {
	var c [5]bitvec.Vec
	for x := 0; x < 5; x++ {
		c[x] = bitvec.Xor(
			bitvec.Xor(s[x], s[x+5]),
			bitvec.Xor(bitvec.Xor(s[x+10], s[x+15]), s[x+20]),
		)
	}
	var out State
	for x := 0; x < 5; x++ {
		d := bitvec.Xor(c[(x+4)%5], bitvec.RotL(c[(x+1)%5], 1))
		for y := 0; y < Lanes; y += 5 {
			out[x+y] = bitvec.Xor(s[x+y], d)
		}
	}
	return out
}

// RhoPi rotates each lane by its fixed offset and relocates it to
// (y, (2x+3y) mod 5). Pure data movement, no bits are combined.
func RhoPi(s State) State {
	var out State
	for i := 0; i < Lanes; i++ {
		out[destinations[i]] = bitvec.RotL(s[i], rotations[i])
	}
	return out
}

// Chi is the nonlinear mix: out[x,y] = in[x,y] XOR (NOT in[x+1,y] AND in[x+2,y]),
// independently at every bit position. The only nonlinear step of the round.
func Chi(s State) State {
	var out State
	for y := 0; y < Lanes; y += 5 {
		for x := 0; x < 5; x++ {
			out[y+x] = bitvec.Xor(s[y+x], bitvec.And(bitvec.Not(s[y+(x+1)%5]), s[y+(x+2)%5]))
		}
	}
	return out
}

// Iota XORs the round constant into lane (0,0); all other lanes pass through.
func Iota(s State, round int) State {
	out := s
	out[0] = bitvec.Xor(s[0], roundConstantBits[round])
	return out
}

// Round applies one full round of Keccak-f[1600]: θ, ρ+π, χ, ι.
func Round(s State, round int) State {
	return Iota(Chi(RhoPi(Theta(s))), round)
}

// Permute chains all 24 rounds, each with its own constant.
func Permute(s State) State {
	for r := 0; r < Rounds; r++ {
		s = Round(s, r)
	}
	return s
}

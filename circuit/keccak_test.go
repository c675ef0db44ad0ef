package circuit

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// msgBits decomposes bytes into bit wires, least significant bit first.
func msgBits(data []byte) []frontend.Variable {
	bits := make([]frontend.Variable, 8*len(data))
	for i, b := range data {
		for j := 0; j < 8; j++ {
			bits[8*i+j] = int((b >> j) & 1)
		}
	}
	return bits
}

// assignment builds a witness whose public digest is the Ethereum-reference
// Keccak-256 of data.
func assignment(t *testing.T, data []byte) *Keccak256Circuit {
	t.Helper()
	w, err := NewKeccak256Circuit(8 * len(data))
	if err != nil {
		t.Fatal(err)
	}
	copy(w.Msg, msgBits(data))
	hash := gethcrypto.Keccak256Hash(data)
	copy(w.Digest[:], msgBits(hash[:]))
	return w
}

func solve(t *testing.T, data []byte) error {
	t.Helper()
	circ, err := NewKeccak256Circuit(8 * len(data))
	if err != nil {
		t.Fatal(err)
	}
	return test.IsSolved(circ, assignment(t, data), ecc.BN254.ScalarField())
}

func TestKeccak256CircuitABC(t *testing.T) {
	if err := solve(t, []byte("abc")); err != nil {
		t.Fatal(err)
	}
}

func TestKeccak256CircuitSingleBlock(t *testing.T) {
	data := make([]byte, 32)
	for i := range data {
		data[i] = byte(i * 17)
	}
	if err := solve(t, data); err != nil {
		t.Fatal(err)
	}
}

func TestKeccak256CircuitMultiBlock(t *testing.T) {
	if testing.Short() {
		t.Skip("two permutations at bit level")
	}
	// 137 bytes: one byte past the rate, forcing a second absorbed block.
	data := make([]byte, 137)
	for i := range data {
		data[i] = byte(i * 3)
	}
	if err := solve(t, data); err != nil {
		t.Fatal(err)
	}
}

func TestKeccak256CircuitRejectsFlippedBit(t *testing.T) {
	data := []byte("abc")
	circ, err := NewKeccak256Circuit(8 * len(data))
	if err != nil {
		t.Fatal(err)
	}

	w := assignment(t, data)
	w.Msg[0] = 1 - w.Msg[0].(int)
	if err := test.IsSolved(circ, w, ecc.BN254.ScalarField()); err == nil {
		t.Fatal("flipped message bit still satisfied the circuit")
	}

	w = assignment(t, data)
	w.Digest[255] = 1 - w.Digest[255].(int)
	if err := test.IsSolved(circ, w, ecc.BN254.ScalarField()); err == nil {
		t.Fatal("flipped digest bit still satisfied the circuit")
	}
}

func TestKeccak256CircuitRejectsNonBooleanInput(t *testing.T) {
	data := []byte("abc")
	circ, err := NewKeccak256Circuit(8 * len(data))
	if err != nil {
		t.Fatal(err)
	}
	w := assignment(t, data)
	w.Msg[5] = 2
	if err := test.IsSolved(circ, w, ecc.BN254.ScalarField()); err == nil {
		t.Fatal("non-boolean message bit still satisfied the circuit")
	}
}

func TestNewKeccak256CircuitValidation(t *testing.T) {
	for _, bad := range []int{-8, 0, 13} {
		if _, err := NewKeccak256Circuit(bad); err == nil {
			t.Fatalf("input length %d accepted", bad)
		}
	}
	c, err := NewKeccak256Circuit(24)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Msg) != 24 {
		t.Fatalf("allocated %d message wires, want 24", len(c.Msg))
	}
}

// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

var testAddrHex = "970e8128ab834e8eac17ab8e3812f010678cf791"
var testPrivHex = "289c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"

// These tests are sanity checks.
// They should ensure that we don't e.g. use Sha3-224 instead of Sha3-256
// and that the sha3 library uses keccak-f permutation.
func TestKeccak256Hash(t *testing.T) {
	msg := []byte("abc")
	exp := hexutil.MustDecode("0x4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45")
	if h := Keccak256Hash(msg); !bytes.Equal(h[:], exp) {
		t.Fatalf("hash mismatch: have %x, want %x", h, exp)
	}
	if h := Keccak256(msg); !bytes.Equal(h, exp) {
		t.Fatalf("hash mismatch: have %x, want %x", h, exp)
	}
	empty := common.HexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if h := Keccak256Hash(); h != empty {
		t.Fatalf("empty hash mismatch: have %x, want %x", h, empty)
	}
}

func TestKeccak256HashData(t *testing.T) {
	kh := NewKeccakState()
	want := Keccak256Hash([]byte("abc"))
	for i := 0; i < 3; i++ {
		if have := HashData(kh, []byte("abc")); have != want {
			t.Fatalf("round %d: have %x, want %x", i, have, want)
		}
	}
}

func TestSign(t *testing.T) {
	key, _ := HexToKey(testPrivHex)
	addr := common.HexToAddress(testAddrHex)

	msg := Keccak256([]byte("foo"))
	sig, err := Sign(msg, key)
	if err != nil {
		t.Fatalf("Sign error: %s", err)
	}
	if sig[RecoveryIDOffset] > 1 {
		t.Fatalf("recovery id out of range: %d", sig[RecoveryIDOffset])
	}
	recoveredPub, err := Ecrecover(msg, sig)
	if err != nil {
		t.Fatalf("ECRecover error: %s", err)
	}
	if !bytes.Equal(recoveredPub, key.PubKey().SerializeUncompressed()) {
		t.Fatalf("public key mismatch: %x", recoveredPub)
	}
	recoveredAddr, err := SigToAddress(msg, sig)
	if err != nil {
		t.Fatalf("SigToAddress error: %s", err)
	}
	if addr != recoveredAddr {
		t.Errorf("address mismatch: want: %x have: %x", addr, recoveredAddr)
	}
}

func TestInvalidSign(t *testing.T) {
	key, _ := GenerateKey()
	if _, err := Sign(make([]byte, 1), key); err == nil {
		t.Errorf("expected sign with hash 1 byte to error")
	}
	if _, err := Sign(make([]byte, 33), key); err == nil {
		t.Errorf("expected sign with hash 33 byte to error")
	}
	if _, err := SigToPub(make([]byte, 32), make([]byte, 64)); err == nil {
		t.Errorf("expected short signature to error")
	}
}

func TestNewContractAddress(t *testing.T) {
	key, _ := HexToKey(testPrivHex)
	addr := common.HexToAddress(testAddrHex)
	genAddr := PubkeyToAddress(key.PubKey())
	if genAddr != addr {
		t.Fatalf("address mismatch: want: %x have: %x", addr, genAddr)
	}
	checkAddr(t, common.HexToAddress("333c3310824b7c685133f2bedb2ca4b8b4df633d"), CreateAddress(addr, 0))
	checkAddr(t, common.HexToAddress("8bda78331c916a08481428e4b07c96d3e916d165"), CreateAddress(addr, 1))
	checkAddr(t, common.HexToAddress("c9ddedf451bc62ce88bf9292afb13df35b670699"), CreateAddress(addr, 2))
}

func TestInvalidKeys(t *testing.T) {
	if _, err := HexToKey(""); err == nil {
		t.Errorf("HexToKey accepted empty key")
	}
	if _, err := HexToKey("0000000000000000000000000000000000000000000000000000000000000000"); err == nil {
		t.Errorf("HexToKey accepted zero key")
	}
	if _, err := HexToKey("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"); err == nil {
		t.Errorf("HexToKey accepted key equal to curve order")
	}
	if _, err := HexToKey("zz9c2857d4598e37fb9647507e47a309d6133539bf21a8b9cb6df88fd5232032"); err == nil {
		t.Errorf("HexToKey accepted invalid hex")
	}
}

func TestLoadKey(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		// good
		{input: testPrivHex},
		{input: testPrivHex + "\n"},
		{input: testPrivHex + "\n\r"},
		{input: testPrivHex + "\r\n"},
		{input: testPrivHex + "\n\n"},
		// bad
		{input: testPrivHex[:60], err: "key file too short, want 64 hex characters"},
		{input: testPrivHex + "\n\n\n", err: "key file too long, want 64 hex characters"},
		{input: testPrivHex + "X", err: "invalid character 'X' at end of key file"},
	}
	for _, test := range tests {
		f := filepath.Join(t.TempDir(), "key")
		if err := os.WriteFile(f, []byte(test.input), 0600); err != nil {
			t.Fatal(err)
		}
		key, err := LoadKey(f)
		switch {
		case err != nil && test.err == "":
			t.Fatalf("unexpected error for input %q:\n  %v", test.input, err)
		case err != nil && err.Error() != test.err:
			t.Fatalf("wrong error for input %q:\n  %v", test.input, err)
		case err == nil && test.err != "":
			t.Fatalf("LoadKey did not return error for input %q", test.input)
		case err == nil && PubkeyToAddress(key.PubKey()) != common.HexToAddress(testAddrHex):
			t.Fatalf("loaded wrong key for input %q", test.input)
		}
	}
}

func TestValidateSignatureValues(t *testing.T) {
	check := func(expected bool, v byte, r, s *uint256.Int) {
		if ValidateSignatureValues(v, r, s) != expected {
			t.Errorf("mismatch for v: %d r: %d s: %d want: %v", v, r, s, expected)
		}
	}
	minusOne := new(uint256.Int).SubUint64(secp256k1N, 1)
	one := uint256.NewInt(1)
	zero := uint256.NewInt(0)

	// correct v,r,s
	check(true, 0, one, one)
	check(true, 1, one, one)
	// incorrect v, correct r,s,
	check(false, 2, one, one)
	check(false, 3, one, one)

	// incorrect v, combinations of incorrect/correct r,s at lower limit
	check(false, 0, zero, zero)
	check(false, 0, zero, one)
	check(false, 0, one, zero)

	// correct sig with max r,s; high s is accepted
	check(true, 0, minusOne, minusOne)
	// correct v, combinations of incorrect r,s at upper limit
	check(false, 0, secp256k1N, minusOne)
	check(false, 0, minusOne, secp256k1N)
	check(false, 0, secp256k1N, secp256k1N)
}

func checkAddr(t *testing.T, addr0, addr1 common.Address) {
	t.Helper()
	if addr0 != addr1 {
		t.Fatalf("address mismatch: want: %x have: %x", addr0, addr1)
	}
}

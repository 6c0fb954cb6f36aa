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

package types

import (
	"errors"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/devchain/crypto"
)

// signRequests returns one request of each supported type.
func signRequests() []TxRequest {
	chainID := uint64(1337)
	return []TxRequest{
		LegacyTransactionRequest{Nonce: 1, GasPrice: *uint256.NewInt(1), GasLimit: 21000, Kind: Call(testRecipient), Value: *uint256.NewInt(1)},
		LegacyTransactionRequest{Nonce: 2, GasPrice: *uint256.NewInt(1), GasLimit: 53000, Kind: Create(), Input: []byte{0x60, 0x80}, ChainID: &chainID},
		EIP2930TransactionRequest{ChainID: chainID, Nonce: 3, GasLimit: 30000, Kind: Call(testRecipient), AccessList: AccessList{{Address: testAlAddr, StorageKeys: []common.Hash{{1}}}}},
		EIP1559TransactionRequest{ChainID: chainID, Nonce: 4, MaxFeePerGas: *uint256.NewInt(2), MaxPriorityFeePerGas: *uint256.NewInt(1), Kind: Create()},
		EIP4844TransactionRequest{ChainID: chainID, Nonce: 5, To: testRecipient, MaxFeePerBlobGas: *uint256.NewInt(1), BlobVersionedHashes: []common.Hash{{0x01}}},
		EIP7702TransactionRequest{ChainID: chainID, Nonce: 6, To: testRecipient, AuthorizationList: []SetCodeAuthorization{{Address: testAlAddr}}},
	}
}

func TestSignTxRecover(t *testing.T) {
	for i, req := range signRequests() {
		tx, err := SignTx(req, testKey)
		if err != nil {
			t.Fatalf("req %d: sign error: %v", i, err)
		}
		if tx.Type() != req.Type() {
			t.Fatalf("req %d: type %d, want %d", i, tx.Type(), req.Type())
		}
		from, err := tx.Recover()
		if err != nil {
			t.Fatalf("req %d: recover error: %v", i, err)
		}
		if from != testAddr {
			t.Fatalf("req %d: recovered %x, want %x", i, from, testAddr)
		}
		if tx.Request().SigningHash() != req.SigningHash() {
			t.Fatalf("req %d: signing hash of signed transaction differs", i)
		}
		if !tx.Kind().Equal(RequestKind(req)) {
			t.Fatalf("req %d: kind %v, want %v", i, tx.Kind(), RequestKind(req))
		}
		// Signing is deterministic.
		again := MustSignTx(req, testKey)
		if again.Hash() != tx.Hash() {
			t.Fatalf("req %d: signing is not deterministic", i)
		}
	}
}

func TestTypedSignatureParity(t *testing.T) {
	for i, req := range signRequests()[2:] {
		tx := MustSignTx(req, testKey)
		if v := tx.Signature().V; v > 1 {
			t.Fatalf("req %d: typed transaction has v = %d", i, v)
		}
		if chainID, ok := tx.ChainID(); !ok || chainID != 1337 {
			t.Fatalf("req %d: wrong chain ID %d", i, chainID)
		}
	}
}

func TestLegacySigningChainID(t *testing.T) {
	unprotected := MustSignTx(LegacyTransactionRequest{Kind: Call(testRecipient)}, testKey)
	if v := unprotected.Signature().V; v != 27 && v != 28 {
		t.Fatalf("unprotected v = %d", v)
	}
	if unprotected.IsReplayProtected() {
		t.Fatal("unprotected transaction reported as replay protected")
	}

	chainID := uint64(1337)
	protected := MustSignTx(LegacyTransactionRequest{Kind: Call(testRecipient), ChainID: &chainID}, testKey)
	if v := protected.Signature().V; v != 2709 && v != 2710 {
		t.Fatalf("protected v = %d", v)
	}
	if id, ok := protected.ChainID(); !ok || id != chainID {
		t.Fatalf("wrong chain ID: %d", id)
	}
	if !protected.Inner().(*LegacyTransaction).MeetsEIP155(chainID) {
		t.Fatal("signature does not meet EIP-155")
	}
	if unprotected.Request().SigningHash() == protected.Request().SigningHash() {
		t.Fatal("chain ID not part of the signing hash")
	}
	from, err := protected.Recover()
	if err != nil || from != testAddr {
		t.Fatalf("recover: %x %v", from, err)
	}
}

func TestLegacyZeroChainID(t *testing.T) {
	zero := uint64(0)
	withZero := LegacyTransactionRequest{Nonce: 7, GasPrice: *uint256.NewInt(1), GasLimit: 21000, Kind: Call(testRecipient), ChainID: &zero}
	without := withZero
	without.ChainID = nil

	if withZero.SigningHash() != without.SigningHash() {
		t.Fatal("zero chain ID changed the signing hash")
	}
	tx := MustSignTx(withZero, testKey)
	if v := tx.Signature().V; v != 27 && v != 28 {
		t.Fatalf("zero chain ID signed with v = %d", v)
	}
	from, err := tx.Recover()
	if err != nil || from != testAddr {
		t.Fatalf("recover: %x %v", from, err)
	}
}

func TestLegacyChainIDOverflow(t *testing.T) {
	huge := uint64(math.MaxUint64 / 2)
	req := LegacyTransactionRequest{Kind: Call(testRecipient), ChainID: &huge}
	if _, err := SignTx(req, testKey); !errors.Is(err, ErrLegacyChainID) {
		t.Fatalf("SignTx: wrong error %v", err)
	}
	if _, err := WithSignature(req, make([]byte, crypto.SignatureLength)); !errors.Is(err, ErrLegacyChainID) {
		t.Fatalf("WithSignature: wrong error %v", err)
	}

	largest := uint64(maxLegacyChainID)
	tx := MustSignTx(LegacyTransactionRequest{Kind: Call(testRecipient), ChainID: &largest}, testKey)
	if v := tx.Signature().V; v != math.MaxUint64-2 && v != math.MaxUint64-1 {
		t.Fatalf("wrong v for largest chain ID: %d", v)
	}
	from, err := tx.Recover()
	if err != nil || from != testAddr {
		t.Fatalf("recover: %x %v", from, err)
	}
	legacy := tx.Inner().(*LegacyTransaction)
	if !legacy.MeetsEIP155(largest) {
		t.Fatal("largest chain ID does not meet EIP-155")
	}
	// 2*chainID wraps for these and must not match v.
	for _, id := range []uint64{largest + 1, math.MaxUint64} {
		if legacy.MeetsEIP155(id) {
			t.Errorf("chain ID %d matched v = %d", id, legacy.V)
		}
	}
}

func TestInvalidSignatures(t *testing.T) {
	req := EIP1559TransactionRequest{ChainID: 1, Kind: Call(testRecipient)}
	n := new(uint256.Int).Set(crypto.Secp256k1N())

	tests := []struct {
		name string
		tx   *TypedTransaction
	}{
		{"zero", WithRawSignature(req, Signature{})},
		{"zero-r", WithRawSignature(req, Signature{V: 0, S: *uint256.NewInt(1)})},
		{"r-overflow", WithRawSignature(req, Signature{V: 0, R: *n, S: *uint256.NewInt(1)})},
		{"s-overflow", WithRawSignature(req, Signature{V: 1, R: *uint256.NewInt(1), S: *n})},
		{"legacy-v", WithRawSignature(LegacyTransactionRequest{}, Signature{V: 30, R: *uint256.NewInt(1), S: *uint256.NewInt(1)})},
		{"legacy-v-zero", WithRawSignature(LegacyTransactionRequest{}, Signature{V: 0, R: *uint256.NewInt(1), S: *uint256.NewInt(1)})},
		{"typed-v", WithRawSignature(req, Signature{V: 2, R: *uint256.NewInt(1), S: *uint256.NewInt(1)})},
	}
	for _, test := range tests {
		if _, err := test.tx.Recover(); !errors.Is(err, ErrInvalidSig) {
			t.Errorf("%s: wrong error %v", test.name, err)
		}
	}

	if _, err := WithSignature(req, make([]byte, 64)); err == nil {
		t.Error("expected error for short signature")
	}
	sig := make([]byte, 65)
	sig[0], sig[32], sig[64] = 1, 1, 2
	if _, err := WithSignature(req, sig); !errors.Is(err, ErrInvalidSig) {
		t.Errorf("wrong error for recovery id 2: %v", err)
	}
}

// High-s signatures are not normalized away: flipping s to N-s together with
// the parity still recovers the same sender.
func TestHighSAccepted(t *testing.T) {
	req := EIP1559TransactionRequest{ChainID: 1, Nonce: 7, Kind: Call(testRecipient)}
	tx := MustSignTx(req, testKey)
	sig := tx.Signature()

	var flipped Signature
	flipped.V = sig.V ^ 1
	flipped.R = sig.R
	flipped.S.Sub(crypto.Secp256k1N(), &sig.S)

	high := WithRawSignature(req, flipped)
	from, err := high.Recover()
	if err != nil {
		t.Fatalf("recover high-s: %v", err)
	}
	if from != testAddr {
		t.Fatalf("wrong sender: %x", from)
	}
	if high.Hash() == tx.Hash() {
		t.Fatal("malleated signature has the same hash")
	}
}

func TestSetCodeAuthority(t *testing.T) {
	auth, err := SignSetCode(testKey, SetCodeAuthorization{
		ChainID: *uint256.NewInt(1),
		Address: testAlAddr,
		Nonce:   4,
	})
	if err != nil {
		t.Fatal(err)
	}
	authority, err := auth.Authority()
	if err != nil {
		t.Fatalf("authority error: %v", err)
	}
	if authority != testAddr {
		t.Fatalf("wrong authority: have %x, want %x", authority, testAddr)
	}
	// Changing any signed field changes the authority.
	auth.Nonce++
	if other, err := auth.Authority(); err == nil && other == testAddr {
		t.Fatal("authority unchanged after modifying the nonce")
	}
}

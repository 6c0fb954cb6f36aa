// Copyright 2024 The go-ethereum Authors
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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/devchain/crypto"
)

// Signature holds the raw signature values of a transaction.
//
// For legacy transactions V is 27/28, or 2*chainID+35/36 when the signature
// is EIP-155 protected. Typed transactions carry the bare y-parity (0 or 1).
//
// Signature 保存交易的原始签名值。
// 传统交易的 V 为 27/28，或在 EIP-155 保护下为 2*chainID+35/36；类型化交易的 V 为 y 奇偶性（0 或 1）。
type Signature struct {
	V uint64
	R uint256.Int
	S uint256.Int
}

// ImpersonatedSignature is the sentinel signature attached to transactions
// whose sender is asserted rather than recovered. It is not a valid ECDSA
// signature, so normal recovery of such a transaction always fails.
//
// ImpersonatedSignature 是附加到“冒充”交易上的哨兵签名（r = s = v = 0）。
var ImpersonatedSignature = Signature{}

// IsImpersonated reports whether sig is the impersonation sentinel.
func (sig Signature) IsImpersonated() bool {
	return sig.V == 0 && sig.R.IsZero() && sig.S.IsZero()
}

// decodeSignature splits a [R || S || V] signature into its values.
// decodeSignature 将 [R || S || V] 格式的签名拆分为 r、s 和恢复 ID。
func decodeSignature(sig []byte) (r, s uint256.Int, recid byte, err error) {
	if len(sig) != crypto.SignatureLength {
		return r, s, 0, fmt.Errorf("wrong size for signature: got %d, want %d", len(sig), crypto.SignatureLength)
	}
	r.SetBytes(sig[:32])
	s.SetBytes(sig[32:64])
	return r, s, sig[crypto.RecoveryIDOffset], nil
}

// typedRecoveryID validates the y-parity of a typed transaction.
func typedRecoveryID(v uint64) (byte, error) {
	if v > 1 {
		return 0, ErrInvalidSig
	}
	return byte(v), nil
}

// recoverPlain recovers the address which signed sighash with the given
// signature values and recovery id.
//
// recoverPlain 根据签名哈希、r、s 和恢复 ID 恢复签名者地址。
func recoverPlain(sighash common.Hash, r, s *uint256.Int, recid byte) (common.Address, error) {
	if !crypto.ValidateSignatureValues(recid, r, s) {
		return common.Address{}, ErrInvalidSig
	}
	// encode the signature in uncompressed format
	// 以 [R || S || V] 格式组装签名
	sig := make([]byte, crypto.SignatureLength)
	rb, sb := r.Bytes32(), s.Bytes32()
	copy(sig[:32], rb[:])
	copy(sig[32:64], sb[:])
	sig[crypto.RecoveryIDOffset] = recid

	addr, err := crypto.SigToAddress(sighash[:], sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	}
	return addr, nil
}

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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/sunyihoo/devchain/crypto"
)

// MaybeImpersonatedTransaction is a transaction that may carry an asserted
// sender. When the sender is set, the transaction carries
// ImpersonatedSignature and recovery returns the asserted sender without any
// cryptography. A transaction that merely carries the sentinel signature but
// has no asserted sender is recovered normally, and fails.
//
// MaybeImpersonatedTransaction 是可能带有“冒充”发送者的交易。设置发送者时，交易携带
// ImpersonatedSignature，恢复时直接返回该发送者，不做任何密码学运算。
type MaybeImpersonatedTransaction struct {
	tx     *TypedTransaction
	sender *common.Address
}

// NewMaybeImpersonated wraps a regular transaction without an asserted sender.
func NewMaybeImpersonated(tx *TypedTransaction) MaybeImpersonatedTransaction {
	return MaybeImpersonatedTransaction{tx: tx}
}

// Impersonate builds a transaction from req carrying the sentinel signature,
// sent by the given address.
//
// Impersonate 使用哨兵签名从请求构造交易，并断言其发送者。
func Impersonate(req TxRequest, sender common.Address) MaybeImpersonatedTransaction {
	return MaybeImpersonatedTransaction{
		tx:     WithRawSignature(req, ImpersonatedSignature),
		sender: &sender,
	}
}

// ImpersonateTx replaces the signature of tx with the sentinel and asserts
// the given sender.
func ImpersonateTx(tx *TypedTransaction, sender common.Address) MaybeImpersonatedTransaction {
	return Impersonate(tx.inner.unsigned(), sender)
}

// Transaction returns the wrapped transaction.
func (m MaybeImpersonatedTransaction) Transaction() *TypedTransaction {
	return m.tx
}

// IsImpersonated reports whether the sender is asserted rather than recovered.
func (m MaybeImpersonatedTransaction) IsImpersonated() bool {
	return m.sender != nil
}

// ImpersonatedSender returns the asserted sender, if any.
func (m MaybeImpersonatedTransaction) ImpersonatedSender() (common.Address, bool) {
	if m.sender == nil {
		return common.Address{}, false
	}
	return *m.sender, true
}

// Recover returns the asserted sender, or recovers the signer of the wrapped
// transaction.
//
// Recover 返回断言的发送者，否则恢复被包装交易的签名者。
func (m MaybeImpersonatedTransaction) Recover() (common.Address, error) {
	if m.sender != nil {
		return *m.sender, nil
	}
	return m.tx.Recover()
}

// Hash returns the transaction hash. Impersonated transactions all share the
// same signature, so their hash also commits to the sender:
// keccak256(rlp(tx) ++ sender). Typed transactions carry their RLP string
// header here, as in a block body.
//
// Hash 返回交易哈希。被冒充的交易共享同一个签名，因此其哈希还包含发送者地址。
func (m MaybeImpersonatedTransaction) Hash() common.Hash {
	if m.sender == nil {
		return m.tx.Hash()
	}
	enc, err := rlp.EncodeToBytes(m.tx)
	if err != nil {
		// The canonical encoding of a constructed transaction cannot fail.
		panic(err)
	}
	return crypto.Keccak256Hash(enc, m.sender.Bytes())
}

// Copyright 2023 The go-ethereum Authors
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

package txpool

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sunyihoo/devchain/core/types"
	"github.com/sunyihoo/devchain/crypto"
)

// PendingTransaction is a transaction with its sender and hash resolved once
// at construction. The sender is either recovered from the signature or
// asserted through impersonation.
//
// PendingTransaction 是在构造时一次性解析出发送者和哈希的交易。
// 发送者要么从签名中恢复，要么通过冒充断言。
type PendingTransaction struct {
	tx     types.MaybeImpersonatedTransaction
	sender common.Address
	hash   common.Hash
}

// NewPendingTransaction recovers the sender of a signed transaction. No value
// is produced if the signature is invalid.
//
// NewPendingTransaction 恢复已签名交易的发送者。签名无效时不产生任何值。
func NewPendingTransaction(tx *types.TypedTransaction) (*PendingTransaction, error) {
	return newPending(types.NewMaybeImpersonated(tx))
}

// WithImpersonated creates a pending transaction sent by the given address.
// The signature of tx is replaced by the impersonation sentinel; no
// cryptography is involved, so it always succeeds.
//
// WithImpersonated 创建由给定地址发送的待处理交易。交易签名被替换为冒充哨兵，总是成功。
func WithImpersonated(tx *types.TypedTransaction, sender common.Address) *PendingTransaction {
	m := types.ImpersonateTx(tx, sender)
	return &PendingTransaction{tx: m, sender: sender, hash: m.Hash()}
}

func newPending(m types.MaybeImpersonatedTransaction) (*PendingTransaction, error) {
	sender, err := m.Recover()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSender, err)
	}
	return &PendingTransaction{tx: m, sender: sender, hash: m.Hash()}, nil
}

// Hash returns the transaction hash. For impersonated transactions it also
// commits to the sender.
func (p *PendingTransaction) Hash() common.Hash { return p.hash }

// Sender returns the recovered or impersonated sender.
func (p *PendingTransaction) Sender() common.Address { return p.sender }

// Nonce returns the sender account nonce of the transaction.
func (p *PendingTransaction) Nonce() uint64 { return p.tx.Transaction().Nonce() }

// Transaction returns the underlying transaction.
func (p *PendingTransaction) Transaction() *types.TypedTransaction { return p.tx.Transaction() }

// IsImpersonated reports whether the sender was asserted instead of recovered.
func (p *PendingTransaction) IsImpersonated() bool { return p.tx.IsImpersonated() }

// TouchedAddresses returns every address the transaction names: the sender,
// the recipient or the address of the created contract, access list entries,
// and the delegation targets and authorities of set-code authorizations.
// Authorizations whose signature cannot be recovered contribute only their
// target.
//
// TouchedAddresses 返回交易涉及的所有地址：发送者、接收者（或新建合约地址）、访问列表中的地址，
// 以及 set-code 授权的目标地址和授权者。
func (p *PendingTransaction) TouchedAddresses() mapset.Set[common.Address] {
	tx := p.tx.Transaction()
	set := mapset.NewThreadUnsafeSet(p.sender)
	if to := tx.To(); to != nil {
		set.Add(*to)
	} else {
		set.Add(crypto.CreateAddress(p.sender, tx.Nonce()))
	}
	set.Append(tx.AccessList().Addresses()...)
	for _, auth := range tx.AuthorizationList() {
		set.Add(auth.Address)
		if authority, err := auth.Authority(); err == nil {
			set.Add(authority)
		}
	}
	return set
}

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

// Package cheats implements the impersonation capability of a development
// node: transactions sent by an impersonated account are accepted without a
// signature.
package cheats

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/sunyihoo/devchain/core/txpool"
	"github.com/sunyihoo/devchain/core/types"
)

// ErrNotImpersonated is returned when an unsigned transaction is submitted
// for an account that is not impersonated.
var ErrNotImpersonated = errors.New("account is not impersonated")

// Manager tracks the impersonated accounts. It is safe for concurrent use.
//
// Manager 记录被冒充的账户，可安全地并发使用。
type Manager struct {
	accounts mapset.Set[common.Address]
	auto     atomic.Bool // impersonate every account 冒充所有账户
}

// NewManager creates a manager with no impersonated accounts.
func NewManager() *Manager {
	return &Manager{accounts: mapset.NewSet[common.Address]()}
}

// Impersonate allows unsigned transactions from addr. It reports whether the
// account was newly added.
//
// Impersonate 允许来自 addr 的未签名交易。返回该账户是否为新添加。
func (m *Manager) Impersonate(addr common.Address) bool {
	added := m.accounts.Add(addr)
	if added {
		log.Debug("Impersonating account", "addr", addr)
	}
	return added
}

// StopImpersonating revokes impersonation of addr. It reports whether the
// account was impersonated.
func (m *Manager) StopImpersonating(addr common.Address) bool {
	if !m.accounts.Contains(addr) {
		return false
	}
	m.accounts.Remove(addr)
	log.Debug("Stopped impersonating account", "addr", addr)
	return true
}

// SetAutoImpersonate toggles impersonation of every account.
func (m *Manager) SetAutoImpersonate(enabled bool) {
	if m.auto.Swap(enabled) != enabled {
		log.Debug("Auto-impersonation toggled", "enabled", enabled)
	}
}

// AutoImpersonate reports whether every account is impersonated.
func (m *Manager) AutoImpersonate() bool {
	return m.auto.Load()
}

// IsImpersonated reports whether unsigned transactions from addr are accepted.
func (m *Manager) IsImpersonated(addr common.Address) bool {
	return m.auto.Load() || m.accounts.Contains(addr)
}

// ImpersonatedAccounts returns the explicitly impersonated accounts, sorted.
func (m *Manager) ImpersonatedAccounts() []common.Address {
	accounts := m.accounts.ToSlice()
	slices.SortFunc(accounts, func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return accounts
}

// PendingTransaction builds the pending transaction of an unsigned request
// sent by an impersonated account.
//
// PendingTransaction 为被冒充账户发送的未签名请求构造待处理交易。
func (m *Manager) PendingTransaction(req types.TxRequest, sender common.Address) (*txpool.PendingTransaction, error) {
	if !m.IsImpersonated(sender) {
		return nil, fmt.Errorf("%w: %s", ErrNotImpersonated, sender)
	}
	return txpool.WithImpersonated(types.WithRawSignature(req, types.ImpersonatedSignature), sender), nil
}

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

package cheats

import (
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/devchain/core/types"
)

func TestImpersonation(t *testing.T) {
	m := NewManager()
	a, b := common.Address{0xa}, common.Address{0xb}

	require.False(t, m.IsImpersonated(a))
	require.True(t, m.Impersonate(a))
	require.False(t, m.Impersonate(a))
	require.True(t, m.IsImpersonated(a))
	require.False(t, m.IsImpersonated(b))

	require.True(t, m.Impersonate(b))
	require.Equal(t, []common.Address{a, b}, m.ImpersonatedAccounts())

	require.True(t, m.StopImpersonating(a))
	require.False(t, m.StopImpersonating(a))
	require.False(t, m.IsImpersonated(a))
	require.Equal(t, []common.Address{b}, m.ImpersonatedAccounts())
}

func TestAutoImpersonate(t *testing.T) {
	m := NewManager()
	addr := common.Address{0x1}
	m.SetAutoImpersonate(true)
	require.True(t, m.AutoImpersonate())
	require.True(t, m.IsImpersonated(addr))
	require.Empty(t, m.ImpersonatedAccounts())

	m.SetAutoImpersonate(false)
	require.False(t, m.IsImpersonated(addr))
}

func TestPendingTransaction(t *testing.T) {
	m := NewManager()
	sender := common.Address{0x42}
	req := types.EIP1559TransactionRequest{ChainID: 1, Kind: types.Call(common.Address{0x1})}

	_, err := m.PendingTransaction(req, sender)
	require.ErrorIs(t, err, ErrNotImpersonated)

	m.Impersonate(sender)
	pending, err := m.PendingTransaction(req, sender)
	require.NoError(t, err)
	require.Equal(t, sender, pending.Sender())
	require.True(t, pending.IsImpersonated())
	require.True(t, pending.Transaction().Signature().IsImpersonated())
	require.Equal(t, types.Impersonate(req, sender).Hash(), pending.Hash())
}

func TestConcurrentImpersonation(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr := common.Address{byte(i)}
			m.Impersonate(addr)
			m.IsImpersonated(addr)
			m.SetAutoImpersonate(i%2 == 0)
		}(i)
	}
	wg.Wait()
	require.Len(t, m.ImpersonatedAccounts(), 16)
}

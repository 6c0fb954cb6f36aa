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
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/devchain/core/types"
	"github.com/sunyihoo/devchain/crypto"
)

var (
	testKey, _ = crypto.HexToKey("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	testAddr   = common.HexToAddress("0x71562b71999873db5b286df957af199ec94617f7")
	recipient  = common.HexToAddress("0x61815774383099e24810ab832a5b2a5425c154d5")
)

func transaction(nonce uint64) *types.TypedTransaction {
	return types.MustSignTx(types.EIP1559TransactionRequest{
		ChainID:      1337,
		Nonce:        nonce,
		MaxFeePerGas: *uint256.NewInt(1),
		GasLimit:     21000,
		Kind:         types.Call(recipient),
	}, testKey)
}

func TestNewPendingTransaction(t *testing.T) {
	tx := transaction(3)
	pending, err := NewPendingTransaction(tx)
	require.NoError(t, err)
	require.Equal(t, testAddr, pending.Sender())
	require.Equal(t, tx.Hash(), pending.Hash())
	require.Equal(t, uint64(3), pending.Nonce())
	require.Equal(t, tx.Hash(), pending.Transaction().Hash())
	require.False(t, pending.IsImpersonated())
}

func TestNewPendingTransactionInvalid(t *testing.T) {
	tx := types.WithRawSignature(types.LegacyTransactionRequest{Kind: types.Create()}, types.Signature{V: 27})
	pending, err := NewPendingTransaction(tx)
	require.Nil(t, pending)
	require.ErrorIs(t, err, ErrInvalidSender)
	require.ErrorIs(t, err, types.ErrInvalidSig)
}

func TestWithImpersonated(t *testing.T) {
	tx := transaction(0)
	a := WithImpersonated(tx, common.Address{0xa})
	b := WithImpersonated(tx, common.Address{0xb})

	require.True(t, a.IsImpersonated())
	require.Equal(t, common.Address{0xa}, a.Sender())
	require.Equal(t, common.Address{0xb}, b.Sender())
	require.NotEqual(t, a.Hash(), b.Hash())
	require.NotEqual(t, tx.Hash(), a.Hash())
	require.True(t, a.Transaction().Signature().IsImpersonated())
}

func TestTouchedAddresses(t *testing.T) {
	other := common.HexToAddress("0xde0b295669a9fd93d5f28d9ec85e40f4cb697bae")

	call := types.MustSignTx(types.EIP2930TransactionRequest{
		ChainID:    1,
		Kind:       types.Call(recipient),
		AccessList: types.AccessList{{Address: other}, {Address: recipient}},
	}, testKey)
	pending, err := NewPendingTransaction(call)
	require.NoError(t, err)
	touched := pending.TouchedAddresses()
	require.Equal(t, 3, touched.Cardinality())
	require.True(t, touched.Contains(testAddr, recipient, other))

	create := types.MustSignTx(types.LegacyTransactionRequest{Kind: types.Create()}, testKey)
	pending, err = NewPendingTransaction(create)
	require.NoError(t, err)
	touched = pending.TouchedAddresses()
	require.Equal(t, 2, touched.Cardinality())
	require.True(t, touched.Contains(common.HexToAddress("0x3a220f351252089d385b29beca14e27f204c296a")))

	auth, err := types.SignSetCode(testKey, types.SetCodeAuthorization{ChainID: *uint256.NewInt(1), Address: other})
	require.NoError(t, err)
	setcode := WithImpersonated(types.MustSignTx(types.EIP7702TransactionRequest{
		ChainID:           1,
		To:                recipient,
		AuthorizationList: []types.SetCodeAuthorization{auth},
	}, testKey), common.Address{0x1})
	touched = setcode.TouchedAddresses()
	require.True(t, touched.Contains(common.Address{0x1}, recipient, other, testAddr))
	require.Equal(t, 4, touched.Cardinality())
}

func TestRecoverBatch(t *testing.T) {
	var txs []*types.TypedTransaction
	for i := uint64(0); i < 20; i++ {
		txs = append(txs, transaction(i))
	}
	r := NewRecoverer(4, 0)
	pending, err := r.RecoverBatch(context.Background(), txs)
	require.NoError(t, err)
	require.Len(t, pending, len(txs))
	for i, p := range pending {
		require.Equal(t, txs[i].Hash(), p.Hash())
		require.Equal(t, testAddr, p.Sender())
	}
	require.Equal(t, len(txs), r.Cached())

	// Cached senders are served without recovery.
	again, err := r.RecoverBatch(context.Background(), txs)
	require.NoError(t, err)
	require.Equal(t, pending[7].Sender(), again[7].Sender())

	r.Purge()
	require.Zero(t, r.Cached())
}

func TestRecoverBatchInvalid(t *testing.T) {
	bad := types.WithRawSignature(types.EIP1559TransactionRequest{ChainID: 1, Nonce: 99}, types.Signature{V: 1})
	txs := []*types.TypedTransaction{transaction(0), transaction(1), bad, transaction(3)}

	pending, err := NewRecoverer(2, 16).RecoverBatch(context.Background(), txs)
	require.Nil(t, pending)
	require.ErrorIs(t, err, ErrInvalidSender)
	require.Contains(t, err.Error(), "transaction 2")
}

func TestRecoverBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRecoverer(1, 16).RecoverBatch(ctx, []*types.TypedTransaction{transaction(0)})
	require.True(t, errors.Is(err, context.Canceled), "unexpected error %v", err)
}

func TestRecoverRaw(t *testing.T) {
	var raw []byte
	var want []common.Hash
	for i := uint64(0); i < 3; i++ {
		tx := transaction(i)
		enc, err := tx.MarshalBinary()
		require.NoError(t, err)
		raw = append(raw, enc...)
		want = append(want, tx.Hash())
	}
	pending, err := NewRecoverer(0, 0).RecoverRaw(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for i := range want {
		require.Equal(t, want[i], pending[i].Hash())
	}

	// Trailing garbage fails the whole batch.
	_, err = NewRecoverer(0, 0).RecoverRaw(context.Background(), append(raw, 0x05, 0xc0))
	require.ErrorIs(t, err, types.ErrTxTypeNotSupported)
}

func TestRecoverRawOversized(t *testing.T) {
	tx := types.MustSignTx(types.EIP1559TransactionRequest{
		ChainID: 1,
		Kind:    types.Create(),
		Input:   make([]byte, txMaxSize),
	}, testKey)
	enc, err := tx.MarshalBinary()
	require.NoError(t, err)
	_, err = NewRecoverer(0, 0).RecoverRaw(context.Background(), enc)
	require.ErrorIs(t, err, ErrOversizedData)
}

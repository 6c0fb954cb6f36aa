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
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// TransactionEssentials is a flattened, variant-independent view of a
// transaction. Fields that only some variants carry are nil when absent.
//
// TransactionEssentials 是与交易类型无关的扁平视图。只有部分类型才有的字段在缺失时为 nil。
type TransactionEssentials struct {
	Kind                 TxKind          `json:"to"`
	Input                hexutil.Bytes   `json:"input"`
	Nonce                hexutil.Uint64  `json:"nonce"`
	GasLimit             hexutil.Uint64  `json:"gas"`
	GasPrice             *hexutil.U256   `json:"gasPrice,omitempty"`
	MaxFeePerGas         *hexutil.U256   `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.U256   `json:"maxPriorityFeePerGas,omitempty"`
	MaxFeePerBlobGas     *hexutil.U256   `json:"maxFeePerBlobGas,omitempty"`
	BlobVersionedHashes  []common.Hash   `json:"blobVersionedHashes,omitempty"`
	Value                hexutil.U256    `json:"value"`
	ChainID              *hexutil.Uint64 `json:"chainId,omitempty"`
	AccessList           AccessList      `json:"accessList"`
}

// Essentials returns the flattened view of the transaction. Legacy and
// EIP-2930 transactions report a gas price; fee-market transactions report
// their fee caps instead.
//
// Essentials 返回交易的扁平视图。传统和 EIP-2930 交易给出 gasPrice，费用市场交易给出费用上限。
func (tx *TypedTransaction) Essentials() TransactionEssentials {
	ess := TransactionEssentials{
		Kind:       tx.Kind(),
		Input:      tx.Data(),
		Nonce:      hexutil.Uint64(tx.Nonce()),
		GasLimit:   hexutil.Uint64(tx.GasLimit()),
		Value:      hexutil.U256(*tx.inner.value()),
		AccessList: tx.AccessList(),
	}
	if ess.AccessList == nil {
		ess.AccessList = AccessList{}
	}
	if chainID, ok := tx.ChainID(); ok {
		ess.ChainID = (*hexutil.Uint64)(&chainID)
	}
	if tx.IsDynamicFee() {
		ess.MaxFeePerGas = (*hexutil.U256)(tx.MaxFeePerGas())
		ess.MaxPriorityFeePerGas = (*hexutil.U256)(tx.MaxPriorityFeePerGas())
	} else {
		ess.GasPrice = (*hexutil.U256)(tx.GasPrice())
	}
	if blobtx, ok := tx.inner.(*EIP4844Transaction); ok {
		ess.MaxFeePerBlobGas = (*hexutil.U256)(new(uint256.Int).Set(&blobtx.MaxFeePerBlobGas))
		ess.BlobVersionedHashes = copyHashes(blobtx.BlobVersionedHashes)
	}
	return ess
}

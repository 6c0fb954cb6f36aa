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

package core

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/devchain/core/txpool"
	"github.com/sunyihoo/devchain/core/types"
)

// TxEnv is the normalized view of a transaction handed to the execution
// engine. Fee fields that a transaction type does not carry are nil.
//
// TxEnv 是交给执行引擎的交易规范化视图。交易类型不具备的费用字段为 nil。
type TxEnv struct {
	Caller            common.Address               // 发送地址
	TransactTo        types.TxKind                 // 调用或创建
	Nonce             uint64                       // nonce 值
	GasLimit          uint64                       // Gas 限制
	GasPrice          *uint256.Int                 // Gas 价格；费用市场交易为费用上限
	GasPriorityFee    *uint256.Int                 // Gas 小费上限（EIP-1559）
	Value             *uint256.Int                 // 转账金额
	Data              []byte                       // 数据
	ChainID           *uint64                      // 链 ID，未受重放保护的传统交易为 nil
	AccessList        types.AccessList             // 访问列表（EIP-2930）
	BlobHashes        []common.Hash                // Blob 哈希（EIP-4844）
	MaxFeePerBlobGas  *uint256.Int                 // Blob Gas 费用上限（EIP-4844）
	AuthorizationList []types.SetCodeAuthorization // 代码授权（EIP-7702）
}

// NewTxEnv converts a pending transaction into a TxEnv. For fee-market
// transactions GasPrice holds the max fee per gas and GasPriorityFee the max
// priority fee; the effective price is left to the engine.
//
// NewTxEnv 将待处理交易转换为 TxEnv。
func NewTxEnv(pending *txpool.PendingTransaction) *TxEnv {
	tx := pending.Transaction()
	env := &TxEnv{
		Caller:            pending.Sender(),          // 恢复或冒充的发送者
		TransactTo:        tx.Kind(),                 // 交易的目标
		Nonce:             tx.Nonce(),                // 交易的 nonce
		GasLimit:          tx.GasLimit(),             // 交易的 Gas 限制
		GasPrice:          tx.GasPrice(),             // 交易的 Gas 价格
		GasPriorityFee:    tx.MaxPriorityFeePerGas(), // 交易的 Gas 小费上限
		Value:             tx.Value(),                // 交易的转账金额
		Data:              tx.Data(),                 // 交易的数据
		AccessList:        tx.AccessList(),           // 交易的访问列表
		BlobHashes:        tx.BlobVersionedHashes(),  // 交易的 Blob 哈希
		MaxFeePerBlobGas:  tx.MaxFeePerBlobGas(),     // 交易的 Blob Gas 费用上限
		AuthorizationList: tx.AuthorizationList(),    // 交易的代码授权
	}
	if chainID, ok := tx.ChainID(); ok {
		env.ChainID = &chainID
	}
	return env
}

// Copyright 2021 The go-ethereum Authors
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

package ethapi

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/devchain/core/types"
)

var (
	// ErrAmbiguousRequest is returned when the fields of a request match none
	// or conflicting transaction types.
	ErrAmbiguousRequest = errors.New("ambiguous transaction request")

	errDataInputMismatch = errors.New(`both "data" and "input" are set and not equal. Please use "input" to pass transaction call data`)
	errMissingRecipient  = errors.New("transaction type requires a recipient")
)

// TransactionArgs represents the arguments to construct a new transaction
// or a message call.
// TransactionArgs 表示构造新交易或消息调用的参数。
type TransactionArgs struct {
	From                 *common.Address `json:"from"`                 // Sender address. 发送者地址。
	To                   *common.Address `json:"to"`                   // Recipient address. Omitted if contract creation. 接收者地址。如果创建合约，则省略。
	Gas                  *hexutil.Uint64 `json:"gas"`                  // Gas limit. 交易的 Gas 上限。
	GasPrice             *hexutil.U256   `json:"gasPrice"`             // Gas price for legacy transactions. 传统交易的 Gas 价格。
	MaxFeePerGas         *hexutil.U256   `json:"maxFeePerGas"`         // Maximum fee per unit of gas willing to pay (EIP-1559). 愿意支付的每单位 Gas 的最高费用 (EIP-1559)。
	MaxPriorityFeePerGas *hexutil.U256   `json:"maxPriorityFeePerGas"` // Fee per unit of gas to reward the miner (EIP-1559). 奖励矿工的每单位 Gas 的费用 (EIP-1559)。
	Value                *hexutil.U256   `json:"value"`                // Amount of ether to transfer. 要转移的以太币数量。
	Nonce                *hexutil.Uint64 `json:"nonce"`                // Transaction nonce. 交易的 Nonce 值。

	// We accept "data" and "input" for backwards-compatibility reasons.
	// "input" is the newer name and should be preferred by clients.
	// 为了向后兼容，我们接受 "data" 和 "input"。"input" 是较新的名称，客户端应优先使用。
	Data  *hexutil.Bytes `json:"data"`
	Input *hexutil.Bytes `json:"input"`

	// Introduced by AccessListTxType transaction.
	// 由 AccessListTxType 交易引入。
	AccessList *types.AccessList `json:"accessList,omitempty"`
	ChainID    *hexutil.Uint64   `json:"chainId,omitempty"`

	// Explicit EIP-2718 type. Without it the type is inferred from the fee
	// fields that are present.
	Type *hexutil.Uint64 `json:"type,omitempty"`

	// For BlobTxType
	BlobFeeCap *hexutil.U256 `json:"maxFeePerBlobGas"`
	BlobHashes []common.Hash `json:"blobVersionedHashes,omitempty"`

	// For SetCodeTxType
	AuthorizationList []types.SetCodeAuthorization `json:"authorizationList"`
}

// data retrieves the transaction calldata. Input field is preferred.
// data 方法检索交易的 calldata。建议优先使用 Input 字段。
func (args *TransactionArgs) data() []byte {
	if args.Input != nil {
		return *args.Input
	}
	if args.Data != nil {
		return *args.Data
	}
	return nil
}

func (args *TransactionArgs) nonce() uint64 {
	if args.Nonce == nil {
		return 0
	}
	return uint64(*args.Nonce)
}

func (args *TransactionArgs) gas() uint64 {
	if args.Gas == nil {
		return 0
	}
	return uint64(*args.Gas)
}

func (args *TransactionArgs) chainID() uint64 {
	if args.ChainID == nil {
		return 0
	}
	return uint64(*args.ChainID)
}

func (args *TransactionArgs) accessList() types.AccessList {
	if args.AccessList == nil {
		return types.AccessList{}
	}
	return *args.AccessList
}

func (args *TransactionArgs) kind() types.TxKind {
	if args.To == nil {
		return types.Create()
	}
	return types.Call(*args.To)
}

// u256 dereferences an optional quantity, defaulting to zero.
func u256(x *hexutil.U256) uint256.Int {
	if x == nil {
		return uint256.Int{}
	}
	return uint256.Int(*x)
}

// txType selects the transaction type for the request. The arms are tried in
// order and the first match wins; a request matching none is ambiguous.
//
// txType 为请求选择交易类型。按顺序匹配，第一个匹配的分支生效；没有匹配则请求存在歧义。
func (args *TransactionArgs) txType() (uint8, error) {
	var (
		hasPrice  = args.GasPrice != nil
		hasFeeCap = args.MaxFeePerGas != nil
		hasTipCap = args.MaxPriorityFeePerGas != nil
		hasList   = args.AccessList != nil
		typed     = args.Type != nil
	)
	var typ uint64
	if typed {
		typ = uint64(*args.Type)
	}
	switch {
	// EIP-4844 and EIP-7702 are only selected explicitly.
	case typed && (typ == types.BlobTxType || typ == types.SetCodeTxType) && !hasPrice:
		if args.To == nil {
			return 0, fmt.Errorf("%w: type %d", errMissingRecipient, typ)
		}
		return uint8(typ), nil

	case typed && typ == types.LegacyTxType && !hasFeeCap && !hasTipCap && !hasList,
		!typed && hasPrice && !hasFeeCap && !hasTipCap && !hasList:
		return types.LegacyTxType, nil

	case typed && typ == types.AccessListTxType && !hasFeeCap && !hasTipCap,
		!typed && !hasFeeCap && !hasTipCap && hasList:
		return types.AccessListTxType, nil

	case typed && typ == types.DynamicFeeTxType && !hasPrice,
		!typed && !hasPrice && hasFeeCap,
		!typed && !hasPrice && hasTipCap,
		!typed && !hasPrice && !hasFeeCap && !hasTipCap && !hasList:
		return types.DynamicFeeTxType, nil
	}
	return 0, ErrAmbiguousRequest
}

// IntoTypedRequest classifies the arguments into an unsigned request of a
// single transaction type. Missing numeric fields default to zero and a
// missing recipient means contract creation.
//
// IntoTypedRequest 将参数归类为单一交易类型的未签名请求。缺失的数值字段默认为零，
// 缺失的接收者表示合约创建。
func (args *TransactionArgs) IntoTypedRequest() (types.TxRequest, error) {
	if args.Data != nil && args.Input != nil && !bytes.Equal(*args.Data, *args.Input) {
		return nil, errDataInputMismatch
	}
	typ, err := args.txType()
	if err != nil {
		return nil, err
	}
	switch typ {
	case types.LegacyTxType:
		req := types.LegacyTransactionRequest{
			Nonce:    args.nonce(),
			GasPrice: u256(args.GasPrice),
			GasLimit: args.gas(),
			Kind:     args.kind(),
			Value:    u256(args.Value),
			Input:    args.data(),
		}
		// Chain ID zero signs without replay protection.
		if args.ChainID != nil && *args.ChainID != 0 {
			chainID := uint64(*args.ChainID)
			req.ChainID = &chainID
		}
		return req, nil

	case types.AccessListTxType:
		return types.EIP2930TransactionRequest{
			ChainID:    args.chainID(),
			Nonce:      args.nonce(),
			GasPrice:   u256(args.GasPrice),
			GasLimit:   args.gas(),
			Kind:       args.kind(),
			Value:      u256(args.Value),
			Input:      args.data(),
			AccessList: args.accessList(),
		}, nil

	case types.DynamicFeeTxType:
		return types.EIP1559TransactionRequest{
			ChainID:              args.chainID(),
			Nonce:                args.nonce(),
			MaxPriorityFeePerGas: u256(args.MaxPriorityFeePerGas),
			MaxFeePerGas:         u256(args.MaxFeePerGas),
			GasLimit:             args.gas(),
			Kind:                 args.kind(),
			Value:                u256(args.Value),
			Input:                args.data(),
			AccessList:           args.accessList(),
		}, nil

	case types.BlobTxType:
		return types.EIP4844TransactionRequest{
			ChainID:              args.chainID(),
			Nonce:                args.nonce(),
			MaxPriorityFeePerGas: u256(args.MaxPriorityFeePerGas),
			MaxFeePerGas:         u256(args.MaxFeePerGas),
			GasLimit:             args.gas(),
			To:                   *args.To,
			Value:                u256(args.Value),
			Input:                args.data(),
			AccessList:           args.accessList(),
			MaxFeePerBlobGas:     u256(args.BlobFeeCap),
			BlobVersionedHashes:  args.BlobHashes,
		}, nil

	default: // types.SetCodeTxType
		authList := []types.SetCodeAuthorization{}
		if args.AuthorizationList != nil {
			authList = args.AuthorizationList
		}
		return types.EIP7702TransactionRequest{
			ChainID:              args.chainID(),
			Nonce:                args.nonce(),
			MaxPriorityFeePerGas: u256(args.MaxPriorityFeePerGas),
			MaxFeePerGas:         u256(args.MaxFeePerGas),
			GasLimit:             args.gas(),
			To:                   *args.To,
			Value:                u256(args.Value),
			Input:                args.data(),
			AccessList:           args.accessList(),
			AuthorizationList:    authList,
		}, nil
	}
}

// IsEIP4844 returns an indicator if the args contains EIP4844 fields.
// IsEIP4844 方法返回一个指标，指示参数是否包含 EIP-4844 相关的字段。
func (args *TransactionArgs) IsEIP4844() bool {
	return args.BlobHashes != nil || args.BlobFeeCap != nil
}

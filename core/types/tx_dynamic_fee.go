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

package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// EIP1559Transaction represents an EIP-1559 transaction.
// EIP1559Transaction 表示 EIP-1559 动态费用交易。
type EIP1559Transaction struct {
	ChainID              uint64
	Nonce                uint64
	MaxPriorityFeePerGas uint256.Int // a.k.a. gasTipCap 小费上限
	MaxFeePerGas         uint256.Int // a.k.a. gasFeeCap 费用上限
	GasLimit             uint64
	Kind                 TxKind
	Value                uint256.Int
	Input                []byte
	AccessList           AccessList

	// Signature values
	// 签名值
	V uint64 // y-parity
	R uint256.Int
	S uint256.Int
}

// copy creates a deep copy of the transaction data.
// copy 创建交易数据的深拷贝。
func (tx *EIP1559Transaction) copy() TxData {
	cpy := *tx
	cpy.Input = common.CopyBytes(tx.Input)
	cpy.AccessList = tx.AccessList.copy()
	return &cpy
}

// accessors for innerTx.
func (tx *EIP1559Transaction) txType() byte            { return DynamicFeeTxType }
func (tx *EIP1559Transaction) chainID() (uint64, bool) { return tx.ChainID, true }
func (tx *EIP1559Transaction) accessList() AccessList  { return tx.AccessList }
func (tx *EIP1559Transaction) data() []byte            { return tx.Input }
func (tx *EIP1559Transaction) gas() uint64             { return tx.GasLimit }
func (tx *EIP1559Transaction) gasPrice() *uint256.Int  { return &tx.MaxFeePerGas }
func (tx *EIP1559Transaction) gasTipCap() *uint256.Int { return &tx.MaxPriorityFeePerGas }
func (tx *EIP1559Transaction) gasFeeCap() *uint256.Int { return &tx.MaxFeePerGas }
func (tx *EIP1559Transaction) value() *uint256.Int     { return &tx.Value }
func (tx *EIP1559Transaction) nonce() uint64           { return tx.Nonce }
func (tx *EIP1559Transaction) kind() TxKind            { return tx.Kind }

func (tx *EIP1559Transaction) signature() Signature {
	return Signature{V: tx.V, R: tx.R, S: tx.S}
}

func (tx *EIP1559Transaction) recoveryID() (byte, error) {
	return typedRecoveryID(tx.V)
}

func (tx *EIP1559Transaction) unsigned() TxRequest {
	return EIP1559TransactionRequest{
		ChainID:              tx.ChainID,
		Nonce:                tx.Nonce,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		MaxFeePerGas:         tx.MaxFeePerGas,
		GasLimit:             tx.GasLimit,
		Kind:                 tx.Kind,
		Value:                tx.Value,
		Input:                tx.Input,
		AccessList:           tx.AccessList,
	}
}

func (tx *EIP1559Transaction) payloadSize() (size uint64) {
	size += intSize(tx.ChainID)
	size += intSize(tx.Nonce)
	size += u256Size(&tx.MaxPriorityFeePerGas)
	size += u256Size(&tx.MaxFeePerGas)
	size += intSize(tx.GasLimit)
	size += tx.Kind.encodedSize()
	size += u256Size(&tx.Value)
	size += rlp.BytesSize(tx.Input)
	size += tx.AccessList.encodedSize()
	size += intSize(tx.V)
	size += u256Size(&tx.R)
	size += u256Size(&tx.S)
	return size
}

func (tx *EIP1559Transaction) decode(input []byte) error {
	if err := rlp.DecodeBytes(input, tx); err != nil {
		return err
	}
	if tx.V > 1 {
		return errInvalidYParity
	}
	return nil
}

// Hash returns keccak256(0x02 ++ rlp(signed fields)).
func (tx *EIP1559Transaction) Hash() common.Hash {
	return prefixedRlpHash(DynamicFeeTxType, tx)
}

// Recover returns the sender of the transaction.
func (tx *EIP1559Transaction) Recover() (common.Address, error) {
	return recoverSender(tx)
}

// Size returns the encoded length of the transaction, including the type byte.
func (tx *EIP1559Transaction) Size() uint64 {
	return typedSize(tx.payloadSize())
}

// EIP1559TransactionRequest is the unsigned form of an EIP-1559 transaction.
// EIP1559TransactionRequest 是 EIP-1559 交易的未签名形式。
type EIP1559TransactionRequest struct {
	ChainID              uint64
	Nonce                uint64
	MaxPriorityFeePerGas uint256.Int
	MaxFeePerGas         uint256.Int
	GasLimit             uint64
	Kind                 TxKind
	Value                uint256.Int
	Input                []byte
	AccessList           AccessList
}

// Type implements TxRequest.
func (req EIP1559TransactionRequest) Type() uint8 { return DynamicFeeTxType }

// SigningHash returns keccak256(0x02 ++ rlp(unsigned fields)).
func (req EIP1559TransactionRequest) SigningHash() common.Hash {
	return prefixedRlpHash(DynamicFeeTxType, req)
}

func (req EIP1559TransactionRequest) destination() TxKind { return req.Kind }

func (req EIP1559TransactionRequest) signatureV(recid byte) uint64 { return uint64(recid) }

func (req EIP1559TransactionRequest) withSignature(v uint64, r, s *uint256.Int) TxData {
	return &EIP1559Transaction{
		ChainID:              req.ChainID,
		Nonce:                req.Nonce,
		MaxPriorityFeePerGas: req.MaxPriorityFeePerGas,
		MaxFeePerGas:         req.MaxFeePerGas,
		GasLimit:             req.GasLimit,
		Kind:                 req.Kind,
		Value:                req.Value,
		Input:                req.Input,
		AccessList:           req.AccessList,
		V:                    v,
		R:                    *r,
		S:                    *s,
	}
}

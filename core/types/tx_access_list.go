// Copyright 2020 The go-ethereum Authors
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

// AccessList is an EIP-2930 access list.
// AccessList 是 EIP-2930 访问列表。
type AccessList []AccessTuple

// AccessTuple is the element type of an access list.
// AccessTuple 是访问列表的元素类型。
type AccessTuple struct {
	Address     common.Address `json:"address"`     // 地址
	StorageKeys []common.Hash  `json:"storageKeys"` // 存储键列表
}

// StorageKeys returns the total number of storage keys in the access list.
// StorageKeys 返回访问列表中存储键的总数。
func (al AccessList) StorageKeys() int {
	sum := 0
	for _, tuple := range al {
		sum += len(tuple.StorageKeys)
	}
	return sum
}

// Addresses returns the addresses named by the access list, in order.
func (al AccessList) Addresses() []common.Address {
	addrs := make([]common.Address, len(al))
	for i, tuple := range al {
		addrs[i] = tuple.Address
	}
	return addrs
}

func (al AccessList) copy() AccessList {
	if al == nil {
		return nil
	}
	cpy := make(AccessList, len(al))
	for i, tuple := range al {
		cpy[i] = AccessTuple{
			Address:     tuple.Address,
			StorageKeys: copyHashes(tuple.StorageKeys),
		}
	}
	return cpy
}

// encodedSize is the length of the RLP encoding of the list.
func (al AccessList) encodedSize() uint64 {
	var size uint64
	for _, tuple := range al {
		size += rlp.ListSize(addressSize + hashesSize(tuple.StorageKeys))
	}
	return rlp.ListSize(size)
}

// EIP2930Transaction is the data of EIP-2930 access list transactions.
// EIP2930Transaction 是 EIP-2930 访问列表交易的数据。
type EIP2930Transaction struct {
	ChainID    uint64      // destination chain ID 目标链 ID
	Nonce      uint64      // nonce of sender account 发送者账户的 nonce
	GasPrice   uint256.Int // wei per gas 每单位 Gas 的价格
	GasLimit   uint64      // gas limit Gas 限制
	Kind       TxKind      // call or contract creation 调用或合约创建
	Value      uint256.Int // wei amount Wei 金额
	Input      []byte      // contract invocation input data 合约调用的输入数据
	AccessList AccessList  // EIP-2930 access list EIP-2930 访问列表
	V          uint64      // y-parity
	R          uint256.Int
	S          uint256.Int
}

// copy creates a deep copy of the transaction data.
// copy 创建交易数据的深拷贝。
func (tx *EIP2930Transaction) copy() TxData {
	cpy := *tx
	cpy.Input = common.CopyBytes(tx.Input)
	cpy.AccessList = tx.AccessList.copy()
	return &cpy
}

// accessors for innerTx.
func (tx *EIP2930Transaction) txType() byte            { return AccessListTxType }
func (tx *EIP2930Transaction) chainID() (uint64, bool) { return tx.ChainID, true }
func (tx *EIP2930Transaction) accessList() AccessList  { return tx.AccessList }
func (tx *EIP2930Transaction) data() []byte            { return tx.Input }
func (tx *EIP2930Transaction) gas() uint64             { return tx.GasLimit }
func (tx *EIP2930Transaction) gasPrice() *uint256.Int  { return &tx.GasPrice }
func (tx *EIP2930Transaction) gasTipCap() *uint256.Int { return nil }
func (tx *EIP2930Transaction) gasFeeCap() *uint256.Int { return nil }
func (tx *EIP2930Transaction) value() *uint256.Int     { return &tx.Value }
func (tx *EIP2930Transaction) nonce() uint64           { return tx.Nonce }
func (tx *EIP2930Transaction) kind() TxKind            { return tx.Kind }

func (tx *EIP2930Transaction) signature() Signature {
	return Signature{V: tx.V, R: tx.R, S: tx.S}
}

func (tx *EIP2930Transaction) recoveryID() (byte, error) {
	return typedRecoveryID(tx.V)
}

func (tx *EIP2930Transaction) unsigned() TxRequest {
	return EIP2930TransactionRequest{
		ChainID:    tx.ChainID,
		Nonce:      tx.Nonce,
		GasPrice:   tx.GasPrice,
		GasLimit:   tx.GasLimit,
		Kind:       tx.Kind,
		Value:      tx.Value,
		Input:      tx.Input,
		AccessList: tx.AccessList,
	}
}

func (tx *EIP2930Transaction) payloadSize() (size uint64) {
	size += intSize(tx.ChainID)
	size += intSize(tx.Nonce)
	size += u256Size(&tx.GasPrice)
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

func (tx *EIP2930Transaction) decode(input []byte) error {
	if err := rlp.DecodeBytes(input, tx); err != nil {
		return err
	}
	if tx.V > 1 {
		return errInvalidYParity
	}
	return nil
}

// Hash returns keccak256(0x01 ++ rlp(signed fields)).
func (tx *EIP2930Transaction) Hash() common.Hash {
	return prefixedRlpHash(AccessListTxType, tx)
}

// Recover returns the sender of the transaction.
func (tx *EIP2930Transaction) Recover() (common.Address, error) {
	return recoverSender(tx)
}

// Size returns the encoded length of the transaction, including the type byte.
func (tx *EIP2930Transaction) Size() uint64 {
	return typedSize(tx.payloadSize())
}

// EIP2930TransactionRequest is the unsigned form of an EIP-2930 transaction.
// EIP2930TransactionRequest 是 EIP-2930 交易的未签名形式。
type EIP2930TransactionRequest struct {
	ChainID    uint64
	Nonce      uint64
	GasPrice   uint256.Int
	GasLimit   uint64
	Kind       TxKind
	Value      uint256.Int
	Input      []byte
	AccessList AccessList
}

// Type implements TxRequest.
func (req EIP2930TransactionRequest) Type() uint8 { return AccessListTxType }

// SigningHash returns keccak256(0x01 ++ rlp(unsigned fields)).
func (req EIP2930TransactionRequest) SigningHash() common.Hash {
	return prefixedRlpHash(AccessListTxType, req)
}

func (req EIP2930TransactionRequest) destination() TxKind { return req.Kind }

func (req EIP2930TransactionRequest) signatureV(recid byte) uint64 { return uint64(recid) }

func (req EIP2930TransactionRequest) withSignature(v uint64, r, s *uint256.Int) TxData {
	return &EIP2930Transaction{
		ChainID:    req.ChainID,
		Nonce:      req.Nonce,
		GasPrice:   req.GasPrice,
		GasLimit:   req.GasLimit,
		Kind:       req.Kind,
		Value:      req.Value,
		Input:      req.Input,
		AccessList: req.AccessList,
		V:          v,
		R:          *r,
		S:          *s,
	}
}

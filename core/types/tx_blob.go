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

package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// EIP4844Transaction represents an EIP-4844 transaction. Only the canonical
// form is handled here; blobs, commitments and proofs travel separately.
//
// EIP4844Transaction 表示 EIP-4844 Blob 交易。此处只处理规范形式，Blob 数据本身单独传输。
type EIP4844Transaction struct {
	ChainID              uint64
	Nonce                uint64
	MaxPriorityFeePerGas uint256.Int
	MaxFeePerGas         uint256.Int
	GasLimit             uint64
	To                   common.Address // blob transactions cannot create contracts 不能用于创建合约
	Value                uint256.Int
	Input                []byte
	AccessList           AccessList
	MaxFeePerBlobGas     uint256.Int
	BlobVersionedHashes  []common.Hash

	// Signature values
	// 签名值
	V uint64 // y-parity
	R uint256.Int
	S uint256.Int
}

// copy creates a deep copy of the transaction data.
// copy 创建交易数据的深拷贝。
func (tx *EIP4844Transaction) copy() TxData {
	cpy := *tx
	cpy.Input = common.CopyBytes(tx.Input)
	cpy.AccessList = tx.AccessList.copy()
	cpy.BlobVersionedHashes = copyHashes(tx.BlobVersionedHashes)
	return &cpy
}

// accessors for innerTx.
func (tx *EIP4844Transaction) txType() byte            { return BlobTxType }
func (tx *EIP4844Transaction) chainID() (uint64, bool) { return tx.ChainID, true }
func (tx *EIP4844Transaction) accessList() AccessList  { return tx.AccessList }
func (tx *EIP4844Transaction) data() []byte            { return tx.Input }
func (tx *EIP4844Transaction) gas() uint64             { return tx.GasLimit }
func (tx *EIP4844Transaction) gasPrice() *uint256.Int  { return &tx.MaxFeePerGas }
func (tx *EIP4844Transaction) gasTipCap() *uint256.Int { return &tx.MaxPriorityFeePerGas }
func (tx *EIP4844Transaction) gasFeeCap() *uint256.Int { return &tx.MaxFeePerGas }
func (tx *EIP4844Transaction) value() *uint256.Int     { return &tx.Value }
func (tx *EIP4844Transaction) nonce() uint64           { return tx.Nonce }
func (tx *EIP4844Transaction) kind() TxKind            { return Call(tx.To) }

func (tx *EIP4844Transaction) signature() Signature {
	return Signature{V: tx.V, R: tx.R, S: tx.S}
}

func (tx *EIP4844Transaction) recoveryID() (byte, error) {
	return typedRecoveryID(tx.V)
}

func (tx *EIP4844Transaction) unsigned() TxRequest {
	return EIP4844TransactionRequest{
		ChainID:              tx.ChainID,
		Nonce:                tx.Nonce,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		MaxFeePerGas:         tx.MaxFeePerGas,
		GasLimit:             tx.GasLimit,
		To:                   tx.To,
		Value:                tx.Value,
		Input:                tx.Input,
		AccessList:           tx.AccessList,
		MaxFeePerBlobGas:     tx.MaxFeePerBlobGas,
		BlobVersionedHashes:  tx.BlobVersionedHashes,
	}
}

func (tx *EIP4844Transaction) payloadSize() (size uint64) {
	size += intSize(tx.ChainID)
	size += intSize(tx.Nonce)
	size += u256Size(&tx.MaxPriorityFeePerGas)
	size += u256Size(&tx.MaxFeePerGas)
	size += intSize(tx.GasLimit)
	size += addressSize
	size += u256Size(&tx.Value)
	size += rlp.BytesSize(tx.Input)
	size += tx.AccessList.encodedSize()
	size += u256Size(&tx.MaxFeePerBlobGas)
	size += hashesSize(tx.BlobVersionedHashes)
	size += intSize(tx.V)
	size += u256Size(&tx.R)
	size += u256Size(&tx.S)
	return size
}

func (tx *EIP4844Transaction) decode(input []byte) error {
	if err := rlp.DecodeBytes(input, tx); err != nil {
		return err
	}
	if tx.V > 1 {
		return errInvalidYParity
	}
	return nil
}

// Hash returns keccak256(0x03 ++ rlp(signed fields)).
func (tx *EIP4844Transaction) Hash() common.Hash {
	return prefixedRlpHash(BlobTxType, tx)
}

// Recover returns the sender of the transaction.
func (tx *EIP4844Transaction) Recover() (common.Address, error) {
	return recoverSender(tx)
}

// Size returns the encoded length of the transaction, including the type byte.
func (tx *EIP4844Transaction) Size() uint64 {
	return typedSize(tx.payloadSize())
}

// EIP4844TransactionRequest is the unsigned form of an EIP-4844 transaction.
// EIP4844TransactionRequest 是 EIP-4844 交易的未签名形式。
type EIP4844TransactionRequest struct {
	ChainID              uint64
	Nonce                uint64
	MaxPriorityFeePerGas uint256.Int
	MaxFeePerGas         uint256.Int
	GasLimit             uint64
	To                   common.Address
	Value                uint256.Int
	Input                []byte
	AccessList           AccessList
	MaxFeePerBlobGas     uint256.Int
	BlobVersionedHashes  []common.Hash
}

// Type implements TxRequest.
func (req EIP4844TransactionRequest) Type() uint8 { return BlobTxType }

// SigningHash returns keccak256(0x03 ++ rlp(unsigned fields)).
func (req EIP4844TransactionRequest) SigningHash() common.Hash {
	return prefixedRlpHash(BlobTxType, req)
}

func (req EIP4844TransactionRequest) destination() TxKind { return Call(req.To) }

func (req EIP4844TransactionRequest) signatureV(recid byte) uint64 { return uint64(recid) }

func (req EIP4844TransactionRequest) withSignature(v uint64, r, s *uint256.Int) TxData {
	return &EIP4844Transaction{
		ChainID:              req.ChainID,
		Nonce:                req.Nonce,
		MaxPriorityFeePerGas: req.MaxPriorityFeePerGas,
		MaxFeePerGas:         req.MaxFeePerGas,
		GasLimit:             req.GasLimit,
		To:                   req.To,
		Value:                req.Value,
		Input:                req.Input,
		AccessList:           req.AccessList,
		MaxFeePerBlobGas:     req.MaxFeePerBlobGas,
		BlobVersionedHashes:  req.BlobVersionedHashes,
		V:                    v,
		R:                    *r,
		S:                    *s,
	}
}

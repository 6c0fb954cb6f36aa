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
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// maxLegacyChainID is the largest chain ID whose EIP-155 v value still fits
// in a uint64.
const maxLegacyChainID = (math.MaxUint64 - 36) / 2

// ErrLegacyChainID is returned when signing a legacy request whose chain ID
// cannot be encoded in v.
var ErrLegacyChainID = errors.New("chain id too large for legacy transaction")

// LegacyTransaction is the transaction data of the original Ethereum transactions.
// LegacyTransaction 是原始以太坊交易的交易数据。
type LegacyTransaction struct {
	Nonce    uint64      // nonce of sender account 发送者账户的 nonce
	GasPrice uint256.Int // wei per gas 每单位 Gas 的价格（单位 Wei）
	GasLimit uint64      // gas limit Gas 限制
	Kind     TxKind      // call or contract creation 调用或合约创建
	Value    uint256.Int // wei amount Wei 金额
	Input    []byte      // contract invocation input data 合约调用的输入数据或合约字节码
	V        uint64      // 27/28, or 2*chainID+35/36 under EIP-155
	R        uint256.Int
	S        uint256.Int
}

// copy creates a deep copy of the transaction data.
// copy 创建交易数据的深拷贝。
func (tx *LegacyTransaction) copy() TxData {
	cpy := *tx
	cpy.Input = common.CopyBytes(tx.Input)
	return &cpy
}

// accessors for innerTx.
func (tx *LegacyTransaction) txType() byte            { return LegacyTxType }
func (tx *LegacyTransaction) chainID() (uint64, bool) { return tx.ChainID() }
func (tx *LegacyTransaction) accessList() AccessList  { return nil }
func (tx *LegacyTransaction) data() []byte            { return tx.Input }
func (tx *LegacyTransaction) gas() uint64             { return tx.GasLimit }
func (tx *LegacyTransaction) gasPrice() *uint256.Int  { return &tx.GasPrice }
func (tx *LegacyTransaction) gasTipCap() *uint256.Int { return nil }
func (tx *LegacyTransaction) gasFeeCap() *uint256.Int { return nil }
func (tx *LegacyTransaction) value() *uint256.Int     { return &tx.Value }
func (tx *LegacyTransaction) nonce() uint64           { return tx.Nonce }
func (tx *LegacyTransaction) kind() TxKind            { return tx.Kind }

func (tx *LegacyTransaction) signature() Signature {
	return Signature{V: tx.V, R: tx.R, S: tx.S}
}

// ChainID returns the chain ID encoded in an EIP-155 signature. Only v values
// above 36 carry one: v = 35 and v = 36 are treated as unprotected.
//
// ChainID 返回 EIP-155 签名中编码的链 ID，即 (v-35)/2。仅当 v > 36 时存在。
func (tx *LegacyTransaction) ChainID() (uint64, bool) {
	if tx.V > 36 {
		return (tx.V - 35) / 2, true
	}
	return 0, false
}

// MeetsEIP155 reports whether the signature is EIP-155 protected for the
// given chain, i.e. v is 2*chainID+35 or 2*chainID+36.
//
// MeetsEIP155 检查签名是否针对给定链受 EIP-155 保护。
func (tx *LegacyTransaction) MeetsEIP155(chainID uint64) bool {
	if chainID > maxLegacyChainID {
		return false
	}
	double := chainID * 2
	return tx.V == double+35 || tx.V == double+36
}

// recoveryID derives the recovery id from v. 27/28 are pre-EIP-155 values,
// anything from 35 upwards is EIP-155 encoded.
//
// recoveryID 从 v 推导恢复 ID：27/28 为 EIP-155 之前的值，35 及以上按 EIP-155 编码。
func (tx *LegacyTransaction) recoveryID() (byte, error) {
	switch {
	case tx.V == 27 || tx.V == 28:
		return byte(tx.V - 27), nil
	case tx.V >= 35:
		return byte((tx.V - 35) % 2), nil
	default:
		return 0, ErrInvalidSig
	}
}

func (tx *LegacyTransaction) unsigned() TxRequest {
	req := LegacyTransactionRequest{
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		GasLimit: tx.GasLimit,
		Kind:     tx.Kind,
		Value:    tx.Value,
		Input:    tx.Input,
	}
	if chainID, ok := tx.ChainID(); ok {
		req.ChainID = &chainID
	}
	return req
}

func (tx *LegacyTransaction) payloadSize() (size uint64) {
	size += intSize(tx.Nonce)
	size += u256Size(&tx.GasPrice)
	size += intSize(tx.GasLimit)
	size += tx.Kind.encodedSize()
	size += u256Size(&tx.Value)
	size += rlp.BytesSize(tx.Input)
	size += intSize(tx.V)
	size += u256Size(&tx.R)
	size += u256Size(&tx.S)
	return size
}

func (tx *LegacyTransaction) decode(input []byte) error {
	return rlp.DecodeBytes(input, tx)
}

// Hash returns keccak256 of the RLP list.
// Hash 返回 RLP 列表的 keccak256 哈希。
func (tx *LegacyTransaction) Hash() common.Hash {
	return rlpHash(tx)
}

// Recover returns the sender of the transaction.
func (tx *LegacyTransaction) Recover() (common.Address, error) {
	return recoverSender(tx)
}

// Size returns the encoded length of the transaction.
func (tx *LegacyTransaction) Size() uint64 {
	return rlp.ListSize(tx.payloadSize())
}

// LegacyTransactionRequest is the unsigned form of a legacy transaction. When
// ChainID is set the signing hash commits to it as defined by EIP-155. A zero
// chain ID cannot be told apart from v = 35/36 after signing, so it signs as
// an unprotected transaction.
//
// LegacyTransactionRequest 是传统交易的未签名形式。设置 ChainID 时，签名哈希按 EIP-155 包含链 ID。
type LegacyTransactionRequest struct {
	Nonce    uint64
	GasPrice uint256.Int
	GasLimit uint64
	Kind     TxKind
	Value    uint256.Int
	Input    []byte
	ChainID  *uint64 // optional, only used for EIP-155 hashing
}

// Type implements TxRequest.
func (req LegacyTransactionRequest) Type() uint8 { return LegacyTxType }

// EncodeRLP writes the six unsigned fields, followed by chain_id, 0, 0 when a
// chain ID is present.
//
// EncodeRLP 写入六个未签名字段；存在链 ID 时追加 chain_id, 0, 0（EIP-155）。
func (req LegacyTransactionRequest) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	l := buf.List()
	buf.WriteUint64(req.Nonce)
	buf.WriteUint256(&req.GasPrice)
	buf.WriteUint64(req.GasLimit)
	buf.WriteBytes(req.Kind.bytes())
	buf.WriteUint256(&req.Value)
	buf.WriteBytes(req.Input)
	if chainID, ok := req.eip155ChainID(); ok {
		buf.WriteUint64(chainID)
		buf.WriteUint64(0)
		buf.WriteUint64(0)
	}
	buf.ListEnd(l)
	return buf.Flush()
}

// SigningHash returns the hash to be signed by the sender.
// SigningHash 返回发送者需要签名的哈希。
func (req LegacyTransactionRequest) SigningHash() common.Hash {
	return rlpHash(req)
}

func (req LegacyTransactionRequest) destination() TxKind { return req.Kind }

// eip155ChainID returns the chain ID the signing hash commits to.
func (req LegacyTransactionRequest) eip155ChainID() (uint64, bool) {
	if req.ChainID == nil || *req.ChainID == 0 {
		return 0, false
	}
	return *req.ChainID, true
}

func (req LegacyTransactionRequest) checkChainID() error {
	if chainID, ok := req.eip155ChainID(); ok && chainID > maxLegacyChainID {
		return fmt.Errorf("%w: %d", ErrLegacyChainID, chainID)
	}
	return nil
}

func (req LegacyTransactionRequest) signatureV(recid byte) uint64 {
	chainID, ok := req.eip155ChainID()
	if !ok {
		return uint64(recid) + 27
	}
	return chainID*2 + 35 + uint64(recid)
}

func (req LegacyTransactionRequest) withSignature(v uint64, r, s *uint256.Int) TxData {
	return &LegacyTransaction{
		Nonce:    req.Nonce,
		GasPrice: req.GasPrice,
		GasLimit: req.GasLimit,
		Kind:     req.Kind,
		Value:    req.Value,
		Input:    req.Input,
		V:        v,
		R:        *r,
		S:        *s,
	}
}

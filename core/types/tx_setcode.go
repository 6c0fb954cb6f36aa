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
	"encoding/json"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/devchain/crypto"
)

// setCodeAuthMagic prefixes the signing hash of authorizations.
const setCodeAuthMagic = 0x05

// SetCodeAuthorization is an authorization from an account to deploy code at its address.
// SetCodeAuthorization 是账户授权在其地址部署代码的结构。
type SetCodeAuthorization struct {
	ChainID uint256.Int    `json:"chainId"` // 链 ID
	Address common.Address `json:"address"` // 地址
	Nonce   uint64         `json:"nonce"`   // nonce
	V       uint8          `json:"yParity"` // Y 平价（签名恢复标识符）
	R       uint256.Int    `json:"r"`       // 签名 R 值
	S       uint256.Int    `json:"s"`       // 签名 S 值
}

type authorizationJSON struct {
	ChainID *hexutil.U256   `json:"chainId"`
	Address *common.Address `json:"address"`
	Nonce   *hexutil.Uint64 `json:"nonce"`
	V       *hexutil.Uint64 `json:"yParity"`
	R       *hexutil.U256   `json:"r"`
	S       *hexutil.U256   `json:"s"`
}

// MarshalJSON marshals as JSON.
func (a SetCodeAuthorization) MarshalJSON() ([]byte, error) {
	enc := authorizationJSON{
		ChainID: (*hexutil.U256)(&a.ChainID),
		Address: &a.Address,
		Nonce:   (*hexutil.Uint64)(&a.Nonce),
		V:       new(hexutil.Uint64),
		R:       (*hexutil.U256)(&a.R),
		S:       (*hexutil.U256)(&a.S),
	}
	*enc.V = hexutil.Uint64(a.V)
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON. All fields are required.
func (a *SetCodeAuthorization) UnmarshalJSON(input []byte) error {
	var dec authorizationJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.ChainID == nil {
		return errors.New("missing required field 'chainId' for SetCodeAuthorization")
	}
	if dec.Address == nil {
		return errors.New("missing required field 'address' for SetCodeAuthorization")
	}
	if dec.Nonce == nil {
		return errors.New("missing required field 'nonce' for SetCodeAuthorization")
	}
	if dec.V == nil {
		return errors.New("missing required field 'yParity' for SetCodeAuthorization")
	}
	if uint64(*dec.V) > 0xff {
		return errors.New("'yParity' of SetCodeAuthorization out of range")
	}
	if dec.R == nil {
		return errors.New("missing required field 'r' for SetCodeAuthorization")
	}
	if dec.S == nil {
		return errors.New("missing required field 's' for SetCodeAuthorization")
	}
	a.ChainID = uint256.Int(*dec.ChainID)
	a.Address = *dec.Address
	a.Nonce = uint64(*dec.Nonce)
	a.V = uint8(*dec.V)
	a.R = uint256.Int(*dec.R)
	a.S = uint256.Int(*dec.S)
	return nil
}

// SignSetCode creates a signed the SetCode authorization.
// SignSetCode 创建一个签名的 SetCode 授权。
func SignSetCode(prv *secp256k1.PrivateKey, auth SetCodeAuthorization) (SetCodeAuthorization, error) {
	sighash := auth.sigHash()
	sig, err := crypto.Sign(sighash[:], prv)
	if err != nil {
		return SetCodeAuthorization{}, err
	}
	r, s, v, err := decodeSignature(sig)
	if err != nil {
		return SetCodeAuthorization{}, err
	}
	return SetCodeAuthorization{
		ChainID: auth.ChainID,
		Address: auth.Address,
		Nonce:   auth.Nonce,
		V:       v,
		R:       r,
		S:       s,
	}, nil
}

// sigHash is keccak256(0x05 ++ rlp([chain_id, address, nonce])).
func (a *SetCodeAuthorization) sigHash() common.Hash {
	return prefixedRlpHash(setCodeAuthMagic, []any{
		&a.ChainID,
		a.Address,
		a.Nonce,
	})
}

// Authority recovers the the authorizing account of an authorization.
// Authority 恢复授权账户的地址。
func (a *SetCodeAuthorization) Authority() (common.Address, error) {
	return recoverPlain(a.sigHash(), &a.R, &a.S, a.V)
}

func (a *SetCodeAuthorization) encodedSize() uint64 {
	size := u256Size(&a.ChainID) + addressSize + intSize(a.Nonce)
	size += intSize(uint64(a.V)) + u256Size(&a.R) + u256Size(&a.S)
	return rlp.ListSize(size)
}

func authListSize(auths []SetCodeAuthorization) uint64 {
	var size uint64
	for i := range auths {
		size += auths[i].encodedSize()
	}
	return rlp.ListSize(size)
}

func copyAuthList(auths []SetCodeAuthorization) []SetCodeAuthorization {
	if auths == nil {
		return nil
	}
	return append(make([]SetCodeAuthorization, 0, len(auths)), auths...)
}

// EIP7702Transaction implements the EIP-7702 transaction type which temporarily
// installs the code at the signer's address.
//
// EIP7702Transaction 实现了 EIP-7702 交易类型，该交易类型在签名者的地址临时安装代码。
type EIP7702Transaction struct {
	ChainID              uint64
	Nonce                uint64
	MaxPriorityFeePerGas uint256.Int
	MaxFeePerGas         uint256.Int
	GasLimit             uint64
	To                   common.Address
	Value                uint256.Int
	Input                []byte
	AccessList           AccessList
	AuthorizationList    []SetCodeAuthorization // 授权列表

	// Signature values
	// 签名值
	V uint64 // y-parity
	R uint256.Int
	S uint256.Int
}

// copy creates a deep copy of the transaction data.
func (tx *EIP7702Transaction) copy() TxData {
	cpy := *tx
	cpy.Input = common.CopyBytes(tx.Input)
	cpy.AccessList = tx.AccessList.copy()
	cpy.AuthorizationList = copyAuthList(tx.AuthorizationList)
	return &cpy
}

// accessors for innerTx.
func (tx *EIP7702Transaction) txType() byte            { return SetCodeTxType }
func (tx *EIP7702Transaction) chainID() (uint64, bool) { return tx.ChainID, true }
func (tx *EIP7702Transaction) accessList() AccessList  { return tx.AccessList }
func (tx *EIP7702Transaction) data() []byte            { return tx.Input }
func (tx *EIP7702Transaction) gas() uint64             { return tx.GasLimit }
func (tx *EIP7702Transaction) gasPrice() *uint256.Int  { return &tx.MaxFeePerGas }
func (tx *EIP7702Transaction) gasTipCap() *uint256.Int { return &tx.MaxPriorityFeePerGas }
func (tx *EIP7702Transaction) gasFeeCap() *uint256.Int { return &tx.MaxFeePerGas }
func (tx *EIP7702Transaction) value() *uint256.Int     { return &tx.Value }
func (tx *EIP7702Transaction) nonce() uint64           { return tx.Nonce }
func (tx *EIP7702Transaction) kind() TxKind            { return Call(tx.To) }

func (tx *EIP7702Transaction) signature() Signature {
	return Signature{V: tx.V, R: tx.R, S: tx.S}
}

func (tx *EIP7702Transaction) recoveryID() (byte, error) {
	return typedRecoveryID(tx.V)
}

func (tx *EIP7702Transaction) unsigned() TxRequest {
	return EIP7702TransactionRequest{
		ChainID:              tx.ChainID,
		Nonce:                tx.Nonce,
		MaxPriorityFeePerGas: tx.MaxPriorityFeePerGas,
		MaxFeePerGas:         tx.MaxFeePerGas,
		GasLimit:             tx.GasLimit,
		To:                   tx.To,
		Value:                tx.Value,
		Input:                tx.Input,
		AccessList:           tx.AccessList,
		AuthorizationList:    tx.AuthorizationList,
	}
}

func (tx *EIP7702Transaction) payloadSize() (size uint64) {
	size += intSize(tx.ChainID)
	size += intSize(tx.Nonce)
	size += u256Size(&tx.MaxPriorityFeePerGas)
	size += u256Size(&tx.MaxFeePerGas)
	size += intSize(tx.GasLimit)
	size += addressSize
	size += u256Size(&tx.Value)
	size += rlp.BytesSize(tx.Input)
	size += tx.AccessList.encodedSize()
	size += authListSize(tx.AuthorizationList)
	size += intSize(tx.V)
	size += u256Size(&tx.R)
	size += u256Size(&tx.S)
	return size
}

func (tx *EIP7702Transaction) decode(input []byte) error {
	if err := rlp.DecodeBytes(input, tx); err != nil {
		return err
	}
	if tx.V > 1 {
		return errInvalidYParity
	}
	return nil
}

// Hash returns keccak256(0x04 ++ rlp(signed fields)).
func (tx *EIP7702Transaction) Hash() common.Hash {
	return prefixedRlpHash(SetCodeTxType, tx)
}

// Recover returns the sender of the transaction.
func (tx *EIP7702Transaction) Recover() (common.Address, error) {
	return recoverSender(tx)
}

// Size returns the encoded length of the transaction, including the type byte.
func (tx *EIP7702Transaction) Size() uint64 {
	return typedSize(tx.payloadSize())
}

// EIP7702TransactionRequest is the unsigned form of an EIP-7702 transaction.
// EIP7702TransactionRequest 是 EIP-7702 交易的未签名形式。
type EIP7702TransactionRequest struct {
	ChainID              uint64
	Nonce                uint64
	MaxPriorityFeePerGas uint256.Int
	MaxFeePerGas         uint256.Int
	GasLimit             uint64
	To                   common.Address
	Value                uint256.Int
	Input                []byte
	AccessList           AccessList
	AuthorizationList    []SetCodeAuthorization
}

// Type implements TxRequest.
func (req EIP7702TransactionRequest) Type() uint8 { return SetCodeTxType }

// SigningHash returns keccak256(0x04 ++ rlp(unsigned fields)).
func (req EIP7702TransactionRequest) SigningHash() common.Hash {
	return prefixedRlpHash(SetCodeTxType, req)
}

func (req EIP7702TransactionRequest) destination() TxKind { return Call(req.To) }

func (req EIP7702TransactionRequest) signatureV(recid byte) uint64 { return uint64(recid) }

func (req EIP7702TransactionRequest) withSignature(v uint64, r, s *uint256.Int) TxData {
	return &EIP7702Transaction{
		ChainID:              req.ChainID,
		Nonce:                req.Nonce,
		MaxPriorityFeePerGas: req.MaxPriorityFeePerGas,
		MaxFeePerGas:         req.MaxFeePerGas,
		GasLimit:             req.GasLimit,
		To:                   req.To,
		Value:                req.Value,
		Input:                req.Input,
		AccessList:           req.AccessList,
		AuthorizationList:    req.AuthorizationList,
		V:                    v,
		R:                    *r,
		S:                    *s,
	}
}

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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// txJSON is the JSON representation of transactions.
// txJSON 是交易的 JSON 表示形式。
type txJSON struct {
	Type hexutil.Uint64 `json:"type"`

	ChainID              *hexutil.Uint64        `json:"chainId,omitempty"`
	Nonce                *hexutil.Uint64        `json:"nonce"`
	To                   *common.Address        `json:"to"`
	Gas                  *hexutil.Uint64        `json:"gas"`
	GasPrice             *hexutil.U256          `json:"gasPrice"`
	MaxPriorityFeePerGas *hexutil.U256          `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         *hexutil.U256          `json:"maxFeePerGas"`
	MaxFeePerBlobGas     *hexutil.U256          `json:"maxFeePerBlobGas,omitempty"`
	Value                *hexutil.U256          `json:"value"`
	Input                *hexutil.Bytes         `json:"input"`
	AccessList           *AccessList            `json:"accessList,omitempty"`
	BlobVersionedHashes  []common.Hash          `json:"blobVersionedHashes,omitempty"`
	AuthorizationList    []SetCodeAuthorization `json:"authorizationList,omitempty"`
	V                    *hexutil.Uint64        `json:"v"`
	R                    *hexutil.U256          `json:"r"`
	S                    *hexutil.U256          `json:"s"`
	YParity              *hexutil.Uint64        `json:"yParity,omitempty"`

	// Only used for encoding:
	// 仅用于编码：
	Hash common.Hash `json:"hash"`
}

// yParityValue returns the YParity value from JSON. For backwards-compatibility reasons,
// this can be given in the 'v' field or the 'yParity' field. If both exist, they must match.
//
// yParityValue 从 JSON 返回 YParity 值。为了向后兼容，可以在 'v' 字段或 'yParity' 字段中提供此值。
// 如果两者都存在，则必须匹配。
func (tx *txJSON) yParityValue() (uint64, error) {
	if tx.YParity != nil {
		val := uint64(*tx.YParity)
		if val != 0 && val != 1 {
			return 0, errInvalidYParity
		}
		if tx.V != nil && uint64(*tx.V) != val {
			return 0, errVYParityMismatch
		}
		return val, nil
	}
	if tx.V != nil {
		if val := uint64(*tx.V); val > 1 {
			return 0, errInvalidYParity
		}
		return uint64(*tx.V), nil
	}
	return 0, errVYParityMissing
}

// MarshalJSON marshals as JSON with a hash.
// MarshalJSON 将交易序列化为带有哈希的 JSON。
func (tx *TypedTransaction) MarshalJSON() ([]byte, error) {
	var enc txJSON
	// These are set for all tx types.
	// 这些字段对所有交易类型都设置。
	enc.Hash = tx.Hash()
	enc.Type = hexutil.Uint64(tx.Type())
	enc.Nonce = (*hexutil.Uint64)(new(uint64))
	*enc.Nonce = hexutil.Uint64(tx.Nonce())
	enc.To = tx.To()
	enc.Gas = (*hexutil.Uint64)(new(uint64))
	*enc.Gas = hexutil.Uint64(tx.GasLimit())
	enc.Value = (*hexutil.U256)(tx.Value())
	enc.Input = (*hexutil.Bytes)(new([]byte))
	*enc.Input = tx.Data()

	sig := tx.Signature()
	enc.V = (*hexutil.Uint64)(&sig.V)
	enc.R = (*hexutil.U256)(&sig.R)
	enc.S = (*hexutil.U256)(&sig.S)
	if chainID, ok := tx.ChainID(); ok {
		enc.ChainID = (*hexutil.Uint64)(&chainID)
	}

	// Other fields are set conditionally depending on tx type.
	// 其他字段根据交易类型有条件地设置。
	switch itx := tx.inner.(type) {
	case *LegacyTransaction:
		enc.GasPrice = (*hexutil.U256)(tx.GasPrice())

	case *EIP2930Transaction:
		enc.GasPrice = (*hexutil.U256)(tx.GasPrice())
		enc.AccessList = &itx.AccessList
		enc.YParity = (*hexutil.Uint64)(&sig.V)

	case *EIP1559Transaction:
		enc.MaxPriorityFeePerGas = (*hexutil.U256)(&itx.MaxPriorityFeePerGas)
		enc.MaxFeePerGas = (*hexutil.U256)(&itx.MaxFeePerGas)
		enc.AccessList = &itx.AccessList
		enc.YParity = (*hexutil.Uint64)(&sig.V)

	case *EIP4844Transaction:
		enc.MaxPriorityFeePerGas = (*hexutil.U256)(&itx.MaxPriorityFeePerGas)
		enc.MaxFeePerGas = (*hexutil.U256)(&itx.MaxFeePerGas)
		enc.MaxFeePerBlobGas = (*hexutil.U256)(&itx.MaxFeePerBlobGas)
		enc.AccessList = &itx.AccessList
		enc.BlobVersionedHashes = itx.BlobVersionedHashes
		enc.YParity = (*hexutil.Uint64)(&sig.V)

	case *EIP7702Transaction:
		enc.MaxPriorityFeePerGas = (*hexutil.U256)(&itx.MaxPriorityFeePerGas)
		enc.MaxFeePerGas = (*hexutil.U256)(&itx.MaxFeePerGas)
		enc.AccessList = &itx.AccessList
		enc.AuthorizationList = itx.AuthorizationList
		enc.YParity = (*hexutil.Uint64)(&sig.V)
	}
	return json.Marshal(&enc)
}

// UnmarshalJSON unmarshals from JSON.
// UnmarshalJSON 从 JSON 反序列化交易。
func (tx *TypedTransaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	// Fields shared by every transaction type.
	// 所有交易类型共有的字段。
	switch {
	case dec.Nonce == nil:
		return errMissingField("nonce")
	case dec.Gas == nil:
		return errMissingField("gas")
	case dec.Value == nil:
		return errMissingField("value")
	case dec.Input == nil:
		return errMissingField("input")
	case dec.R == nil:
		return errMissingField("r")
	case dec.S == nil:
		return errMissingField("s")
	}
	var (
		nonce = uint64(*dec.Nonce)
		gas   = uint64(*dec.Gas)
		value = uint256.Int(*dec.Value)
		data  = []byte(*dec.Input)
		r     = uint256.Int(*dec.R)
		s     = uint256.Int(*dec.S)
		al    AccessList
	)
	if dec.AccessList != nil {
		al = *dec.AccessList
	}

	// Decode / verify fields according to transaction type.
	// 根据交易类型解码/验证字段。
	var inner TxData
	switch dec.Type {
	case LegacyTxType:
		if dec.GasPrice == nil {
			return errMissingField("gasPrice")
		}
		if dec.V == nil {
			return errMissingField("v")
		}
		inner = &LegacyTransaction{
			Nonce:    nonce,
			GasPrice: uint256.Int(*dec.GasPrice),
			GasLimit: gas,
			Kind:     kindOf(dec.To),
			Value:    value,
			Input:    data,
			V:        uint64(*dec.V),
			R:        r,
			S:        s,
		}

	case AccessListTxType:
		if dec.ChainID == nil {
			return errMissingField("chainId")
		}
		if dec.GasPrice == nil {
			return errMissingField("gasPrice")
		}
		v, err := dec.yParityValue()
		if err != nil {
			return err
		}
		inner = &EIP2930Transaction{
			ChainID:    uint64(*dec.ChainID),
			Nonce:      nonce,
			GasPrice:   uint256.Int(*dec.GasPrice),
			GasLimit:   gas,
			Kind:       kindOf(dec.To),
			Value:      value,
			Input:      data,
			AccessList: al,
			V:          v,
			R:          r,
			S:          s,
		}

	case DynamicFeeTxType, BlobTxType, SetCodeTxType:
		if dec.ChainID == nil {
			return errMissingField("chainId")
		}
		if dec.MaxPriorityFeePerGas == nil {
			return errMissingField("maxPriorityFeePerGas")
		}
		if dec.MaxFeePerGas == nil {
			return errMissingField("maxFeePerGas")
		}
		v, err := dec.yParityValue()
		if err != nil {
			return err
		}
		var (
			chainID = uint64(*dec.ChainID)
			tip     = uint256.Int(*dec.MaxPriorityFeePerGas)
			feeCap  = uint256.Int(*dec.MaxFeePerGas)
		)
		switch dec.Type {
		case DynamicFeeTxType:
			inner = &EIP1559Transaction{
				ChainID:              chainID,
				Nonce:                nonce,
				MaxPriorityFeePerGas: tip,
				MaxFeePerGas:         feeCap,
				GasLimit:             gas,
				Kind:                 kindOf(dec.To),
				Value:                value,
				Input:                data,
				AccessList:           al,
				V:                    v,
				R:                    r,
				S:                    s,
			}
		case BlobTxType:
			if dec.To == nil {
				return errMissingField("to")
			}
			if dec.MaxFeePerBlobGas == nil {
				return errMissingField("maxFeePerBlobGas")
			}
			if dec.BlobVersionedHashes == nil {
				return errMissingField("blobVersionedHashes")
			}
			inner = &EIP4844Transaction{
				ChainID:              chainID,
				Nonce:                nonce,
				MaxPriorityFeePerGas: tip,
				MaxFeePerGas:         feeCap,
				GasLimit:             gas,
				To:                   *dec.To,
				Value:                value,
				Input:                data,
				AccessList:           al,
				MaxFeePerBlobGas:     uint256.Int(*dec.MaxFeePerBlobGas),
				BlobVersionedHashes:  dec.BlobVersionedHashes,
				V:                    v,
				R:                    r,
				S:                    s,
			}
		case SetCodeTxType:
			if dec.To == nil {
				return errMissingField("to")
			}
			if dec.AuthorizationList == nil {
				return errMissingField("authorizationList")
			}
			inner = &EIP7702Transaction{
				ChainID:              chainID,
				Nonce:                nonce,
				MaxPriorityFeePerGas: tip,
				MaxFeePerGas:         feeCap,
				GasLimit:             gas,
				To:                   *dec.To,
				Value:                value,
				Input:                data,
				AccessList:           al,
				AuthorizationList:    dec.AuthorizationList,
				V:                    v,
				R:                    r,
				S:                    s,
			}
		}

	default:
		return fmt.Errorf("%w: type %d", ErrTxTypeNotSupported, dec.Type)
	}

	tx.inner = inner
	return nil
}

func errMissingField(name string) error {
	return errors.New("missing required field '" + name + "' in transaction")
}

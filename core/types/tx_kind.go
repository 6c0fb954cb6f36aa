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
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// TxKind is the destination of a transaction: a message call to an address,
// or the creation of a new contract. The zero value is a creation.
//
// TxKind 表示交易的目标：对某个地址的消息调用，或创建新合约。零值表示合约创建。
// 在 RLP 中，调用编码为 20 字节字符串，创建编码为空字符串（0x80）。
type TxKind struct {
	to     common.Address
	isCall bool
}

// Call returns the kind of a message call to the given address.
func Call(to common.Address) TxKind {
	return TxKind{to: to, isCall: true}
}

// Create returns the kind of a contract creation.
func Create() TxKind {
	return TxKind{}
}

// kindOf converts an optional recipient into a TxKind; nil means creation.
func kindOf(to *common.Address) TxKind {
	if to == nil {
		return Create()
	}
	return Call(*to)
}

// IsCreate reports whether the transaction creates a contract.
func (k TxKind) IsCreate() bool { return !k.isCall }

// IsCall reports whether the transaction calls an existing address.
func (k TxKind) IsCall() bool { return k.isCall }

// To returns the recipient address, or nil for contract creation.
// The returned pointer refers to a fresh copy.
//
// To 返回接收者地址；合约创建时返回 nil。
func (k TxKind) To() *common.Address {
	if !k.isCall {
		return nil
	}
	to := k.to
	return &to
}

// Address returns the recipient and whether the kind is a call.
func (k TxKind) Address() (common.Address, bool) {
	return k.to, k.isCall
}

// Equal reports whether both kinds denote the same destination.
func (k TxKind) Equal(other TxKind) bool {
	return k.isCall == other.isCall && k.to == other.to
}

func (k TxKind) String() string {
	if !k.isCall {
		return "create"
	}
	return "call(" + k.to.Hex() + ")"
}

// bytes returns the RLP string content of the kind.
func (k TxKind) bytes() []byte {
	if !k.isCall {
		return nil
	}
	return k.to[:]
}

// encodedSize is the length of the kind's RLP encoding.
func (k TxKind) encodedSize() uint64 {
	if !k.isCall {
		return 1
	}
	return addressSize
}

// EncodeRLP implements rlp.Encoder.
// EncodeRLP 实现了 rlp.Encoder：调用编码为 0x94 ++ 地址，创建编码为 0x80。
func (k TxKind) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	buf.WriteBytes(k.bytes())
	return buf.Flush()
}

// DecodeRLP implements rlp.Decoder. Only the empty string and 20-byte strings
// are accepted.
//
// DecodeRLP 实现了 rlp.Decoder。只接受空字符串和 20 字节字符串。
func (k *TxKind) DecodeRLP(s *rlp.Stream) error {
	b, err := s.Bytes()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTxKind, err)
	}
	switch len(b) {
	case 0:
		*k = Create()
	case common.AddressLength:
		*k = Call(common.BytesToAddress(b))
	default:
		return fmt.Errorf("%w: %d byte destination", ErrInvalidTxKind, len(b))
	}
	return nil
}

// MarshalJSON encodes a call as its address and a creation as null.
func (k TxKind) MarshalJSON() ([]byte, error) {
	if !k.isCall {
		return []byte("null"), nil
	}
	return json.Marshal(k.to)
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *TxKind) UnmarshalJSON(input []byte) error {
	if string(input) == "null" {
		*k = Create()
		return nil
	}
	var to common.Address
	if err := json.Unmarshal(input, &to); err != nil {
		return err
	}
	*k = Call(to)
	return nil
}

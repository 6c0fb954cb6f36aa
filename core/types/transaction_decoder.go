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
	"github.com/ethereum/go-ethereum/rlp"
)

// DecodeTransaction decodes the first transaction in b and returns it along
// with the bytes that follow it. Three forms are accepted, selected by the
// first byte:
//
//   - >= 0xc0: a legacy transaction (an RLP list)
//   - 0x80..0xbf: a typed transaction wrapped in an RLP string header; the
//     string payload must be exactly type ++ list
//   - < 0x80: a bare typed transaction, type ++ list
//
// On failure the returned rest is b itself.
//
// DecodeTransaction 解码 b 中的第一个交易，并返回其后的剩余字节。根据首字节选择三种形式：
// 传统列表、被 RLP 字符串头包裹的类型化交易、以及裸的类型化交易。
func DecodeTransaction(b []byte) (*TypedTransaction, []byte, error) {
	if len(b) == 0 {
		return nil, b, decodeError(errEmptyTx)
	}
	kind, content, rest, err := rlp.Split(b)
	if err != nil {
		return nil, b, decodeError(err)
	}
	var inner TxData
	switch kind {
	case rlp.List:
		// It's a legacy transaction. 这是一个传统交易。
		legacy := new(LegacyTransaction)
		if err := legacy.decode(b[:len(b)-len(rest)]); err != nil {
			return nil, b, decodeError(err)
		}
		inner = legacy
	case rlp.String:
		// Typed transaction behind a string header, as found in block bodies.
		// 被字符串头包裹的类型化交易（区块体中的形式）。
		if inner, err = decodeTyped(content); err != nil {
			return nil, b, decodeError(err)
		}
	default:
		// Bare typed transaction: the type byte is followed by the list.
		// 裸类型化交易：类型字节后紧跟 RLP 列表。
		k, _, after, err := rlp.Split(b[1:])
		if err != nil {
			return nil, b, decodeError(err)
		}
		if k != rlp.List {
			return nil, b, decodeError(errShortTypedTx)
		}
		if inner, err = decodeTyped(b[:len(b)-len(after)]); err != nil {
			return nil, b, decodeError(err)
		}
		rest = after
	}
	return &TypedTransaction{inner: inner}, rest, nil
}

// Decoder reads consecutive transactions out of a byte buffer. Each call to
// Decode consumes exactly the bytes of one transaction; the unconsumed tail
// stays available through Remaining.
//
// Decoder 从字节缓冲区中依次读取交易。每次 Decode 恰好消耗一个交易的字节，
// 未消耗的部分可通过 Remaining 获取。
type Decoder struct {
	buf []byte
}

// NewDecoder creates a decoder reading from b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Decode decodes the next transaction. The buffer only advances on success.
func (d *Decoder) Decode() (*TypedTransaction, error) {
	tx, rest, err := DecodeTransaction(d.buf)
	if err != nil {
		return nil, err
	}
	d.buf = rest
	return tx, nil
}

// More reports whether there are bytes left to decode.
func (d *Decoder) More() bool {
	return len(d.buf) > 0
}

// Remaining returns the bytes not consumed yet.
func (d *Decoder) Remaining() []byte {
	return d.buf
}

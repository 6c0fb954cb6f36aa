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

package types

import (
	"bytes"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/sunyihoo/devchain/crypto"
	"golang.org/x/crypto/sha3"
)

// hasherPool holds LegacyKeccak256 hashers for rlpHash.
// hasherPool 保存用于 rlpHash 的 LegacyKeccak256 哈希器。
var hasherPool = sync.Pool{
	New: func() interface{} { return sha3.NewLegacyKeccak256() },
}

// encodeBufferPool holds temporary encoder buffers for transaction encoding.
// encodeBufferPool 保存用于交易编码的临时编码缓冲区。
var encodeBufferPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// rlpHash encodes x and hashes the encoded bytes.
// rlpHash 对 x 进行编码并对编码后的字节进行哈希。
func rlpHash(x interface{}) (h common.Hash) {
	sha := hasherPool.Get().(crypto.KeccakState)
	defer hasherPool.Put(sha)
	sha.Reset()
	rlp.Encode(sha, x)
	sha.Read(h[:])
	return h
}

// prefixedRlpHash writes the prefix into the hasher before rlp-encoding x.
// It's used for typed transactions.
// prefixedRlpHash 在 RLP 编码 x 之前将前缀写入哈希器。
// 它用于类型化交易。
func prefixedRlpHash(prefix byte, x interface{}) (h common.Hash) {
	sha := hasherPool.Get().(crypto.KeccakState)
	defer hasherPool.Put(sha)
	sha.Reset()
	sha.Write([]byte{prefix})
	rlp.Encode(sha, x)
	sha.Read(h[:])
	return h
}

// The helpers below compute RLP item sizes without encoding, so that the
// length of a transaction can be known before any bytes are written.
// 以下辅助函数在不编码的情况下计算 RLP 项的大小。

// intSize is the encoded size of an unsigned integer.
func intSize(x uint64) uint64 {
	return uint64(rlp.IntSize(x))
}

// u256Size is the encoded size of a 256-bit integer.
func u256Size(x *uint256.Int) uint64 {
	if x.LtUint64(0x80) {
		return 1
	}
	return 1 + uint64(x.ByteLen())
}

// hashesSize is the encoded size of a list of 32-byte hashes.
func hashesSize(hashes []common.Hash) uint64 {
	return rlp.ListSize(uint64(len(hashes)) * (1 + common.HashLength))
}

// addressSize is the encoded size of a 20-byte address.
const addressSize = 1 + common.AddressLength

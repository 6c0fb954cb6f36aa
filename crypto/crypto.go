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

package crypto

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// SignatureLength indicates the byte length required to carry a signature with recovery id.
// SignatureLength 表示携带恢复 ID 的签名所需的字节长度。
const SignatureLength = 64 + 1 // 64 bytes ECDSA signature + 1 byte recovery id  64字节ECDSA签名 + 1字节恢复ID

// RecoveryIDOffset points to the byte offset within the signature that contains the recovery id.
// RecoveryIDOffset 指向签名中包含恢复 ID 的字节偏移量。
const RecoveryIDOffset = 64

// DigestLength sets the signature digest exact length
const DigestLength = 32

var (
	secp256k1N = uint256.MustFromHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	errInvalidPrivkey = errors.New("invalid private key")
	errInvalidSigLen  = errors.New("invalid signature length")
	errInvalidHashLen = errors.New("invalid hash length")
)

// Secp256k1N returns a copy of the order of the secp256k1 curve.
func Secp256k1N() *uint256.Int {
	return new(uint256.Int).Set(secp256k1N)
}

// KeccakState wraps sha3.state. In addition to the usual hash methods, it also supports
// Read to get a variable amount of data from the hash state. Read is faster than Sum
// because it doesn't copy the internal state, but also modifies the internal state.
//
// KeccakState 包装了 sha3.state。除了常规的哈希方法外，它还支持 Read 从哈希状态中获取可变数量的数据。
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// NewKeccakState creates a new KeccakState
func NewKeccakState() KeccakState {
	return sha3.NewLegacyKeccak256().(KeccakState)
}

// HashData hashes the provided data using the KeccakState and returns a 32 byte hash
// HashData 使用 KeccakState 对提供的数据进行哈希，并返回 32 字节哈希。
func HashData(kh KeccakState, data []byte) (h common.Hash) {
	kh.Reset()
	kh.Write(data)
	kh.Read(h[:])
	return h
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
//
// Keccak256Hash 计算输入数据的 Keccak256 哈希并转换为 common.Hash。
func Keccak256Hash(data ...[]byte) (h common.Hash) {
	d := NewKeccakState()
	for _, b := range data {
		d.Write(b)
	}
	d.Read(h[:])
	return h
}

// CreateAddress creates an ethereum address given the bytes and the nonce
// CreateAddress 根据部署者地址和 nonce 计算合约地址：keccak256(rlp([sender, nonce]))[12:]。
func CreateAddress(b common.Address, nonce uint64) common.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{b, nonce})
	return common.BytesToAddress(Keccak256(data)[12:])
}

// ToKey creates a private key with the given D value. The scalar must be
// non-zero and below the curve order.
//
// ToKey 使用给定的 D 值创建私钥。标量必须非零且小于曲线阶。
func ToKey(d []byte) (*secp256k1.PrivateKey, error) {
	if len(d) != 32 {
		return nil, fmt.Errorf("%w: need 32 bytes, have %d", errInvalidPrivkey, len(d))
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(d); overflow || k.IsZero() {
		return nil, errInvalidPrivkey
	}
	return secp256k1.NewPrivateKey(&k), nil
}

// FromKey exports a private key into a binary dump.
func FromKey(prv *secp256k1.PrivateKey) []byte {
	if prv == nil {
		return nil
	}
	return prv.Serialize()
}

// HexToKey parses a secp256k1 private key.
// HexToKey 解析十六进制形式的 secp256k1 私钥。
func HexToKey(hexkey string) (*secp256k1.PrivateKey, error) {
	b, err := hex.DecodeString(hexkey)
	if byteErr, ok := err.(hex.InvalidByteError); ok {
		return nil, fmt.Errorf("invalid hex character %q in private key", byte(byteErr))
	} else if err != nil {
		return nil, errors.New("invalid hex data for private key")
	}
	return ToKey(b)
}

// LoadKey loads a secp256k1 private key from the given file.
// LoadKey 从给定文件加载 secp256k1 私钥。
func LoadKey(file string) (*secp256k1.PrivateKey, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	r := bufio.NewReader(fd)
	buf := make([]byte, 64)
	n, err := readASCII(buf, r)
	if err != nil {
		return nil, err
	} else if n != len(buf) {
		return nil, errors.New("key file too short, want 64 hex characters")
	}
	if err := checkKeyFileEnd(r); err != nil {
		return nil, err
	}
	return HexToKey(string(buf))
}

// readASCII reads into 'buf', stopping when the buffer is full or
// when a non-printable control character is encountered.
func readASCII(buf []byte, r *bufio.Reader) (n int, err error) {
	for ; n < len(buf); n++ {
		buf[n], err = r.ReadByte()
		switch {
		case err == io.EOF || buf[n] < '!':
			return n, nil
		case err != nil:
			return n, err
		}
	}
	return n, nil
}

// checkKeyFileEnd skips over additional newlines at the end of a key file.
func checkKeyFileEnd(r *bufio.Reader) error {
	for i := 0; ; i++ {
		b, err := r.ReadByte()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		case b != '\n' && b != '\r':
			return fmt.Errorf("invalid character %q at end of key file", b)
		case i >= 2:
			return errors.New("key file too long, want 64 hex characters")
		}
	}
}

// GenerateKey generates a new private key.
// GenerateKey 生成新的私钥。
func GenerateKey() (*secp256k1.PrivateKey, error) {
	var d [32]byte
	for {
		if _, err := io.ReadFull(rand.Reader, d[:]); err != nil {
			return nil, err
		}
		if key, err := ToKey(d[:]); err == nil {
			return key, nil
		}
	}
}

// ValidateSignatureValues verifies whether the signature values are valid with
// the given chain rules. The v value is assumed to be either 0 or 1.
//
// Signatures with s above half the curve order are accepted: transactions
// signed before Homestead carry them and must still recover.
//
// ValidateSignatureValues 验证签名值 (v, r, s) 是否有效。v 只能是 0 或 1，
// r 与 s 必须非零且小于曲线阶 N。
func ValidateSignatureValues(v byte, r, s *uint256.Int) bool {
	if r.IsZero() || s.IsZero() {
		return false
	}
	return r.Lt(secp256k1N) && s.Lt(secp256k1N) && (v == 0 || v == 1)
}

// PubkeyToAddress derives the address from the uncompressed public key:
// the last 20 bytes of keccak256(X ++ Y).
//
// PubkeyToAddress 从公钥派生以太坊地址。
func PubkeyToAddress(p *secp256k1.PublicKey) common.Address {
	pubBytes := p.SerializeUncompressed()
	return common.BytesToAddress(Keccak256(pubBytes[1:])[12:])
}

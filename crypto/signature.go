// Copyright 2017 The go-ethereum Authors
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
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	decred_ecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"
)

// Ecrecover returns the uncompressed public key that created the given signature.
// Ecrecover 返回创建给定签名的未压缩公钥。
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// SigToPub returns the public key that created the given signature.
// The signature must be in the [R || S || V] format where V is 0 or 1.
//
// SigToPub 返回创建给定签名的公钥。签名格式为 [R || S || V]，V 为 0 或 1。
func SigToPub(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(hash) != DigestLength {
		return nil, fmt.Errorf("%w: %d", errInvalidHashLen, len(hash))
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("%w: %d", errInvalidSigLen, len(sig))
	}
	// Convert to secp256k1 input format with 'recovery id' v at the beginning.
	// decred 期望 V 在开头，且取值 27/28（未压缩公钥）。
	btcsig := make([]byte, SignatureLength)
	btcsig[0] = sig[RecoveryIDOffset] + 27
	copy(btcsig[1:], sig)

	pub, _, err := decred_ecdsa.RecoverCompact(btcsig, hash)
	return pub, err
}

// SigToAddress recovers the address of the key that produced sig over hash.
// SigToAddress 从签名恢复签名者地址。
func SigToAddress(hash, sig []byte) (common.Address, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return PubkeyToAddress(pub), nil
}

// Sign calculates an ECDSA signature.
//
// This function is susceptible to chosen plaintext attacks that can leak
// information about the private key that is used for signing. Callers must
// be aware that the given hash cannot be chosen by an adversary. Common
// solution is to hash any input before calculating the signature.
//
// The produced signature is in the [R || S || V] format where V is 0 or 1.
//
// Sign 计算 ECDSA 签名，生成的签名格式为 [R || S || V]，V 为 0 或 1。
func Sign(hash []byte, prv *secp256k1.PrivateKey) ([]byte, error) {
	if len(hash) != DigestLength {
		return nil, fmt.Errorf("hash is required to be exactly 32 bytes (%d)", len(hash))
	}
	if prv == nil || prv.Key.IsZero() {
		return nil, errInvalidPrivkey
	}
	sig := decred_ecdsa.SignCompact(prv, hash, false) // ref uncompressed pubkey
	// Convert to Ethereum signature format with 'recovery id' v at the end.
	// 转换为以太坊格式，V 在末尾
	v := sig[0] - 27
	copy(sig, sig[1:])
	sig[RecoveryIDOffset] = v
	return sig, nil
}

// Copyright 2016 The go-ethereum Authors
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
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sunyihoo/devchain/crypto"
)

// SignTx signs the request with the given private key and returns the signed
// transaction.
//
// SignTx 使用给定私钥对请求签名并返回已签名的交易。
func SignTx(req TxRequest, prv *secp256k1.PrivateKey) (*TypedTransaction, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	h := req.SigningHash()
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return WithSignature(req, sig)
}

// MustSignTx signs the request and panics on error.
func MustSignTx(req TxRequest, prv *secp256k1.PrivateKey) *TypedTransaction {
	tx, err := SignTx(req, prv)
	if err != nil {
		panic(err)
	}
	return tx
}

// WithSignature returns a transaction built from the request and a signature
// in the [R || S || V] format, V being the recovery id. This lets signatures
// produced elsewhere (hardware wallets, remote signers) be attached.
//
// WithSignature 使用请求和 [R || S || V] 格式的签名构造交易，V 为恢复 ID（0 或 1）。
func WithSignature(req TxRequest, sig []byte) (*TypedTransaction, error) {
	r, s, recid, err := decodeSignature(sig)
	if err != nil {
		return nil, err
	}
	if recid > 1 {
		return nil, fmt.Errorf("%w: recovery id %d", ErrInvalidSig, recid)
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	return NewTx(req.withSignature(req.signatureV(recid), &r, &s)), nil
}

// WithRawSignature attaches the signature values verbatim, without deriving v
// from a recovery id.
//
// WithRawSignature 原样附加签名值，不从恢复 ID 推导 v。
func WithRawSignature(req TxRequest, sig Signature) *TypedTransaction {
	return NewTx(req.withSignature(sig.V, &sig.R, &sig.S))
}

// checkRequest rejects requests whose signature values cannot be encoded.
func checkRequest(req TxRequest) error {
	if legacy, ok := req.(LegacyTransactionRequest); ok {
		return legacy.checkChainID()
	}
	return nil
}

// recoverSender hashes the unsigned view of tx and recovers the signer.
// recoverSender 对交易的未签名视图求哈希并恢复签名者。
func recoverSender(tx TxData) (common.Address, error) {
	recid, err := tx.recoveryID()
	if err != nil {
		return common.Address{}, err
	}
	sig := tx.signature()
	return recoverPlain(tx.unsigned().SigningHash(), &sig.R, &sig.S, recid)
}

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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// TxRequest is an unsigned transaction of one of the supported types. It is
// implemented by LegacyTransactionRequest, EIP2930TransactionRequest,
// EIP1559TransactionRequest, EIP4844TransactionRequest and
// EIP7702TransactionRequest.
//
// TxRequest 是受支持类型之一的未签名交易。签名哈希只从未签名字段计算。
type TxRequest interface {
	// Type returns the EIP-2718 type of the transaction the request signs into.
	Type() uint8
	// SigningHash returns the hash the sender signs.
	SigningHash() common.Hash

	// destination returns the call target or creation marker.
	destination() TxKind
	// signatureV converts a recovery id into the v value stored by the
	// signed transaction.
	signatureV(recid byte) uint64
	// withSignature builds the signed body carrying exactly the given
	// signature values. The body shares slices with the request.
	withSignature(v uint64, r, s *uint256.Int) TxData
}

var (
	_ TxRequest = LegacyTransactionRequest{}
	_ TxRequest = EIP2930TransactionRequest{}
	_ TxRequest = EIP1559TransactionRequest{}
	_ TxRequest = EIP4844TransactionRequest{}
	_ TxRequest = EIP7702TransactionRequest{}

	_ TxData = (*LegacyTransaction)(nil)
	_ TxData = (*EIP2930Transaction)(nil)
	_ TxData = (*EIP1559Transaction)(nil)
	_ TxData = (*EIP4844Transaction)(nil)
	_ TxData = (*EIP7702Transaction)(nil)
)

// RequestKind returns the destination of an unsigned request.
func RequestKind(req TxRequest) TxKind {
	return req.destination()
}

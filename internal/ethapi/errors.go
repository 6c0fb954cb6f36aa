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

package ethapi

import (
	"errors"

	"github.com/sunyihoo/devchain/core/types"
)

// invalidTxError is an API error carrying a JSON-RPC error code.
type invalidTxError struct {
	Message string `json:"message"` // 错误消息
	Code    int    `json:"code"`    // 错误代码
}

func (e *invalidTxError) Error() string  { return e.Message } // 返回错误消息。
func (e *invalidTxError) ErrorCode() int { return e.Code }    // 返回错误代码。

const (
	errCodeInternalError   = -32603 // 内部错误代码
	errCodeInvalidParams   = -32602 // 参数无效错误代码
	errCodeInvalidInput    = -32000 // 输入无效错误代码
	errCodeTxRejected      = -32003 // 交易被拒绝错误代码
	errCodeUnsupportedType = -32004 // 方法或类型不受支持错误代码
)

// TxError maps codec and classification errors to JSON-RPC errors.
// See: https://eips.ethereum.org/EIPS/eip-1474
//
// TxError 将编解码和分类错误映射到 JSON-RPC 错误。
func TxError(err error) *invalidTxError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrAmbiguousRequest), errors.Is(err, errDataInputMismatch), errors.Is(err, errMissingRecipient):
		return &invalidTxError{Message: err.Error(), Code: errCodeInvalidParams}
	case errors.Is(err, types.ErrTxTypeNotSupported):
		return &invalidTxError{Message: err.Error(), Code: errCodeUnsupportedType}
	case errors.Is(err, types.ErrTxDecode):
		return &invalidTxError{Message: err.Error(), Code: errCodeInvalidInput}
	case errors.Is(err, types.ErrInvalidSig):
		return &invalidTxError{Message: err.Error(), Code: errCodeTxRejected}
	}
	return &invalidTxError{
		Message: err.Error(),
		Code:    errCodeInternalError, // 默认返回内部错误。
	}
}

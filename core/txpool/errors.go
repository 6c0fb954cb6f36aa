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

package txpool

import "errors"

var (
	// ErrInvalidSender is returned if the transaction contains an invalid signature.
	// ErrInvalidSender 如果交易包含无效签名，则返回此错误。
	ErrInvalidSender = errors.New("invalid sender")

	// ErrOversizedData is returned if the input data of a transaction is greater
	// than some meaningful limit a user might use. This is not a consensus error
	// making the transaction invalid, rather a DOS protection.
	// ErrOversizedData 如果交易的输入数据大于用户可能使用的某个有意义的限制，则返回此错误。
	// 这不是一个导致交易无效的共识错误，而是一种拒绝服务 (DOS) 保护。
	ErrOversizedData = errors.New("oversized data")
)

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
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

var (
	ErrInvalidSig         = errors.New("invalid transaction v, r, s values")            // 交易签名中的 v, r, s 值无效（可能是格式错误或无法恢复签名者）
	ErrTxDecode           = errors.New("invalid transaction encoding")                  // 所有解码失败都包装此错误
	ErrTxTypeNotSupported = errors.New("transaction type not supported")                // 交易类型完全不受支持（例如新类型未实现）。
	ErrInvalidTxKind      = errors.New("invalid transaction destination")               // 目标地址既不是空字符串也不是 20 字节字符串
	ErrTrailingBytes      = errors.New("trailing bytes after transaction")              // 规范编码之后还有多余字节
	errEmptyTx            = errors.New("empty transaction encoding")                    // 输入为空
	errShortTypedTx       = errors.New("typed transaction too short")                   // 类型化交易的数据长度不足（可能是编码错误）。
	errInvalidYParity     = errors.New("'yParity' field must be 0 or 1")                // 类型化交易的 yParity 字段（签名奇偶性）必须是 0 或 1。
	errVYParityMismatch   = errors.New("'v' and 'yParity' fields do not match")         // 传统 v 值与类型化交易的 yParity 不一致。
	errVYParityMissing    = errors.New("missing 'yParity' or 'v' field in transaction") // 交易缺少 yParity 或 v 字段。
)

// Transaction types.
// 交易类型。
const (
	LegacyTxType     = 0x00 // 传统交易类型
	AccessListTxType = 0x01 // 访问列表交易（EIP-2930）
	DynamicFeeTxType = 0x02 // 动态费用交易（EIP-1559）
	BlobTxType       = 0x03 // Blob 交易（EIP-4844）
	SetCodeTxType    = 0x04 // 设置代码交易（EIP-7702）
)

// TypedTransaction is a signed Ethereum transaction in any of the supported
// wire formats. It is immutable: it is created by decoding or by signing a
// request, and all accessors return copies.
//
// TypedTransaction 是任一受支持线格式的已签名以太坊交易。
// 它是不可变的：通过解码或对请求签名创建，所有访问器都返回副本。
type TypedTransaction struct {
	inner TxData // Consensus contents of a transaction 交易的共识内容
}

// NewTx creates a new transaction from a deep copy of inner.
// NewTx 使用 inner 的深拷贝创建一个新的交易。
func NewTx(inner TxData) *TypedTransaction {
	return &TypedTransaction{inner: inner.copy()}
}

// TxData is the underlying data of a transaction.
//
// This is implemented by LegacyTransaction, EIP2930Transaction,
// EIP1559Transaction, EIP4844Transaction and EIP7702Transaction. The set is
// closed: consumers may type switch over it exhaustively.
//
// TxData 是交易的底层数据，由五种交易体实现。该集合是封闭的，调用者可以对其进行穷尽的类型判断。
type TxData interface {
	// Hash returns the transaction hash: keccak256 of the canonical encoding.
	Hash() common.Hash
	// Recover returns the address that signed the transaction.
	Recover() (common.Address, error)
	// Size returns the length of the canonical encoding.
	Size() uint64

	txType() byte // returns the type ID  返回类型 ID
	copy() TxData // creates a deep copy and initializes all fields 创建一个深拷贝并初始化所有字段

	chainID() (uint64, bool) // 链 ID（传统交易可能没有）
	accessList() AccessList  // 访问列表（EIP-2930）
	data() []byte            // 交易数据（调用数据或合约代码）
	gas() uint64             // 燃气限制
	gasPrice() *uint256.Int  // 燃气价格；费用市场交易返回 maxFeePerGas
	gasTipCap() *uint256.Int // 小费上限（EIP-1559），旧格式返回 nil
	gasFeeCap() *uint256.Int // 费用上限（EIP-1559），旧格式返回 nil
	value() *uint256.Int     // 转账金额
	nonce() uint64           // 账户交易计数器
	kind() TxKind            // 调用或创建

	signature() Signature      // 原始签名值
	recoveryID() (byte, error) // 从 V 推导出的恢复 ID（0 或 1）
	unsigned() TxRequest       // 未签名的请求视图，与交易体共享切片
	payloadSize() uint64       // 已签名 RLP 列表的内容长度
	decode([]byte) error
}

// EncodeRLP implements rlp.Encoder. Typed transactions are wrapped in an RLP
// string so that they can be embedded in lists.
//
// EncodeRLP 实现了 rlp.Encoder。类型化交易被包装成 RLP 字符串，以便嵌入列表中。
func (tx *TypedTransaction) EncodeRLP(w io.Writer) error {
	if tx.Type() == LegacyTxType {
		return rlp.Encode(w, tx.inner)
	}
	// It's an EIP-2718 typed TX envelope.
	buf := encodeBufferPool.Get().(*bytes.Buffer)
	defer encodeBufferPool.Put(buf)
	buf.Reset()
	if err := tx.encodeTyped(buf); err != nil {
		return err
	}
	return rlp.Encode(w, buf.Bytes())
}

// encodeTyped writes the canonical encoding of a typed transaction to w.
// encodeTyped 将类型化交易的规范编码写入 w。
func (tx *TypedTransaction) encodeTyped(w *bytes.Buffer) error {
	w.WriteByte(tx.Type())
	return rlp.Encode(w, tx.inner)
}

// MarshalBinary returns the canonical encoding of the transaction.
// For legacy transactions, it returns the RLP encoding. For EIP-2718 typed
// transactions, it returns the type and payload.
//
// MarshalBinary 返回交易的规范编码。
// 对于传统交易，返回 RLP 编码。对于 EIP-2718 类型化交易，返回类型和负载（不包裹 RLP）。
func (tx *TypedTransaction) MarshalBinary() ([]byte, error) {
	if tx.Type() == LegacyTxType {
		return rlp.EncodeToBytes(tx.inner)
	}
	var buf bytes.Buffer
	buf.Grow(int(tx.Size()))
	err := tx.encodeTyped(&buf)
	return buf.Bytes(), err
}

// DecodeRLP implements rlp.Decoder. It accepts a legacy list or a typed
// transaction wrapped in an RLP string, so transactions can be read out of
// enclosing lists such as block bodies.
//
// DecodeRLP 实现了 rlp.Decoder。
func (tx *TypedTransaction) DecodeRLP(s *rlp.Stream) error {
	kind, _, err := s.Kind()
	switch {
	case err != nil:
		// rlp.EOL must reach the enclosing list decoder unwrapped.
		return err
	case kind == rlp.List:
		// It's a legacy transaction. 这是一个传统交易。
		var inner LegacyTransaction
		if err := s.Decode(&inner); err != nil {
			return decodeError(err)
		}
		tx.inner = &inner
		return nil
	case kind == rlp.Byte:
		return decodeError(errShortTypedTx)
	default:
		// It's an EIP-2718 typed TX envelope.
		// 这是一个 EIP-2718 类型化交易包。
		b, err := s.Bytes()
		if err != nil {
			return decodeError(err)
		}
		inner, err := decodeTyped(b)
		if err != nil {
			return decodeError(err)
		}
		tx.inner = inner
		return nil
	}
}

// UnmarshalBinary decodes the canonical encoding of a transaction. The input
// must hold exactly one transaction; an outer RLP string header around a typed
// transaction is tolerated.
//
// UnmarshalBinary 解码交易的规范编码。输入必须恰好包含一个交易。
func (tx *TypedTransaction) UnmarshalBinary(b []byte) error {
	decoded, rest, err := DecodeTransaction(b)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return decodeError(fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(rest)))
	}
	tx.inner = decoded.inner
	return nil
}

// decodeTyped decodes a typed transaction from the canonical format.
// decodeTyped 从规范格式（类型字节 ++ RLP 列表）解码类型化交易。
func decodeTyped(b []byte) (TxData, error) {
	if len(b) <= 1 {
		return nil, errShortTypedTx
	}
	var inner TxData
	switch b[0] {
	case AccessListTxType:
		inner = new(EIP2930Transaction)
	case DynamicFeeTxType:
		inner = new(EIP1559Transaction)
	case BlobTxType:
		inner = new(EIP4844Transaction)
	case SetCodeTxType:
		inner = new(EIP7702Transaction)
	default:
		return nil, fmt.Errorf("%w: type %#x", ErrTxTypeNotSupported, b[0])
	}
	if err := inner.decode(b[1:]); err != nil {
		return nil, err
	}
	return inner, nil
}

// decodeError marks err as a decoding failure.
func decodeError(err error) error {
	if errors.Is(err, ErrTxDecode) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTxDecode, err)
}

// Type returns the transaction type.
// Type 返回交易类型。
func (tx *TypedTransaction) Type() uint8 {
	return tx.inner.txType()
}

// Inner returns a deep copy of the transaction body, for callers that need to
// switch over the concrete variant.
//
// Inner 返回交易体的深拷贝，供需要按具体类型分派的调用者使用。
func (tx *TypedTransaction) Inner() TxData {
	return tx.inner.copy()
}

// ChainID returns the chain ID of the transaction. Legacy transactions that
// are not replay-protected have none.
//
// ChainID 返回交易的链 ID。不受重放保护的传统交易没有链 ID。
func (tx *TypedTransaction) ChainID() (uint64, bool) {
	return tx.inner.chainID()
}

// IsReplayProtected reports whether the signature commits to a chain ID.
func (tx *TypedTransaction) IsReplayProtected() bool {
	_, ok := tx.inner.chainID()
	return ok
}

// IsDynamicFee reports whether the transaction prices gas with a fee cap and
// a priority fee instead of a fixed gas price.
func (tx *TypedTransaction) IsDynamicFee() bool {
	return tx.inner.gasFeeCap() != nil
}

// Data returns the input data of the transaction.
// Data 返回交易的输入数据。
func (tx *TypedTransaction) Data() []byte { return common.CopyBytes(tx.inner.data()) }

// AccessList returns the access list of the transaction. It is empty for
// legacy transactions.
//
// AccessList 返回交易的访问列表，传统交易返回空。
func (tx *TypedTransaction) AccessList() AccessList { return tx.inner.accessList().copy() }

// GasLimit returns the gas limit of the transaction.
// GasLimit 返回交易的燃气限制。
func (tx *TypedTransaction) GasLimit() uint64 { return tx.inner.gas() }

// GasPrice returns the gas price of the transaction. For fee-market
// transactions this is the max fee per gas.
//
// GasPrice 返回交易的燃气价格；对于费用市场交易，返回 maxFeePerGas。
func (tx *TypedTransaction) GasPrice() *uint256.Int {
	return new(uint256.Int).Set(tx.inner.gasPrice())
}

// MaxFeePerGas returns the fee cap of fee-market transactions, or nil.
func (tx *TypedTransaction) MaxFeePerGas() *uint256.Int {
	return copyU256(tx.inner.gasFeeCap())
}

// MaxPriorityFeePerGas returns the tip cap of fee-market transactions, or nil.
func (tx *TypedTransaction) MaxPriorityFeePerGas() *uint256.Int {
	return copyU256(tx.inner.gasTipCap())
}

// Value returns the ether amount of the transaction.
// Value 返回交易的以太金额。
func (tx *TypedTransaction) Value() *uint256.Int {
	return new(uint256.Int).Set(tx.inner.value())
}

// Nonce returns the sender account nonce of the transaction.
// Nonce 返回交易的发送者账户 nonce。
func (tx *TypedTransaction) Nonce() uint64 { return tx.inner.nonce() }

// Kind returns the destination of the transaction.
func (tx *TypedTransaction) Kind() TxKind { return tx.inner.kind() }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
//
// To 返回交易的接收者地址。对于合约创建交易，To 返回 nil。
func (tx *TypedTransaction) To() *common.Address { return tx.inner.kind().To() }

// Signature returns the raw signature values of the transaction.
// Signature 返回交易的原始签名值。
func (tx *TypedTransaction) Signature() Signature { return tx.inner.signature() }

// BlobVersionedHashes returns the blob hashes of EIP-4844 transactions.
func (tx *TypedTransaction) BlobVersionedHashes() []common.Hash {
	if blobtx, ok := tx.inner.(*EIP4844Transaction); ok {
		return copyHashes(blobtx.BlobVersionedHashes)
	}
	return nil
}

// MaxFeePerBlobGas returns the blob gas fee cap of EIP-4844 transactions, or nil.
func (tx *TypedTransaction) MaxFeePerBlobGas() *uint256.Int {
	if blobtx, ok := tx.inner.(*EIP4844Transaction); ok {
		return new(uint256.Int).Set(&blobtx.MaxFeePerBlobGas)
	}
	return nil
}

// AuthorizationList returns the authorizations of EIP-7702 transactions.
// AuthorizationList 返回 EIP-7702 交易的授权列表。
func (tx *TypedTransaction) AuthorizationList() []SetCodeAuthorization {
	if setcodetx, ok := tx.inner.(*EIP7702Transaction); ok {
		return copyAuthList(setcodetx.AuthorizationList)
	}
	return nil
}

// Request returns the unsigned request the signature of tx commits to. The
// result shares no memory with tx.
//
// Request 返回签名所承诺的未签名请求。结果与 tx 不共享内存。
func (tx *TypedTransaction) Request() TxRequest {
	return tx.inner.copy().unsigned()
}

// Hash returns the transaction hash.
// Hash 返回交易哈希。
func (tx *TypedTransaction) Hash() common.Hash {
	return tx.inner.Hash()
}

// Size returns the length of the canonical encoding (MarshalBinary), computed
// from the field sizes without encoding the transaction.
//
// Size 返回规范编码（MarshalBinary）的长度，由字段大小计算得出，无需编码。
func (tx *TypedTransaction) Size() uint64 {
	return tx.inner.Size()
}

// Recover returns the address derived from the signature (V, R, S) using
// secp256k1 elliptic curve and an error if it failed deriving or upon an
// incorrect signature.
//
// Recover 使用 secp256k1 从签名 (V, R, S) 推导出发送者地址；签名无效时返回 ErrInvalidSig。
func (tx *TypedTransaction) Recover() (common.Address, error) {
	return tx.inner.Recover()
}

// typedSize is the canonical length of a typed transaction with the given
// signed list payload.
func typedSize(payload uint64) uint64 {
	return 1 + rlp.ListSize(payload)
}

// copyU256 returns a copy of x, or nil.
func copyU256(x *uint256.Int) *uint256.Int {
	if x == nil {
		return nil
	}
	return new(uint256.Int).Set(x)
}

func copyHashes(hashes []common.Hash) []common.Hash {
	if hashes == nil {
		return nil
	}
	return append(make([]common.Hash, 0, len(hashes)), hashes...)
}

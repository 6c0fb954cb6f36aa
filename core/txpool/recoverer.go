// Copyright 2018 The go-ethereum Authors
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

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sunyihoo/devchain/core/types"
	"golang.org/x/sync/errgroup"
)

const (
	// txSlotSize is used to calculate how many data slots a single transaction
	// takes up based on its size.
	// txSlotSize 用于根据交易大小计算单个交易占用的数据槽数。
	txSlotSize = 32 * 1024

	// txMaxSize is the maximum size a single transaction can have. Larger
	// transactions are rejected before any decoding work is spent on them.
	// txMaxSize 是单个交易的最大大小。
	txMaxSize = 4 * txSlotSize // 128KB

	// DefaultSenderCacheSize is the number of hash to sender mappings kept by
	// a recoverer when no size is configured.
	DefaultSenderCacheSize = 4096
)

var (
	senderHitMeter   = metrics.NewRegisteredMeter("txpool/sender/hit", nil)
	senderMissMeter  = metrics.NewRegisteredMeter("txpool/sender/miss", nil)
	invalidSigMeter  = metrics.NewRegisteredMeter("txpool/sender/invalid", nil)
	oversizedTxMeter = metrics.NewRegisteredMeter("txpool/oversized", nil)
)

// Recoverer is a concurrent transaction sender recoverer. Recovered senders
// are kept in an LRU cache keyed by transaction hash, so transactions seen
// again skip the elliptic curve math.
//
// Recoverer 是一个并发的交易发送者恢复器。恢复出的发送者按交易哈希保存在 LRU 缓存中，
// 再次遇到的交易无需重复进行椭圆曲线运算。
type Recoverer struct {
	workers int
	senders *lru.Cache[common.Hash, common.Address]
}

// NewRecoverer creates a recoverer running at most workers recoveries at a
// time. Non-positive values select the defaults: one worker per CPU and
// DefaultSenderCacheSize cached senders.
//
// NewRecoverer 创建一个最多同时运行 workers 个恢复任务的恢复器。
func NewRecoverer(workers, cacheSize int) *Recoverer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultSenderCacheSize
	}
	senders, err := lru.New[common.Hash, common.Address](cacheSize)
	if err != nil {
		// Only returned for non-positive sizes, which are excluded above.
		panic(err)
	}
	return &Recoverer{workers: workers, senders: senders}
}

// Recover resolves the sender of a single transaction, consulting the cache
// first.
//
// Recover 解析单个交易的发送者，优先查询缓存。
func (r *Recoverer) Recover(tx *types.TypedTransaction) (*PendingTransaction, error) {
	hash := tx.Hash()
	if sender, ok := r.senders.Get(hash); ok {
		senderHitMeter.Mark(1)
		log.Trace("Sender cache hit", "hash", hash, "sender", sender)
		return &PendingTransaction{tx: types.NewMaybeImpersonated(tx), sender: sender, hash: hash}, nil
	}
	senderMissMeter.Mark(1)

	pending, err := NewPendingTransaction(tx)
	if err != nil {
		invalidSigMeter.Mark(1)
		return nil, err
	}
	r.senders.Add(hash, pending.sender)
	return pending, nil
}

// RecoverBatch recovers the senders of a batch of transactions concurrently.
// The results are in input order. The first failure cancels the remaining
// work and is returned, annotated with the index of the offending transaction.
//
// RecoverBatch 并发地恢复一批交易的发送者。结果按输入顺序排列。
// 第一个失败会取消剩余的工作并被返回，错误中标注出问题交易的索引。
func (r *Recoverer) RecoverBatch(ctx context.Context, txs []*types.TypedTransaction) ([]*PendingTransaction, error) {
	// If there's nothing to recover, abort
	// 如果没有需要恢复的，则中止。
	if len(txs) == 0 {
		return nil, nil
	}
	results := make([]*PendingTransaction, len(txs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, tx := range txs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pending, err := r.Recover(tx)
			if err != nil {
				return fmt.Errorf("transaction %d (%x): %w", i, tx.Hash(), err)
			}
			results[i] = pending
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug("Recovered transaction senders", "count", len(results), "workers", r.workers)
	return results, nil
}

// RecoverRaw decodes back-to-back canonical transactions from b and recovers
// their senders. Every transaction must fit into txMaxSize.
//
// RecoverRaw 从 b 中解码连续的规范编码交易并恢复其发送者。每个交易都不得超过 txMaxSize。
func (r *Recoverer) RecoverRaw(ctx context.Context, b []byte) ([]*PendingTransaction, error) {
	var (
		txs []*types.TypedTransaction
		dec = types.NewDecoder(b)
	)
	for dec.More() {
		tx, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", len(txs), err)
		}
		if size := tx.Size(); size > txMaxSize {
			oversizedTxMeter.Mark(1)
			return nil, fmt.Errorf("%w: transaction %d size %d, limit %d", ErrOversizedData, len(txs), size, txMaxSize)
		}
		txs = append(txs, tx)
	}
	return r.RecoverBatch(ctx, txs)
}

// Purge drops all cached senders.
func (r *Recoverer) Purge() {
	r.senders.Purge()
}

// Cached returns the number of cached senders.
func (r *Recoverer) Cached() int {
	return r.senders.Len()
}

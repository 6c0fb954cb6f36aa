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

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/devchain/core/types"
)

var (
	testKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
	testAddr   = common.HexToAddress("0x71562b71999873db5b286df957af199ec94617f7")

	legacyRaw  = "f85f800182520894095e7baea6a6c7c4c2dfeb977efac326af552d870a801ba048b55bfa915ac795c431978d8a6a992b628d557da5ff759b307d495a36649353a0efffd310ac743f371de3b9f7f9cb56c0b28ad43601b4ab949f53faa07bd2c804"
	legacyFrom = common.HexToAddress("0x0f65fe9276bc9a24ae7083ae28e2660ef72df99e")
	legacyTo   = common.HexToAddress("0x095e7baea6a6c7c4c2dfeb977efac326af552d87")
	dynamicRaw = "02f872041a8459682f008459682f0d8252089461815774383099e24810ab832a5b2a5425c154d58829a2241af62c000080c001a04906da9a63a75e87c7b532ce2a500cd4aa1dd90e29fe76ec74ba3b04fb6c27fda048355c52f83a5767cf029dc228b7e66b8d235b2aea3f44a625ba7d51bbe67fe9"
)

// runTxtool runs the tool with the given arguments and returns its output.
func runTxtool(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var (
		out bytes.Buffer
		app = newApp()
	)
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"txtool", "--verbosity", "0"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := runTxtool(t, stdin, args...)
	require.NoError(t, err, "txtool %v", args)
	return out
}

func decodeRaw(t *testing.T, s string) []*types.TypedTransaction {
	t.Helper()
	raw, err := hexutil.Decode("0x" + strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	require.NoError(t, err)
	txs, err := decodeAll(raw)
	require.NoError(t, err)
	return txs
}

func TestHashCommand(t *testing.T) {
	txs := decodeRaw(t, legacyRaw+dynamicRaw)
	out := mustRun(t, "", "hash", legacyRaw+dynamicRaw)
	lines := strings.Fields(out)
	require.Len(t, lines, 2)
	for i, tx := range txs {
		require.Equal(t, tx.Hash().Hex(), lines[i])
	}
	// Input read from stdin with a prefix and surrounding whitespace.
	require.Equal(t, out, mustRun(t, "  0x"+legacyRaw+dynamicRaw+"\n", "hash"))
}

func TestDecodeCommand(t *testing.T) {
	out := mustRun(t, "", "decode", dynamicRaw)
	var txs []*types.TypedTransaction
	require.NoError(t, json.Unmarshal([]byte(out), &txs))
	require.Len(t, txs, 1)
	require.Equal(t, decodeRaw(t, dynamicRaw)[0].Hash(), txs[0].Hash())

	out = mustRun(t, "", "decode", "--format", "essentials", legacyRaw)
	var ess []types.TransactionEssentials
	require.NoError(t, json.Unmarshal([]byte(out), &ess))
	require.Len(t, ess, 1)
	require.NotNil(t, ess[0].GasPrice)
	require.Nil(t, ess[0].MaxFeePerGas)

	out = mustRun(t, "", "decode", "--format", "dump", dynamicRaw)
	require.Contains(t, out, "EIP1559Transaction")

	_, err := runTxtool(t, "", "decode", "--format", "yaml", dynamicRaw)
	require.Error(t, err)
}

func TestDecodeCommandErrors(t *testing.T) {
	for _, input := range []string{"", "zz", "05c0", legacyRaw[:20]} {
		if _, err := runTxtool(t, "", "decode", input); err == nil {
			t.Errorf("input %q: expected error", input)
		}
	}
}

func TestEncodeCommand(t *testing.T) {
	decoded := mustRun(t, "", "decode", legacyRaw+dynamicRaw)
	out := mustRun(t, decoded, "encode")
	require.Equal(t, []string{"0x" + legacyRaw, "0x" + dynamicRaw}, strings.Fields(out))

	// A single object is accepted as well.
	var objs []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(decoded), &objs))
	out = mustRun(t, "", "encode", string(objs[1]))
	require.Equal(t, "0x"+dynamicRaw, strings.TrimSpace(out))
}

func TestRecoverCommand(t *testing.T) {
	out := mustRun(t, "", "recover", "--touched", legacyRaw)
	var recs []pendingJSON
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	require.Equal(t, legacyFrom, recs[0].Sender)
	require.False(t, recs[0].Impersonated)
	require.Equal(t, decodeRaw(t, legacyRaw)[0].Hash(), recs[0].Hash)
	require.Equal(t, []common.Address{legacyTo, legacyFrom}, recs[0].Touched)

	out = mustRun(t, "", "--recovery.workers", "2", "recover", "--format", "dump", legacyRaw+dynamicRaw)
	require.Equal(t, 2, strings.Count(out, "Caller:"))
}

func TestRecoverImpersonated(t *testing.T) {
	sender := "0x00000000000000000000000000000000000000aa"
	_, err := runTxtool(t, "", "recover", "--as", sender, legacyRaw)
	require.ErrorContains(t, err, "not impersonated")

	out := mustRun(t, "", "--impersonate", sender, "recover", "--as", sender, legacyRaw)
	var recs []pendingJSON
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	require.True(t, recs[0].Impersonated)
	require.Equal(t, common.HexToAddress(sender), recs[0].Sender)
	require.NotEqual(t, decodeRaw(t, legacyRaw)[0].Hash(), recs[0].Hash)

	// Auto-impersonation accepts every sender.
	out2 := mustRun(t, "", "--impersonate.auto", "recover", "--as", sender, legacyRaw)
	require.Equal(t, out, out2)
}

func TestSignCommand(t *testing.T) {
	request := `{
		"from": "0x71562b71999873db5b286df957af199ec94617f7",
		"to": "0x61815774383099e24810ab832a5b2a5425c154d5",
		"gas": "0x5208",
		"maxFeePerGas": "0x3b9aca00",
		"maxPriorityFeePerGas": "0x1",
		"value": "0x1",
		"nonce": "0x3"
	}`
	out := mustRun(t, request, "--chainid", "5", "sign", "--key", testKeyHex)
	txs := decodeRaw(t, out)
	require.Len(t, txs, 1)
	tx := txs[0]
	require.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
	chainID, ok := tx.ChainID()
	require.True(t, ok)
	require.Equal(t, uint64(5), chainID)
	require.Equal(t, uint64(3), tx.Nonce())
	sender, err := tx.Recover()
	require.NoError(t, err)
	require.Equal(t, testAddr, sender)

	// Legacy requests pick up the configured chain id.
	legacy := `{"to": "0x61815774383099e24810ab832a5b2a5425c154d5", "gasPrice": "0x1", "gas": "0x5208"}`
	tx = decodeRaw(t, mustRun(t, legacy, "sign", "--key", "0x"+testKeyHex))[0]
	require.Equal(t, uint8(types.LegacyTxType), tx.Type())
	chainID, ok = tx.ChainID()
	require.True(t, ok)
	require.Equal(t, defaultConfig.ChainID, chainID)
}

func TestSignCommandErrors(t *testing.T) {
	request := `{"to": "0x61815774383099e24810ab832a5b2a5425c154d5", "gas": "0x5208"}`

	_, err := runTxtool(t, request, "sign")
	require.ErrorContains(t, err, "missing signing key")

	_, err = runTxtool(t, request, "sign", "--key", testKeyHex, "--keyfile", "/nonexistent")
	require.ErrorContains(t, err, "can't be used at the same time")

	wrongFrom := `{"from": "0x00000000000000000000000000000000000000aa", "gas": "0x5208"}`
	_, err = runTxtool(t, wrongFrom, "sign", "--key", testKeyHex)
	require.ErrorContains(t, err, "key belongs to")

	ambiguous := `{"gasPrice": "0x1", "maxFeePerGas": "0x2"}`
	_, err = runTxtool(t, ambiguous, "sign", "--key", testKeyHex)
	require.ErrorContains(t, err, "code -32602")
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		request string
		typ     uint8
	}{
		{`{"gasPrice": "0x1"}`, types.LegacyTxType},
		{`{"accessList": []}`, types.AccessListTxType},
		{`{"maxFeePerGas": "0x1"}`, types.DynamicFeeTxType},
		{`{}`, types.DynamicFeeTxType},
		{`{"type": "0x3", "to": "0x61815774383099e24810ab832a5b2a5425c154d5"}`, types.BlobTxType},
		{`{"type": "0x4", "to": "0x61815774383099e24810ab832a5b2a5425c154d5"}`, types.SetCodeTxType},
	}
	for _, tt := range tests {
		out, err := runTxtool(t, tt.request, "classify")
		if err != nil {
			t.Fatalf("request %s: %v", tt.request, err)
		}
		var res classifyJSON
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		if uint8(res.Type) != tt.typ {
			t.Errorf("request %s: have type %d, want %d", tt.request, res.Type, tt.typ)
		}
		if res.Sender != nil {
			t.Errorf("request %s: unexpected sender", tt.request)
		}
	}
}

func TestClassifyCommandErrors(t *testing.T) {
	_, err := runTxtool(t, `{"gasPrice": "0x1", "maxFeePerGas": "0x2"}`, "classify")
	require.ErrorContains(t, err, "ambiguous transaction request")
	require.ErrorContains(t, err, "code -32602")

	_, err = runTxtool(t, `{"type": "0x3"}`, "classify")
	require.ErrorContains(t, err, "requires a recipient")

	_, err = runTxtool(t, `{"gas": 5}`, "classify")
	require.ErrorContains(t, err, "invalid transaction request")
}

func TestClassifyImpersonated(t *testing.T) {
	request := `{"from": "0x00000000000000000000000000000000000000aa", "maxFeePerGas": "0x1", "gas": "0x5208"}`
	out := mustRun(t, request, "--impersonate", "0x00000000000000000000000000000000000000aa", "classify")
	var res classifyJSON
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Sender)
	require.NotNil(t, res.ImpersonatedHash)
	require.Equal(t, common.HexToAddress("0xaa"), *res.Sender)
	require.NotEqual(t, res.SigningHash, *res.ImpersonatedHash)
	require.Equal(t, hexutil.Uint64(defaultConfig.ChainID), *res.Request.ChainID)
}

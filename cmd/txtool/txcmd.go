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
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/sunyihoo/devchain/core"
	"github.com/sunyihoo/devchain/core/txpool"
	"github.com/sunyihoo/devchain/core/types"
	"github.com/sunyihoo/devchain/crypto"
	"github.com/sunyihoo/devchain/internal/ethapi"
	"github.com/sunyihoo/devchain/internal/flags"
	"github.com/urfave/cli/v2"
)

var (
	formatFlag = &cli.StringFlag{
		Name:     "format",
		Usage:    "Output format (json|essentials|dump)",
		Value:    "json",
		Category: flags.TxCategory,
	}
	touchedFlag = &cli.BoolFlag{
		Name:     "touched",
		Usage:    "Include the addresses touched by each transaction",
		Category: flags.TxCategory,
	}
	senderFlag = &cli.StringFlag{
		Name:     "as",
		Usage:    "Submit the transactions unsigned on behalf of an impersonated account",
		Category: flags.DevCategory,
	}
	keyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "Hex encoded private key to sign with",
		Category: flags.SigningCategory,
	}
	keyFileFlag = &flags.PathFlag{
		Name:     "keyfile",
		Usage:    "File containing the hex encoded private key to sign with",
		Category: flags.SigningCategory,
	}
)

var (
	decodeCommand = &cli.Command{
		Name:      "decode",
		Usage:     "Decode raw transactions",
		ArgsUsage: "<hex>",
		Flags:     []cli.Flag{formatFlag},
		Action:    decodeTxs,
		Description: `
The decode command decodes back-to-back EIP-2718 encoded transactions and prints
them. The input is read from the first argument or from stdin.`,
	}
	encodeCommand = &cli.Command{
		Name:      "encode",
		Usage:     "Encode JSON transactions into their raw form",
		ArgsUsage: "<json>",
		Action:    encodeTxs,
		Description: `
The encode command reads a signed transaction, or a list of them, in JSON-RPC
format and prints the canonical encoding of each, one per line.`,
	}
	hashCommand = &cli.Command{
		Name:      "hash",
		Usage:     "Print the hashes of raw transactions",
		ArgsUsage: "<hex>",
		Action:    hashTxs,
	}
	recoverCommand = &cli.Command{
		Name:      "recover",
		Usage:     "Recover the senders of raw transactions",
		ArgsUsage: "<hex>",
		Flags:     []cli.Flag{formatFlag, touchedFlag, senderFlag},
		Action:    recoverTxs,
		Description: `
The recover command resolves the sender of every transaction in the input. With
--as the signatures are ignored and the transactions are submitted on behalf of
the given account, which must be impersonated (see --impersonate).`,
	}
	signCommand = &cli.Command{
		Name:      "sign",
		Usage:     "Sign a transaction request",
		ArgsUsage: "<json>",
		Flags:     []cli.Flag{keyFlag, keyFileFlag},
		Action:    signTx,
		Description: `
The sign command classifies a JSON-RPC transaction request, signs it with the
given key and prints the raw transaction.`,
	}
	classifyCommand = &cli.Command{
		Name:      "classify",
		Usage:     "Determine the transaction type of a request",
		ArgsUsage: "<json>",
		Action:    classifyTx,
	}
	dumpConfigCommand = &cli.Command{
		Name:   "dumpconfig",
		Usage:  "Export configuration values in a TOML format",
		Action: dumpConfig,
	}
)

// readInput returns the first argument, or stdin if the argument is missing
// or "-".
func readInput(ctx *cli.Context) ([]byte, error) {
	if arg := ctx.Args().First(); arg != "" && arg != "-" {
		return []byte(arg), nil
	}
	return io.ReadAll(ctx.App.Reader)
}

func readHex(ctx *cli.Context) ([]byte, error) {
	in, err := readInput(ctx)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(string(in))
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// decodeAll decodes every transaction in b.
func decodeAll(b []byte) ([]*types.TypedTransaction, error) {
	var (
		txs []*types.TypedTransaction
		dec = types.NewDecoder(b)
	)
	for dec.More() {
		tx, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", len(txs), err)
		}
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return nil, errors.New("no transactions in input")
	}
	return txs, nil
}

func readTxs(ctx *cli.Context) ([]*types.TypedTransaction, error) {
	raw, err := readHex(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAll(raw)
}

// readArgs reads a JSON-RPC transaction request. Requests without a chain id
// get the configured one.
func readArgs(ctx *cli.Context, cfg *txtoolConfig) (*ethapi.TransactionArgs, error) {
	in, err := readInput(ctx)
	if err != nil {
		return nil, err
	}
	args := new(ethapi.TransactionArgs)
	if err := json.Unmarshal(in, args); err != nil {
		return nil, fmt.Errorf("invalid transaction request: %v", err)
	}
	if args.ChainID == nil && cfg.ChainID != 0 {
		args.ChainID = (*hexutil.Uint64)(&cfg.ChainID)
	}
	return args, nil
}

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func decodeTxs(ctx *cli.Context) error {
	txs, err := readTxs(ctx)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	switch format := ctx.String(formatFlag.Name); format {
	case "json":
		return printJSON(w, txs)
	case "essentials":
		ess := make([]types.TransactionEssentials, len(txs))
		for i, tx := range txs {
			ess[i] = tx.Essentials()
		}
		return printJSON(w, ess)
	case "dump":
		for _, tx := range txs {
			dumper.Fdump(w, tx.Inner())
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encodeTxs(ctx *cli.Context) error {
	in, err := readInput(ctx)
	if err != nil {
		return err
	}
	var txs []*types.TypedTransaction
	if in = bytes.TrimSpace(in); len(in) > 0 && in[0] == '[' {
		err = json.Unmarshal(in, &txs)
	} else {
		tx := new(types.TypedTransaction)
		err = json.Unmarshal(in, tx)
		txs = append(txs, tx)
	}
	if err != nil {
		return err
	}
	for _, tx := range txs {
		raw, err := tx.MarshalBinary()
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, hexutil.Encode(raw))
	}
	return nil
}

func hashTxs(ctx *cli.Context) error {
	txs, err := readTxs(ctx)
	if err != nil {
		return err
	}
	for _, tx := range txs {
		fmt.Fprintln(ctx.App.Writer, tx.Hash().Hex())
	}
	return nil
}

// pendingJSON is the output record of the recover command.
type pendingJSON struct {
	Hash         common.Hash      `json:"hash"`
	Sender       common.Address   `json:"sender"`
	Nonce        hexutil.Uint64   `json:"nonce"`
	Impersonated bool             `json:"impersonated"`
	Touched      []common.Address `json:"touched,omitempty"`
}

func recoverTxs(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	raw, err := readHex(ctx)
	if err != nil {
		return err
	}
	var pending []*txpool.PendingTransaction
	if ctx.IsSet(senderFlag.Name) {
		pending, err = impersonateTxs(&cfg, raw, ctx.String(senderFlag.Name))
	} else {
		recoverer := makeRecoverer(&cfg)
		pending, err = recoverer.RecoverRaw(ctx.Context, raw)
	}
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return errors.New("no transactions in input")
	}
	log.Debug("Resolved transaction senders", "count", len(pending))

	w := ctx.App.Writer
	switch format := ctx.String(formatFlag.Name); format {
	case "json":
		out := make([]pendingJSON, len(pending))
		for i, p := range pending {
			out[i] = pendingJSON{
				Hash:         p.Hash(),
				Sender:       p.Sender(),
				Nonce:        hexutil.Uint64(p.Nonce()),
				Impersonated: p.IsImpersonated(),
			}
			if ctx.Bool(touchedFlag.Name) {
				out[i].Touched = sortedAddresses(p.TouchedAddresses().ToSlice())
			}
		}
		return printJSON(w, out)
	case "essentials":
		ess := make([]types.TransactionEssentials, len(pending))
		for i, p := range pending {
			ess[i] = p.Transaction().Essentials()
		}
		return printJSON(w, ess)
	case "dump":
		for _, p := range pending {
			dumper.Fdump(w, core.NewTxEnv(p))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// impersonateTxs submits the unsigned requests of the transactions in raw on
// behalf of sender.
func impersonateTxs(cfg *txtoolConfig, raw []byte, sender string) ([]*txpool.PendingTransaction, error) {
	if !common.IsHexAddress(sender) {
		return nil, fmt.Errorf("invalid sender address %q", sender)
	}
	txs, err := decodeAll(raw)
	if err != nil {
		return nil, err
	}
	var (
		manager = makeCheats(cfg)
		from    = common.HexToAddress(sender)
		pending = make([]*txpool.PendingTransaction, len(txs))
	)
	for i, tx := range txs {
		if pending[i], err = manager.PendingTransaction(tx.Request(), from); err != nil {
			return nil, err
		}
	}
	return pending, nil
}

func sortedAddresses(addrs []common.Address) []common.Address {
	slices.SortFunc(addrs, func(a, b common.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return addrs
}

func signTx(ctx *cli.Context) error {
	if err := flags.CheckExclusive(ctx, keyFlag, keyFileFlag); err != nil {
		return err
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	key, err := loadSigningKey(ctx)
	if err != nil {
		return err
	}
	args, err := readArgs(ctx, &cfg)
	if err != nil {
		return err
	}
	signer := crypto.PubkeyToAddress(key.PubKey())
	if args.From != nil && *args.From != signer {
		return fmt.Errorf("request is from %s, key belongs to %s", args.From, signer)
	}
	req, err := args.IntoTypedRequest()
	if err != nil {
		return txError(err)
	}
	tx, err := types.SignTx(req, key)
	if err != nil {
		return err
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return err
	}
	log.Debug("Signed transaction", "hash", tx.Hash(), "type", tx.Type(), "signer", signer)
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(raw))
	return err
}

func loadSigningKey(ctx *cli.Context) (*secp256k1.PrivateKey, error) {
	switch {
	case ctx.IsSet(keyFlag.Name):
		return crypto.HexToKey(strings.TrimPrefix(ctx.String(keyFlag.Name), "0x"))
	case ctx.IsSet(keyFileFlag.Name):
		return crypto.LoadKey(ctx.String(keyFileFlag.Name))
	}
	return nil, fmt.Errorf("missing signing key, use --%s or --%s", keyFlag.Name, keyFileFlag.Name)
}

// classifyJSON is the output record of the classify command.
type classifyJSON struct {
	Type             hexutil.Uint64              `json:"type"`
	SigningHash      common.Hash                 `json:"signingHash"`
	Request          types.TransactionEssentials `json:"request"`
	Sender           *common.Address             `json:"sender,omitempty"`
	ImpersonatedHash *common.Hash                `json:"impersonatedHash,omitempty"`
}

func classifyTx(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	args, err := readArgs(ctx, &cfg)
	if err != nil {
		return err
	}
	req, err := args.IntoTypedRequest()
	if err != nil {
		return txError(err)
	}
	out := classifyJSON{
		Type:        hexutil.Uint64(req.Type()),
		SigningHash: req.SigningHash(),
		Request:     types.WithRawSignature(req, types.Signature{}).Essentials(),
	}
	// Requests from impersonated accounts are accepted unsigned.
	if args.From != nil {
		if pending, err := makeCheats(&cfg).PendingTransaction(req, *args.From); err == nil {
			sender, hash := pending.Sender(), pending.Hash()
			out.Sender, out.ImpersonatedHash = &sender, &hash
		}
	}
	return printJSON(ctx.App.Writer, out)
}

// txError converts a codec or classification error into its JSON-RPC form.
func txError(err error) error {
	rpcErr := ethapi.TxError(err)
	return fmt.Errorf("%s (code %d)", rpcErr.Error(), rpcErr.ErrorCode())
}

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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/naoina/toml"
	"github.com/sunyihoo/devchain/core/cheats"
	"github.com/sunyihoo/devchain/core/txpool"
	"github.com/sunyihoo/devchain/internal/flags"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	chainIDFlag = &cli.Uint64Flag{
		Name:     "chainid",
		Usage:    "Chain ID used for requests that do not carry one",
		Category: flags.TxCategory,
	}
	workersFlag = &cli.IntFlag{
		Name:     "recovery.workers",
		Usage:    "Number of goroutines recovering senders in parallel",
		Category: flags.PerfCategory,
	}
	senderCacheFlag = &cli.IntFlag{
		Name:     "cache.senders",
		Usage:    "Number of recovered senders kept in memory",
		Category: flags.PerfCategory,
	}
	autoImpersonateFlag = &cli.BoolFlag{
		Name:     "impersonate.auto",
		Usage:    "Accept unsigned transactions from every account",
		Category: flags.DevCategory,
	}
	impersonateFlag = &cli.StringSliceFlag{
		Name:     "impersonate",
		Usage:    "Accounts whose unsigned transactions are accepted",
		Category: flags.DevCategory,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
// 这些设置保证 TOML 键与 Go 结构体字段同名。
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecatedConfigFields[id] {
			log.Warn(fmt.Sprintf("Config field '%s' is deprecated and won't have any effect.", id))
			return nil
		}
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

var deprecatedConfigFields = map[string]bool{
	"main.txtoolConfig.SignerCacheSize": true,
}

// txtoolConfig is the TOML configuration of txtool. Command line flags take
// precedence over the file.
//
// txtoolConfig 是 txtool 的 TOML 配置，命令行标志优先于配置文件。
type txtoolConfig struct {
	ChainID              uint64
	AutoImpersonate      bool
	ImpersonatedAccounts []common.Address
	RecoveryWorkers      int
	SenderCacheSize      int
}

var defaultConfig = txtoolConfig{
	ChainID:         1337,
	RecoveryWorkers: 0, // one per CPU
	SenderCacheSize: txpool.DefaultSenderCacheSize,
}

func loadConfig(file string, cfg *txtoolConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration from the defaults, the config file and
// the command line flags, in this order.
func makeConfig(ctx *cli.Context) (txtoolConfig, error) {
	cfg := defaultConfig
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(chainIDFlag.Name) {
		cfg.ChainID = ctx.Uint64(chainIDFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.RecoveryWorkers = ctx.Int(workersFlag.Name)
	}
	if ctx.IsSet(senderCacheFlag.Name) {
		cfg.SenderCacheSize = ctx.Int(senderCacheFlag.Name)
	}
	if ctx.IsSet(autoImpersonateFlag.Name) {
		cfg.AutoImpersonate = ctx.Bool(autoImpersonateFlag.Name)
	}
	for _, hex := range ctx.StringSlice(impersonateFlag.Name) {
		if !common.IsHexAddress(hex) {
			return cfg, fmt.Errorf("invalid --%s address %q", impersonateFlag.Name, hex)
		}
		cfg.ImpersonatedAccounts = append(cfg.ImpersonatedAccounts, common.HexToAddress(hex))
	}
	if cfg.RecoveryWorkers < 0 {
		return cfg, fmt.Errorf("invalid RecoveryWorkers %d", cfg.RecoveryWorkers)
	}
	return cfg, nil
}

// makeCheats creates the impersonation manager of the configuration.
func makeCheats(cfg *txtoolConfig) *cheats.Manager {
	m := cheats.NewManager()
	m.SetAutoImpersonate(cfg.AutoImpersonate)
	for _, addr := range cfg.ImpersonatedAccounts {
		m.Impersonate(addr)
	}
	return m
}

// makeRecoverer creates the sender recoverer of the configuration.
func makeRecoverer(cfg *txtoolConfig) *txpool.Recoverer {
	return txpool.NewRecoverer(cfg.RecoveryWorkers, cfg.SenderCacheSize)
}

// dumpConfig writes the configuration as TOML.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}

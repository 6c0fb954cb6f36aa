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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "txtool.toml")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestLoadConfig(t *testing.T) {
	file := writeConfig(t, `
ChainID = 31337
AutoImpersonate = false
ImpersonatedAccounts = ["0x71562b71999873db5b286df957af199ec94617f7"]
RecoveryWorkers = 2
SenderCacheSize = 128
`)
	cfg := defaultConfig
	if err := loadConfig(file, &cfg); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	want := txtoolConfig{
		ChainID:              31337,
		ImpersonatedAccounts: []common.Address{testAddr},
		RecoveryWorkers:      2,
		SenderCacheSize:      128,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +have):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	file := writeConfig(t, "ChainID = 1\nBlockGasLimit = 30000000\n")
	cfg := defaultConfig
	err := loadConfig(file, &cfg)
	if err == nil {
		t.Fatal("unknown field accepted")
	}
	if !strings.Contains(err.Error(), "BlockGasLimit") {
		t.Fatalf("unexpected error: %v", err)
	}

	// Deprecated fields are ignored.
	file = writeConfig(t, "ChainID = 9\nSignerCacheSize = 10\n")
	cfg = defaultConfig
	if err := loadConfig(file, &cfg); err != nil {
		t.Fatalf("deprecated field rejected: %v", err)
	}
	if cfg.ChainID != 9 {
		t.Fatalf("wrong chain id: %d", cfg.ChainID)
	}
}

func TestConfigFlagsOverrideFile(t *testing.T) {
	file := writeConfig(t, "ChainID = 31337\nRecoveryWorkers = 2\n")
	out := mustRun(t, "", "--config", file, "--chainid", "7", "--impersonate", testAddr.Hex(), "dumpconfig")

	cfg := defaultConfig
	if err := tomlSettings.NewDecoder(strings.NewReader(out)).Decode(&cfg); err != nil {
		t.Fatalf("dumped config does not parse: %v\n%s", err, out)
	}
	want := defaultConfig
	want.ChainID = 7
	want.RecoveryWorkers = 2
	want.ImpersonatedAccounts = []common.Address{testAddr}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +have):\n%s", diff)
	}
}

func TestConfigInvalidImpersonate(t *testing.T) {
	if _, err := runTxtool(t, "", "--impersonate", "0x1234", "dumpconfig"); err == nil {
		t.Fatal("invalid address accepted")
	}
	if _, err := runTxtool(t, "", "--recovery.workers", "-1", "dumpconfig"); err == nil {
		t.Fatal("negative worker count accepted")
	}
}

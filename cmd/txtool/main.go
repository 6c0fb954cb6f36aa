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

// txtool is a command-line utility for the typed transactions of a devchain
// node: it decodes, encodes, hashes, signs and classifies transactions and
// recovers their senders.
package main

import (
	"fmt"
	"os"

	"github.com/sunyihoo/devchain/internal/debug"
	"github.com/sunyihoo/devchain/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp("the devchain typed transaction tool")
	app.Flags = flags.Merge([]cli.Flag{
		configFileFlag,
		chainIDFlag,
		workersFlag,
		senderCacheFlag,
		autoImpersonateFlag,
		impersonateFlag,
	}, debug.Flags)
	app.Commands = []*cli.Command{
		decodeCommand,
		encodeCommand,
		hashCommand,
		recoverCommand,
		signCommand,
		classifyCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Copyright 2020 The go-ethereum Authors
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

package flags

import (
	"fmt"
	"strings"

	"github.com/sunyihoo/devchain/internal/version"
	"github.com/urfave/cli/v2"
)

// NewApp creates an app with sane defaults.
// NewApp 创建一个带有默认设置（版本号、用法说明）的 CLI 应用。
func NewApp(usage string) *cli.App {
	git, _ := version.VCS()
	app := cli.NewApp()
	app.EnableBashCompletion = true
	app.Version = version.WithVCS(git)
	app.Usage = usage
	if git.Codec != "" {
		app.Description = fmt.Sprintf("Transactions are encoded with go-ethereum %s.", git.Codec)
	}
	app.Copyright = "Copyright 2013-2025 The go-ethereum Authors"
	return app
}

// Merge merges the given flag slices.
// Merge 合并多个标志切片。
func Merge(groups ...[]cli.Flag) []cli.Flag {
	var ret []cli.Flag
	for _, group := range groups {
		ret = append(ret, group...)
	}
	return ret
}

// CheckExclusive verifies that only a single instance of the provided flags was
// set by the user.
// CheckExclusive 检查用户是否只设置了给定标志中的一个。
func CheckExclusive(ctx *cli.Context, flags ...cli.Flag) error {
	set := make([]string, 0, 1)
	for _, flag := range flags {
		name := flag.Names()[0]
		if ctx.IsSet(name) {
			set = append(set, "--"+name)
		}
	}
	if len(set) > 1 {
		return fmt.Errorf("flags %v can't be used at the same time", strings.Join(set, ", "))
	}
	return nil
}

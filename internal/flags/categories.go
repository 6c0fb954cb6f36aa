// Copyright 2022 The go-ethereum Authors
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

import "github.com/urfave/cli/v2"

// 命令行标志按类别分组，帮助输出中按类别显示。
const (
	// TxCategory 是与交易编解码相关的标志的类别。
	TxCategory = "TRANSACTION"
	// SigningCategory 是与签名和发送者恢复相关的标志的类别。
	SigningCategory = "SIGNING"
	// DevCategory 是与开发链作弊功能（冒充账户）相关的标志的类别。
	DevCategory = "DEVELOPER CHAIN"
	// PerfCategory 是与性能调优相关的标志的类别。
	PerfCategory = "PERFORMANCE TUNING"
	// LoggingCategory 是与日志和调试相关的标志的类别。
	LoggingCategory = "LOGGING AND DEBUGGING"
	// MiscCategory 是杂项标志的类别。
	MiscCategory = "MISC"
)

func init() {
	// 将帮助标志和版本标志的类别设置为 MiscCategory。
	cli.HelpFlag.(*cli.BoolFlag).Category = MiscCategory
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}

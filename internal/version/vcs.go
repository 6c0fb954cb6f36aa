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

package version

import (
	"runtime/debug"
	"time"
)

const (
	govcsTimeLayout = "2006-01-02T15:04:05Z" // Go VCS 时间格式
	ourTimeLayout   = "20060102"             // YYYYMMDD

	// codecPath is the module providing the RLP and hex codecs.
	codecPath = "github.com/ethereum/go-ethereum"
)

// Set by the linker: -X github.com/sunyihoo/devchain/internal/version.gitCommit=...
// 由链接器在构建时设置。
var gitCommit, gitDate string

// VCSInfo describes the source tree a txtool binary was built from.
// VCSInfo 描述构建 txtool 的源码状态。
type VCSInfo struct {
	Commit string // head commit hash
	Date   string // commit time, YYYYMMDD
	Dirty  bool   // uncommitted changes in the tree 是否有未提交的更改
	Codec  string // go-ethereum module version linked into the binary
}

// VCS returns version control information of the current executable.
func VCS() (VCSInfo, bool) {
	info, hasBuild := debug.ReadBuildInfo()
	var vcs VCSInfo
	if hasBuild {
		vcs.Codec = moduleVersion(info, codecPath)
	}
	if gitCommit != "" {
		vcs.Commit, vcs.Date = gitCommit, gitDate
		return vcs, true
	}
	if !hasBuild || info.Main.Path != ourPath {
		return vcs, false
	}
	return buildInfoVCS(info)
}

// buildInfoVCS reads the vcs.* settings the go tool stamps into the build.
func buildInfoVCS(info *debug.BuildInfo) (s VCSInfo, ok bool) {
	s.Codec = moduleVersion(info, codecPath)
	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			s.Commit = v.Value
		case "vcs.modified":
			s.Dirty = v.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(govcsTimeLayout, v.Value); err == nil {
				s.Date = t.Format(ourTimeLayout)
			}
		}
	}
	return s, s.Commit != "" && s.Date != ""
}

// moduleVersion returns the version of the dependency at path, following
// replace directives. It is empty if the module is not linked in.
//
// moduleVersion 返回依赖模块的版本（考虑 replace 指令）。
func moduleVersion(info *debug.BuildInfo, path string) string {
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return ""
}

// WithVCS returns the version string for a build described by vcs. Builds
// from a modified tree are marked "dirty".
func WithVCS(vcs VCSInfo) string {
	vsn := WithCommit(vcs.Commit, vcs.Date)
	if vcs.Dirty {
		vsn += "-dirty"
	}
	return vsn
}

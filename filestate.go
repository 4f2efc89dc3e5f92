// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package puffin

import (
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// Attribute enumerates the dotted file-metadata accessors of spec.md §3.
type Attribute int

const (
	AttrName Attribute = iota
	AttrPath
	AttrSize
	AttrBlocks
	AttrBlksize
	AttrNlink
	AttrAtime
	AttrMtime
	AttrCtime
	AttrIno
	AttrDev
	AttrRdev
	AttrMode
	AttrOwner
	AttrGroup
	AttrType
)

var attrNames = map[string]Attribute{
	".name":    AttrName,
	".path":    AttrPath,
	".size":    AttrSize,
	".blocks":  AttrBlocks,
	".blksize": AttrBlksize,
	".nlink":   AttrNlink,
	".atime":   AttrAtime,
	".mtime":   AttrMtime,
	".ctime":   AttrCtime,
	".ino":     AttrIno,
	".dev":     AttrDev,
	".rdev":    AttrRdev,
	".mode":    AttrMode,
	".owner":   AttrOwner,
	".group":   AttrGroup,
	".type":    AttrType,
}

// LookupAttribute resolves a dotted attribute token, e.g. ".size".
func LookupAttribute(tok string) (Attribute, bool) {
	a, ok := attrNames[tok]
	return a, ok
}

// FileState wraps a path with a one-shot cell for its stat result, so
// that evaluating repeated metadata-requiring attributes against the
// same file performs at most one stat syscall (spec.md §4.2, §8 "Lazy
// stat"). Grounded on pathutil.go's fsCacheT, which caches readdir
// results keyed by directory under a single mutex; here the cache
// granularity is one FileState per visited path rather than a shared
// map, since each FileState is only ever touched by the one goroutine
// running routines against that file.
type FileState struct {
	path string

	once    sync.Once
	info    os.FileInfo
	statErr error
}

// NewFileState builds a FileState for path. If info is non-nil (e.g.
// already produced by a parent os.ReadDir call), it seeds the cache so
// the first metadata access avoids a redundant stat. The walkers always
// pass nil (see visit in walk_single.go), so their stat happens lazily
// on the first metadata access.
func NewFileState(path string, info os.FileInfo) *FileState {
	f := &FileState{path: path}
	if info != nil {
		f.once.Do(func() {})
		f.info = info
	}
	return f
}

func (f *FileState) stat() (os.FileInfo, error) {
	first := false
	f.once.Do(func() {
		first = true
		f.info, f.statErr = os.Lstat(f.path)
		if f.statErr == nil && f.info.Mode()&os.ModeSymlink != 0 {
			if resolved, err := os.Stat(f.path); err == nil {
				f.info = resolved
			}
		}
	})
	if !first {
		logStatSkipped(f.path)
	}
	return f.info, f.statErr
}

// Evaluate computes the Value of attribute a against this file.
func (a Attribute) Evaluate(f *FileState) (Value, error) {
	if f == nil {
		return Value{}, &AttributeInBeginOrEndError{}
	}
	switch a {
	case AttrName:
		return StringValue(filepath.Base(f.path)), nil
	case AttrPath:
		return StringValue(f.path), nil
	}
	return a.evaluateNeedsStat(f)
}

func (a Attribute) evaluateNeedsStat(f *FileState) (Value, error) {
	info, err := f.stat()
	if err != nil {
		return Value{}, err
	}
	sys, _ := info.Sys().(*syscall.Stat_t)

	switch a {
	case AttrSize:
		return IntValue(info.Size()), nil
	case AttrType:
		return StringValue(fileType(info.Mode())), nil
	}

	if sys == nil {
		return Value{}, &RuntimeError{Msg: "file metadata unavailable on this platform"}
	}

	switch a {
	case AttrBlocks:
		return IntValue(int64(sys.Blocks)), nil
	case AttrBlksize:
		return IntValue(int64(sys.Blksize)), nil
	case AttrNlink:
		return IntValue(int64(sys.Nlink)), nil
	case AttrAtime:
		return IntValue(int64(sys.Atim.Sec)), nil
	case AttrMtime:
		return IntValue(int64(sys.Mtim.Sec)), nil
	case AttrCtime:
		return IntValue(int64(sys.Ctim.Sec)), nil
	case AttrIno:
		return SpecialValue(SpecialIno, int64(sys.Ino)), nil
	case AttrDev:
		return SpecialValue(SpecialDevno, int64(sys.Dev)), nil
	case AttrRdev:
		return SpecialValue(SpecialDevno, int64(sys.Rdev)), nil
	case AttrMode:
		return SpecialValue(SpecialMode, int64(sys.Mode)), nil
	case AttrOwner:
		return SpecialValue(SpecialUID, int64(sys.Uid)), nil
	case AttrGroup:
		return SpecialValue(SpecialUID, int64(sys.Gid)), nil
	}
	return Value{}, &RuntimeError{Msg: "unknown attribute"}
}

func fileType(mode os.FileMode) string {
	switch {
	case mode.IsDir():
		return "dir"
	case mode&os.ModeSymlink != 0:
		return "file"
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return "char"
	case mode&os.ModeDevice != 0:
		return "block"
	case mode&os.ModeNamedPipe != 0:
		return "fifo"
	case mode&os.ModeSocket != 0:
		return "socket"
	case mode.IsRegular():
		return "file"
	default:
		return "unknown"
	}
}

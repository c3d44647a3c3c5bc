// Copyright (C) 2017 Google Inc.
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

package codegen

import "strings"

// Triple represents an LLVM target triple in the form:
//   <arch><sub>-<vendor>-<os>-<abi>
//
// References:
// https://github.com/llvm-mirror/llvm/blob/master/lib/Support/Triple.cpp
// https://clang.llvm.org/docs/CrossCompilation.html
type Triple struct {
	arch, vendor, os, abi string
}

// NewTriple returns a new Triple.
func NewTriple(arch, vendor, os, abi string) Triple {
	return Triple{arch, vendor, os, abi}
}

// HostTriple is the fixed code generation target: 64-bit x86 Linux. The
// compiler emits textual IR only; it never needs to cross-compile, so one
// fixed triple is enough.
var HostTriple = Triple{"x86_64", "unknown", "linux", "gnu"}

func (t Triple) String() string {
	return strings.Join([]string{t.arch, t.vendor, t.os, t.abi}, "-")
}

/*
Package runtime implements a runtime environment for the quadruple
interpreter, consisting of memory frames and symbols (variables and
temporaries).

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Symbol Tables

Every memory frame carries a symbol table, mapping names to tags. A tag
holds the current value of a variable.

Memory Frames

This module implements a stack of memory frames. The bottommost frame holds
the program's variables; the interpreter pushes a frame for the temporaries
of a single run. Names are resolved from the top-most frame downwards.


----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software or the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package runtime

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Runtime is a type implementing a runtime environment for an interpreter
type Runtime struct {
	MemFrameStack *MemoryFrameStack // runtime stack of memory frames
}

// NewRuntimeEnvironment constructs a new runtime environment, initialized with
// an empty global memory frame.
func NewRuntimeEnvironment() *Runtime {
	rt := &Runtime{}
	rt.MemFrameStack = new(MemoryFrameStack)      // initialize memory frame stack
	rt.MemFrameStack.PushNewMemoryFrame("global") // global memory
	return rt
}

// Globals returns the symbol table of the global memory frame.
func (rt *Runtime) Globals() *SymbolTable {
	return rt.MemFrameStack.Globals().SymbolTable
}

// Lookup resolves a name, starting at the top-most memory frame. Returns nil
// if the name is not defined in any frame.
func (rt *Runtime) Lookup(name string) *Tag {
	tag, _ := rt.MemFrameStack.Current().ResolveTag(name)
	return tag
}

// Store sets the value of a name. If the name is not yet defined, it is
// defined in the current memory frame.
func (rt *Runtime) Store(name string, value Value) *Tag {
	tag := rt.Lookup(name)
	if tag == nil {
		tag, _ = rt.MemFrameStack.Current().SymbolTable.DefineTag(name)
	}
	tag.Set(value)
	return tag
}

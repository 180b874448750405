package runtime

import (
	"fmt"
)

// This module implements a stack of memory frames.
// Memory frames are used by an interpreter to allocate local storage,
// e.g. for the temporaries of a single run.

// DynamicMemoryFrame is a memory frame, representing a piece of named memory.
type DynamicMemoryFrame struct {
	Name        string
	SymbolTable *SymbolTable
	Parent      *DynamicMemoryFrame
}

// NewDynamicMemoryFrame creates a new memory frame with an empty symbol table.
func NewDynamicMemoryFrame(nm string) *DynamicMemoryFrame {
	mf := &DynamicMemoryFrame{
		Name:        nm,
		SymbolTable: NewSymbolTable(),
	}
	return mf
}

func (mf *DynamicMemoryFrame) String() string {
	return fmt.Sprintf("<mem %s [%d]>", mf.Name, mf.SymbolTable.Size())
}

// IsRoot is a predicate: Is this a root frame?
func (mf *DynamicMemoryFrame) IsRoot() bool {
	return (mf.Parent == nil)
}

// ResolveTag finds a tag. Returns the tag (or nil) and the frame (of the
// path to the root frame) the tag was found in.
func (mf *DynamicMemoryFrame) ResolveTag(tagname string) (*Tag, *DynamicMemoryFrame) {
	for f := mf; f != nil; f = f.Parent {
		if tag := f.SymbolTable.ResolveTag(tagname); tag != nil {
			return tag, f
		}
	}
	return nil, nil
}

// ---------------------------------------------------------------------------

// MemoryFrameStack is a (call-)stack of memory frames.
type MemoryFrameStack struct {
	memoryFrameBase *DynamicMemoryFrame
	memoryFrameTOS  *DynamicMemoryFrame
}

// Current gets the current memory frame of a stack (TOS).
func (mfst *MemoryFrameStack) Current() *DynamicMemoryFrame {
	if mfst.memoryFrameTOS == nil {
		panic("attempt to access memory frame from empty stack")
	}
	return mfst.memoryFrameTOS
}

// Globals gets the outermost memory frame, containing global symbols.
func (mfst *MemoryFrameStack) Globals() *DynamicMemoryFrame {
	if mfst.memoryFrameBase == nil {
		panic("attempt to access global memory frame from empty stack")
	}
	return mfst.memoryFrameBase
}

// PushNewMemoryFrame pushes a new memory frame as TOS.
// A frame is constructed, having the recent TOS as its parent.
// The first frame pushed becomes the global frame.
func (mfst *MemoryFrameStack) PushNewMemoryFrame(nm string) *DynamicMemoryFrame {
	newmf := NewDynamicMemoryFrame(nm)
	newmf.Parent = mfst.memoryFrameTOS
	if newmf.Parent == nil { // the new frame is the global frame
		mfst.memoryFrameBase = newmf // make new mf anchor
	}
	mfst.memoryFrameTOS = newmf // new frame now TOS
	T().P("mem", newmf.Name).Debugf("pushing new memory frame")
	return newmf
}

// PopMemoryFrame pops the top-most memory frame. Returns the popped frame.
// The global frame cannot be popped.
func (mfst *MemoryFrameStack) PopMemoryFrame() *DynamicMemoryFrame {
	if mfst.memoryFrameTOS == nil || mfst.memoryFrameTOS.IsRoot() {
		panic("attempt to pop global memory frame")
	}
	mf := mfst.memoryFrameTOS
	T().Debugf("popping memory frame [%s]", mf.Name)
	mfst.memoryFrameTOS = mfst.memoryFrameTOS.Parent
	return mf
}

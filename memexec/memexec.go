//go:build linux || darwin

// Package memexec is the Executable Memory Facade: it turns an assembled
// byte buffer into a page the CPU is actually allowed to jump into. No
// pack example imports a wrapper library for this (no golang.org/x/sys,
// no purego), so it is built directly on the standard library's syscall
// package, the same way the teacher repo reaches for stdlib when nothing
// in its own dependency set covers a concern.
package memexec

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Handle identifies one live executable mapping. Callers must pass it
// back to Release exactly once; Release is not safe to call twice on the
// same Handle.
type Handle struct {
	addr uintptr
	size int
}

// Acquire copies code into a freshly mmap'd page range and returns a
// Handle plus the mapping's base address. The mapping is writable only
// while code is copied in; it is switched to PROT_READ|PROT_EXEC before
// Acquire returns, so code must be finalized before it is acquired; there
// is no in-place patch path.
func Acquire(code []byte) (uintptr, *Handle, error) {
	if len(code) == 0 {
		return 0, nil, fmt.Errorf("memexec: cannot map zero-length code")
	}
	size := pageAlign(len(code))

	mapping, err := syscall.Mmap(-1, 0, size, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return 0, nil, fmt.Errorf("memexec: mmap: %w", err)
	}
	copy(mapping, code)

	if err := syscall.Mprotect(mapping, syscall.PROT_READ|syscall.PROT_EXEC); err != nil {
		_ = syscall.Munmap(mapping)
		return 0, nil, fmt.Errorf("memexec: mprotect: %w", err)
	}

	return uintptrOf(mapping), &Handle{addr: uintptrOf(mapping), size: size}, nil
}

// Release unmaps the memory acquired by Acquire. The code at h's address
// must not be executing on any goroutine when this is called.
func Release(h *Handle) error {
	if h == nil {
		return nil
	}
	mapping := bytesAt(h.addr, h.size)
	if err := syscall.Munmap(mapping); err != nil {
		return fmt.Errorf("memexec: munmap: %w", err)
	}
	return nil
}

const pageSize = 4096

func pageAlign(n int) int {
	if n%pageSize == 0 {
		return n
	}
	return (n/pageSize + 1) * pageSize
}

func uintptrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

func bytesAt(addr uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}

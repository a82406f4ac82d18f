package memexec_test

import (
	"testing"
	"unsafe"

	"github.com/keurnel/runasm/memexec"
)

func TestAcquireRelease_RoundTrip(t *testing.T) {
	code := []byte{0xC3} // ret
	addr, handle, err := memexec.Acquire(code)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if addr == 0 {
		t.Fatal("Acquire() returned a zero address")
	}

	mapped := unsafe.Slice((*byte)(unsafe.Pointer(addr)), len(code))
	if mapped[0] != 0xC3 {
		t.Errorf("mapped[0] = 0x%X, want 0xC3", mapped[0])
	}

	if err := memexec.Release(handle); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
}

func TestAcquire_RejectsEmptyCode(t *testing.T) {
	if _, _, err := memexec.Acquire(nil); err == nil {
		t.Fatal("expected an error mapping zero-length code")
	}
}

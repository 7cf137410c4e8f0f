package nalloc

import "fmt"
import "sync"
import "testing"
import "unsafe"

import "github.com/nzengi/nalloc/api"

var _ = fmt.Sprintf("dummy")

func TestBootstrap(t *testing.T) {
	// a fresh control block, oversubscribed with concurrent first
	// allocations.
	var na NAlloc
	if na.Setcapacities(1024*1024, 2*1024*1024, 1024*1024) == false {
		t.Fatalf("unexpected Setcapacities failure")
	}
	t.Cleanup(func() { na.getarenas().Release() })

	nroutines := 32

	var wg sync.WaitGroup
	mgrs := make([]uintptr, nroutines)
	wg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go func(n int) {
			defer wg.Done()
			if ptr := na.Allocate(64, 16); ptr == nil {
				t.Errorf("unexpected allocation failure")
			}
			mgrs[n] = uintptr(unsafe.Pointer(na.getarenas()))
		}(n)
	}
	wg.Wait()

	// every caller shall see the same manager.
	for n := 1; n < nroutines; n++ {
		if mgrs[n] != mgrs[0] {
			t.Errorf("caller %v saw a different manager", n)
		}
	}

	// capacities are locked in once initialized.
	if na.Setcapacities(1024, 1024, 1024) == true {
		t.Errorf("expected Setcapacities to fail after bootstrap")
	}
	if x := na.Settings().Int64("witness.capacity"); x != 1024*1024 {
		t.Errorf("expected %v, got %v", 1024*1024, x)
	}
}

func TestGlobalSettings(t *testing.T) {
	if Allocate(64, 16) == nil {
		t.Fatalf("unexpected allocation failure")
	}
	if Setcapacities(1024, 1024, 1024) == true {
		t.Errorf("expected Setcapacities to fail after bootstrap")
	}
	if x := Settings().Int64("witness.capacity"); x != 16*1024*1024 {
		t.Errorf("expected %v, got %v", 16*1024*1024, x)
	}
}

func TestAllocateRouting(t *testing.T) {
	Resetall()

	// small and loosely aligned goes to scratch.
	before := Stats()
	if ptr := Allocate(100, 16); ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	after := Stats()
	if after.Scratchused <= before.Scratchused {
		t.Errorf("expected scratch growth, got %v -> %v",
			before.Scratchused, after.Scratchused)
	}
	if after.Polynomialused != before.Polynomialused {
		t.Errorf("unexpected polynomial growth")
	}

	// page alignment routes to polynomial.
	before = Stats()
	if ptr := Allocate(100, api.Pagealign); ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	after = Stats()
	if after.Polynomialused <= before.Polynomialused {
		t.Errorf("expected polynomial growth, got %v -> %v",
			before.Polynomialused, after.Polynomialused)
	}

	// 1MB and above routes to polynomial.
	before = Stats()
	if ptr := Allocate(api.Largeallocthreshold, 16); ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	after = Stats()
	if after.Polynomialused <= before.Polynomialused {
		t.Errorf("expected polynomial growth, got %v -> %v",
			before.Polynomialused, after.Polynomialused)
	}

	// one byte below the threshold stays in scratch.
	before = Stats()
	if ptr := Allocate(api.Largeallocthreshold-1, 16); ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	after = Stats()
	if after.Scratchused <= before.Scratchused {
		t.Errorf("expected scratch growth, got %v -> %v",
			before.Scratchused, after.Scratchused)
	}
	if after.Polynomialused != before.Polynomialused {
		t.Errorf("unexpected polynomial growth")
	}
}

func TestAllocateInvalid(t *testing.T) {
	if ptr := Allocate(0, 16); ptr != nil {
		t.Errorf("Allocate(0, 16) expected nil")
	}
	if ptr := Allocate(-1, 16); ptr != nil {
		t.Errorf("Allocate(-1, 16) expected nil")
	}
	if ptr := Allocate(100, 3); ptr != nil {
		t.Errorf("Allocate(100, 3) expected nil")
	}
	if ptr := Allocate(100, 0); ptr != nil {
		t.Errorf("Allocate(100, 0) expected nil")
	}
}

func TestAllocatezeroed(t *testing.T) {
	Resetall()

	// dirty the scratch arena, reset, then demand zeroed bytes.
	size := int64(4096)
	ptr := Allocate(size, 16)
	if ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	block := unsafe.Slice((*byte)(ptr), size)
	for i := range block {
		block[i] = 0xDE
	}
	Resetall()

	ptr = Allocatezeroed(size, 16)
	if ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	block = unsafe.Slice((*byte)(ptr), size)
	for off, b := range block {
		if b != 0 {
			t.Fatalf("offset %v expected zero, got %v", off, b)
		}
	}

	if ptr := Allocatezeroed(0, 16); ptr != nil {
		t.Errorf("Allocatezeroed(0, 16) expected nil")
	}
}

func TestDeallocate(t *testing.T) {
	Resetall()

	ptr := Allocate(128, 16)
	if ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	used := Stats().Scratchused
	Deallocate(ptr, 128, 16)
	// no-op, the cursor shall not move.
	if x := Stats().Scratchused; x != used {
		t.Errorf("expected %v, got %v", used, x)
	}
}

func TestReallocate(t *testing.T) {
	Resetall()

	// nil old pointer behaves like Allocate.
	ptr := Reallocate(nil, 0, 256, 16)
	if ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}

	// shrinking returns the same pointer.
	block := unsafe.Slice((*byte)(ptr), 256)
	for i := range block {
		block[i] = byte(i)
	}
	if x := Reallocate(ptr, 256, 100, 16); x != ptr {
		t.Errorf("expected shrink in place, got %v", x)
	}
	if x := Reallocate(ptr, 256, 256, 16); x != ptr {
		t.Errorf("expected equal size in place, got %v", x)
	}

	// growing copies the old prefix.
	newptr := Reallocate(ptr, 256, 1024, 16)
	if newptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	if newptr == ptr {
		t.Errorf("expected a fresh block")
	}
	newblock := unsafe.Slice((*byte)(newptr), 1024)
	for i := 0; i < 256; i++ {
		if newblock[i] != byte(i) {
			t.Fatalf("offset %v expected %v, got %v", i, byte(i), newblock[i])
		}
	}

	// degenerate new size.
	if x := Reallocate(newptr, 1024, 0, 16); x != nil {
		t.Errorf("expected nil, got %v", x)
	}
}

func TestReallocateExhausted(t *testing.T) {
	Resetall()

	ptr := Allocate(128, 16)
	if ptr == nil {
		t.Fatalf("unexpected allocation failure")
	}
	// a grow large enough to route to polynomial and exceed it shall
	// fail and leave the old block alone.
	oversize := Polynomial().Remaining() + 1
	if x := Reallocate(ptr, 128, oversize, 16); x != nil {
		t.Errorf("expected nil, got %v", x)
	}
	block := unsafe.Slice((*byte)(ptr), 128)
	block[0] = 0x7F
	if block[0] != 0x7F {
		t.Errorf("old block shall stay valid")
	}
}

func TestGlobalhandles(t *testing.T) {
	Resetall()

	w, p, sc := Witness(), Polynomial(), Scratch()
	if w.Capacity() != 16*1024*1024 {
		t.Errorf("expected %v, got %v", 16*1024*1024, w.Capacity())
	}
	if p.Capacity() != 64*1024*1024 {
		t.Errorf("expected %v, got %v", 64*1024*1024, p.Capacity())
	}
	if sc.Capacity() != 32*1024*1024 {
		t.Errorf("expected %v, got %v", 32*1024*1024, sc.Capacity())
	}

	stats := Stats()
	if x, y := stats.Totalcapacity(), w.Capacity()+p.Capacity()+sc.Capacity(); x != y {
		t.Errorf("expected %v, got %v", y, x)
	}
	Logstatistics()
}

func BenchmarkAllocate(b *testing.B) {
	Resetall()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if Allocate(64, 16) == nil {
			Resetall()
		}
	}
}

func BenchmarkAllocatezeroed(b *testing.B) {
	Resetall()
	b.SetBytes(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if Allocatezeroed(64, 16) == nil {
			Resetall()
		}
	}
}

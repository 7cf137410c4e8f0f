package vmem

import "testing"

import "github.com/nzengi/nalloc/lib"

func TestSecureWipe(t *testing.T) {
	block := make([]byte, 1024)
	for i := range block {
		block[i] = 0xAA
	}
	SecureWipe(lib.Bytes2ptr(block), int64(len(block)))
	for off, b := range block {
		if b != 0 {
			t.Fatalf("offset %v expected zero, got %v", off, b)
		}
	}
}

func TestSecureWipeBytes(t *testing.T) {
	block := make([]byte, 333)
	for i := range block {
		block[i] = byte(i + 1)
	}
	SecureWipeBytes(block)
	for off, b := range block {
		if b != 0 {
			t.Fatalf("offset %v expected zero, got %v", off, b)
		}
	}
}

func TestSecureWipeDegenerate(t *testing.T) {
	// shall not panic.
	SecureWipe(nil, 100)
	block := make([]byte, 10)
	SecureWipe(lib.Bytes2ptr(block), 0)
	SecureWipe(lib.Bytes2ptr(block), -1)
	SecureWipeBytes(nil)
	SecureWipeBytes([]byte{})
}

func TestSecureWipePrefix(t *testing.T) {
	block := make([]byte, 100)
	for i := range block {
		block[i] = 0xFF
	}
	SecureWipeBytes(block[:50])
	for off := 0; off < 50; off++ {
		if block[off] != 0 {
			t.Errorf("offset %v expected zero, got %v", off, block[off])
		}
	}
	for off := 50; off < 100; off++ {
		if block[off] != 0xFF {
			t.Errorf("offset %v expected %v, got %v", off, 0xFF, block[off])
		}
	}
}

func BenchmarkSecureWipe(b *testing.B) {
	block := make([]byte, 1024*1024)
	b.SetBytes(int64(len(block)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SecureWipeBytes(block)
	}
}

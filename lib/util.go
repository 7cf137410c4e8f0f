package lib

import "unsafe"
import "encoding/json"

// AlignUp round `off` up to the next multiple of `align`, where
// `align` shall be a power of two. AlignUp(off, align) >= off.
func AlignUp(off, align int64) int64 {
	return (off + align - 1) &^ (align - 1)
}

// Ispowerof2 check whether `align` is a non-zero power of two.
func Ispowerof2(align int64) bool {
	return align > 0 && (align&(align-1)) == 0
}

// Memcpy copy memory block of length `ln` from `src` to `dst`. This
// function is useful if memory block is obtained outside golang
// runtime.
func Memcpy(dst, src unsafe.Pointer, ln int) int {
	dstnd := unsafe.Slice((*byte)(dst), ln)
	srcnd := unsafe.Slice((*byte)(src), ln)
	return copy(dstnd, srcnd)
}

// Bytes2ptr pointer to the first byte of block, nil for empty block.
func Bytes2ptr(block []byte) unsafe.Pointer {
	if len(block) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(block))
}

// Prettystats uses json.MarshalIndent, if pretty is true, instead of
// json.Marshal. If Marshal return error Prettystats will panic.
func Prettystats(stats map[string]interface{}, pretty bool) string {
	if pretty {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			panic(err)
		}
		return string(data)
	}
	data, err := json.Marshal(stats)
	if err != nil {
		panic(err)
	}
	return string(data)
}

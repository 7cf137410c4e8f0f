package malloc

import s "github.com/bnclabs/gosettings"

// Witnesscapacity default capacity of the witness arena, 128MB.
const Witnesscapacity = int64(128 * 1024 * 1024)

// Polynomialcapacity default capacity of the polynomial arena, 1GB.
// Virtual memory is cheap, physical pages show up only when touched.
const Polynomialcapacity = int64(1024 * 1024 * 1024)

// Scratchcapacity default capacity of the scratch arena, 256MB.
const Scratchcapacity = int64(256 * 1024 * 1024)

// Defaultsettings for arena manager.
//
// "witness.capacity" (int64, default: 134217728)
//		Capacity of the witness arena, rounded up to the OS page size.
//
// "polynomial.capacity" (int64, default: 1073741824)
//		Capacity of the polynomial arena, rounded up to the OS page
//		size.
//
// "scratch.capacity" (int64, default: 268435456)
//		Capacity of the scratch arena, rounded up to the OS page size.
func Defaultsettings() s.Settings {
	return s.Settings{
		"witness.capacity":    Witnesscapacity,
		"polynomial.capacity": Polynomialcapacity,
		"scratch.capacity":    Scratchcapacity,
	}
}

package rng

import (
	"crypto/rand"
	"encoding/binary"
)

// Crypto draws from the operating system's cryptographic source. It is safe
// for concurrent use and cannot be seeded.
type Crypto struct{}

// NewCrypto creates a cryptographic generator
func NewCrypto() *Crypto {
	return &Crypto{}
}

func (Crypto) next() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand.Read never fails on supported platforms
		panic("rng: crypto source failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (c Crypto) Float64() float64 {
	return float64From53(c.next())
}

func (c Crypto) IntN(n int) int {
	return boundedInt(c.next, n)
}

// Seed is a no-op; the cryptographic source is not reproducible.
func (Crypto) Seed(int64) {}

package infra

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint accumulates values into a 64-bit xxhash. Two fingerprints are
// equal only if the same values were written in the same order.
type Fingerprint struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewFingerprint starts an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// Float writes the exact bit pattern of v. Negative zero is folded into
// zero so equal inputs always hash alike.
func (f *Fingerprint) Float(v float64) *Fingerprint {
	if v == 0 {
		v = 0
	}
	binary.LittleEndian.PutUint64(f.buf[:], math.Float64bits(v))
	_, _ = f.d.Write(f.buf[:])
	return f
}

// Sum64 returns the hash of everything written so far.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}

// Key returns the hash as a fixed-width hex string for use as a cache key.
func (f *Fingerprint) Key() string {
	return fmt.Sprintf("%016x", f.d.Sum64())
}

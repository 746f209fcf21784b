package utils

import (
	"crypto/rand"
	"errors"
	"io"
	"runtime"
)

// RandReader is the source of fresh randomness. It defaults to crypto/rand
// and is a variable so tests can substitute a failing or deterministic
// reader.
var RandReader io.Reader = rand.Reader

// SecureRandomBytes generates n random bytes from RandReader.
func SecureRandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := io.ReadFull(RandReader, buf)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomInt generates a random integer in [0, max) from RandReader.
func RandomInt(max int) (int, error) {
	return RandomIntFrom(RandReader, max)
}

// RandomIntFrom generates an integer in [0, max) uniformly from the given
// byte stream. It uses rejection sampling to avoid modulo bias, so the
// number of bytes consumed is not fixed.
func RandomIntFrom(r io.Reader, max int) (int, error) {
	if max <= 0 {
		return 0, errors.New("max must be positive")
	}
	if max == 1 {
		return 0, nil
	}

	bitsNeeded := 0
	for m := max - 1; m > 0; m >>= 1 {
		bitsNeeded++
	}
	bytesNeeded := (bitsNeeded + 7) / 8
	mask := (1 << bitsNeeded) - 1

	buf := make([]byte, bytesNeeded)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, err
		}

		var value int
		for i := 0; i < bytesNeeded; i++ {
			value = (value << 8) | int(buf[i])
		}
		value &= mask

		if value < max {
			return value, nil
		}
	}
}

// Zeroize overwrites a byte slice with zeros.
// This is used to clear seeds and other sensitive data from memory.
// Uses runtime.KeepAlive to prevent compiler optimization from eliminating
// the stores.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

package mceliece

import (
	"errors"
	"fmt"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/gf2"
)

// ErrInvalidCiphertext indicates a ciphertext of the wrong length or with
// non-binary entries.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// MaxBruteForceBits bounds the code dimension the exhaustive decoder
// accepts. The search enumerates 2^k candidates, so anything much past 20
// bits is already slow and past 30 bits is hopeless.
const MaxBruteForceBits = 30

// Decoder recovers the message bits of the secret code from a received word
// that may contain injected errors. Implementations take a length-n word and
// return a length-k bit vector.
//
// BruteForceDecoder is the reference implementation; an efficient syndrome
// decoder for a structured code could be swapped in without touching key
// generation or encryption.
type Decoder interface {
	Decode(received []byte) ([]byte, error)
}

// BruteForceDecoder enumerates every message in {0,1}^k and keeps the
// candidate whose codeword under G is nearest to the received word in
// Hamming distance. Ties are broken by enumeration order: the first minimum
// wins. The search stops early on an exact (distance-0) match.
//
// Cost is O(2^k * k * n); viable only for small k.
type BruteForceDecoder struct {
	G pkc.BinaryMatrix

	// Progress, when non-nil, is invoked periodically with the number of
	// candidates tried so far and the total candidate count.
	Progress func(done, total uint64)
}

// Decode performs the exhaustive nearest-codeword search.
func (d *BruteForceDecoder) Decode(received []byte) ([]byte, error) {
	k, n := d.G.Rows, d.G.Cols
	if k > MaxBruteForceBits {
		return nil, fmt.Errorf("code dimension %d exceeds brute-force limit %d", k, MaxBruteForceBits)
	}
	if len(received) != n {
		return nil, fmt.Errorf("received word must have length %d, got %d", n, len(received))
	}

	total := uint64(1) << uint(k)
	best := make([]byte, k)
	bestDist := n + 1

	candidate := make([]byte, k)
	codeword := make([]byte, n)

	for x := uint64(0); x < total; x++ {
		// Candidate bits, least significant first.
		for i := 0; i < k; i++ {
			candidate[i] = byte((x >> uint(i)) & 1)
		}

		// codeword = candidate*G, i.e. the XOR of the selected rows of G.
		for j := range codeword {
			codeword[j] = 0
		}
		for i := 0; i < k; i++ {
			if candidate[i] == 1 {
				row := d.G.Row(i)
				for j := range codeword {
					codeword[j] ^= row[j] & 1
				}
			}
		}

		dist := gf2.HammingDistance(codeword, received)
		if dist < bestDist {
			bestDist = dist
			copy(best, candidate)
			if dist == 0 {
				break
			}
		}

		if d.Progress != nil && x&0x3ff == 0x3ff {
			d.Progress(x+1, total)
		}
	}

	if d.Progress != nil {
		d.Progress(total, total)
	}
	return best, nil
}

// Decrypt decrypts a length-n ciphertext with the exhaustive reference
// decoder.
func Decrypt(sk *pkc.McEliecePrivateKey, ciphertext []byte) ([]byte, error) {
	return DecryptWithDecoder(sk, ciphertext, &BruteForceDecoder{G: sk.G})
}

// DecryptWithDecoder decrypts a length-n ciphertext:
//  1. c_hat = c * P^-1 (permutation inverses are transposes over GF(2))
//  2. m_hat = Decode(c_hat) under the secret code G
//  3. m = m_hat * S^-1
//
// S is inverted with the general Gauss-Jordan path; a singular S should be
// unreachable for a validly generated key, but it is checked rather than
// assumed and surfaces as gf2.ErrSingularMatrix.
func DecryptWithDecoder(sk *pkc.McEliecePrivateKey, ciphertext []byte, dec Decoder) ([]byte, error) {
	n := sk.P.Rows
	if len(ciphertext) != n {
		return nil, fmt.Errorf("%w: length must be %d, got %d", ErrInvalidCiphertext, n, len(ciphertext))
	}
	if !isBinary(ciphertext) {
		return nil, fmt.Errorf("%w: entries must be 0 or 1", ErrInvalidCiphertext)
	}

	pInv := gf2.InvertPermutation(sk.P)
	cHat, err := gf2.VecMul(ciphertext, pInv)
	if err != nil {
		return nil, err
	}

	mHat, err := dec.Decode(cHat)
	if err != nil {
		return nil, err
	}

	sInv, err := gf2.Invert(sk.S)
	if err != nil {
		return nil, err
	}

	return gf2.VecMul(mHat, sInv)
}

// Package core provides parameter presets and validation for the toy
// McEliece cryptosystem.
package core

import (
	"errors"
	"fmt"

	pkc "github.com/SDarius22/PKC"
)

// ErrInvalidParameters indicates malformed code parameters.
var ErrInvalidParameters = errors.New("invalid parameters")

// Toy10Params is the classic demonstration parameter set: a [10,5] random
// code with two injected errors. Brute-force decoding enumerates 32
// candidates per block.
var Toy10Params = pkc.McElieceParams{N: 10, K: 5, T: 2}

// Text30Params is the demonstration parameter set for the alphabet block
// driver: three characters (15 bits) per block over a length-30 code with
// two injected errors.
var Text30Params = pkc.Alpha27Params{N: 30, KChars: 3, T: 2}

// BitsPerChar is the number of message bits one alphabet character occupies.
const BitsPerChar = 5

// ValidateParams validates bit-level code parameters.
// Note: it does not (and cannot) validate that t errors are actually
// correctable by the random placeholder code; a random [n,k] code carries no
// designed error-correction guarantee.
func ValidateParams(p pkc.McElieceParams) error {
	if p.N <= 0 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalidParameters, p.N)
	}
	if p.K <= 0 {
		return fmt.Errorf("%w: k must be positive, got %d", ErrInvalidParameters, p.K)
	}
	if p.K > p.N {
		return fmt.Errorf("%w: k (%d) cannot exceed n (%d)", ErrInvalidParameters, p.K, p.N)
	}
	if p.T < 0 || p.T > p.N {
		return fmt.Errorf("%w: t (%d) must be in [0, %d]", ErrInvalidParameters, p.T, p.N)
	}
	return nil
}

// ValidateBlockParams validates block-driver parameters.
func ValidateBlockParams(p pkc.Alpha27Params) error {
	if p.KChars <= 0 {
		return fmt.Errorf("%w: k_chars must be positive, got %d", ErrInvalidParameters, p.KChars)
	}
	return ValidateParams(pkc.McElieceParams{N: p.N, K: BitsPerChar * p.KChars, T: p.T})
}

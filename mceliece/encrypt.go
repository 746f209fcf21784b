package mceliece

import (
	"errors"
	"fmt"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/gf2"
	"github.com/SDarius22/PKC/utils"
)

// ErrInvalidMessage indicates a message of the wrong length or with
// non-binary entries.
var ErrInvalidMessage = errors.New("invalid message")

// Encrypt encrypts a length-k bit vector under the public key using fresh
// randomness for the error vector.
func Encrypt(pk *pkc.McEliecePublicKey, message []byte) ([]byte, error) {
	randomness, err := utils.SecureRandomBytes(32)
	if err != nil {
		return nil, err
	}
	c, err := EncryptWithRandomness(pk, message, randomness)
	utils.Zeroize(randomness)
	return c, err
}

// EncryptWithRandomness deterministically encrypts a length-k bit vector:
// c = m*G_hat + z mod 2, where z is an error vector of Hamming weight
// exactly t with positions drawn from the SHAKE256 stream keyed by
// randomness (at least 32 bytes).
func EncryptWithRandomness(pk *pkc.McEliecePublicKey, message, randomness []byte) ([]byte, error) {
	k, n := pk.GHat.Rows, pk.GHat.Cols
	if len(message) != k {
		return nil, fmt.Errorf("%w: length must be %d, got %d", ErrInvalidMessage, k, len(message))
	}
	if !isBinary(message) {
		return nil, fmt.Errorf("%w: entries must be 0 or 1", ErrInvalidMessage)
	}
	if len(randomness) < 32 {
		return nil, errors.New("randomness must be at least 32 bytes")
	}

	cPrime, err := gf2.VecMul(message, pk.GHat)
	if err != nil {
		return nil, err
	}

	errSeed := utils.HashWithDomain(DomainError, randomness)
	defer utils.Zeroize(errSeed)
	z, err := sampleErrorVector(utils.XOF(errSeed), n, pk.T)
	if err != nil {
		return nil, err
	}

	return gf2.AddVec(cPrime, z), nil
}

// isBinary reports whether every entry of v is 0 or 1.
func isBinary(v []byte) bool {
	for _, b := range v {
		if b > 1 {
			return false
		}
	}
	return true
}

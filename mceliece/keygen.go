// Package mceliece implements key generation, encryption and decryption for
// the toy McEliece cryptosystem over GF(2).
package mceliece

import (
	"errors"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/core"
	"github.com/SDarius22/PKC/gf2"
	"github.com/SDarius22/PKC/utils"
)

// Domain-separation labels for seed derivation.
const (
	DomainGenerator   = "pkc-mceliece-generator-v1"
	DomainScrambler   = "pkc-mceliece-scrambler-v1"
	DomainPermutation = "pkc-mceliece-permutation-v1"
	DomainError       = "pkc-mceliece-error-v1"
)

// GenerateKeys generates a key pair for the given parameters using fresh
// randomness.
func GenerateKeys(params pkc.McElieceParams) (*pkc.McElieceKeyPair, error) {
	seed, err := utils.SecureRandomBytes(32)
	if err != nil {
		return nil, err
	}
	kp, err := GenerateKeysFromSeed(params, seed)
	utils.Zeroize(seed)
	return kp, err
}

// GenerateKeysFromSeed deterministically generates a key pair from a seed of
// at least 32 bytes. The secret generator matrix G, the scrambling matrix S
// and the permutation matrix P are each sampled from their own
// domain-separated SHAKE256 stream; the public matrix is
// G_hat = S*G*P mod 2.
//
// The parameters are validated eagerly (0 < k <= n, 0 <= t <= n). Whether t
// errors are actually correctable by the random placeholder code is NOT
// validated; that is an inherited limitation of the unstructured code
// construction.
func GenerateKeysFromSeed(params pkc.McElieceParams, seed []byte) (*pkc.McElieceKeyPair, error) {
	if err := core.ValidateParams(params); err != nil {
		return nil, err
	}
	if len(seed) < 32 {
		return nil, errors.New("seed must be at least 32 bytes")
	}

	gSeed := utils.HashWithDomain(DomainGenerator, seed)
	sSeed := utils.HashWithDomain(DomainScrambler, seed)
	pSeed := utils.HashWithDomain(DomainPermutation, seed)
	defer func() {
		utils.Zeroize(gSeed)
		utils.Zeroize(sSeed)
		utils.Zeroize(pSeed)
	}()

	g, err := sampleFullRankGenerator(utils.XOF(gSeed), params.K, params.N)
	if err != nil {
		return nil, err
	}
	s, err := sampleInvertibleMatrix(utils.XOF(sSeed), params.K)
	if err != nil {
		return nil, err
	}
	p, err := samplePermutationMatrix(utils.XOF(pSeed), params.N)
	if err != nil {
		return nil, err
	}

	sg, err := gf2.Mul(s, g)
	if err != nil {
		return nil, err
	}
	gHat, err := gf2.Mul(sg, p)
	if err != nil {
		return nil, err
	}

	return &pkc.McElieceKeyPair{
		PublicKey:  pkc.McEliecePublicKey{GHat: gHat, T: params.T},
		PrivateKey: pkc.McEliecePrivateKey{S: s, P: p, G: g, T: params.T},
	}, nil
}

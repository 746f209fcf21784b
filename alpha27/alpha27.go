// Package alpha27 maps text over a fixed 27-symbol alphabet onto the toy
// McEliece cryptosystem, one block of characters at a time.
//
// The alphabet is the placeholder '_' followed by the 26 lowercase letters;
// each symbol occupies five message bits (2^5 = 32 >= 27), emitted least
// significant bit first.
package alpha27

import (
	"errors"
	"fmt"
	"strings"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/core"
	"github.com/SDarius22/PKC/mceliece"
	"github.com/SDarius22/PKC/utils"
)

const (
	// Alphabet is the fixed ordered symbol set. Index 0 is the placeholder
	// used for padding.
	Alphabet = "_abcdefghijklmnopqrstuvwxyz"

	// AlphabetSize is the number of symbols in Alphabet.
	AlphabetSize = 27

	// BitsPerChar is the number of message bits per symbol.
	BitsPerChar = core.BitsPerChar

	// Placeholder is the padding symbol.
	Placeholder = '_'
)

// ErrInvalidCharacter indicates a symbol outside the 27-symbol alphabet.
var ErrInvalidCharacter = errors.New("invalid character")

// charIndex maps a byte to its alphabet index, or -1 for symbols outside
// the alphabet. Built once at process start.
var charIndex = func() [256]int8 {
	var tbl [256]int8
	for i := range tbl {
		tbl[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		tbl[Alphabet[i]] = int8(i)
	}
	return tbl
}()

// EncodeText encodes text into a bit vector, five bits per character with
// the least significant bit of each index first.
func EncodeText(text string) ([]byte, error) {
	bits := make([]byte, 0, len(text)*BitsPerChar)
	for i := 0; i < len(text); i++ {
		idx := charIndex[text[i]]
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q (allowed: '_' and a-z)", ErrInvalidCharacter, text[i])
		}
		for b := 0; b < BitsPerChar; b++ {
			bits = append(bits, byte((idx>>b)&1))
		}
	}
	return bits, nil
}

// DecodeBits decodes numChars characters from a bit vector, the inverse of
// EncodeText. At least numChars*5 bits must be present; excess trailing bits
// are ignored. A decoded index of 27..31 has no symbol and is clamped to the
// placeholder instead of failing, so block decoding stays total even when
// the underlying decode returned garbage bits.
func DecodeBits(bits []byte, numChars int) (string, error) {
	needed := numChars * BitsPerChar
	if len(bits) < needed {
		return "", fmt.Errorf("need at least %d bits to decode %d chars, got %d", needed, numChars, len(bits))
	}

	out := make([]byte, numChars)
	for c := 0; c < numChars; c++ {
		val := 0
		for b := 0; b < BitsPerChar; b++ {
			bit := bits[c*BitsPerChar+b]
			if bit > 1 {
				return "", errors.New("bits must be 0 or 1")
			}
			val |= int(bit) << b
		}
		if val >= AlphabetSize {
			val = 0
		}
		out[c] = Alphabet[val]
	}
	return string(out), nil
}

// GenerateKeys generates a block-driver key pair for blocks of kChars
// characters over a length-n code with error weight t. The underlying code
// dimension is 5*kChars bits.
func GenerateKeys(n, kChars, t int) (*pkc.Alpha27KeyPair, error) {
	seed, err := utils.SecureRandomBytes(32)
	if err != nil {
		return nil, err
	}
	kp, err := GenerateKeysFromSeed(n, kChars, t, seed)
	utils.Zeroize(seed)
	return kp, err
}

// GenerateKeysFromSeed deterministically generates a block-driver key pair
// from a seed of at least 32 bytes.
func GenerateKeysFromSeed(n, kChars, t int, seed []byte) (*pkc.Alpha27KeyPair, error) {
	params := pkc.Alpha27Params{N: n, KChars: kChars, T: t}
	if err := core.ValidateBlockParams(params); err != nil {
		return nil, err
	}

	kBits := BitsPerChar * kChars
	kp, err := mceliece.GenerateKeysFromSeed(pkc.McElieceParams{N: n, K: kBits, T: t}, seed)
	if err != nil {
		return nil, err
	}

	return &pkc.Alpha27KeyPair{
		PublicKey: pkc.Alpha27PublicKey{
			McEliece: kp.PublicKey, N: n, KBits: kBits, KChars: kChars,
		},
		PrivateKey: pkc.Alpha27PrivateKey{
			McEliece: kp.PrivateKey, N: n, KBits: kBits, KChars: kChars,
		},
	}, nil
}

// EncryptBlock encrypts a single block of exactly KChars characters into a
// length-n ciphertext.
func EncryptBlock(pk *pkc.Alpha27PublicKey, block string) ([]byte, error) {
	if len(block) != pk.KChars {
		return nil, fmt.Errorf("block must have length %d, got %d", pk.KChars, len(block))
	}
	bits, err := EncodeText(block)
	if err != nil {
		return nil, err
	}
	return mceliece.Encrypt(&pk.McEliece, bits)
}

// DecryptBlock decrypts a single length-n ciphertext block into KChars
// characters.
func DecryptBlock(sk *pkc.Alpha27PrivateKey, block []byte) (string, error) {
	bits, err := mceliece.Decrypt(&sk.McEliece, block)
	if err != nil {
		return "", err
	}
	return DecodeBits(bits, sk.KChars)
}

// EncryptMessage encrypts an arbitrary-length plaintext. The plaintext is
// validated, right-padded with the placeholder symbol to a multiple of
// KChars, split into blocks, and each block is encrypted independently with
// its own fresh error vector. There is no chaining or cross-block integrity
// binding.
func EncryptMessage(pk *pkc.Alpha27PublicKey, plaintext string) ([][]byte, error) {
	if len(plaintext) == 0 {
		return nil, errors.New("plaintext must not be empty")
	}
	for i := 0; i < len(plaintext); i++ {
		if charIndex[plaintext[i]] < 0 {
			return nil, fmt.Errorf("%w: %q (allowed: '_' and a-z)", ErrInvalidCharacter, plaintext[i])
		}
	}

	if rem := len(plaintext) % pk.KChars; rem != 0 {
		plaintext += strings.Repeat(string(Placeholder), pk.KChars-rem)
	}

	numBlocks := len(plaintext) / pk.KChars
	blocks := make([][]byte, 0, numBlocks)
	for i := 0; i < numBlocks; i++ {
		c, err := EncryptBlock(pk, plaintext[i*pk.KChars:(i+1)*pk.KChars])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, c)
	}
	return blocks, nil
}

// DecryptMessage decrypts a sequence of ciphertext blocks and concatenates
// the results. Padding is NOT stripped: the output length is the padded
// plaintext length, and the caller decides what trailing placeholder
// symbols mean. A single-element slice is simply the DecryptBlock case.
func DecryptMessage(sk *pkc.Alpha27PrivateKey, blocks [][]byte) (string, error) {
	if len(blocks) == 0 {
		return "", errors.New("ciphertext must contain at least one block")
	}

	var sb strings.Builder
	sb.Grow(len(blocks) * sk.KChars)
	for i, block := range blocks {
		text, err := DecryptBlock(sk, block)
		if err != nil {
			return "", fmt.Errorf("block %d: %w", i, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

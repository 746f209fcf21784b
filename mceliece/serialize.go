package mceliece

import (
	"encoding/binary"
	"errors"
	"fmt"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/utils"
)

// Serialized matrices carry a rows/cols header (uint32 little-endian each)
// followed by the entries packed eight per byte, least significant bit
// first. Keys append the error weight t as a trailing uint32.

// packBits packs 0/1 entries into bytes, LSB first.
func packBits(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b&1 == 1 {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// unpackBits expands n packed bits back into one byte per entry.
func unpackBits(data []byte, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = (data[i/8] >> (i % 8)) & 1
	}
	return out
}

func appendUint32(out []byte, v int) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return append(out, buf[:]...)
}

func appendMatrix(out []byte, m pkc.BinaryMatrix) []byte {
	out = appendUint32(out, m.Rows)
	out = appendUint32(out, m.Cols)
	return append(out, packBits(m.Data)...)
}

func readMatrix(data []byte, offset int) (pkc.BinaryMatrix, int, error) {
	rows, offset, err := utils.SafeReadLength(data, offset, utils.MaxMatrixElements)
	if err != nil {
		return pkc.BinaryMatrix{}, offset, fmt.Errorf("matrix rows: %w", err)
	}
	cols, offset, err := utils.SafeReadLength(data, offset, utils.MaxMatrixElements)
	if err != nil {
		return pkc.BinaryMatrix{}, offset, fmt.Errorf("matrix cols: %w", err)
	}
	if rows == 0 || cols == 0 {
		return pkc.BinaryMatrix{}, offset, errors.New("matrix dimensions must be positive")
	}

	size, err := utils.SafeMultiply(rows, cols)
	if err != nil {
		return pkc.BinaryMatrix{}, offset, err
	}
	if err := utils.CheckLength(size, utils.MaxMatrixElements); err != nil {
		return pkc.BinaryMatrix{}, offset, err
	}

	packed := (size + 7) / 8
	if err := utils.ValidateSliceAccess(data, offset, packed); err != nil {
		return pkc.BinaryMatrix{}, offset, fmt.Errorf("matrix data: %w", err)
	}

	m := pkc.BinaryMatrix{
		Rows: rows,
		Cols: cols,
		Data: unpackBits(data[offset:offset+packed], size),
	}
	return m, offset + packed, nil
}

// SerializePublicKey serializes a public key (G_hat and t).
func SerializePublicKey(pk *pkc.McEliecePublicKey) []byte {
	out := appendMatrix(nil, pk.GHat)
	return appendUint32(out, pk.T)
}

// DeserializePublicKey deserializes a public key produced by
// SerializePublicKey.
func DeserializePublicKey(data []byte) (*pkc.McEliecePublicKey, error) {
	gHat, offset, err := readMatrix(data, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	if gHat.Rows > gHat.Cols {
		return nil, errors.New("invalid public key: k exceeds n")
	}
	t, _, err := utils.SafeReadLength(data, offset, utils.MaxVectorLength)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: t: %w", err)
	}
	if t > gHat.Cols {
		return nil, errors.New("invalid public key: error weight exceeds code length")
	}
	return &pkc.McEliecePublicKey{GHat: gHat, T: t}, nil
}

// SerializePrivateKey serializes a private key (S, P, G and t).
func SerializePrivateKey(sk *pkc.McEliecePrivateKey) []byte {
	out := appendMatrix(nil, sk.S)
	out = appendMatrix(out, sk.P)
	out = appendMatrix(out, sk.G)
	return appendUint32(out, sk.T)
}

// DeserializePrivateKey deserializes a private key produced by
// SerializePrivateKey and checks that the component dimensions are mutually
// consistent.
func DeserializePrivateKey(data []byte) (*pkc.McEliecePrivateKey, error) {
	s, offset, err := readMatrix(data, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: S: %w", err)
	}
	p, offset, err := readMatrix(data, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: P: %w", err)
	}
	g, offset, err := readMatrix(data, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: G: %w", err)
	}
	t, _, err := utils.SafeReadLength(data, offset, utils.MaxVectorLength)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: t: %w", err)
	}

	if s.Rows != s.Cols || s.Rows != g.Rows {
		return nil, errors.New("invalid private key: S must be k x k")
	}
	if p.Rows != p.Cols || p.Rows != g.Cols {
		return nil, errors.New("invalid private key: P must be n x n")
	}
	if g.Rows > g.Cols {
		return nil, errors.New("invalid private key: k exceeds n")
	}
	if t > g.Cols {
		return nil, errors.New("invalid private key: error weight exceeds code length")
	}

	return &pkc.McEliecePrivateKey{S: s, P: p, G: g, T: t}, nil
}

// Package pkc implements a toy McEliece-style public-key cryptosystem over
// the binary field GF(2).
//
// Key generation hides a random full-rank generator matrix G behind a random
// invertible scrambling matrix S and a random permutation matrix P, and
// publishes only G_hat = S*G*P together with the designed error weight t.
// Encryption is linear encoding under G_hat plus a random error vector of
// Hamming weight exactly t. Decryption undoes the permutation, recovers the
// nearest codeword of the secret code by exhaustive search, and unscrambles
// the result with S^-1.
//
// WARNING: This is a teaching construction. The secret code is a plain
// random linear code with no decoding structure, the nearest-codeword search
// is exponential in the message length, and none of the arithmetic is
// constant time. DO NOT use it to protect real data.
package pkc

// Version of the PKC Go implementation.
const Version = "1.0.0"

// =============================================================================
// Binary Matrices
// =============================================================================

// BinaryMatrix is a dense matrix over GF(2), stored row-major with one byte
// per entry. Entries are restricted to {0, 1}. Matrices produced by a
// generation step are treated as immutable afterwards.
type BinaryMatrix struct {
	Rows, Cols int
	Data       []byte
}

// NewBinaryMatrix returns a zero rows x cols matrix.
func NewBinaryMatrix(rows, cols int) BinaryMatrix {
	return BinaryMatrix{Rows: rows, Cols: cols, Data: make([]byte, rows*cols)}
}

// At returns the entry at row i, column j.
func (m BinaryMatrix) At(i, j int) byte {
	return m.Data[i*m.Cols+j]
}

// Set stores v at row i, column j.
func (m BinaryMatrix) Set(i, j int, v byte) {
	m.Data[i*m.Cols+j] = v
}

// Row returns row i as a slice aliasing the matrix storage.
func (m BinaryMatrix) Row(i int) []byte {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Clone returns a deep copy of the matrix.
func (m BinaryMatrix) Clone() BinaryMatrix {
	data := make([]byte, len(m.Data))
	copy(data, m.Data)
	return BinaryMatrix{Rows: m.Rows, Cols: m.Cols, Data: data}
}

// =============================================================================
// Parameter Types
// =============================================================================

// McElieceParams contains the code parameters for the bit-level cryptosystem.
type McElieceParams struct {
	N int `json:"n"` // Code length (ciphertext bits)
	K int `json:"k"` // Code dimension (message bits)
	T int `json:"t"` // Designed error weight
}

// Alpha27Params contains parameters for the alphabet block driver.
// The underlying code dimension is 5*KChars bits.
type Alpha27Params struct {
	N      int `json:"n"`       // Code length (ciphertext bits per block)
	KChars int `json:"k_chars"` // Plaintext characters per block
	T      int `json:"t"`       // Designed error weight
}

// =============================================================================
// McEliece Key Types
// =============================================================================

// McEliecePublicKey is the public half of a key pair: the disguised
// generator matrix G_hat = S*G*P and the error weight t.
type McEliecePublicKey struct {
	GHat BinaryMatrix // k x n
	T    int
}

// McEliecePrivateKey is the secret half of a key pair.
type McEliecePrivateKey struct {
	S BinaryMatrix // k x k invertible scrambling matrix
	P BinaryMatrix // n x n permutation matrix
	G BinaryMatrix // k x n full-rank generator of the secret code
	T int
}

// McElieceKeyPair contains both halves of a key pair.
type McElieceKeyPair struct {
	PublicKey  McEliecePublicKey
	PrivateKey McEliecePrivateKey
}

// =============================================================================
// Alphabet Block Driver Key Types
// =============================================================================

// Alpha27PublicKey wraps a McEliece public key with the block geometry of
// the 27-symbol alphabet driver.
type Alpha27PublicKey struct {
	McEliece McEliecePublicKey
	N        int // Ciphertext bits per block
	KBits    int // Message bits per block (5 * KChars)
	KChars   int // Plaintext characters per block
}

// Alpha27PrivateKey wraps a McEliece private key with the block geometry.
type Alpha27PrivateKey struct {
	McEliece McEliecePrivateKey
	N        int
	KBits    int
	KChars   int
}

// Alpha27KeyPair contains both halves of a block-driver key pair.
type Alpha27KeyPair struct {
	PublicKey  Alpha27PublicKey
	PrivateKey Alpha27PrivateKey
}

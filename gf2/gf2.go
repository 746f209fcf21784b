// Package gf2 provides dense linear algebra over the binary field GF(2),
// where addition is XOR and multiplication is AND.
package gf2

import (
	"errors"
	"fmt"

	pkc "github.com/SDarius22/PKC"
)

var (
	// ErrSingularMatrix indicates that a matrix has no inverse over GF(2).
	ErrSingularMatrix = errors.New("matrix is singular over GF(2)")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Reduce returns a copy of m with every entry reduced modulo 2.
func Reduce(m pkc.BinaryMatrix) pkc.BinaryMatrix {
	out := m.Clone()
	for i := range out.Data {
		out.Data[i] &= 1
	}
	return out
}

// Identity returns the n x n identity matrix.
func Identity(n int) pkc.BinaryMatrix {
	m := pkc.NewBinaryMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Transpose returns the transpose of m.
func Transpose(m pkc.BinaryMatrix) pkc.BinaryMatrix {
	out := pkc.NewBinaryMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// Equal reports whether two matrices have identical shape and entries.
func Equal(a, b pkc.BinaryMatrix) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	for i := range a.Data {
		if a.Data[i]&1 != b.Data[i]&1 {
			return false
		}
	}
	return true
}

// Mul computes the matrix product a*b mod 2.
// Each output row is the XOR of the rows of b selected by the 1-entries of
// the corresponding row of a.
func Mul(a, b pkc.BinaryMatrix) (pkc.BinaryMatrix, error) {
	if a.Cols != b.Rows {
		return pkc.BinaryMatrix{}, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d",
			ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	out := pkc.NewBinaryMatrix(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		dst := out.Row(i)
		for l := 0; l < a.Cols; l++ {
			if a.At(i, l)&1 == 1 {
				src := b.Row(l)
				for j := range dst {
					dst[j] ^= src[j] & 1
				}
			}
		}
	}
	return out, nil
}

// VecMul computes the row-vector/matrix product v*m mod 2.
// v has length m.Rows; the result has length m.Cols.
func VecMul(v []byte, m pkc.BinaryMatrix) ([]byte, error) {
	if len(v) != m.Rows {
		return nil, fmt.Errorf("%w: vector length %d, matrix has %d rows",
			ErrDimensionMismatch, len(v), m.Rows)
	}
	out := make([]byte, m.Cols)
	for i, bit := range v {
		if bit&1 == 1 {
			row := m.Row(i)
			for j := range out {
				out[j] ^= row[j] & 1
			}
		}
	}
	return out, nil
}

// AddVec returns the element-wise sum a+b mod 2 (XOR).
// Panics if the vectors have different lengths.
func AddVec(a, b []byte) []byte {
	if len(a) != len(b) {
		panic("gf2: vectors must have same length")
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = (a[i] ^ b[i]) & 1
	}
	return out
}

// HammingDistance returns the number of positions where a and b differ.
// Panics if the vectors have different lengths.
func HammingDistance(a, b []byte) int {
	if len(a) != len(b) {
		panic("gf2: vectors must have same length")
	}
	dist := 0
	for i := range a {
		if (a[i]^b[i])&1 == 1 {
			dist++
		}
	}
	return dist
}

// Weight returns the Hamming weight (number of 1s) of v.
func Weight(v []byte) int {
	w := 0
	for _, bit := range v {
		if bit&1 == 1 {
			w++
		}
	}
	return w
}

// Rank computes the rank of m over GF(2) by Gaussian elimination.
// Pivots are searched column by column starting at the current pivot row;
// each pivot column is eliminated from every other row, so the working copy
// ends in reduced row-echelon form.
func Rank(m pkc.BinaryMatrix) int {
	w := Reduce(m)
	rank := 0
	for col := 0; col < w.Cols && rank < w.Rows; col++ {
		pivot := -1
		for row := rank; row < w.Rows; row++ {
			if w.At(row, col) == 1 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			continue
		}
		swapRows(w, rank, pivot)
		for row := 0; row < w.Rows; row++ {
			if row != rank && w.At(row, col) == 1 {
				xorRows(w, row, rank)
			}
		}
		rank++
	}
	return rank
}

// IsInvertible reports whether the square matrix m has full rank over GF(2).
func IsInvertible(m pkc.BinaryMatrix) bool {
	if m.Rows != m.Cols {
		return false
	}
	return Rank(m) == m.Rows
}

// Invert computes the inverse of a square matrix over GF(2) by Gauss-Jordan
// elimination on the augmented matrix [M | I]. It does not assume the caller
// pre-checked invertibility: if the left block does not reduce to the
// identity, ErrSingularMatrix is returned.
func Invert(m pkc.BinaryMatrix) (pkc.BinaryMatrix, error) {
	if m.Rows != m.Cols {
		return pkc.BinaryMatrix{}, fmt.Errorf("%w: cannot invert %dx%d matrix",
			ErrDimensionMismatch, m.Rows, m.Cols)
	}
	k := m.Rows
	aug := pkc.NewBinaryMatrix(k, 2*k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			aug.Set(i, j, m.At(i, j)&1)
		}
		aug.Set(i, k+i, 1)
	}

	row := 0
	for col := 0; col < k && row < k; col++ {
		pivot := -1
		for r := row; r < k; r++ {
			if aug.At(r, col) == 1 {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			continue
		}
		swapRows(aug, row, pivot)
		for r := 0; r < k; r++ {
			if r != row && aug.At(r, col) == 1 {
				xorRows(aug, r, row)
			}
		}
		row++
	}

	// Left block must be the identity, otherwise m is singular.
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			want := byte(0)
			if i == j {
				want = 1
			}
			if aug.At(i, j) != want {
				return pkc.BinaryMatrix{}, ErrSingularMatrix
			}
		}
	}

	inv := pkc.NewBinaryMatrix(k, k)
	for i := 0; i < k; i++ {
		copy(inv.Row(i), aug.Row(i)[k:])
	}
	return inv, nil
}

// InvertPermutation returns the inverse of a permutation matrix, which over
// GF(2) equals its transpose. This avoids the general Gauss-Jordan path for
// the one matrix family where inversion is trivial.
func InvertPermutation(p pkc.BinaryMatrix) pkc.BinaryMatrix {
	return Transpose(p)
}

// IsPermutation reports whether m is square with exactly one 1 in every row
// and every column.
func IsPermutation(m pkc.BinaryMatrix) bool {
	if m.Rows != m.Cols {
		return false
	}
	colCount := make([]int, m.Cols)
	for i := 0; i < m.Rows; i++ {
		rowCount := 0
		for j := 0; j < m.Cols; j++ {
			switch m.At(i, j) {
			case 0:
			case 1:
				rowCount++
				colCount[j]++
			default:
				return false
			}
		}
		if rowCount != 1 {
			return false
		}
	}
	for _, c := range colCount {
		if c != 1 {
			return false
		}
	}
	return true
}

func swapRows(m pkc.BinaryMatrix, a, b int) {
	if a == b {
		return
	}
	ra, rb := m.Row(a), m.Row(b)
	for i := range ra {
		ra[i], rb[i] = rb[i], ra[i]
	}
}

// xorRows folds row src into row dst.
func xorRows(m pkc.BinaryMatrix, dst, src int) {
	rd, rs := m.Row(dst), m.Row(src)
	for i := range rd {
		rd[i] ^= rs[i]
	}
}

package mceliece

import (
	"errors"
	"fmt"
	"io"

	pkc "github.com/SDarius22/PKC"
	"github.com/SDarius22/PKC/gf2"
	"github.com/SDarius22/PKC/utils"
)

// ErrSamplingNotConverged indicates that rejection sampling exhausted its
// attempt cap without producing a matrix with the required structure.
var ErrSamplingNotConverged = errors.New("sampling did not converge")

// maxSampleAttempts caps the rejection-sampling loops. A uniform random
// square binary matrix is invertible with probability approaching ~0.289 as
// k grows, so the expected number of draws is about 3.5; the cap exists so a
// pathological randomness stream fails loudly instead of looping forever.
const maxSampleAttempts = 256

// sampleBinaryMatrix draws a uniform random rows x cols binary matrix from r.
func sampleBinaryMatrix(r io.Reader, rows, cols int) (pkc.BinaryMatrix, error) {
	size, err := utils.SafeMultiply(rows, cols)
	if err != nil {
		return pkc.BinaryMatrix{}, err
	}
	if err := utils.CheckLength(size, utils.MaxMatrixElements); err != nil {
		return pkc.BinaryMatrix{}, err
	}

	buf := make([]byte, (size+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return pkc.BinaryMatrix{}, err
	}

	m := pkc.NewBinaryMatrix(rows, cols)
	for i := 0; i < size; i++ {
		m.Data[i] = (buf[i/8] >> (i % 8)) & 1
	}
	return m, nil
}

// sampleInvertibleMatrix draws uniform k x k binary matrices from r until one
// is invertible over GF(2). Termination is probabilistic, not provably
// bounded; past maxSampleAttempts the draw fails with
// ErrSamplingNotConverged.
func sampleInvertibleMatrix(r io.Reader, k int) (pkc.BinaryMatrix, error) {
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		m, err := sampleBinaryMatrix(r, k, k)
		if err != nil {
			return pkc.BinaryMatrix{}, err
		}
		if gf2.IsInvertible(m) {
			return m, nil
		}
	}
	return pkc.BinaryMatrix{}, fmt.Errorf("%w: no invertible %dx%d matrix in %d draws",
		ErrSamplingNotConverged, k, k, maxSampleAttempts)
}

// sampleFullRankGenerator draws uniform k x n binary matrices from r until
// one has rank k. The result is an explicitly unstructured placeholder for a
// real code family (e.g. binary Goppa codes) and carries no error-correction
// guarantee beyond what a random linear code happens to provide. Same
// probabilistic-termination caveat as sampleInvertibleMatrix.
func sampleFullRankGenerator(r io.Reader, k, n int) (pkc.BinaryMatrix, error) {
	if k > n {
		return pkc.BinaryMatrix{}, fmt.Errorf("need k <= n, got k=%d n=%d", k, n)
	}
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		m, err := sampleBinaryMatrix(r, k, n)
		if err != nil {
			return pkc.BinaryMatrix{}, err
		}
		if gf2.Rank(m) == k {
			return m, nil
		}
	}
	return pkc.BinaryMatrix{}, fmt.Errorf("%w: no rank-%d %dx%d matrix in %d draws",
		ErrSamplingNotConverged, k, k, n, maxSampleAttempts)
}

// samplePermutationMatrix draws a uniform random permutation of {0,...,n-1}
// by Fisher-Yates shuffling over r and materializes it as an n x n 0/1
// matrix with a single 1 per row and column.
func samplePermutationMatrix(r io.Reader, n int) (pkc.BinaryMatrix, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := utils.RandomIntFrom(r, i+1)
		if err != nil {
			return pkc.BinaryMatrix{}, err
		}
		perm[i], perm[j] = perm[j], perm[i]
	}

	p := pkc.NewBinaryMatrix(n, n)
	for i, pos := range perm {
		p.Set(i, pos, 1)
	}
	return p, nil
}

// sampleErrorVector returns a length-n binary vector with exactly t ones.
// The t positions are chosen uniformly without replacement via a partial
// Fisher-Yates pass.
func sampleErrorVector(r io.Reader, n, t int) ([]byte, error) {
	if t < 0 || t > n {
		return nil, fmt.Errorf("need 0 <= t <= n, got t=%d n=%d", t, n)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	z := make([]byte, n)
	for i := 0; i < t; i++ {
		j, err := utils.RandomIntFrom(r, n-i)
		if err != nil {
			return nil, err
		}
		idx[i], idx[i+j] = idx[i+j], idx[i]
		z[idx[i]] = 1
	}
	return z, nil
}

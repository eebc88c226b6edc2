//go:build !rocm

package device

// Host-only build (no rocm tag); callers fall back to their own kernels.

func Available() bool { return false }

func BsrmmF64(dir, mb, n, kb, nnzb int, alpha float64, val []float64, rowPtr, colInd []int32, blockDim int, B []float64, ldb int, beta float64, C []float64, ldc int) bool {
	return false
}

func BsrmvF64(dir, mb, nb, nnzb int, alpha float64, val []float64, rowPtr, colInd []int32, blockDim int, x []float64, beta float64, y []float64) bool {
	return false
}

func Close() {}

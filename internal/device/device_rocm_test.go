//go:build rocm

package device

import "testing"

func TestROCmAvailable(t *testing.T) {
	if !Available() { t.Skip("rocSPARSE not available on this runner") }
	// 2x2 blocks, identity-ish A times a 4x2 B
	rowPtr := []int32{0, 1, 2}
	colInd := []int32{0, 1}
	val := []float64{1, 0, 0, 1, 2, 0, 0, 2}
	B := []float64{1, 2, 3, 4, 5, 6, 7, 8} // 4x2 col-major, ldb=4
	C := make([]float64, 8)
	if !BsrmmF64(0, 2, 2, 2, 2, 1.0, val, rowPtr, colInd, 2, B, 4, 0.0, C, 4) {
		t.Fatalf("BsrmmF64 failed")
	}
	want := []float64{1, 2, 6, 8, 5, 6, 14, 16}
	for i := range want {
		if C[i] != want[i] { t.Fatalf("C[%d] got %v want %v", i, C[i], want[i]) }
	}
}

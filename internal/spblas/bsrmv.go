package spblas

import (
	"fmt"

	"github.com/qrv0/sparrow/internal/bsr"
	"github.com/qrv0/sparrow/internal/device"
)

// Bsrmv computes y = alpha*op(A)*x + beta*y. beta == 0 overwrites y.
func Bsrmv(transA Transpose, alpha float64, A *bsr.Matrix, x []float64, beta float64, y []float64) error {
	if err := A.Validate(); err != nil { return fmt.Errorf("bsrmv: %w", err) }
	opRows, opCols := A.Rows(), A.Cols()
	if transA == Trans { opRows, opCols = opCols, opRows }
	if len(x) != opCols { return fmt.Errorf("bsrmv: x length %d, want %d", len(x), opCols) }
	if len(y) != opRows { return fmt.Errorf("bsrmv: y length %d, want %d", len(y), opRows) }
	if transA == NoTrans && deviceEnabled() {
		if device.BsrmvF64(int(A.Dir), A.MB, A.NB, A.NNZB(), alpha,
			A.Val, A.RowPtr, A.ColInd, A.BlockDim, x, beta, y) {
			return nil
		}
	}
	if beta == 0 {
		for i := range y { y[i] = 0 }
	} else {
		for i := range y { y[i] *= beta }
	}
	if alpha == 0 {
		return nil
	}
	bd := A.BlockDim
	for bi := 0; bi < A.MB; bi++ {
		for p := int(A.RowPtr[bi]); p < int(A.RowPtr[bi+1]); p++ {
			bj := int(A.ColInd[p])
			for r := 0; r < bd; r++ {
				for c := 0; c < bd; c++ {
					v := A.Val[A.BlockOffset(p, r, c)]
					if transA == Trans {
						y[bj*bd+c] += alpha * v * x[bi*bd+r]
					} else {
						y[bi*bd+r] += alpha * v * x[bj*bd+c]
					}
				}
			}
		}
	}
	return nil
}

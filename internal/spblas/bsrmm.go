package spblas

import (
	"fmt"
	"os"

	"github.com/qrv0/sparrow/internal/bsr"
	"github.com/qrv0/sparrow/internal/dense"
	"github.com/qrv0/sparrow/internal/device"
)

// Transpose selects op(A).
type Transpose uint8

const (
	NoTrans Transpose = iota
	Trans
)

// deviceEnabled gates the offload path; SPARROW_DEVICE=0 forces host kernels.
func deviceEnabled() bool {
	return os.Getenv("SPARROW_DEVICE") != "0" && device.Available()
}

// Bsrmm computes C = alpha*op(A)*B + beta*C with A in BSR form and B, C
// dense column-major. beta == 0 overwrites C without reading it.
// The call is offloaded to the device library when one is linked in and
// the shapes are supported there; otherwise the host kernel runs inline.
func Bsrmm(transA Transpose, alpha float64, A *bsr.Matrix, B *dense.Matrix, beta float64, C *dense.Matrix) error {
	if err := A.Validate(); err != nil { return fmt.Errorf("bsrmm: %w", err) }
	opRows, opCols := A.Rows(), A.Cols()
	if transA == Trans { opRows, opCols = opCols, opRows }
	if B.Rows != opCols {
		return fmt.Errorf("bsrmm: op(A) is %dx%d but B has %d rows", opRows, opCols, B.Rows)
	}
	if C.Rows != opRows || C.Cols != B.Cols {
		return fmt.Errorf("bsrmm: C is %dx%d, want %dx%d", C.Rows, C.Cols, opRows, B.Cols)
	}
	if transA == NoTrans && deviceEnabled() {
		if device.BsrmmF64(int(A.Dir), A.MB, B.Cols, A.NB, A.NNZB(), alpha,
			A.Val, A.RowPtr, A.ColInd, A.BlockDim, B.Data, B.LD, beta, C.Data, C.LD) {
			return nil
		}
	}
	hostBsrmm(transA, alpha, A, B, beta, C)
	return nil
}

func hostBsrmm(transA Transpose, alpha float64, A *bsr.Matrix, B *dense.Matrix, beta float64, C *dense.Matrix) {
	scaleCols(C, beta)
	if alpha == 0 {
		return
	}
	bd := A.BlockDim
	for bi := 0; bi < A.MB; bi++ {
		for p := int(A.RowPtr[bi]); p < int(A.RowPtr[bi+1]); p++ {
			bj := int(A.ColInd[p])
			for r := 0; r < bd; r++ {
				for c := 0; c < bd; c++ {
					v := A.Val[A.BlockOffset(p, r, c)]
					row, col := bi*bd+r, bj*bd+c
					if transA == Trans {
						row, col = col, row
					}
					for j := 0; j < C.Cols; j++ {
						C.Data[j*C.LD+row] += alpha * v * B.Data[j*B.LD+col]
					}
				}
			}
		}
	}
}

func scaleCols(C *dense.Matrix, beta float64) {
	for j := 0; j < C.Cols; j++ {
		col := C.Data[j*C.LD : j*C.LD+C.Rows]
		if beta == 0 {
			for i := range col { col[i] = 0 }
			continue
		}
		for i := range col { col[i] *= beta }
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qrv0/sparrow/internal/bsr"
	"github.com/qrv0/sparrow/internal/dense"
	"github.com/qrv0/sparrow/internal/spblas"
)

// The fixed bsrmm example: C = alpha*A*B + beta*C with a 4x6 block-sparse
// A, a dense 6x10 B, and the result printed as a grid. Runs on the device
// library when one is linked in, on the host kernel otherwise.
func cmdBsrmm() {
	fs := flag.NewFlagSet("bsrmm", flag.ExitOnError)
	alpha := fs.Float64("alpha", 1.0, "alpha scalar")
	beta := fs.Float64("beta", 0.0, "beta scalar")
	fs.Parse(os.Args[2:])
	A := exampleBSR()
	B := exampleB()
	C := dense.NewMatrix(A.Rows(), B.Cols)
	if err := spblas.Bsrmm(spblas.NoTrans, *alpha, A, B, *beta, C); err != nil {
		fmt.Fprintf(os.Stderr, "bsrmm: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("C =")
	C.FormatGrid(os.Stdout, "%5.0f")
}

// exampleBSR builds the 4x6 matrix
//
//	( 1 2 0 3 0 0 )
//	( 0 4 5 0 0 0 )
//	( 0 0 0 7 8 0 )
//	( 0 0 1 2 4 1 )
//
// as 2x2 row-direction blocks: 2x3 block grid, 4 stored blocks.
func exampleBSR() *bsr.Matrix {
	m, err := bsr.New(2, 2, 3,
		[]int32{0, 2, 4},
		[]int32{0, 1, 1, 2},
		[]float64{
			1, 2, 0, 4,
			0, 3, 5, 0,
			0, 7, 1, 2,
			8, 0, 4, 1,
		},
		bsr.DirRow)
	if err != nil {
		panic(err) // constants above are structurally valid
	}
	return m
}

// exampleB is the dense 6x10 right-hand side, column-major.
func exampleB() *dense.Matrix {
	return dense.FromRowMajor(6, 10, []float64{
		9, 11, 13, 15, 17, 10, 12, 14, 16, 18,
		8, 10, 1, 10, 6, 11, 7, 3, 12, 17,
		11, 11, 0, 4, 6, 12, 2, 9, 13, 2,
		15, 3, 2, 3, 8, 1, 2, 4, 6, 6,
		2, 5, 7, 0, 1, 15, 9, 4, 10, 1,
		7, 12, 12, 1, 12, 5, 1, 11, 1, 14,
	})
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qrv0/sparrow/internal/fileformat"
	"github.com/qrv0/sparrow/internal/spblas"
)

func cmdMv() {
	fs := flag.NewFlagSet("mv", flag.ExitOnError)
	in := fs.String("in", "", "input .bsrx")
	xlen := fs.Int("xlen", 0, "length of input vector (default cols)")
	fs.Parse(os.Args[2:])
	if *in == "" {
		fmt.Println("usage: sparrow mv --in matrix.bsrx [--xlen COLS]")
		os.Exit(1)
	}
	A, _, err := fileformat.ReadBSR(*in)
	if err != nil { fmt.Fprintf(os.Stderr, "mv: open error: %v\n", err); os.Exit(1) }
	if *xlen != 0 && *xlen != A.Cols() {
		fmt.Printf("warning: xlen=%d but cols=%d\n", *xlen, A.Cols())
	}
	// deterministic x
	x := make([]float64, A.Cols())
	for i := range x {
		x[i] = float64((i*16777619+2166136261)%1000)/500 - 1
	}
	y := make([]float64, A.Rows())
	if err := spblas.Bsrmv(spblas.NoTrans, 1.0, A, x, 0.0, y); err != nil {
		fmt.Fprintf(os.Stderr, "mv: compute error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("y (rows=%d):\n", len(y))
	n := 16
	if len(y) < n { n = len(y) }
	for i := 0; i < n; i++ { fmt.Printf("  y[%d]=%.6f\n", i, y[i]) }
}

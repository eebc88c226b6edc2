package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/qrv0/sparrow/internal/bsr"
	"github.com/qrv0/sparrow/internal/fileformat"
)

// Generates a random block-sparse MatrixMarket file for exercising the
// convert/verify pipeline.
func main() {
	out := flag.String("out", "toy.mtx", "output MatrixMarket path")
	rows := flag.Int("rows", 64, "rows")
	cols := flag.Int("cols", 64, "cols")
	blockDim := flag.Int("block-dim", 4, "block dimension (rows/cols must divide)")
	density := flag.Float64("density", 0.1, "fraction of blocks that are nonzero")
	seed := flag.Int64("seed", 1, "rng seed")
	flag.Parse()
	if *rows%*blockDim != 0 || *cols%*blockDim != 0 {
		println("mkmatrix: rows and cols must be multiples of block-dim")
		os.Exit(1)
	}
	rng := rand.New(rand.NewSource(*seed))
	var ri, ci []int32
	var val []float64
	bd := *blockDim
	for bi := 0; bi < *rows/bd; bi++ {
		for bj := 0; bj < *cols/bd; bj++ {
			if rng.Float64() >= *density {
				continue
			}
			for r := 0; r < bd; r++ {
				for c := 0; c < bd; c++ {
					ri = append(ri, int32(bi*bd+r))
					ci = append(ci, int32(bj*bd+c))
					val = append(val, rng.NormFloat64())
				}
			}
		}
	}
	csr, err := bsr.CSRFromTriplets(*rows, *cols, ri, ci, val)
	if err != nil {
		println("mkmatrix: build error:", err.Error())
		os.Exit(1)
	}
	f, err := os.Create(*out)
	if err != nil {
		println("mkmatrix: create error:", err.Error())
		os.Exit(1)
	}
	err = fileformat.WriteMTX(f, csr)
	if cerr := f.Close(); err == nil { err = cerr }
	if err != nil {
		println("mkmatrix: write error:", err.Error())
		os.Exit(1)
	}
}

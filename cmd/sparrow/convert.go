package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qrv0/sparrow/internal/bsr"
	"github.com/qrv0/sparrow/internal/convert"
	"github.com/qrv0/sparrow/internal/fileformat"
)

func cmdConvert() {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	in := fs.String("in", "", "input .mtx")
	out := fs.String("out", "", "output .bsrx")
	blockDim := fs.Int("block-dim", 2, "block dimension")
	dirStr := fs.String("dir", "row", "block element order: row|col")
	f16 := fs.Bool("f16", false, "store values as float16")
	useLZ4 := fs.Bool("lz4", false, "lz4-compress sections")
	useZSTD := fs.Bool("zstd", false, "zstd-compress sections")
	dropQ := fs.Float64("drop-quantile", 0, "zero entries below this |value| quantile")
	fs.Parse(os.Args[2:])
	if *in == "" || *out == "" {
		fmt.Println("usage: sparrow convert --in matrix.mtx --out matrix.bsrx --block-dim N [--dir row|col] [--f16] [--lz4|--zstd] [--drop-quantile Q]")
		os.Exit(1)
	}
	dir, err := bsr.ParseDirection(*dirStr)
	if err != nil { fmt.Fprintf(os.Stderr, "convert: %v\n", err); os.Exit(1) }
	f, err := os.Open(*in)
	if err != nil { fmt.Fprintf(os.Stderr, "convert: open error: %v\n", err); os.Exit(1) }
	c, err := fileformat.ReadMTX(f)
	f.Close()
	if err != nil { fmt.Fprintf(os.Stderr, "convert: parse error: %v\n", err); os.Exit(1) }
	m, st, err := convert.SparsifyCSR(c, convert.Config{BlockDim: *blockDim, Dir: dir, DropQuantile: *dropQ})
	if err != nil { fmt.Fprintf(os.Stderr, "convert: %v\n", err); os.Exit(1) }
	var opts fileformat.WriteOptions
	if *f16 { opts.Encoding = fileformat.ValF16 }
	switch {
	case *useLZ4:
		opts.IndexFlags, opts.ValFlags = fileformat.FlagCompLZ4, fileformat.FlagCompLZ4
	case *useZSTD:
		opts.IndexFlags, opts.ValFlags = fileformat.FlagCompZSTD, fileformat.FlagCompZSTD
	}
	if err := fileformat.WriteBSR(*out, m, opts); err != nil {
		fmt.Fprintf(os.Stderr, "convert: write error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %dx%d, %d blocks (%d kept, %d dropped, fill %.2f)\n",
		*out, st.Rows, st.Cols, st.NNZB, st.Kept, st.Dropped, st.BlockFill)
}

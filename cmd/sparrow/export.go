package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/qrv0/sparrow/internal/fileformat"
)

// Export .bsrx -> MatrixMarket, expanding stored blocks (explicit zeros
// included, so a convert round-trip preserves block structure).
func cmdExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	in := fs.String("in", "", "input .bsrx")
	out := fs.String("out", "", "output .mtx")
	fs.Parse(os.Args[2:])
	if *in == "" || *out == "" {
		fmt.Println("usage: sparrow export --in matrix.bsrx --out matrix.mtx")
		os.Exit(1)
	}
	m, _, err := fileformat.ReadBSR(*in)
	if err != nil { fmt.Fprintf(os.Stderr, "export: open error: %v\n", err); os.Exit(1) }
	f, err := os.Create(*out)
	if err != nil { fmt.Fprintf(os.Stderr, "export: create error: %v\n", err); os.Exit(1) }
	err = fileformat.WriteMTX(f, m.ToCSR())
	if cerr := f.Close(); err == nil { err = cerr }
	if err != nil { fmt.Fprintf(os.Stderr, "export: write error: %v\n", err); os.Exit(1) }
	fmt.Println("wrote", *out)
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/qrv0/sparrow/internal/downloader"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "init":
		cmdInit()
	case "list":
		cmdList()
	case "pull":
		cmdPull()
	case "bsrmm":
		cmdBsrmm()
	case "mv":
		cmdMv()
	case "inspect":
		cmdInspect()
	case "convert":
		cmdConvert()
	case "export":
		cmdExport()
	case "verify":
		cmdVerify()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("sparrow - BSR sparse matrix toolkit")
	fmt.Println("usage: sparrow <command> [args]")
	fmt.Println("  init                        initialize ~/.sparrow")
	fmt.Println("  list                        list matrices in ~/.sparrow/matrices")
	fmt.Println("  pull  <url>                 download a matrix file to ~/.sparrow/matrices")
	fmt.Println("  bsrmm [--alpha A] [--beta B]         run the block-sparse matrix multiply example")
	fmt.Println("  mv    --in <file.bsrx> [--xlen N]    multiply a stored matrix by a generated vector")
	fmt.Println("  inspect <file.{bsrx,mtx}>   inspect a matrix file")
	fmt.Println("  convert --in file.mtx --out file.bsrx --block-dim N [--dir row|col] [--f16] [--lz4|--zstd] [--drop-quantile Q]")
	fmt.Println("  export  --in file.bsrx --out file.mtx")
	fmt.Println("  verify  --in file.bsrx      verify checksums")
}

var (
	homeDir     = must(os.UserHomeDir())
	sparrowHome = filepath.Join(homeDir, ".sparrow")
	matricesDir = filepath.Join(sparrowHome, "matrices")
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func cmdInit() {
	if err := os.MkdirAll(matricesDir, 0o755); err != nil { log.Fatal(err) }
	fmt.Println("Initialized:", sparrowHome)
}

func cmdList() {
	entries, err := os.ReadDir(matricesDir)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) == ".bsrx" || filepath.Ext(name) == ".mtx" {
			fmt.Println(name)
		}
	}
}

func cmdPull() {
	if len(os.Args) < 3 {
		fmt.Println("usage: sparrow pull <url>")
		os.Exit(1)
	}
	url := os.Args[2]
	out := filepath.Join(matricesDir, filepath.Base(url))
	if err := downloader.Download(url, out); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Downloaded:", out)
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"

	"github.com/qrv0/sparrow/internal/fileformat"
)

func cmdInspect() {
	if len(os.Args) < 3 {
		fmt.Println("usage: sparrow inspect <file.{bsrx,mtx}>")
		os.Exit(1)
	}
	path := os.Args[2]
	var err error
	switch filepath.Ext(path) {
	case ".bsrx":
		err = inspectBSRX(path)
	case ".mtx":
		err = inspectMTX(path)
	default:
		fmt.Println("unknown extension")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect: %v\n", err)
		os.Exit(1)
	}
}

func inspectBSRX(path string) error {
	r, err := fileformat.OpenBSRX(path)
	if err != nil { return err }
	defer r.Close()
	meta, err := r.SectionUncompressed(fileformat.TypeMeta)
	if err != nil { return err }
	var pretty map[string]any
	if err := json.Unmarshal(meta, &pretty); err == nil {
		b, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println("META:")
		fmt.Println(string(b))
		if idx, ok := pretty["checksum_index"].(map[string]any); ok {
			fmt.Println("Checksums:")
			for k, v := range idx {
				m, _ := v.(map[string]any)
				fmt.Printf("  section %s: chunks=%v algo=%v\n", k, m["count"], m["algo"])
			}
		}
	} else {
		fmt.Println("META: ", len(meta), "bytes (binary)")
	}
	for _, sec := range []struct {
		id   uint32
		name string
	}{
		{fileformat.TypeRowPtr, "ROW_PTR"},
		{fileformat.TypeColInd, "COL_IND"},
		{fileformat.TypeVal, "VAL"},
	} {
		data, err := r.Section(sec.id)
		if err != nil { continue }
		fmt.Printf("%s: %s on disk\n", sec.name, humanize.Bytes(uint64(len(data))))
	}
	return nil
}

func inspectMTX(path string) error {
	f, err := os.Open(path)
	if err != nil { return err }
	defer f.Close()
	c, err := fileformat.ReadMTX(f)
	if err != nil { return err }
	fmt.Printf("MatrixMarket: %dx%d, %d stored entries\n", c.Rows, c.Cols, c.NNZ())
	return nil
}

package fileformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qrv0/sparrow/internal/bsr"
)

// MatrixMarket coordinate format, the interchange format of the sparse
// world. Supported: real/integer/pattern fields, general/symmetric
// symmetry. Array (dense) and complex files are rejected.

// ReadMTX parses a MatrixMarket coordinate stream into CSR.
func ReadMTX(r io.Reader) (*bsr.CSR, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<24)
	if !sc.Scan() {
		return nil, fmt.Errorf("mtx: empty input")
	}
	header := strings.Fields(strings.ToLower(sc.Text()))
	if len(header) < 5 || header[0] != "%%matrixmarket" || header[1] != "matrix" {
		return nil, fmt.Errorf("mtx: bad header %q", sc.Text())
	}
	format, field, symmetry := header[2], header[3], header[4]
	if format != "coordinate" {
		return nil, fmt.Errorf("mtx: unsupported format %q", format)
	}
	switch field {
	case "real", "integer", "pattern":
	default:
		return nil, fmt.Errorf("mtx: unsupported field %q", field)
	}
	switch symmetry {
	case "general", "symmetric":
	default:
		return nil, fmt.Errorf("mtx: unsupported symmetry %q", symmetry)
	}
	// size line, after comments
	var rows, cols, nnz int
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") { continue }
		if _, err := fmt.Sscan(line, &rows, &cols, &nnz); err != nil {
			return nil, fmt.Errorf("mtx: bad size line %q: %w", line, err)
		}
		break
	}
	ri := make([]int32, 0, nnz)
	ci := make([]int32, 0, nnz)
	val := make([]float64, 0, nnz)
	read := 0
	for read < nnz && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") { continue }
		f := strings.Fields(line)
		if field == "pattern" && len(f) < 2 || field != "pattern" && len(f) < 3 {
			return nil, fmt.Errorf("mtx: bad entry %q", line)
		}
		i, err := strconv.Atoi(f[0])
		if err != nil { return nil, fmt.Errorf("mtx: bad row index %q", f[0]) }
		j, err := strconv.Atoi(f[1])
		if err != nil { return nil, fmt.Errorf("mtx: bad col index %q", f[1]) }
		v := 1.0
		if field != "pattern" {
			v, err = strconv.ParseFloat(f[2], 64)
			if err != nil { return nil, fmt.Errorf("mtx: bad value %q", f[2]) }
		}
		// 1-based on disk
		ri = append(ri, int32(i-1))
		ci = append(ci, int32(j-1))
		val = append(val, v)
		if symmetry == "symmetric" && i != j {
			ri = append(ri, int32(j-1))
			ci = append(ci, int32(i-1))
			val = append(val, v)
		}
		read++
	}
	if err := sc.Err(); err != nil { return nil, err }
	if read != nnz {
		return nil, fmt.Errorf("mtx: got %d entries, header promised %d", read, nnz)
	}
	return bsr.CSRFromTriplets(rows, cols, ri, ci, val)
}

// WriteMTX writes CSR as coordinate real general, 1-based.
func WriteMTX(w io.Writer, c *bsr.CSR) error {
	if err := c.Validate(); err != nil { return err }
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "%%MatrixMarket matrix coordinate real general")
	fmt.Fprintf(bw, "%d %d %d\n", c.Rows, c.Cols, c.NNZ())
	for r := 0; r < c.Rows; r++ {
		for p := int(c.RowPtr[r]); p < int(c.RowPtr[r+1]); p++ {
			fmt.Fprintf(bw, "%d %d %.17g\n", r+1, int(c.ColInd[p])+1, c.Val[p])
		}
	}
	return bw.Flush()
}

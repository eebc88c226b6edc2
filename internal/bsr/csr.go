package bsr

import (
	"fmt"
	"sort"
)

// CSR is a plain compressed sparse row matrix, used as the interchange
// form between MatrixMarket files and BSR.
type CSR struct {
	Rows, Cols int
	RowPtr     []int32 // len Rows+1
	ColInd     []int32
	Val        []float64
}

func (c *CSR) Validate() error {
	if c.Rows < 0 || c.Cols < 0 { return fmt.Errorf("negative dimensions %dx%d", c.Rows, c.Cols) }
	if len(c.RowPtr) != c.Rows+1 { return fmt.Errorf("row ptr length %d, want %d", len(c.RowPtr), c.Rows+1) }
	if c.RowPtr[0] != 0 { return fmt.Errorf("row ptr must start at 0, got %d", c.RowPtr[0]) }
	for i := 0; i < c.Rows; i++ {
		if c.RowPtr[i+1] < c.RowPtr[i] { return fmt.Errorf("row ptr not nondecreasing at row %d", i) }
	}
	nnz := int(c.RowPtr[c.Rows])
	if len(c.ColInd) != nnz || len(c.Val) != nnz {
		return fmt.Errorf("col ind/val lengths %d/%d, want %d", len(c.ColInd), len(c.Val), nnz)
	}
	for i, j := range c.ColInd {
		if j < 0 || int(j) >= c.Cols { return fmt.Errorf("col ind[%d]=%d out of range [0,%d)", i, j, c.Cols) }
	}
	return nil
}

func (c *CSR) NNZ() int { return int(c.RowPtr[c.Rows]) }

// CSRFromTriplets builds a CSR matrix from unordered (i,j,v) triplets.
// Duplicate coordinates are summed.
func CSRFromTriplets(rows, cols int, ri, ci []int32, val []float64) (*CSR, error) {
	if len(ri) != len(ci) || len(ci) != len(val) {
		return nil, fmt.Errorf("triplet lengths %d/%d/%d differ", len(ri), len(ci), len(val))
	}
	for t := range ri {
		if ri[t] < 0 || int(ri[t]) >= rows || ci[t] < 0 || int(ci[t]) >= cols {
			return nil, fmt.Errorf("entry (%d,%d) outside %dx%d", ri[t], ci[t], rows, cols)
		}
	}
	ord := make([]int, len(ri))
	for i := range ord { ord[i] = i }
	sort.Slice(ord, func(a, b int) bool {
		x, y := ord[a], ord[b]
		if ri[x] != ri[y] { return ri[x] < ri[y] }
		return ci[x] < ci[y]
	})
	out := &CSR{Rows: rows, Cols: cols, RowPtr: make([]int32, rows+1)}
	entryRow := make([]int32, 0, len(ord))
	for _, t := range ord {
		n := len(entryRow)
		if n > 0 && entryRow[n-1] == ri[t] && out.ColInd[n-1] == ci[t] {
			out.Val[n-1] += val[t]
			continue
		}
		entryRow = append(entryRow, ri[t])
		out.ColInd = append(out.ColInd, ci[t])
		out.Val = append(out.Val, val[t])
	}
	p := 0
	for r := 0; r < rows; r++ {
		for p < len(entryRow) && int(entryRow[p]) == r {
			p++
		}
		out.RowPtr[r+1] = int32(p)
	}
	return out, out.Validate()
}

// ToDense expands to a row-major slice.
func (c *CSR) ToDense() []float64 {
	out := make([]float64, c.Rows*c.Cols)
	for r := 0; r < c.Rows; r++ {
		for p := int(c.RowPtr[r]); p < int(c.RowPtr[r+1]); p++ {
			out[r*c.Cols+int(c.ColInd[p])] += c.Val[p]
		}
	}
	return out
}

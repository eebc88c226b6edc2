package bsr

import (
	"fmt"
	"sort"
)

// Direction selects the element order inside each dense block.
type Direction uint8

const (
	DirRow Direction = iota // blocks stored row by row
	DirCol                  // blocks stored column by column
)

func (d Direction) String() string {
	if d == DirCol {
		return "col"
	}
	return "row"
}

// ParseDirection accepts "row" or "col".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "row":
		return DirRow, nil
	case "col":
		return DirCol, nil
	}
	return DirRow, fmt.Errorf("unknown block direction %q", s)
}

// Matrix is a block sparse row matrix: MB x NB blocks of BlockDim x BlockDim,
// with RowPtr/ColInd addressing blocks and Val holding the dense block
// entries contiguously in Dir order.
type Matrix struct {
	BlockDim int
	MB, NB   int
	RowPtr   []int32 // len MB+1
	ColInd   []int32 // len NNZB
	Val      []float64 // len NNZB*BlockDim*BlockDim
	Dir      Direction
}

// New validates the arrays and returns the matrix.
func New(blockDim, mb, nb int, rowPtr, colInd []int32, val []float64, dir Direction) (*Matrix, error) {
	m := &Matrix{BlockDim: blockDim, MB: mb, NB: nb, RowPtr: rowPtr, ColInd: colInd, Val: val, Dir: dir}
	if err := m.Validate(); err != nil { return nil, err }
	return m, nil
}

func (m *Matrix) Validate() error {
	if m.BlockDim < 1 { return fmt.Errorf("block dim %d < 1", m.BlockDim) }
	if m.MB < 0 || m.NB < 0 { return fmt.Errorf("negative block dimensions %dx%d", m.MB, m.NB) }
	if len(m.RowPtr) != m.MB+1 { return fmt.Errorf("row ptr length %d, want %d", len(m.RowPtr), m.MB+1) }
	if m.RowPtr[0] != 0 { return fmt.Errorf("row ptr must start at 0, got %d", m.RowPtr[0]) }
	for i := 0; i < m.MB; i++ {
		if m.RowPtr[i+1] < m.RowPtr[i] {
			return fmt.Errorf("row ptr not nondecreasing at block row %d", i)
		}
	}
	nnzb := int(m.RowPtr[m.MB])
	if len(m.ColInd) != nnzb { return fmt.Errorf("col ind length %d, want %d", len(m.ColInd), nnzb) }
	for i, c := range m.ColInd {
		if c < 0 || int(c) >= m.NB {
			return fmt.Errorf("col ind[%d]=%d out of range [0,%d)", i, c, m.NB)
		}
	}
	if want := nnzb * m.BlockDim * m.BlockDim; len(m.Val) != want {
		return fmt.Errorf("val length %d, want %d", len(m.Val), want)
	}
	return nil
}

// NNZB is the number of stored blocks.
func (m *Matrix) NNZB() int { return int(m.RowPtr[m.MB]) }

// NNZ is the number of stored elements, explicit zeros included.
func (m *Matrix) NNZ() int { return m.NNZB() * m.BlockDim * m.BlockDim }

func (m *Matrix) Rows() int { return m.MB * m.BlockDim }
func (m *Matrix) Cols() int { return m.NB * m.BlockDim }

// BlockOffset returns the index into Val of element (r,c) of the block at
// block slot p, honoring the storage direction.
func (m *Matrix) BlockOffset(p, r, c int) int {
	base := p * m.BlockDim * m.BlockDim
	if m.Dir == DirCol {
		return base + c*m.BlockDim + r
	}
	return base + r*m.BlockDim + c
}

// FromDense partitions a row-major rows x cols matrix into BSR, dropping
// all-zero blocks. Dimensions must be multiples of blockDim.
func FromDense(rows, cols, blockDim int, dir Direction, data []float64) (*Matrix, error) {
	if blockDim < 1 { return nil, fmt.Errorf("block dim %d < 1", blockDim) }
	if rows%blockDim != 0 || cols%blockDim != 0 {
		return nil, fmt.Errorf("%dx%d not divisible into %dx%d blocks", rows, cols, blockDim, blockDim)
	}
	if len(data) != rows*cols { return nil, fmt.Errorf("data length %d, want %d", len(data), rows*cols) }
	mb, nb := rows/blockDim, cols/blockDim
	m := &Matrix{BlockDim: blockDim, MB: mb, NB: nb, Dir: dir, RowPtr: make([]int32, mb+1)}
	for bi := 0; bi < mb; bi++ {
		for bj := 0; bj < nb; bj++ {
			nonzero := false
			for r := 0; r < blockDim && !nonzero; r++ {
				for c := 0; c < blockDim; c++ {
					if data[(bi*blockDim+r)*cols+bj*blockDim+c] != 0 {
						nonzero = true
						break
					}
				}
			}
			if !nonzero { continue }
			p := len(m.ColInd)
			m.ColInd = append(m.ColInd, int32(bj))
			m.Val = append(m.Val, make([]float64, blockDim*blockDim)...)
			for r := 0; r < blockDim; r++ {
				for c := 0; c < blockDim; c++ {
					m.Val[m.BlockOffset(p, r, c)] = data[(bi*blockDim+r)*cols+bj*blockDim+c]
				}
			}
		}
		m.RowPtr[bi+1] = int32(len(m.ColInd))
	}
	return m, nil
}

// ToDense expands to a row-major Rows() x Cols() slice.
func (m *Matrix) ToDense() []float64 {
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, rows*cols)
	bd := m.BlockDim
	for bi := 0; bi < m.MB; bi++ {
		for p := int(m.RowPtr[bi]); p < int(m.RowPtr[bi+1]); p++ {
			bj := int(m.ColInd[p])
			for r := 0; r < bd; r++ {
				for c := 0; c < bd; c++ {
					out[(bi*bd+r)*cols+bj*bd+c] = m.Val[m.BlockOffset(p, r, c)]
				}
			}
		}
	}
	return out
}

// FromCSR materializes every block containing at least one stored entry.
// CSR dimensions must be multiples of blockDim.
func FromCSR(c *CSR, blockDim int, dir Direction) (*Matrix, error) {
	if err := c.Validate(); err != nil { return nil, err }
	if blockDim < 1 { return nil, fmt.Errorf("block dim %d < 1", blockDim) }
	if c.Rows%blockDim != 0 || c.Cols%blockDim != 0 {
		return nil, fmt.Errorf("%dx%d not divisible into %dx%d blocks", c.Rows, c.Cols, blockDim, blockDim)
	}
	mb, nb := c.Rows/blockDim, c.Cols/blockDim
	m := &Matrix{BlockDim: blockDim, MB: mb, NB: nb, Dir: dir, RowPtr: make([]int32, mb+1)}
	slot := make(map[int]int, nb) // block col -> block slot, per block row
	for bi := 0; bi < mb; bi++ {
		clear(slot)
		// first pass: discover blocks in column order
		for r := bi * blockDim; r < (bi+1)*blockDim; r++ {
			for p := int(c.RowPtr[r]); p < int(c.RowPtr[r+1]); p++ {
				bj := int(c.ColInd[p]) / blockDim
				if _, ok := slot[bj]; !ok {
					slot[bj] = -1
				}
			}
		}
		cols := make([]int, 0, len(slot))
		for bj := range slot { cols = append(cols, bj) }
		sort.Ints(cols)
		for _, bj := range cols {
			slot[bj] = len(m.ColInd)
			m.ColInd = append(m.ColInd, int32(bj))
			m.Val = append(m.Val, make([]float64, blockDim*blockDim)...)
		}
		// second pass: scatter values
		for r := bi * blockDim; r < (bi+1)*blockDim; r++ {
			for p := int(c.RowPtr[r]); p < int(c.RowPtr[r+1]); p++ {
				col := int(c.ColInd[p])
				bj := col / blockDim
				m.Val[m.BlockOffset(slot[bj], r-bi*blockDim, col-bj*blockDim)] = c.Val[p]
			}
		}
		m.RowPtr[bi+1] = int32(len(m.ColInd))
	}
	return m, nil
}

// ToCSR expands every stored block entry, explicit zeros included, so the
// value placement round-trips exactly.
func (m *Matrix) ToCSR() *CSR {
	bd := m.BlockDim
	out := &CSR{Rows: m.Rows(), Cols: m.Cols(), RowPtr: make([]int32, m.Rows()+1)}
	for bi := 0; bi < m.MB; bi++ {
		for r := 0; r < bd; r++ {
			for p := int(m.RowPtr[bi]); p < int(m.RowPtr[bi+1]); p++ {
				bj := int(m.ColInd[p])
				for c := 0; c < bd; c++ {
					out.ColInd = append(out.ColInd, int32(bj*bd+c))
					out.Val = append(out.Val, m.Val[m.BlockOffset(p, r, c)])
				}
			}
			out.RowPtr[bi*bd+r+1] = int32(len(out.ColInd))
		}
	}
	return out
}

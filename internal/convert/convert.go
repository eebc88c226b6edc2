package convert

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/qrv0/sparrow/internal/bsr"
)

// Config controls dense/CSR -> BSR conversion.
type Config struct {
	BlockDim int
	Dir      bsr.Direction
	// DropQuantile zeroes entries whose |value| falls below this quantile
	// of the nonzero magnitudes. 0 keeps everything.
	DropQuantile float64
}

// Stats reports what the conversion kept.
type Stats struct {
	Rows, Cols int
	Kept       int // nonzero entries surviving the drop
	Dropped    int
	NNZB       int
	// BlockFill is kept entries over total stored block slots.
	BlockFill float64
}

// Sparsify thresholds a row-major dense matrix and packs it into BSR.
func Sparsify(rows, cols int, data []float64, cfg Config) (*bsr.Matrix, Stats, error) {
	if cfg.BlockDim < 1 { return nil, Stats{}, fmt.Errorf("block dim %d < 1", cfg.BlockDim) }
	if cfg.DropQuantile < 0 || cfg.DropQuantile > 1 {
		return nil, Stats{}, fmt.Errorf("drop quantile %g outside [0,1]", cfg.DropQuantile)
	}
	if len(data) != rows*cols { return nil, Stats{}, fmt.Errorf("data length %d, want %d", len(data), rows*cols) }
	work := append([]float64(nil), data...)
	st := Stats{Rows: rows, Cols: cols}
	th := threshold(work, cfg.DropQuantile)
	for i, v := range work {
		if v == 0 { continue }
		if math.Abs(v) < th {
			work[i] = 0
			st.Dropped++
		} else {
			st.Kept++
		}
	}
	m, err := bsr.FromDense(rows, cols, cfg.BlockDim, cfg.Dir, work)
	if err != nil { return nil, Stats{}, err }
	st.NNZB = m.NNZB()
	if m.NNZ() > 0 {
		st.BlockFill = float64(st.Kept) / float64(m.NNZ())
	}
	return m, st, nil
}

// SparsifyCSR thresholds CSR values in place-order and repacks, for inputs
// too large to densify.
func SparsifyCSR(c *bsr.CSR, cfg Config) (*bsr.Matrix, Stats, error) {
	if err := c.Validate(); err != nil { return nil, Stats{}, err }
	if cfg.DropQuantile < 0 || cfg.DropQuantile > 1 {
		return nil, Stats{}, fmt.Errorf("drop quantile %g outside [0,1]", cfg.DropQuantile)
	}
	st := Stats{Rows: c.Rows, Cols: c.Cols}
	th := threshold(c.Val, cfg.DropQuantile)
	kept := &bsr.CSR{Rows: c.Rows, Cols: c.Cols, RowPtr: make([]int32, c.Rows+1)}
	for r := 0; r < c.Rows; r++ {
		for p := int(c.RowPtr[r]); p < int(c.RowPtr[r+1]); p++ {
			v := c.Val[p]
			if v == 0 || math.Abs(v) < th {
				if v != 0 { st.Dropped++ }
				continue
			}
			kept.ColInd = append(kept.ColInd, c.ColInd[p])
			kept.Val = append(kept.Val, v)
			st.Kept++
		}
		kept.RowPtr[r+1] = int32(len(kept.ColInd))
	}
	m, err := bsr.FromCSR(kept, cfg.BlockDim, cfg.Dir)
	if err != nil { return nil, Stats{}, err }
	st.NNZB = m.NNZB()
	if m.NNZ() > 0 {
		st.BlockFill = float64(st.Kept) / float64(m.NNZ())
	}
	return m, st, nil
}

// threshold computes the |value| cutoff for the given quantile over the
// nonzero entries. Quantile 0 means no cutoff.
func threshold(vals []float64, q float64) float64 {
	if q <= 0 { return 0 }
	abs := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v != 0 { abs = append(abs, math.Abs(v)) }
	}
	if len(abs) == 0 { return 0 }
	sort.Float64s(abs)
	return stat.Quantile(q, stat.Empirical, abs, nil)
}

package dense

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a column-major dense matrix with an explicit leading dimension,
// the layout the device library and the host kernels both consume.
type Matrix struct {
	Rows, Cols int
	LD         int // column stride, >= Rows
	Data       []float64 // len LD*Cols
}

// NewMatrix returns a zeroed rows x cols matrix with LD == rows.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{Rows: rows, Cols: cols, LD: rows, Data: make([]float64, rows*cols)}
}

// FromColMajor wraps an existing column-major buffer.
func FromColMajor(rows, cols, ld int, data []float64) (*Matrix, error) {
	if ld < rows { return nil, fmt.Errorf("leading dimension %d < rows %d", ld, rows) }
	if len(data) < ld*cols { return nil, fmt.Errorf("data length %d, want >= %d", len(data), ld*cols) }
	return &Matrix{Rows: rows, Cols: cols, LD: ld, Data: data}, nil
}

// FromRowMajor copies a row-major buffer into a fresh column-major matrix.
func FromRowMajor(rows, cols int, data []float64) *Matrix {
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Data[j*m.LD+i] = data[i*cols+j]
		}
	}
	return m
}

func (m *Matrix) At(i, j int) float64     { return m.Data[j*m.LD+i] }
func (m *Matrix) Set(i, j int, v float64) { m.Data[j*m.LD+i] = v }

// ToGonum copies into a gonum dense matrix.
func (m *Matrix) ToGonum() *mat.Dense {
	d := mat.NewDense(m.Rows, m.Cols, nil)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			d.Set(i, j, m.At(i, j))
		}
	}
	return d
}

// FromGonum copies any gonum matrix into column-major form.
func FromGonum(a mat.Matrix) *Matrix {
	r, c := a.Dims()
	m := NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, a.At(i, j))
		}
	}
	return m
}

// FormatGrid writes the matrix as a fixed-width grid, one parenthesized
// line per row, cellFormat applied to each element.
func (m *Matrix) FormatGrid(w io.Writer, cellFormat string) {
	for i := 0; i < m.Rows; i++ {
		fmt.Fprint(w, "    (")
		for j := 0; j < m.Cols; j++ {
			fmt.Fprintf(w, cellFormat, m.At(i, j))
		}
		fmt.Fprintln(w, " )")
	}
}

package bsr

import (
	"math/rand"
	"testing"
)

// the 4x6 matrix used across the repo's examples
var exampleDense = []float64{
	1, 2, 0, 3, 0, 0,
	0, 4, 5, 0, 0, 0,
	0, 0, 0, 7, 8, 0,
	0, 0, 1, 2, 4, 1,
}

func TestFromDenseExample(t *testing.T) {
	m, err := FromDense(4, 6, 2, DirRow, exampleDense)
	if err != nil { t.Fatalf("FromDense: %v", err) }
	if m.MB != 2 || m.NB != 3 { t.Fatalf("block grid %dx%d, want 2x3", m.MB, m.NB) }
	if m.NNZB() != 4 { t.Fatalf("nnzb %d, want 4", m.NNZB()) }
	wantRowPtr := []int32{0, 2, 4}
	for i, v := range wantRowPtr {
		if m.RowPtr[i] != v { t.Fatalf("rowPtr[%d]=%d want %d", i, m.RowPtr[i], v) }
	}
	wantColInd := []int32{0, 1, 1, 2}
	for i, v := range wantColInd {
		if m.ColInd[i] != v { t.Fatalf("colInd[%d]=%d want %d", i, m.ColInd[i], v) }
	}
	wantVal := []float64{1, 2, 0, 4, 0, 3, 5, 0, 0, 7, 1, 2, 8, 0, 4, 1}
	for i, v := range wantVal {
		if m.Val[i] != v { t.Fatalf("val[%d]=%v want %v", i, m.Val[i], v) }
	}
}

func TestDenseRoundTrip(t *testing.T) {
	for _, dir := range []Direction{DirRow, DirCol} {
		m, err := FromDense(4, 6, 2, dir, exampleDense)
		if err != nil { t.Fatalf("FromDense dir=%v: %v", dir, err) }
		got := m.ToDense()
		for i := range exampleDense {
			if got[i] != exampleDense[i] {
				t.Fatalf("dir=%v: dense[%d] got %v want %v", dir, i, got[i], exampleDense[i])
			}
		}
	}
}

func TestDirColLayout(t *testing.T) {
	m, err := FromDense(2, 2, 2, DirCol, []float64{1, 2, 3, 4})
	if err != nil { t.Fatal(err) }
	// column order inside the single block
	want := []float64{1, 3, 2, 4}
	for i, v := range want {
		if m.Val[i] != v { t.Fatalf("val[%d]=%v want %v", i, m.Val[i], v) }
	}
}

func TestFromDenseErrors(t *testing.T) {
	if _, err := FromDense(3, 6, 2, DirRow, make([]float64, 18)); err == nil {
		t.Fatal("expected error for non-block-aligned rows")
	}
	if _, err := FromDense(4, 6, 2, DirRow, make([]float64, 5)); err == nil {
		t.Fatal("expected error for short data")
	}
	if _, err := FromDense(4, 6, 0, DirRow, make([]float64, 24)); err == nil {
		t.Fatal("expected error for zero block dim")
	}
}

func TestValidate(t *testing.T) {
	if _, err := New(2, 2, 3, []int32{0, 2, 4}, []int32{0, 1, 1, 2}, make([]float64, 16), DirRow); err != nil {
		t.Fatalf("valid matrix rejected: %v", err)
	}
	cases := []struct {
		name   string
		rowPtr []int32
		colInd []int32
		nval   int
	}{
		{"short rowPtr", []int32{0, 4}, []int32{0, 1, 1, 2}, 16},
		{"decreasing rowPtr", []int32{0, 3, 2}, []int32{0, 1, 1}, 12},
		{"col out of range", []int32{0, 2, 4}, []int32{0, 1, 1, 3}, 16},
		{"bad val length", []int32{0, 2, 4}, []int32{0, 1, 1, 2}, 15},
	}
	for _, c := range cases {
		if _, err := New(2, 2, 3, c.rowPtr, c.colInd, make([]float64, c.nval), DirRow); err == nil {
			t.Fatalf("%s: expected error", c.name)
		}
	}
}

func TestEmptyMatrix(t *testing.T) {
	m, err := New(2, 2, 2, []int32{0, 0, 0}, nil, nil, DirRow)
	if err != nil { t.Fatalf("empty matrix rejected: %v", err) }
	if m.NNZ() != 0 { t.Fatalf("nnz %d, want 0", m.NNZ()) }
	d := m.ToDense()
	for i, v := range d {
		if v != 0 { t.Fatalf("dense[%d]=%v want 0", i, v) }
	}
}

func TestCSRRoundTrip(t *testing.T) {
	m, err := FromDense(4, 6, 2, DirRow, exampleDense)
	if err != nil { t.Fatal(err) }
	c := m.ToCSR()
	if err := c.Validate(); err != nil { t.Fatalf("ToCSR invalid: %v", err) }
	// explicit zeros are preserved
	if c.NNZ() != m.NNZ() { t.Fatalf("csr nnz %d, want %d", c.NNZ(), m.NNZ()) }
	m2, err := FromCSR(c, 2, DirRow)
	if err != nil { t.Fatalf("FromCSR: %v", err) }
	if m2.NNZB() != m.NNZB() { t.Fatalf("nnzb %d, want %d", m2.NNZB(), m.NNZB()) }
	got := m2.ToDense()
	for i := range exampleDense {
		if got[i] != exampleDense[i] { t.Fatalf("dense[%d] got %v want %v", i, got[i], exampleDense[i]) }
	}
}

func TestFromCSRRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rows, cols := 12, 20
	data := make([]float64, rows*cols)
	for i := range data {
		if rng.Float64() < 0.2 { data[i] = rng.NormFloat64() }
	}
	want, err := FromDense(rows, cols, 4, DirCol, data)
	if err != nil { t.Fatal(err) }
	got, err := FromCSR(want.ToCSR(), 4, DirCol)
	if err != nil { t.Fatal(err) }
	gd, wd := got.ToDense(), want.ToDense()
	for i := range wd {
		if gd[i] != wd[i] { t.Fatalf("dense[%d] got %v want %v", i, gd[i], wd[i]) }
	}
}

package bsr

import "testing"

func TestCSRFromTriplets(t *testing.T) {
	// unordered, with one duplicate coordinate
	ri := []int32{1, 0, 1, 0, 1}
	ci := []int32{2, 0, 0, 2, 2}
	val := []float64{5, 1, 3, 2, 0.5}
	c, err := CSRFromTriplets(2, 3, ri, ci, val)
	if err != nil { t.Fatalf("CSRFromTriplets: %v", err) }
	if c.NNZ() != 4 { t.Fatalf("nnz %d, want 4 after dedup", c.NNZ()) }
	d := c.ToDense()
	want := []float64{1, 0, 2, 3, 0, 5.5}
	for i := range want {
		if d[i] != want[i] { t.Fatalf("dense[%d] got %v want %v", i, d[i], want[i]) }
	}
}

func TestCSRFromTripletsOutOfRange(t *testing.T) {
	if _, err := CSRFromTriplets(2, 2, []int32{2}, []int32{0}, []float64{1}); err == nil {
		t.Fatal("expected error for row out of range")
	}
	if _, err := CSRFromTriplets(2, 2, []int32{0}, []int32{-1}, []float64{1}); err == nil {
		t.Fatal("expected error for negative col")
	}
	if _, err := CSRFromTriplets(2, 2, []int32{0, 1}, []int32{0}, []float64{1}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestCSRFromTripletsEmptyRows(t *testing.T) {
	c, err := CSRFromTriplets(4, 4, []int32{3}, []int32{3}, []float64{9})
	if err != nil { t.Fatal(err) }
	wantPtr := []int32{0, 0, 0, 0, 1}
	for i, v := range wantPtr {
		if c.RowPtr[i] != v { t.Fatalf("rowPtr[%d]=%d want %d", i, c.RowPtr[i], v) }
	}
}

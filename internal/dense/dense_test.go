package dense

import (
	"bytes"
	"testing"
)

func TestFromRowMajor(t *testing.T) {
	m := FromRowMajor(2, 3, []float64{1, 2, 3, 4, 5, 6})
	// column-major storage
	want := []float64{1, 4, 2, 5, 3, 6}
	for i, v := range want {
		if m.Data[i] != v { t.Fatalf("data[%d] got %v want %v", i, m.Data[i], v) }
	}
	if m.At(1, 2) != 6 { t.Fatalf("At(1,2) got %v want 6", m.At(1, 2)) }
}

func TestFromColMajorLD(t *testing.T) {
	// 2x2 view over a buffer with leading dimension 3
	data := []float64{1, 2, 99, 3, 4, 99}
	m, err := FromColMajor(2, 2, 3, data)
	if err != nil { t.Fatal(err) }
	if m.At(0, 1) != 3 || m.At(1, 1) != 4 { t.Fatalf("ld indexing broken: %v %v", m.At(0, 1), m.At(1, 1)) }
	if _, err := FromColMajor(4, 2, 3, data); err == nil {
		t.Fatal("expected error for ld < rows")
	}
}

func TestGonumRoundTrip(t *testing.T) {
	m := FromRowMajor(3, 2, []float64{1, 2, 3, 4, 5, 6})
	back := FromGonum(m.ToGonum())
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if back.At(i, j) != m.At(i, j) {
				t.Fatalf("(%d,%d) got %v want %v", i, j, back.At(i, j), m.At(i, j))
			}
		}
	}
}

func TestFormatGrid(t *testing.T) {
	m := FromRowMajor(2, 3, []float64{70, 40, 21, 87, 95, 4})
	var buf bytes.Buffer
	m.FormatGrid(&buf, "%5.0f")
	want := "    (   70   40   21 )\n    (   87   95    4 )\n"
	if buf.String() != want {
		t.Fatalf("grid:\n%q\nwant:\n%q", buf.String(), want)
	}
}

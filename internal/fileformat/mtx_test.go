package fileformat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/qrv0/sparrow/internal/bsr"
)

func TestReadMTXGeneral(t *testing.T) {
	in := `%%MatrixMarket matrix coordinate real general
% a comment
3 4 4
1 1 1.5
2 3 -2
3 4 0.25
1 4 7
`
	c, err := ReadMTX(strings.NewReader(in))
	if err != nil { t.Fatalf("ReadMTX: %v", err) }
	if c.Rows != 3 || c.Cols != 4 || c.NNZ() != 4 { t.Fatalf("shape %dx%d nnz %d", c.Rows, c.Cols, c.NNZ()) }
	d := c.ToDense()
	if d[0] != 1.5 || d[3] != 7 || d[1*4+2] != -2 || d[2*4+3] != 0.25 {
		t.Fatalf("values misplaced: %v", d)
	}
}

func TestReadMTXSymmetric(t *testing.T) {
	in := `%%MatrixMarket matrix coordinate real symmetric
3 3 3
1 1 2
2 1 5
3 3 1
`
	c, err := ReadMTX(strings.NewReader(in))
	if err != nil { t.Fatalf("ReadMTX: %v", err) }
	d := c.ToDense()
	if d[0*3+1] != 5 || d[1*3+0] != 5 { t.Fatalf("symmetric entry not mirrored: %v", d) }
	if c.NNZ() != 4 { t.Fatalf("nnz %d, want 4 after mirroring", c.NNZ()) }
}

func TestReadMTXPattern(t *testing.T) {
	in := `%%MatrixMarket matrix coordinate pattern general
2 2 2
1 2
2 1
`
	c, err := ReadMTX(strings.NewReader(in))
	if err != nil { t.Fatalf("ReadMTX: %v", err) }
	d := c.ToDense()
	if d[1] != 1 || d[2] != 1 { t.Fatalf("pattern values not 1: %v", d) }
}

func TestReadMTXRejects(t *testing.T) {
	cases := []string{
		"",
		"%%MatrixMarket matrix array real general\n2 2\n1\n2\n3\n4\n",
		"%%MatrixMarket matrix coordinate complex general\n1 1 1\n1 1 1 0\n",
		"%%MatrixMarket matrix coordinate real general\n2 2 2\n1 1 1\n", // short
		"%%MatrixMarket matrix coordinate real general\n2 2 1\n5 1 1\n", // out of range
	}
	for i, in := range cases {
		if _, err := ReadMTX(strings.NewReader(in)); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestWriteMTXRoundTrip(t *testing.T) {
	c, err := bsr.CSRFromTriplets(3, 3,
		[]int32{0, 1, 2}, []int32{2, 0, 1}, []float64{1.25, -3, 1e-9})
	if err != nil { t.Fatal(err) }
	var buf bytes.Buffer
	if err := WriteMTX(&buf, c); err != nil { t.Fatalf("WriteMTX: %v", err) }
	got, err := ReadMTX(&buf)
	if err != nil { t.Fatalf("re-read: %v", err) }
	gd, wd := got.ToDense(), c.ToDense()
	for i := range wd {
		if gd[i] != wd[i] { t.Fatalf("dense[%d] got %v want %v", i, gd[i], wd[i]) }
	}
}

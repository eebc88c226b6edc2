package fileformat

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
	lz4 "github.com/pierrec/lz4/v4"
	"github.com/x448/float16"
	xxh3 "github.com/zeebo/xxh3"

	"github.com/qrv0/sparrow/internal/bsr"
)

type Writer struct {
	sections []struct{ TypeID uint32; Data []byte; Flags uint32 }
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) AddSection(t uint32, data []byte, flags uint32) { w.sections = append(w.sections, struct{TypeID uint32; Data []byte; Flags uint32}{t, data, flags}) }

// Optional compressors for sections
func zstdEncode(b []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil { return nil, err }
	defer enc.Close()
	return enc.EncodeAll(b, make([]byte, 0, len(b))), nil
}

func zstdDecode(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil { return nil, err }
	defer dec.Close()
	out, err := dec.DecodeAll(b, nil)
	return out, err
}

func lz4Encode(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(b); err != nil { return nil, err }
	if err := w.Close(); err != nil { return nil, err }
	return buf.Bytes(), nil
}

func lz4Decode(b []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(b))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil { return nil, err }
	return buf.Bytes(), nil
}

func alignUp(x, a int64) int64 { r := x % a; if r == 0 { return x }; return x + (a - r) }

func (w *Writer) Write(path string) error {
	f, err := os.Create(path)
	if err != nil { return err }
	defer f.Close()
	// prepare payloads with optional compression according to flags
	payloads := make([][]byte, len(w.sections))
	for i, s := range w.sections {
		data := s.Data
		if s.Flags&FlagCompZSTD != 0 {
			if enc, err := zstdEncode(data); err == nil { data = enc } else { return err }
		} else if s.Flags&FlagCompLZ4 != 0 {
			if enc, err := lz4Encode(data); err == nil { data = enc } else { return err }
		}
		payloads[i] = data
	}
	// header
	if _, err := f.Write(magic[:]); err != nil { return err }
	var hdr struct { Ver, Num, Res uint32 }
	hdr.Ver, hdr.Num, hdr.Res = 1, uint32(len(w.sections)), 0
	if err := binary.Write(f, binary.LittleEndian, &hdr); err != nil { return err }
	// toc
	type rec struct { TypeID uint32; Offset uint64; Size uint64; Flags uint32 }
	recs := make([]rec, len(w.sections))
	// align sections to 4096 bytes after header+toc
	base := int64(8 + 12 + 24*len(w.sections))
	offset := alignUp(base, 4096)
	for i, s := range w.sections {
		data := payloads[i]
		recs[i] = rec{TypeID: s.TypeID, Offset: uint64(offset), Size: uint64(len(data)), Flags: s.Flags}
		offset = alignUp(offset+int64(len(data)), 4096)
	}
	for _, r := range recs {
		if err := binary.Write(f, binary.LittleEndian, &r); err != nil { return err }
	}
	// pad to first section offset
	cur, _ := f.Seek(0, io.SeekCurrent)
	first := int64(recs[0].Offset)
	if cur < first {
		pad := make([]byte, first-cur)
		if _, err := f.Write(pad); err != nil { return err }
	}
	// sections
	for i := range w.sections {
		if _, err := f.Seek(int64(recs[i].Offset), io.SeekStart); err != nil { return err }
		if _, err := f.Write(payloads[i]); err != nil { return err }
	}
	return nil
}

var (
	magic = [8]byte{'B','S','R','X',0,0,0,0}
)

const (
	TypeMeta   = 1
	TypeRowPtr = 2
	TypeColInd = 3
	TypeVal    = 4
)

type tocEntry struct {
	TypeID uint32
	Offset uint64
	Size   uint64
	Flags  uint32
}

type Reader struct {
	f   *os.File
	TOC []tocEntry
}

const (
	FlagCompZSTD uint32 = 1 << 0
	FlagCompLZ4  uint32 = 1 << 1
)

func OpenBSRX(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil { return nil, err }
	head := make([]byte, 8)
	if _, err := io.ReadFull(f, head); err != nil { f.Close(); return nil, err }
	if !bytes.Equal(head, magic[:]) { f.Close(); return nil, errors.New("not a BSRX file") }
	var hdr struct { Ver, Num, Res uint32 }
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil { f.Close(); return nil, err }
	TOC := make([]tocEntry, hdr.Num)
	for i := 0; i < int(hdr.Num); i++ {
		if err := binary.Read(f, binary.LittleEndian, &TOC[i]); err != nil { f.Close(); return nil, err }
	}
	return &Reader{ f: f, TOC: TOC }, nil
}

func (r *Reader) Close() error { return r.f.Close() }

func (r *Reader) Section(typeID uint32) ([]byte, error) {
	for _, e := range r.TOC {
		if e.TypeID == typeID {
			buf := make([]byte, e.Size)
			if _, err := r.f.ReadAt(buf, int64(e.Offset)); err != nil { return nil, err }
			return buf, nil
		}
	}
	return nil, fmt.Errorf("section %d not found", typeID)
}

// SectionUncompressed returns the raw or decompressed payload depending on flags.
func (r *Reader) SectionUncompressed(typeID uint32) ([]byte, error) {
	for _, e := range r.TOC {
		if e.TypeID != typeID { continue }
		buf := make([]byte, e.Size)
		if _, err := r.f.ReadAt(buf, int64(e.Offset)); err != nil { return nil, err }
		if e.Flags&FlagCompZSTD != 0 {
			return zstdDecode(buf)
		}
		if e.Flags&FlagCompLZ4 != 0 {
			return lz4Decode(buf)
		}
		return buf, nil
	}
	return nil, fmt.Errorf("section %d not found", typeID)
}

// ValueEncoding selects how the Val section stores block entries.
type ValueEncoding uint8

const (
	ValF64 ValueEncoding = iota
	ValF16
)

func (v ValueEncoding) String() string {
	if v == ValF16 { return "f16" }
	return "f64"
}

// WriteOptions controls value encoding and per-section compression for WriteBSR.
type WriteOptions struct {
	Encoding      ValueEncoding
	IndexFlags    uint32 // compression for RowPtr/ColInd sections
	ValFlags      uint32 // compression for the Val section
	ChecksumChunk int    // rolling xxh3 chunk size; 0 means 64 KiB
}

const defaultChecksumChunk = 64 * 1024

// WriteBSR writes a BSR matrix as a .bsrx container. Checksums of the
// uncompressed section payloads go into META under checksum_index, keyed
// by section type id, as hex strings (JSON floats lose uint64 precision).
func WriteBSR(path string, m *bsr.Matrix, opts WriteOptions) error {
	if err := m.Validate(); err != nil { return err }
	chunk := opts.ChecksumChunk
	if chunk <= 0 { chunk = defaultChecksumChunk }
	rowPtr := int32Bytes(m.RowPtr)
	colInd := int32Bytes(m.ColInd)
	var val []byte
	switch opts.Encoding {
	case ValF64:
		val = f64Bytes(m.Val)
	case ValF16:
		val = f16Bytes(m.Val)
	default:
		return fmt.Errorf("unknown value encoding %d", opts.Encoding)
	}
	meta := map[string]any{
		"format_version": 1,
		"block_dim":      m.BlockDim,
		"mb":             m.MB,
		"nb":             m.NB,
		"nnzb":           m.NNZB(),
		"rows":           m.Rows(),
		"cols":           m.Cols(),
		"dir":            m.Dir.String(),
		"value_encoding": opts.Encoding.String(),
		"checksum_index": map[string]any{
			fmt.Sprint(TypeRowPtr): checksumEntry(rowPtr, chunk),
			fmt.Sprint(TypeColInd): checksumEntry(colInd, chunk),
			fmt.Sprint(TypeVal):    checksumEntry(val, chunk),
		},
	}
	mb, err := json.Marshal(meta)
	if err != nil { return err }
	w := NewWriter()
	w.AddSection(TypeMeta, mb, 0)
	w.AddSection(TypeRowPtr, rowPtr, opts.IndexFlags)
	w.AddSection(TypeColInd, colInd, opts.IndexFlags)
	w.AddSection(TypeVal, val, opts.ValFlags)
	return w.Write(path)
}

// ReadBSR reads a .bsrx container back into a validated matrix, plus the
// decoded META map.
func ReadBSR(path string) (*bsr.Matrix, map[string]any, error) {
	r, err := OpenBSRX(path)
	if err != nil { return nil, nil, err }
	defer r.Close()
	metaBytes, err := r.SectionUncompressed(TypeMeta)
	if err != nil { return nil, nil, err }
	var meta map[string]any
	if err := json.Unmarshal(metaBytes, &meta); err != nil { return nil, nil, fmt.Errorf("bad META: %w", err) }
	blockDim := metaInt(meta, "block_dim")
	mbN := metaInt(meta, "mb")
	nbN := metaInt(meta, "nb")
	dir, err := bsr.ParseDirection(metaString(meta, "dir"))
	if err != nil { return nil, nil, err }
	rowPtrB, err := r.SectionUncompressed(TypeRowPtr)
	if err != nil { return nil, nil, err }
	colIndB, err := r.SectionUncompressed(TypeColInd)
	if err != nil { return nil, nil, err }
	valB, err := r.SectionUncompressed(TypeVal)
	if err != nil { return nil, nil, err }
	var val []float64
	switch metaString(meta, "value_encoding") {
	case "f64", "":
		val = bytesF64(valB)
	case "f16":
		val = bytesF16(valB)
	default:
		return nil, nil, fmt.Errorf("unknown value encoding %q", metaString(meta, "value_encoding"))
	}
	m, err := bsr.New(blockDim, mbN, nbN, bytesInt32(rowPtrB), bytesInt32(colIndB), val, dir)
	if err != nil { return nil, nil, err }
	return m, meta, nil
}

func checksumEntry(data []byte, chunk int) map[string]any {
	hashes := RollXXH3(data, chunk)
	hex := make([]string, len(hashes))
	for i, h := range hashes { hex[i] = fmt.Sprintf("%016x", h) }
	return map[string]any{
		"algo":       "xxh3-64",
		"chunk_size": chunk,
		"count":      len(hashes),
		"hashes_hex": hex,
	}
}

// RollXXH3 hashes fixed-size chunks of data.
func RollXXH3(data []byte, chunk int) []uint64 {
	hashes := make([]uint64, 0, (len(data)+chunk-1)/chunk)
	for i := 0; i < len(data); i += chunk {
		end := i + chunk
		if end > len(data) { end = len(data) }
		hashes = append(hashes, xxh3.Hash(data[i:end]))
	}
	return hashes
}

func metaInt(meta map[string]any, key string) int {
	if v, ok := meta[key].(float64); ok { return int(v) }
	return 0
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok { return v }
	return ""
}

func int32Bytes(a []int32) []byte {
	b := make([]byte, 4*len(a))
	for i, v := range a { binary.LittleEndian.PutUint32(b[4*i:], uint32(v)) }
	return b
}

func bytesInt32(b []byte) []int32 {
	a := make([]int32, len(b)/4)
	for i := range a { a[i] = int32(binary.LittleEndian.Uint32(b[4*i:])) }
	return a
}

func f64Bytes(a []float64) []byte {
	b := make([]byte, 8*len(a))
	for i, v := range a { binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(v)) }
	return b
}

func bytesF64(b []byte) []float64 {
	a := make([]float64, len(b)/8)
	for i := range a { a[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:])) }
	return a
}

func f16Bytes(a []float64) []byte {
	b := make([]byte, 2*len(a))
	for i, v := range a {
		binary.LittleEndian.PutUint16(b[2*i:], float16.Fromfloat32(float32(v)).Bits())
	}
	return b
}

func bytesF16(b []byte) []float64 {
	a := make([]float64, len(b)/2)
	for i := range a {
		a[i] = float64(float16.Frombits(binary.LittleEndian.Uint16(b[2*i:])).Float32())
	}
	return a
}

package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unsafe"

	"github.com/noesissystemofficial-ship-it/AIG-Representational-Activation/codec"
)

// Record is one serialized concept: a named direction with its strength and
// codec-encoded metadata. Records are the unit of the blob body; the
// persistence layer does not interpret vectors or metadata.
type Record struct {
	Name     string
	Vector   []float32
	Strength float32
	Metadata map[string]any
}

// Options control how a blob is written.
type Options struct {
	// Codec encodes record metadata. Defaults to codec.Default.
	Codec codec.Codec
	// Compression selects the body compression. Defaults to CompressionNone.
	Compression Compression
}

// Encode serializes records into a self-describing blob.
// The record order is preserved on decode.
func Encode(records []Record, opts Options) ([]byte, error) {
	c := opts.Codec
	if c == nil {
		c = codec.Default
	}

	var body bytes.Buffer
	bw := newBinaryWriter(&body)
	for _, rec := range records {
		if err := writeRecord(bw, rec, c); err != nil {
			return nil, fmt.Errorf("encode record %q: %w", rec.Name, err)
		}
	}

	block, err := compressBlock(body.Bytes(), opts.Compression)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	hw := newBinaryWriter(&out)
	hw.writeUint32(MagicNumber)
	hw.writeUint32(Version)
	hw.writeUint8(uint8(opts.Compression))
	if err := hw.writeString8(c.Name()); err != nil {
		return nil, err
	}
	hw.writeUint32(uint32(len(records)))
	if err := hw.err; err != nil {
		return nil, err
	}

	if _, err := out.Write(block); err != nil {
		return nil, err
	}
	hw.writeUint32(ComputeChecksum(block))
	if err := hw.err; err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Decode parses a blob produced by Encode.
// The checksum is verified before any record is decoded.
func Decode(data []byte) ([]Record, error) {
	br := newBinaryReader(bytes.NewReader(data))

	if magic := br.readUint32(); br.err == nil && magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, magic)
	}
	if version := br.readUint32(); br.err == nil && version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, version)
	}
	compression := Compression(br.readUint8())
	codecName := br.readString8()
	count := br.readUint32()
	if br.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, br.err)
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	headerLen := 4 + 4 + 1 + 1 + len(codecName) + 4
	if len(data) < headerLen+4 {
		return nil, ErrTruncated
	}
	block := data[headerLen : len(data)-4]
	stored := binary.LittleEndian.Uint32(data[len(data)-4:])
	if got := ComputeChecksum(block); got != stored {
		return nil, fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", ErrChecksumMismatch, stored, got)
	}

	body, err := decompressBlock(block, compression)
	if err != nil {
		return nil, err
	}

	rr := newBinaryReader(bytes.NewReader(body))
	records := make([]Record, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := readRecord(rr, c)
		if err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeRecord(bw *binaryWriter, rec Record, c codec.Codec) error {
	if len(rec.Name) >= maxNameLen {
		return fmt.Errorf("name too long: %d bytes", len(rec.Name))
	}

	var meta []byte
	if len(rec.Metadata) > 0 {
		var err error
		meta, err = c.Marshal(rec.Metadata)
		if err != nil {
			return err
		}
	}

	bw.writeUint16(uint16(len(rec.Name)))
	bw.writeBytes([]byte(rec.Name))
	bw.writeUint32(uint32(len(meta)))
	bw.writeBytes(meta)
	bw.writeUint32(uint32(len(rec.Vector)))
	bw.writeFloat32Slice(rec.Vector)
	bw.writeUint32(math.Float32bits(rec.Strength))
	return bw.err
}

func readRecord(br *binaryReader, c codec.Codec) (Record, error) {
	var rec Record

	nameLen := br.readUint16()
	name := br.readBytes(int(nameLen))
	metaLen := br.readUint32()
	meta := br.readBytes(int(metaLen))
	dim := br.readUint32()
	vec := br.readFloat32Slice(int(dim))
	strength := math.Float32frombits(br.readUint32())
	if br.err != nil {
		return rec, br.err
	}

	rec.Name = string(name)
	rec.Vector = vec
	rec.Strength = strength
	if len(meta) > 0 {
		if err := c.Unmarshal(meta, &rec.Metadata); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// binaryWriter writes little-endian primitives, capturing the first error.
type binaryWriter struct {
	w   io.Writer
	err error
}

func newBinaryWriter(w io.Writer) *binaryWriter {
	return &binaryWriter{w: w}
}

func (bw *binaryWriter) writeBytes(p []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(p)
}

func (bw *binaryWriter) writeUint8(v uint8) {
	bw.writeBytes([]byte{v})
}

func (bw *binaryWriter) writeUint16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	bw.writeBytes(buf[:])
}

func (bw *binaryWriter) writeUint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	bw.writeBytes(buf[:])
}

// writeString8 writes a length-prefixed string (max 255 bytes).
func (bw *binaryWriter) writeString8(s string) error {
	if len(s) > 255 {
		return fmt.Errorf("string too long: %d bytes", len(s))
	}
	bw.writeUint8(uint8(len(s)))
	bw.writeBytes([]byte(s))
	return bw.err
}

// writeFloat32Slice writes a float32 slice as raw bytes (no allocation).
func (bw *binaryWriter) writeFloat32Slice(vec []float32) {
	if len(vec) == 0 || bw.err != nil {
		return
	}
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&vec[0])), len(vec)*4)
	_, bw.err = bw.w.Write(byteSlice)
}

// binaryReader reads little-endian primitives, capturing the first error.
type binaryReader struct {
	r   io.Reader
	err error
}

func newBinaryReader(r io.Reader) *binaryReader {
	return &binaryReader{r: r}
}

func (br *binaryReader) readBytes(n int) []byte {
	if br.err != nil || n == 0 {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(br.r, buf); err != nil {
		br.err = err
		return nil
	}
	return buf
}

func (br *binaryReader) readUint8() uint8 {
	b := br.readBytes(1)
	if br.err != nil {
		return 0
	}
	return b[0]
}

func (br *binaryReader) readUint16() uint16 {
	b := br.readBytes(2)
	if br.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (br *binaryReader) readUint32() uint32 {
	b := br.readBytes(4)
	if br.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (br *binaryReader) readString8() string {
	n := br.readUint8()
	return string(br.readBytes(int(n)))
}

func (br *binaryReader) readFloat32Slice(count int) []float32 {
	if br.err != nil || count == 0 {
		return nil
	}
	vec := make([]float32, count)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&vec[0])), count*4)
	if _, err := io.ReadFull(br.r, byteSlice); err != nil {
		br.err = err
		return nil
	}
	return vec
}

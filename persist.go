package bptree

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"io"
)

// magic identifies a persisted tree stream: the ASCII bytes "!BPT" read as a
// little-endian uint32.
const magic uint32 = 0x54504221

// formatVersion is the only version this package currently writes or
// accepts.
const formatVersion uint32 = 1

// Codec converts between a key or value of a fixed-width type and its exact
// on-disk byte representation. Go has no compile-time trait for "trivially
// copyable", so fixed-width-ness is a runtime contract a Codec is
// responsible for upholding: EncodeKey/EncodeValue must always write exactly
// KeySize()/ValueSize() bytes and DecodeKey/DecodeValue must always consume
// exactly that many bytes.
type Codec[K cmp.Ordered, V any] interface {
	KeySize() int
	ValueSize() int
	EncodeKey(w io.Writer, k K) error
	DecodeKey(r io.Reader) (K, error)
	EncodeValue(w io.Writer, v V) error
	DecodeValue(r io.Reader) (V, error)
}

// Save writes every (key, value) pair in ascending key order to w, preceded
// by a fixed header: magic (4 bytes), format version (4 bytes), order (8
// bytes), element count (8 bytes), all little-endian. The payload that
// follows is tightly packed with no padding between fields or records.
func (t *Tree[K, V]) Save(w io.Writer) error {
	if t.codec == nil {
		return ErrNilCodec
	}

	bw := bufio.NewWriter(w)

	var header [24]byte
	binary.LittleEndian.PutUint32(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], formatVersion)
	binary.LittleEndian.PutUint64(header[8:16], uint64(t.order))
	binary.LittleEndian.PutUint64(header[16:24], uint64(t.size))
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	cw := &countingWriter{w: bw}
	it := t.Iterator()
	for it.Valid() {
		cw.n = 0
		if err := t.codec.EncodeKey(cw, it.Key()); err != nil {
			return err
		}
		if cw.n != t.codec.KeySize() {
			return ErrShortWrite
		}
		cw.n = 0
		if err := t.codec.EncodeValue(cw, it.Value()); err != nil {
			return err
		}
		if cw.n != t.codec.ValueSize() {
			return ErrShortWrite
		}
		it.Next()
	}

	return bw.Flush()
}

// countingWriter tracks how many bytes a Codec's Encode method actually
// wrote, so Save can enforce the exact-width contract Codec
// documents instead of trusting implementations to uphold it themselves.
type countingWriter struct {
	w io.Writer
	n int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += n
	return n, err
}

// boundedReader enforces the decode-side half of Codec's exact-width
// contract: it reports io.EOF once its budget is exhausted, so a
// Decode method that tries to read past its field's width fails instead of
// silently consuming the next field's bytes.
type boundedReader struct {
	r         io.Reader
	remaining int
}

func (br *boundedReader) Read(p []byte) (int, error) {
	if br.remaining <= 0 {
		return 0, io.EOF
	}
	if len(p) > br.remaining {
		p = p[:br.remaining]
	}
	n, err := br.r.Read(p)
	br.remaining -= n
	return n, err
}

// shortReadErr normalizes any underlying EOF, plus the no-error-but-short
// case boundedReader's remaining-byte check catches, to ErrShortRead.
func shortReadErr(err error) error {
	if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrShortRead
	}
	return err
}

// Load replaces t's contents with the pairs read from r, which must have
// been produced by Save with the same order as t. Use LoadFromFile to
// construct a new tree whose order is taken from the stream instead.
func (t *Tree[K, V]) Load(r io.Reader) error {
	if t.codec == nil {
		return ErrNilCodec
	}

	order, size, br, err := readHeader(r)
	if err != nil {
		return err
	}
	if order != t.order {
		return ErrOrderMismatch
	}

	fresh := New[K, V](order, WithCodec[K, V](t.codec))
	if err := fresh.loadPairs(br, size); err != nil {
		return err
	}
	t.Adopt(fresh)
	return nil
}

// LoadFromFile constructs a new tree from r, taking its order from the
// stream's header rather than requiring the caller to already know it.
func LoadFromFile[K cmp.Ordered, V any](r io.Reader, codec Codec[K, V]) (*Tree[K, V], error) {
	if codec == nil {
		return nil, ErrNilCodec
	}

	order, size, br, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	t := New[K, V](order, WithCodec[K, V](codec))
	if err := t.loadPairs(br, size); err != nil {
		return nil, err
	}
	return t, nil
}

// readHeader validates the magic and version fields and returns the
// declared order and element count, along with a reader positioned right
// after the header.
func readHeader(r io.Reader) (order, size int, br *bufio.Reader, err error) {
	br = bufio.NewReader(r)

	var header [24]byte
	if _, err = io.ReadFull(br, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			err = ErrShortRead
		}
		return 0, 0, nil, err
	}

	if binary.LittleEndian.Uint32(header[0:4]) != magic {
		return 0, 0, nil, ErrBadMagic
	}
	if binary.LittleEndian.Uint32(header[4:8]) != formatVersion {
		return 0, 0, nil, ErrBadVersion
	}

	order = int(binary.LittleEndian.Uint64(header[8:16]))
	size = int(binary.LittleEndian.Uint64(header[16:24]))
	return order, size, br, nil
}

// loadPairs reads exactly n encoded pairs from r and bulk-loads them. The
// stream is required to already be in ascending key order, the same
// precondition BulkLoad imposes on any other presorted source.
func (t *Tree[K, V]) loadPairs(r io.Reader, n int) error {
	pairs := make([]Pair[K, V], 0, n)
	for i := 0; i < n; i++ {
		kr := &boundedReader{r: r, remaining: t.codec.KeySize()}
		k, err := t.codec.DecodeKey(kr)
		if err != nil || kr.remaining != 0 {
			return shortReadErr(err)
		}
		vr := &boundedReader{r: r, remaining: t.codec.ValueSize()}
		v, err := t.codec.DecodeValue(vr)
		if err != nil || vr.remaining != 0 {
			return shortReadErr(err)
		}
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}

	built := BulkLoad[K, V](pairs, t.order, WithCodec[K, V](t.codec))
	t.root = built.root
	t.size = built.size
	t.stats = built.stats
	t.alloc = built.alloc
	return nil
}

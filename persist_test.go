package bptree

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

type intCodec struct{}

func (intCodec) KeySize() int   { return 8 }
func (intCodec) ValueSize() int { return 8 }

func (intCodec) EncodeKey(w io.Writer, k int) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(k)))
	_, err := w.Write(buf[:])
	return err
}

func (intCodec) DecodeKey(r io.Reader) (int, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int(int64(binary.LittleEndian.Uint64(buf[:]))), nil
}

func (intCodec) EncodeValue(w io.Writer, v int) error { return intCodec{}.EncodeKey(w, v) }
func (intCodec) DecodeValue(r io.Reader) (int, error) { return intCodec{}.DecodeKey(r) }

func TestSaveWithoutCodecFails(t *testing.T) {
	tr := New[int, int](4)
	if err := tr.Save(&bytes.Buffer{}); err != ErrNilCodec {
		t.Errorf("Save() without codec = %v, want ErrNilCodec", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := New[int, int](5, WithCodec[int, int](intCodec{}))
	for i := 0; i < 300; i++ {
		src.Insert(i, i*3)
	}

	var buf bytes.Buffer
	if err := src.Save(&buf); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	dst := New[int, int](5, WithCodec[int, int](intCodec{}))
	dst.Insert(9999, 9999)
	if err := dst.Load(&buf); err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if dst.Size() != 300 {
		t.Fatalf("Size() = %d, want 300", dst.Size())
	}
	for i := 0; i < 300; i++ {
		v, ok := dst.Search(i)
		if !ok || v != i*3 {
			t.Fatalf("Search(%d) = (%d, %v), want (%d, true)", i, v, ok, i*3)
		}
	}
	if _, ok := dst.Search(9999); ok {
		t.Error("Load should have discarded dst's prior contents")
	}
	if err := dst.Validate(); err != nil {
		t.Fatalf("Validate() after Load: %v", err)
	}
}

func TestLoadRejectsOrderMismatch(t *testing.T) {
	src := New[int, int](5, WithCodec[int, int](intCodec{}))
	src.Insert(1, 1)

	var buf bytes.Buffer
	if err := src.Save(&buf); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	dst := New[int, int](8, WithCodec[int, int](intCodec{}))
	if err := dst.Load(&buf); err != ErrOrderMismatch {
		t.Errorf("Load() with mismatched order = %v, want ErrOrderMismatch", err)
	}
}

func TestLoadFromFileTakesOrderFromStream(t *testing.T) {
	src := New[int, int](6, WithCodec[int, int](intCodec{}))
	for i := 0; i < 50; i++ {
		src.Insert(i, i)
	}

	var buf bytes.Buffer
	if err := src.Save(&buf); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	loaded, err := LoadFromFile[int, int](&buf, intCodec{})
	if err != nil {
		t.Fatalf("LoadFromFile(): %v", err)
	}
	if loaded.Order() != 6 {
		t.Errorf("Order() = %d, want 6", loaded.Order())
	}
	if loaded.Size() != 50 {
		t.Errorf("Size() = %d, want 50", loaded.Size())
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 24))
	_, err := LoadFromFile[int, int](buf, intCodec{})
	if err != ErrBadMagic {
		t.Errorf("LoadFromFile() with zeroed header = %v, want ErrBadMagic", err)
	}
}

func TestLoadRejectsShortStream(t *testing.T) {
	_, err := LoadFromFile[int, int](bytes.NewReader([]byte{1, 2, 3}), intCodec{})
	if err != ErrShortRead {
		t.Errorf("LoadFromFile() with truncated header = %v, want ErrShortRead", err)
	}
}

package main

import (
	"encoding/binary"
	"io"

	"github.com/KilimcininKorOglu/bptree"
)

// int64Uint64Codec persists the demo CLI's key/value pairs as fixed 8-byte
// little-endian integers, the simplest payload shape that satisfies the
// tree's fixed-width persistence contract.
type int64Uint64Codec struct{}

var _ bptree.Codec[int64, uint64] = int64Uint64Codec{}

func (int64Uint64Codec) KeySize() int   { return 8 }
func (int64Uint64Codec) ValueSize() int { return 8 }

func (int64Uint64Codec) EncodeKey(w io.Writer, k int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	_, err := w.Write(buf[:])
	return err
}

func (int64Uint64Codec) DecodeKey(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

func (int64Uint64Codec) EncodeValue(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func (int64Uint64Codec) DecodeValue(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

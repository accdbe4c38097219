// Package meshdata provides bounds-checked, zero-copy views over the
// little-endian mesh blobs produced by the offline asset tools.
package meshdata

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an accessor reaches outside the view.
	ErrOutOfRange = errors.New("meshdata: access out of range")
	// ErrTruncated is returned when a header declares more data than the blob holds.
	ErrTruncated = errors.New("meshdata: truncated blob")
)

// View is a read-only window over a borrowed byte slice. It never copies payload bytes.
type View struct {
	data []byte
}

// NewView wraps b. The caller keeps ownership of b and must not modify it while the view is in use.
func NewView(b []byte) View {
	return View{data: b}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the underlying bytes (shared, not copied).
func (v View) Bytes() []byte {
	return v.data
}

func (v View) check(off, n int) error {
	if off < 0 || n < 0 || off+n > len(v.data) {
		return fmt.Errorf("%w: [%d,+%d) in %d bytes", ErrOutOfRange, off, n, len(v.data))
	}
	return nil
}

// Sub returns the view [off, off+n).
func (v View) Sub(off, n int) (View, error) {
	if err := v.check(off, n); err != nil {
		return View{}, err
	}
	return View{data: v.data[off : off+n : off+n]}, nil
}

// Tail returns the view [off, Len).
func (v View) Tail(off int) (View, error) {
	if err := v.check(off, 0); err != nil {
		return View{}, err
	}
	return View{data: v.data[off:]}, nil
}

func (v View) U8(off int) (uint8, error) {
	if err := v.check(off, 1); err != nil {
		return 0, err
	}
	return v.data[off], nil
}

func (v View) U16(off int) (uint16, error) {
	if err := v.check(off, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(v.data[off:]), nil
}

func (v View) I16(off int) (int16, error) {
	u, err := v.U16(off)
	return int16(u), err
}

func (v View) U32(off int) (uint32, error) {
	if err := v.check(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v.data[off:]), nil
}

// Reader decodes fixed-size records sequentially. The first failing read sticks in Err;
// later reads return zero, so a header can be decoded field by field and checked once.
type Reader struct {
	v   View
	off int
	Err error
}

// NewReader starts reading v at off.
func NewReader(v View, off int) *Reader {
	return &Reader{v: v, off: off}
}

func (r *Reader) Skip(n int) {
	r.off += n
}

func (r *Reader) U8() uint8 {
	if r.Err != nil {
		return 0
	}
	b, err := r.v.U8(r.off)
	r.Err = err
	r.off++
	return b
}

func (r *Reader) U16() uint16 {
	if r.Err != nil {
		return 0
	}
	u, err := r.v.U16(r.off)
	r.Err = err
	r.off += 2
	return u
}

func (r *Reader) I16() int16 {
	return int16(r.U16())
}

func (r *Reader) U32() uint32 {
	if r.Err != nil {
		return 0
	}
	u, err := r.v.U32(r.off)
	r.Err = err
	r.off += 4
	return u
}

package ot

import "errors"

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data.
// We use it throughout this package to navigate the font's binary data.
type binarySegm []byte

// view returns a sub-segment of b, with bounds checking.
func (b binarySegm) view(from, size int) (binarySegm, error) {
	if from < 0 || size < 0 || from+size > len(b) {
		return nil, errBufferBounds
	}
	return b[from : from+size], nil
}

// u16 reads an unsigned 16 bit integer at byte position i.
func (b binarySegm) u16(i int) (uint16, error) {
	if i < 0 || i+2 > len(b) {
		return 0, errBufferBounds
	}
	return u16(b[i:]), nil
}

// u32 reads an unsigned 32 bit integer at byte position i.
func (b binarySegm) u32(i int) (uint32, error) {
	if i < 0 || i+4 > len(b) {
		return 0, errBufferBounds
	}
	return u32(b[i:]), nil
}

package md3

import (
	"encoding/binary"
	"io"
	"math"
)

// cursor decodes little-endian fields from a block that was read in one
// piece. Reads past the end set err and return zero values; callers check
// err once per record.
type cursor struct {
	data []byte
	off  int
	err  error
}

func (c *cursor) need(n int) bool {
	if c.err != nil {
		return false
	}
	if n < 0 || c.off+n > len(c.data) {
		c.err = io.ErrUnexpectedEOF
		c.off = len(c.data)
		return false
	}
	return true
}

func (c *cursor) bytes(dst []byte) {
	if !c.need(len(dst)) {
		return
	}
	copy(dst, c.data[c.off:])
	c.off += len(dst)
}

func (c *cursor) i16() int16 {
	return int16(c.u16())
}

func (c *cursor) u16() uint16 {
	if !c.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v
}

func (c *cursor) i32() int32 {
	if !c.need(4) {
		return 0
	}
	v := int32(binary.LittleEndian.Uint32(c.data[c.off:]))
	c.off += 4
	return v
}

func (c *cursor) f32() float32 {
	if !c.need(4) {
		return 0
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(c.data[c.off:]))
	c.off += 4
	return v
}

func (c *cursor) name() Name {
	var n Name
	c.bytes(n[:])
	return n
}

func (c *cursor) ident() [4]byte {
	var id [4]byte
	c.bytes(id[:])
	return id
}

func (c *cursor) skip(n int) {
	if c.need(n) {
		c.off += n
	}
}

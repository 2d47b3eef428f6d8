// Package bitstream provides an in-memory bit sequence with a read cursor,
// allowing bit-granularity access to data encoded from fixed-width integers.
// A stream is constructed once from a slice of same-width integers under a
// chosen endianness, and is then read back in arbitrary bit-width chunks,
// in stream order or bit-reversed, destructively (consume) or not (peek).
package bitstream

import (
	"unsafe"
)

// Unsigned is the type set of the unsigned fixed-width and pointer-width
// integer kinds accepted by stream constructors and read targets.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Signed is the type set of the signed fixed-width and pointer-width
// integer kinds accepted by stream constructors and read targets.
type Signed interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Integer is the union of Unsigned and Signed.
type Integer interface {
	Unsigned | Signed
}

// MaxBits is the widest supported element and read-target width.
const MaxBits = 128

// Endianness describes how source integers were expanded into bits at
// construction time. It is recorded for introspection only; reads never
// consult it.
type Endianness uint8

const (
	// BigEndian emits each element's standard binary form, most significant
	// bit first.
	BigEndian Endianness = iota

	// LittleEndian emits each element with its bit order reversed, least
	// significant bit first. Note that this is bit-level reversal per
	// element, not the classic byte-swapped layout.
	LittleEndian
)

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return "unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler, so that an Endianness
// can be used as a flag or config value.
func (e *Endianness) UnmarshalText(text []byte) error {
	switch string(text) {
	case "big", "be":
		*e = BigEndian
	case "little", "le":
		*e = LittleEndian
	default:
		return &ParseError{Input: string(text), Expected: "big | little"}
	}
	return nil
}

// BitStream is a fixed bit sequence plus a read cursor. The sequence is
// immutable after construction; only the cursor mutates. A stream is owned
// by a single consumer and is not safe for concurrent use.
type BitStream struct {
	bitmap []byte
	n      int
	cursor int
	endian Endianness
}

// Len returns the total number of bits in the stream.
func (s *BitStream) Len() int {
	return s.n
}

// Cursor returns the index of the next unread bit.
func (s *BitStream) Cursor() int {
	return s.cursor
}

// Remaining returns the number of unread bits.
func (s *BitStream) Remaining() int {
	return s.n - s.cursor
}

// Endianness returns the endianness the stream was constructed with.
func (s *BitStream) Endianness() Endianness {
	return s.endian
}

// Skip advances the cursor by n bits without interpreting them.
// On failure the cursor is unmoved.
func (s *BitStream) Skip(n int) error {
	if err := s.checkRemaining(n); err != nil {
		return err
	}
	s.cursor += n
	return nil
}

// Bools returns the entire stream, ignoring the cursor, as booleans
// where a set bit maps to true.
func (s *BitStream) Bools() []bool {
	out := make([]bool, s.n)
	for i := range out {
		out[i] = s.bit(i)
	}
	return out
}

// BitsOf returns the big-endian bit expansion of v at its type's natural
// width, left-padded with false. Negative values expand to their
// two's-complement pattern. It is a pure function, independent of any stream.
func BitsOf[T Integer](v T) []bool {
	width := widthOf[T]()
	u := uint64(v)
	if width < 64 {
		u &= 1<<width - 1
	}
	out := make([]bool, width)
	for i := uint(0); i < width; i++ {
		out[i] = u>>(width-1-i)&1 == 1
	}
	return out
}

func (s *BitStream) bit(i int) bool {
	return s.bitmap[i>>3]&(1<<uint(i&7)) != 0
}

func (s *BitStream) setBit(i int) {
	s.bitmap[i>>3] |= 1 << uint(i&7)
}

func (s *BitStream) checkRemaining(size int) error {
	if r := s.n - s.cursor; size > r {
		return &RangeError{Requested: size, Remaining: r}
	}
	return nil
}

// widthOf returns the bit width of the integer type T.
func widthOf[T Integer]() uint {
	return uint(unsafe.Sizeof(T(0))) * 8
}

// isSigned reports whether the integer type T is signed.
func isSigned[T Integer]() bool {
	var zero T
	return zero-1 < zero
}

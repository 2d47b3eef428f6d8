package bitstream

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// New constructs a stream from a slice of same-width integers. Each element
// is expanded to its full two's-complement (or unsigned magnitude) bit
// pattern at the natural width of T, and the expansions are concatenated in
// input order. BigEndian emits each element most significant bit first;
// LittleEndian emits each element bit-reversed. The cursor starts at 0.
func New[T Integer](data []T, endian Endianness) *BitStream {
	width := widthOf[T]()
	s := newStream(len(data)*int(width), endian)
	for i, v := range data {
		u := uint64(v)
		if width < 64 {
			u &= 1<<width - 1
		}
		base := i * int(width)
		for b := uint(0); b < width; b++ {
			var set bool
			if endian == BigEndian {
				set = u>>(width-1-b)&1 == 1
			} else {
				set = u>>b&1 == 1
			}
			if set {
				s.setBit(base + int(b))
			}
		}
	}
	return s
}

// NewFromBytes constructs a stream from raw bytes grouped into unsigned
// elements of the given width. Supported widths are 8, 16, 32 and 64;
// multi-byte elements are assembled in big-endian byte order before the
// per-element bit expansion is applied. len(data) must be a whole number
// of elements.
func NewFromBytes(data []byte, elementBits uint, endian Endianness) (*BitStream, error) {
	switch elementBits {
	case 8, 16, 32, 64:
	default:
		return nil, fmt.Errorf("invalid `elementBits`; expected: 8, 16, 32 or 64, given: %d", elementBits)
	}
	elementBytes := int(elementBits / 8)
	if len(data)%elementBytes != 0 {
		return nil, fmt.Errorf("invalid data length; expected: evenly divisible by %d bytes, given: %d", elementBytes, len(data))
	}

	switch elementBits {
	case 8:
		return New(data, endian), nil
	case 16:
		elems := make([]uint16, len(data)/2)
		for i := range elems {
			elems[i] = binary.BigEndian.Uint16(data[i*2:])
		}
		return New(elems, endian), nil
	case 32:
		elems := make([]uint32, len(data)/4)
		for i := range elems {
			elems[i] = binary.BigEndian.Uint32(data[i*4:])
		}
		return New(elems, endian), nil
	default:
		elems := make([]uint64, len(data)/8)
		for i := range elems {
			elems[i] = binary.BigEndian.Uint64(data[i*8:])
		}
		return New(elems, endian), nil
	}
}

// NewFromBig constructs a stream from big integers at an explicit element
// width, covering widths beyond the native integer kinds (up to 128 bits).
// Negative values are encoded as width-bit two's complement. A value whose
// magnitude does not fit the width is rejected.
func NewFromBig(data []*big.Int, width uint, endian Endianness) (*BitStream, error) {
	if width < 1 || width > MaxBits {
		return nil, fmt.Errorf("invalid `width`; expected: 1 to %d, given: %d", MaxBits, width)
	}

	min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), width-1))
	mod := new(big.Int).Lsh(big.NewInt(1), width)

	s := newStream(len(data)*int(width), endian)
	for i, v := range data {
		u := new(big.Int)
		if v.Sign() < 0 {
			if v.Cmp(min) < 0 {
				return nil, fmt.Errorf("value %s does not fit in %d bits", v, width)
			}
			u.Add(mod, v)
		} else {
			if v.BitLen() > int(width) {
				return nil, fmt.Errorf("value %s does not fit in %d bits", v, width)
			}
			u.Set(v)
		}

		base := i * int(width)
		for b := uint(0); b < width; b++ {
			var set bool
			if endian == BigEndian {
				set = u.Bit(int(width-1-b)) == 1
			} else {
				set = u.Bit(int(b)) == 1
			}
			if set {
				s.setBit(base + int(b))
			}
		}
	}
	return s, nil
}

func newStream(numBits int, endian Endianness) *BitStream {
	size := numBits / 8
	if numBits%8 > 0 {
		size++
	}
	return &BitStream{
		bitmap: make([]byte, size),
		n:      numBits,
		endian: endian,
	}
}

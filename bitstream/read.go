package bitstream

import (
	"fmt"
	"math/big"
)

// The read engine. All public peek/consume forms funnel into a single
// width/signedness-parameterized read, which enforces the two preconditions
// (size within the target capacity, size within the remaining bits), extracts
// the slice at the cursor, optionally bit-reverses it, and interprets it as a
// literal binary numeral.
//
// Interpretation is deliberately not two's-complement decoding: requesting a
// signed target only tightens the range check, so a slice whose literal value
// exceeds the signed positive maximum fails with an OverflowError instead of
// decoding to a negative number.

// Peek reads size bits at the cursor as a value of type T, in stream order,
// leaving the cursor unchanged.
func Peek[T Integer](s *BitStream, size int) (T, error) {
	return readAs[T](s, size, false, false)
}

// PeekReversed is Peek with the extracted slice bit-reversed before
// interpretation.
func PeekReversed[T Integer](s *BitStream, size int) (T, error) {
	return readAs[T](s, size, true, false)
}

// Consume reads size bits at the cursor as a value of type T, in stream
// order, advancing the cursor. On failure the cursor is unmoved.
func Consume[T Integer](s *BitStream, size int) (T, error) {
	return readAs[T](s, size, false, true)
}

// ConsumeReversed is Consume with the extracted slice bit-reversed before
// interpretation.
func ConsumeReversed[T Integer](s *BitStream, size int) (T, error) {
	return readAs[T](s, size, true, true)
}

func readAs[T Integer](s *BitStream, size int, reversed, advance bool) (T, error) {
	v, err := s.read(size, reversed, isSigned[T](), widthOf[T](), advance)
	if err != nil {
		return 0, err
	}
	return T(v), nil
}

func (s *BitStream) read(size int, reversed, signed bool, targetBits uint, advance bool) (uint64, error) {
	if size < 0 || uint(size) > targetBits {
		return 0, &SizeError{Size: size, TargetBits: targetBits}
	}
	if err := s.checkRemaining(size); err != nil {
		return 0, err
	}

	var v uint64
	for i := 0; i < size; i++ {
		idx := s.cursor + i
		if reversed {
			idx = s.cursor + size - 1 - i
		}
		v <<= 1
		if s.bit(idx) {
			v |= 1
		}
	}

	if signed && v > uint64(1)<<(targetBits-1)-1 {
		return 0, &OverflowError{
			Value:      fmt.Sprintf("%0*b", size, v),
			TargetBits: targetBits,
			Signed:     true,
		}
	}

	if advance {
		s.cursor += size
	}
	return v, nil
}

// PeekBig reads size bits at the cursor as a big integer, covering target
// widths beyond the native integer kinds (up to 128 bits). The signed flag
// tightens the range check to the 128-bit signed positive maximum; as with
// the fixed-width forms, it does not enable two's-complement decoding.
func (s *BitStream) PeekBig(size int, signed bool) (*big.Int, error) {
	return s.readBig(size, false, signed, false)
}

// PeekBigReversed is PeekBig with the extracted slice bit-reversed before
// interpretation.
func (s *BitStream) PeekBigReversed(size int, signed bool) (*big.Int, error) {
	return s.readBig(size, true, signed, false)
}

// ConsumeBig is the cursor-advancing form of PeekBig.
func (s *BitStream) ConsumeBig(size int, signed bool) (*big.Int, error) {
	return s.readBig(size, false, signed, true)
}

// ConsumeBigReversed is the cursor-advancing form of PeekBigReversed.
func (s *BitStream) ConsumeBigReversed(size int, signed bool) (*big.Int, error) {
	return s.readBig(size, true, signed, true)
}

func (s *BitStream) readBig(size int, reversed, signed, advance bool) (*big.Int, error) {
	if size < 0 || size > MaxBits {
		return nil, &SizeError{Size: size, TargetBits: MaxBits}
	}
	if err := s.checkRemaining(size); err != nil {
		return nil, err
	}

	v := new(big.Int)
	for i := 0; i < size; i++ {
		idx := s.cursor + i
		if reversed {
			idx = s.cursor + size - 1 - i
		}
		v.Lsh(v, 1)
		if s.bit(idx) {
			v.SetBit(v, 0, 1)
		}
	}

	if signed && v.BitLen() >= MaxBits {
		return nil, &OverflowError{
			Value:      fmt.Sprintf("%0*b", size, v),
			TargetBits: MaxBits,
			Signed:     true,
		}
	}

	if advance {
		s.cursor += size
	}
	return v, nil
}

// PeekString reads size bits at the cursor as a string of '0'/'1'
// characters, without numeric interpretation, leaving the cursor unchanged.
// Useful for variable-length fields whose meaning is not a plain integer.
func (s *BitStream) PeekString(size int) (string, error) {
	return s.peekString(size, false)
}

// PeekStringReversed is PeekString with the extracted slice bit-reversed.
func (s *BitStream) PeekStringReversed(size int) (string, error) {
	return s.peekString(size, true)
}

func (s *BitStream) peekString(size int, reversed bool) (string, error) {
	if size < 0 {
		return "", &SizeError{Size: size, TargetBits: MaxBits}
	}
	if err := s.checkRemaining(size); err != nil {
		return "", err
	}

	out := make([]byte, size)
	for i := 0; i < size; i++ {
		idx := s.cursor + i
		if reversed {
			idx = s.cursor + size - 1 - i
		}
		if s.bit(idx) {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out), nil
}

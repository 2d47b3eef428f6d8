package bitstream

import (
	"fmt"
)

// SizeError reports a read whose requested size exceeds the bit capacity of
// the target integer type.
type SizeError struct {
	Size       int
	TargetBits uint
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("invalid read size; expected: 0 to %d, given: %d", e.TargetBits, e.Size)
}

// RangeError reports a read past the end of the stream. The cursor is left
// unmoved.
type RangeError struct {
	Requested int
	Remaining int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("read of %d bits exceeds the %d remaining", e.Requested, e.Remaining)
}

// OverflowError reports a bit slice whose literal binary value does not fit
// the representable range of the requested target type. The cursor is left
// unmoved.
type OverflowError struct {
	Value      string // the extracted slice, as '0'/'1' text
	TargetBits uint
	Signed     bool
}

func (e *OverflowError) Error() string {
	sign := "unsigned"
	if e.Signed {
		sign = "signed"
	}
	return fmt.Sprintf("value %s overflows %s %d-bit target", e.Value, sign, e.TargetBits)
}

// ParseError reports text that could not be parsed as an Endianness.
type ParseError struct {
	Input    string
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid `Endianness`; expected: %s, given: %q", e.Expected, e.Input)
}

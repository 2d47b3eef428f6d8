// Package schema parses textual bit-field specs and decodes them against a
// bit stream. A spec is a comma-separated field list, each field of the form
// `name:kind`, where kind is `u<size>` (unsigned), `i<size>` (signed) or
// `s<size>` (raw bit string), with an optional `r` suffix for a bit-reversed
// read. For example: "version:u3,flags:u5,delta:i12r,tail:s6".
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spacemeshos/bitcodec/bitstream"
)

// Kind is the interpretation of a decoded field.
type Kind uint8

const (
	Unsigned Kind = iota
	Signed
	Raw
)

func (k Kind) String() string {
	switch k {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	case Raw:
		return "raw"
	default:
		return "unknown"
	}
}

// MaxFieldSize is the widest numeric field a schema supports. Wider fields
// are read through the stream's big-integer surface directly.
const MaxFieldSize = 64

// Field is a single named bit field.
type Field struct {
	Name     string
	Kind     Kind
	Size     int
	Reversed bool
}

// Value is a decoded field. Uint is set for unsigned fields, Int for signed
// fields and Raw for raw fields.
type Value struct {
	Field Field
	Uint  uint64
	Int   int64
	Raw   string
}

func (v Value) String() string {
	switch v.Field.Kind {
	case Unsigned:
		return strconv.FormatUint(v.Uint, 10)
	case Signed:
		return strconv.FormatInt(v.Int, 10)
	default:
		return v.Raw
	}
}

// Parse parses a textual field spec.
func Parse(spec string) ([]Field, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty field spec")
	}

	parts := strings.Split(spec, ",")
	fields := make([]Field, 0, len(parts))
	for _, part := range parts {
		field, err := parseField(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func parseField(part string) (Field, error) {
	name, kind, found := strings.Cut(part, ":")
	if !found || name == "" || kind == "" {
		return Field{}, fmt.Errorf("invalid field %q; expected: `name:kind`", part)
	}

	field := Field{Name: name}
	switch kind[0] {
	case 'u':
		field.Kind = Unsigned
	case 'i':
		field.Kind = Signed
	case 's':
		field.Kind = Raw
	default:
		return Field{}, fmt.Errorf("invalid field %q; expected kind prefix: u, i or s, given: %q", part, kind[0])
	}

	sizeText := kind[1:]
	if strings.HasSuffix(sizeText, "r") {
		field.Reversed = true
		sizeText = strings.TrimSuffix(sizeText, "r")
	}

	size, err := strconv.Atoi(sizeText)
	if err != nil {
		return Field{}, fmt.Errorf("invalid field %q; bad size: %v", part, err)
	}
	if size < 1 {
		return Field{}, fmt.Errorf("invalid field %q; expected size: >= 1, given: %d", part, size)
	}
	if field.Kind != Raw && size > MaxFieldSize {
		return Field{}, fmt.Errorf("invalid field %q; expected size: <= %d, given: %d", part, MaxFieldSize, size)
	}

	field.Size = size
	return field, nil
}

// Decode consumes the fields sequentially from the stream. On error the
// already-consumed prefix stays consumed and decoding stops at the failing
// field.
func Decode(s *bitstream.BitStream, fields []Field) ([]Value, error) {
	values := make([]Value, 0, len(fields))
	for _, field := range fields {
		value, err := decodeField(s, field)
		if err != nil {
			return nil, fmt.Errorf("field `%s`: %w", field.Name, err)
		}
		values = append(values, value)
	}
	return values, nil
}

func decodeField(s *bitstream.BitStream, field Field) (Value, error) {
	value := Value{Field: field}

	switch field.Kind {
	case Unsigned:
		var err error
		if field.Reversed {
			value.Uint, err = bitstream.ConsumeReversed[uint64](s, field.Size)
		} else {
			value.Uint, err = bitstream.Consume[uint64](s, field.Size)
		}
		if err != nil {
			return Value{}, err
		}
	case Signed:
		var err error
		if field.Reversed {
			value.Int, err = bitstream.ConsumeReversed[int64](s, field.Size)
		} else {
			value.Int, err = bitstream.Consume[int64](s, field.Size)
		}
		if err != nil {
			return Value{}, err
		}
	case Raw:
		var err error
		if field.Reversed {
			value.Raw, err = s.PeekStringReversed(field.Size)
		} else {
			value.Raw, err = s.PeekString(field.Size)
		}
		if err != nil {
			return Value{}, err
		}
		if err := s.Skip(field.Size); err != nil {
			return Value{}, err
		}
	}

	return value, nil
}

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitcodec/bitstream"
	"github.com/spacemeshos/bitcodec/schema"
)

func TestParse(t *testing.T) {
	req := require.New(t)

	fields, err := schema.Parse("version:u3, flags:u5,delta:i12r,tail:s4")
	req.NoError(err)
	req.Equal([]schema.Field{
		{Name: "version", Kind: schema.Unsigned, Size: 3},
		{Name: "flags", Kind: schema.Unsigned, Size: 5},
		{Name: "delta", Kind: schema.Signed, Size: 12, Reversed: true},
		{Name: "tail", Kind: schema.Raw, Size: 4},
	}, fields)
}

func TestParseErrors(t *testing.T) {
	req := require.New(t)

	for _, spec := range []string{
		"",
		"noseparator",
		"x:",
		":u8",
		"x:q8",
		"x:u0",
		"x:u65",
		"x:uabc",
	} {
		_, err := schema.Parse(spec)
		req.Error(err, "spec: %q", spec)
	}

	// Raw fields are not capped at 64 bits.
	fields, err := schema.Parse("blob:s100")
	req.NoError(err)
	req.Equal(100, fields[0].Size)
}

func TestDecode(t *testing.T) {
	req := require.New(t)

	s := bitstream.New([]uint8{0b10100110, 0b11000011}, bitstream.BigEndian)

	fields, err := schema.Parse("version:u3,count:u5,flags:s4,delta:u4r")
	req.NoError(err)

	values, err := schema.Decode(s, fields)
	req.NoError(err)
	req.Len(values, 4)

	req.Equal(uint64(0b101), values[0].Uint)
	req.Equal("5", values[0].String())

	req.Equal(uint64(0b00110), values[1].Uint)

	req.Equal("1100", values[2].Raw)
	req.Equal("1100", values[2].String())

	// Final slice 0011 reversed reads as 1100.
	req.Equal(uint64(0b1100), values[3].Uint)

	req.Zero(s.Remaining())
}

func TestDecodeSigned(t *testing.T) {
	req := require.New(t)

	s := bitstream.New([]uint8{0b01111111}, bitstream.BigEndian)
	values, err := schema.Decode(s, []schema.Field{{Name: "v", Kind: schema.Signed, Size: 8}})
	req.NoError(err)
	req.Equal(int64(127), values[0].Int)
	req.Equal("127", values[0].String())
}

func TestDecodeShortStream(t *testing.T) {
	req := require.New(t)

	s := bitstream.New([]uint8{0xFF}, bitstream.BigEndian)
	fields, err := schema.Parse("a:u6,b:u6")
	req.NoError(err)

	_, err = schema.Decode(s, fields)
	req.ErrorContains(err, "field `b`")
	var rangeErr *bitstream.RangeError
	req.ErrorAs(err, &rangeErr)

	// The successfully decoded prefix stays consumed.
	req.Equal(2, s.Remaining())
}

package counter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/bitcodec/counter"
)

func TestCounts(t *testing.T) {
	req := require.New(t)

	c := counter.New[uint8]()
	req.Zero(c.Len())
	req.Zero(c.Count(1))

	c.Add(1)
	req.Equal(uint64(1), c.Count(1))
	req.Equal(1, c.Len())

	c.Add(1, 2, 1)
	req.Equal(uint64(3), c.Count(1))
	req.Equal(uint64(1), c.Count(2))
	req.Equal(2, c.Len())
	req.Zero(c.Count(3))
}

func TestOf(t *testing.T) {
	req := require.New(t)

	c := counter.Of[uint8](
		1, 2, 3, 4, 5, 2, 5, 2, 1, 5,
		6, 3, 7, 8, 9, 7, 5, 4, 9, 8,
		9, 6, 6, 6, 3, 1, 5, 4, 7, 5,
		5, 2, 4, 5, 6, 2, 3, 6, 8, 5,
	)
	req.Equal(9, c.Len())
	req.Equal(uint64(3), c.Count(1))
	req.Equal(uint64(5), c.Count(2))
	req.Equal(uint64(4), c.Count(3))
	req.Equal(uint64(4), c.Count(4))
	req.Equal(uint64(9), c.Count(5))
	req.Equal(uint64(6), c.Count(6))
	req.Equal(uint64(3), c.Count(7))
	req.Equal(uint64(3), c.Count(8))
	req.Equal(uint64(3), c.Count(9))
}

func TestSorted(t *testing.T) {
	req := require.New(t)

	c := counter.Of("b", "a", "c", "a")
	entries := c.Sorted()
	req.Len(entries, 3)
	req.Equal(counter.Entry[string]{Key: "a", Count: 2}, entries[0])
	req.Equal(counter.Entry[string]{Key: "b", Count: 1}, entries[1])
	req.Equal(counter.Entry[string]{Key: "c", Count: 1}, entries[2])
}

func TestEqual(t *testing.T) {
	req := require.New(t)

	a := counter.Of[uint64](1, 2, 2)
	b := counter.Of[uint64](2, 1, 2)
	req.True(a.Equal(b))

	b.Add(3)
	req.False(a.Equal(b))

	c := counter.Of[uint64](1, 1, 2)
	req.False(a.Equal(c))
}

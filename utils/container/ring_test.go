package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/container"
)

func TestRingInit(t *testing.T) {
	r := container.NewRing[int](3)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 3, r.Cap())
	assert.Empty(t, r.Slice())
	assert.Empty(t, r.Last(5))

	zero := container.NewRing[int](0)
	assert.Equal(t, 1, zero.Cap())
}

func TestRingOperation(t *testing.T) {
	r := container.NewRing[int](3)

	// test: push until full
	r.Push(1)
	r.Push(2)
	r.Push(3)
	assert.Equal(t, []int{1, 2, 3}, r.Slice())

	// test: oldest dropped silently
	r.Push(4)
	r.Push(5)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{3, 4, 5}, r.Slice())

	// test: last
	assert.Equal(t, []int{4, 5}, r.Last(2))
	assert.Equal(t, []int{3, 4, 5}, r.Last(10))
	assert.Empty(t, r.Last(0))

	// test: clone independence
	c := r.Clone()
	c.Push(6)
	assert.Equal(t, []int{3, 4, 5}, r.Slice())
	assert.Equal(t, []int{4, 5, 6}, c.Slice())

	// test: returned slices are copies
	s := r.Slice()
	s[0] = 100
	assert.Equal(t, 3, r.Slice()[0])
}

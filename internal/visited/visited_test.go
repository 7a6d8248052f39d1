package visited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitThenVisited(t *testing.T) {
	s := New(8)
	assert.False(t, s.Visited(1))
	s.Visit(1)
	assert.True(t, s.Visited(1))
	assert.False(t, s.Visited(2))
}

func TestResetClearsPriorGeneration(t *testing.T) {
	s := New(8)
	s.Visit(1)
	s.Visit(2)
	s.Reset()
	assert.False(t, s.Visited(1))
	assert.False(t, s.Visited(2))
	s.Visit(1)
	assert.True(t, s.Visited(1))
}

func TestManyResetsDoNotResurrectOldEntries(t *testing.T) {
	s := New(4)
	for i := 0; i < 1000; i++ {
		s.Visit(int32(i % 4))
		s.Reset()
	}
	for i := 0; i < 4; i++ {
		assert.False(t, s.Visited(int32(i)))
	}
}

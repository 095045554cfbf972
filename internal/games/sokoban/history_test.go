package sokoban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sokoban/internal/core"
)

func TestHistoryRing(t *testing.T) {
	h := newHistory(3)

	_, ok := h.Pop()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		h.Push(snapshot{player: core.Pt(i, 0), moves: i})
	}
	require.Equal(t, 3, h.Len())

	for _, want := range []int{5, 4, 3} {
		s, ok := h.Pop()
		require.True(t, ok)
		assert.Equal(t, want, s.moves)
	}

	_, ok = h.Pop()
	assert.False(t, ok)
	assert.Zero(t, h.Len())
}

func TestHistoryPushAfterPop(t *testing.T) {
	h := newHistory(2)
	h.Push(snapshot{moves: 1})
	h.Push(snapshot{moves: 2})
	h.Pop()
	h.Push(snapshot{moves: 3})
	h.Push(snapshot{moves: 4})

	var got []int
	for h.Len() > 0 {
		s, _ := h.Pop()
		got = append(got, s.moves)
	}
	assert.Equal(t, []int{4, 3}, got)
}

func TestHistoryZeroCapacity(t *testing.T) {
	h := newHistory(0)
	h.Push(snapshot{moves: 1})
	assert.Zero(t, h.Len())
}

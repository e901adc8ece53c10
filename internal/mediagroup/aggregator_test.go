package mediagroup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorFlushesAfterDebounce(t *testing.T) {
	flushed := make(chan Group, 1)
	a := New(Options{
		Debounce: 20 * time.Millisecond,
		OnFlush:  func(g Group) { flushed <- g },
	})

	a.Add(Item{ChatID: 10, UserID: 7, MediaGroupID: "g1", FileID: "f1"})
	a.Add(Item{ChatID: 10, UserID: 7, MediaGroupID: "g1", FileID: "f2"})
	a.Add(Item{ChatID: 10, UserID: 7, MediaGroupID: "g1", FileID: "f3"})

	select {
	case g := <-flushed:
		assert.Equal(t, int64(10), g.ChatID)
		assert.Equal(t, int64(7), g.UserID)
		assert.Equal(t, []string{"f1", "f2", "f3"}, g.FileIDs)
	case <-time.After(time.Second):
		t.Fatal("group was never flushed")
	}
}

func TestAggregatorSeparatesGroups(t *testing.T) {
	flushed := make(chan Group, 2)
	a := New(Options{
		Debounce: 20 * time.Millisecond,
		OnFlush:  func(g Group) { flushed <- g },
	})

	a.Add(Item{ChatID: 1, MediaGroupID: "g1", FileID: "a"})
	a.Add(Item{ChatID: 2, MediaGroupID: "g1", FileID: "b"})

	groups := make(map[int64][]string)
	for i := 0; i < 2; i++ {
		select {
		case g := <-flushed:
			groups[g.ChatID] = g.FileIDs
		case <-time.After(time.Second):
			t.Fatal("missing flush")
		}
	}

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"a"}, groups[1])
	assert.Equal(t, []string{"b"}, groups[2])
}

func TestAggregatorIgnoresIncompleteItems(t *testing.T) {
	a := New(Options{
		Debounce: 10 * time.Millisecond,
		OnFlush:  func(Group) { t.Error("unexpected flush") },
	})

	a.Add(Item{ChatID: 1, FileID: "no-group"})
	a.Add(Item{ChatID: 1, MediaGroupID: "g1"})

	time.Sleep(50 * time.Millisecond)
}

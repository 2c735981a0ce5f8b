package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitingQueue_FIFOAndNoDuplicates(t *testing.T) {
	q := NewWaitingQueue()

	assert.True(t, q.Enqueue("a"))
	assert.True(t, q.Enqueue("b"))
	assert.False(t, q.Enqueue("a"), "duplicate enqueue must be a no-op")
	assert.Equal(t, []string{"a", "b"}, q.Snapshot())

	id, ok := q.PopFront()
	assert.True(t, ok)
	assert.Equal(t, "a", id)
	assert.False(t, q.Contains("a"))
}

func TestWaitingQueue_PushFrontAndRemove(t *testing.T) {
	q := NewWaitingQueue()
	q.Enqueue("a")
	q.Enqueue("b")

	assert.True(t, q.PushFront("c"))
	assert.False(t, q.PushFront("a"))
	assert.Equal(t, []string{"c", "a", "b"}, q.Snapshot())

	assert.True(t, q.Remove("a"))
	assert.False(t, q.Remove("a"))
	assert.Equal(t, []string{"c", "b"}, q.Snapshot())
	assert.Equal(t, 2, q.Len())
}

func TestWaitingQueue_PopEmpty(t *testing.T) {
	q := NewWaitingQueue()
	_, ok := q.PopFront()
	assert.False(t, ok)
}

func TestPairTable_Symmetry(t *testing.T) {
	p := NewPairTable()
	p.Link("a", "b")

	partner, ok := p.PartnerOf("b")
	assert.True(t, ok)
	assert.Equal(t, "a", partner)
	assert.Equal(t, 1, p.Pairs())

	partner, ok = p.Unlink("b")
	assert.True(t, ok)
	assert.Equal(t, "a", partner)
	assert.False(t, p.Contains("a"))
	assert.False(t, p.Contains("b"))

	_, ok = p.Unlink("a")
	assert.False(t, ok, "second unlink finds nothing")
}

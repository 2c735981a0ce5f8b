package pairing

import "container/list"

// WaitingQueue is a FIFO of connection ids with no duplicates.
// Membership is indexed so Remove is O(1).
type WaitingQueue struct {
	order *list.List
	index map[string]*list.Element
}

func NewWaitingQueue() *WaitingQueue {
	return &WaitingQueue{order: list.New(), index: make(map[string]*list.Element)}
}

// Enqueue appends id at the tail. It is a no-op returning false when id is
// already queued.
func (q *WaitingQueue) Enqueue(id string) bool {
	if _, ok := q.index[id]; ok {
		return false
	}
	q.index[id] = q.order.PushBack(id)
	return true
}

// PushFront re-inserts id at the head so it keeps its priority.
func (q *WaitingQueue) PushFront(id string) bool {
	if _, ok := q.index[id]; ok {
		return false
	}
	q.index[id] = q.order.PushFront(id)
	return true
}

// PopFront removes and returns the oldest entry.
func (q *WaitingQueue) PopFront() (string, bool) {
	front := q.order.Front()
	if front == nil {
		return "", false
	}
	id := q.order.Remove(front).(string)
	delete(q.index, id)
	return id, true
}

// Remove deletes id if present.
func (q *WaitingQueue) Remove(id string) bool {
	el, ok := q.index[id]
	if !ok {
		return false
	}
	q.order.Remove(el)
	delete(q.index, id)
	return true
}

func (q *WaitingQueue) Contains(id string) bool {
	_, ok := q.index[id]
	return ok
}

func (q *WaitingQueue) Len() int { return q.order.Len() }

// Snapshot returns the queued ids oldest first.
func (q *WaitingQueue) Snapshot() []string {
	ids := make([]string, 0, q.order.Len())
	for el := q.order.Front(); el != nil; el = el.Next() {
		ids = append(ids, el.Value.(string))
	}
	return ids
}

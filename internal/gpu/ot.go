package gpu

import "fmt"

const empty = -1

// OrderingTable is an array of depth buckets, each an intrusive singly
// linked list threaded through the primitives of one Frame.
type OrderingTable struct {
	heads []int32
}

// NewOrderingTable returns a table with size buckets.
func NewOrderingTable(size int) *OrderingTable {
	if size < 3 {
		panic(fmt.Sprintf("gpu: ordering table size %d < 3", size))
	}
	t := &OrderingTable{heads: make([]int32, size)}
	t.Clear()
	return t
}

func (t *OrderingTable) Size() int {
	return len(t.heads)
}

// Clear empties every bucket.
func (t *OrderingTable) Clear() {
	for i := range t.heads {
		t.heads[i] = empty
	}
}

func (t *OrderingTable) insert(pool []Prim, idx int32, bucket int) {
	if bucket < 0 || bucket >= len(t.heads) {
		panic(fmt.Sprintf("gpu: bucket %d out of [0,%d)", bucket, len(t.heads)))
	}
	pool[idx].next = t.heads[bucket]
	t.heads[bucket] = idx
}

// walk visits buckets from the highest (farthest) to 0, so nearer
// primitives are submitted later and end up on top. Within a bucket the
// most recently inserted primitive comes first.
func (t *OrderingTable) walk(pool []Prim, fn func(int, *Prim)) {
	for b := len(t.heads) - 1; b >= 0; b-- {
		for i := t.heads[b]; i != empty; i = pool[i].next {
			fn(b, &pool[i])
		}
	}
}

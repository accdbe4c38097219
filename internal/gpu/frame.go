package gpu

// Frame is one half of the double buffer: an ordering table and the
// primitive pool its lists point into.
type Frame struct {
	Parity     int
	Background Color

	ot    *OrderingTable
	prims []Prim
	n     int
}

func newFrame(parity, otSize, capacity int) *Frame {
	return &Frame{
		Parity: parity,
		ot:     NewOrderingTable(otSize),
		prims:  make([]Prim, capacity),
	}
}

func (f *Frame) reset() {
	f.ot.Clear()
	f.n = 0
}

// New takes the next primitive from the pool, or nil when the pool is spent.
func (f *Frame) New(kind Kind) *Prim {
	if f.n == len(f.prims) {
		return nil
	}
	p := &f.prims[f.n]
	*p = Prim{Kind: kind, index: int32(f.n)}
	f.n++
	return p
}

// Insert links p, which must come from f.New, into bucket.
func (f *Frame) Insert(p *Prim, bucket int) {
	f.ot.insert(f.prims, p.index, bucket)
}

// Walk calls fn for every inserted primitive in submission order.
func (f *Frame) Walk(fn func(*Prim)) {
	f.ot.walk(f.prims, func(_ int, p *Prim) { fn(p) })
}

// WalkBuckets is Walk with the bucket of each primitive.
func (f *Frame) WalkBuckets(fn func(bucket int, p *Prim)) {
	f.ot.walk(f.prims, fn)
}

func (f *Frame) OTSize() int {
	return f.ot.Size()
}

// Len returns the number of primitives taken from the pool this frame.
func (f *Frame) Len() int {
	return f.n
}

func (f *Frame) Cap() int {
	return len(f.prims)
}

// Buffers owns both frame halves. Nothing is shared between them.
type Buffers struct {
	frames [2]*Frame
}

// NewBuffers allocates two frames with otSize buckets and capacity primitives each.
func NewBuffers(otSize, capacity int) *Buffers {
	return &Buffers{frames: [2]*Frame{
		newFrame(0, otSize, capacity),
		newFrame(1, otSize, capacity),
	}}
}

// Begin clears and returns the half selected by parity.
func (b *Buffers) Begin(parity int) *Frame {
	f := b.frames[parity&1]
	f.reset()
	return f
}

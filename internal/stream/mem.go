package stream

// MemLoader serves blobs from memory. Completions are still deferred to Poll.
type MemLoader struct {
	files map[string][]byte
	done  []completion
}

func NewMemLoader() *MemLoader {
	return &MemLoader{files: make(map[string][]byte)}
}

// Put registers buf under name.
func (m *MemLoader) Put(name string, buf []byte) {
	m.files[Normalize(name)] = buf
}

func (m *MemLoader) RequestLoad(name string, onComplete func([]byte)) {
	m.done = append(m.done, completion{buf: m.files[Normalize(name)], cb: onComplete})
}

// Pending returns the number of completions waiting for Poll.
func (m *MemLoader) Pending() int {
	return len(m.done)
}

func (m *MemLoader) Poll() int {
	batch := m.done
	m.done = nil
	for _, c := range batch {
		c.cb(c.buf)
	}
	return len(batch)
}

// Sync polls until no completion is left.
func (m *MemLoader) Sync() {
	for m.Poll() > 0 {
	}
}

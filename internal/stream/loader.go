// Package stream delivers asset blobs to the frame loop. Requests return
// at once; completions run later, on the caller's goroutine, from Poll.
package stream

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
)

// ErrNotFound is reported when no asset matches a requested name.
var ErrNotFound = errors.New("stream: not found")

// Loader is the contract the scene consumes. onComplete receives the blob,
// or nil when the load failed; it is only ever called from Poll.
type Loader interface {
	RequestLoad(name string, onComplete func(buf []byte))
	Poll() int
}

type request struct {
	name string
	cb   func([]byte)
}

type completion struct {
	buf []byte
	cb  func([]byte)
}

// DirLoader reads assets from a directory tree on one background goroutine.
type DirLoader struct {
	idx    *Index
	logger *log.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []request
	done     []completion
	inflight int // requested, not yet delivered by Poll
	closed   bool
}

// NewDirLoader indexes dir and starts the reader. logger may be nil.
func NewDirLoader(dir string, logger *log.Logger) *DirLoader {
	l := &DirLoader{
		idx:    BuildIndex(dir),
		logger: logger,
	}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Index exposes the name index.
func (l *DirLoader) Index() *Index {
	return l.idx
}

func (l *DirLoader) run() {
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		r := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		buf, err := l.read(r.name)
		if err != nil {
			if l.logger != nil {
				l.logger.Printf("load %s: %v", r.name, err)
			}
			buf = nil
		}
		l.mu.Lock()
		l.done = append(l.done, completion{buf: buf, cb: r.cb})
		l.cond.Broadcast()
		l.mu.Unlock()
	}
}

func (l *DirLoader) read(name string) ([]byte, error) {
	path, ok := l.idx.ResolvePath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stream: read %s: %w", path, err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("stream: %s is empty", path)
	}
	return buf, nil
}

// RequestLoad queues name for reading. After Close it completes with nil.
func (l *DirLoader) RequestLoad(name string, onComplete func([]byte)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight++
	if l.closed {
		l.done = append(l.done, completion{cb: onComplete})
	} else {
		l.queue = append(l.queue, request{name: name, cb: onComplete})
	}
	l.cond.Broadcast()
}

// Poll runs the callbacks of every finished load and returns how many ran.
func (l *DirLoader) Poll() int {
	l.mu.Lock()
	batch := l.done
	l.done = nil
	l.inflight -= len(batch)
	l.mu.Unlock()
	for _, c := range batch {
		c.cb(c.buf)
	}
	return len(batch)
}

// Sync blocks until every request, including ones issued by callbacks, has
// completed and been delivered.
func (l *DirLoader) Sync() {
	for {
		l.mu.Lock()
		for l.inflight > 0 && len(l.done) == 0 {
			l.cond.Wait()
		}
		idle := l.inflight == 0
		l.mu.Unlock()
		if idle {
			return
		}
		l.Poll()
	}
}

// Close stops the reader once the queued requests are read. Their
// completions are still delivered by Poll.
func (l *DirLoader) Close() {
	l.mu.Lock()
	l.closed = true
	l.cond.Broadcast()
	l.mu.Unlock()
}

package frames

// Pool recycles frame storage for one pipeline stage. Get returns a frame
// that is ready to be overwritten by that stage's producer: a recycled
// buffer when the free list holds one with a matching stage tag, otherwise
// a fresh allocation.
//
// The pool owns buffer memory across iterations; the caller owns a handle
// only for the duration of one capture cycle and must not Put a frame back
// while a callback invocation still references it. A pool belongs to a
// single session's capture goroutine, so no locking is needed.
type Pool struct {
	stage Stage
	alloc func() Frame
	free  []Frame
}

// NewPool creates a pool for the given stage. alloc must return a fresh
// frame whose Kind matches the stage.
func NewPool(stage Stage, alloc func() Frame) *Pool {
	return &Pool{stage: stage, alloc: alloc}
}

// Get returns a writable frame for the pool's stage. Frames on the free
// list whose tag no longer matches the stage are dropped rather than
// reused; a fresh allocation takes their place.
func (p *Pool) Get() Frame {
	for n := len(p.free); n > 0; n = len(p.free) {
		f := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		if f.Kind() == p.stage {
			return f
		}
		debugf("[Pool] dropping recycled %s buffer from %s pool", f.Kind(), p.stage)
	}
	return p.alloc()
}

// Put returns a frame to the free list for reuse on a later iteration.
func (p *Pool) Put(f Frame) {
	if f == nil {
		return
	}
	p.free = append(p.free, f)
}

// Clear releases every pooled buffer.
func (p *Pool) Clear() {
	p.free = nil
}

// Len returns the number of buffers currently on the free list.
func (p *Pool) Len() int { return len(p.free) }

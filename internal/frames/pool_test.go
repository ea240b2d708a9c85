package frames

import "testing"

func TestPoolRecyclesMatchingTag(t *testing.T) {
	allocs := 0
	p := NewPool(StageDepth, func() Frame {
		allocs++
		return &DepthFrame{}
	})

	f1 := p.Get()
	if allocs != 1 {
		t.Fatalf("first Get: %d allocations, want 1", allocs)
	}
	p.Put(f1)

	f2 := p.Get()
	if allocs != 1 {
		t.Errorf("recycled Get allocated: %d allocations, want 1", allocs)
	}
	if f1 != f2 {
		t.Error("Get should return the recycled buffer")
	}
}

func TestPoolTagMismatchForcesFreshAllocation(t *testing.T) {
	allocs := 0
	p := NewPool(StageDepth, func() Frame {
		allocs++
		return &DepthFrame{}
	})

	// A stale buffer of another stage's type ends up on the free list.
	p.Put(&RawFrame{})

	f := p.Get()
	if allocs != 1 {
		t.Errorf("Get with mismatched free buffer: %d allocations, want 1", allocs)
	}
	if f.Kind() != StageDepth {
		t.Errorf("Get returned %v frame, want %v", f.Kind(), StageDepth)
	}
	if p.Len() != 0 {
		t.Errorf("mismatched buffer should have been dropped, free list has %d", p.Len())
	}
}

func TestPoolPutNilAndClear(t *testing.T) {
	p := NewPool(StagePointCloud, func() Frame { return &PointCloudFrame{} })

	p.Put(nil)
	if p.Len() != 0 {
		t.Errorf("Put(nil) grew the free list to %d", p.Len())
	}

	p.Put(&PointCloudFrame{})
	p.Put(&PointCloudFrame{})
	if p.Len() != 2 {
		t.Fatalf("free list = %d, want 2", p.Len())
	}
	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Clear left %d buffers", p.Len())
	}
}

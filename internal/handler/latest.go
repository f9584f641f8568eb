package handler

import "sync"

// resultSlot keeps only the result of the most recently started request for
// one view. begin hands out a generation token; commit stores the value only
// if no newer request has begun since, so a slow response from a superseded
// request can never overwrite a newer one, regardless of resolution order.
type resultSlot struct {
	mu  sync.Mutex
	gen uint64
	val any
	set bool
}

func (s *resultSlot) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

func (s *resultSlot) commit(gen uint64, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.val = v
	s.set = true
	return true
}

func (s *resultSlot) value() (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.set
}

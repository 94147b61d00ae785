package store

// Subscribe returns a channel that receives the new upid after every
// mutation. Notifications coalesce: a slow reader only sees the newest
// value. The channel is closed by cancel or by Close.
func (s *Store) Subscribe() (<-chan uint64, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan uint64, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}

// notify replaces any pending value in ch with v. Senders hold the store
// lock, so there is never more than one concurrent sender.
func notify(ch chan uint64, v uint64) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

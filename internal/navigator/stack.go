package navigator

// frame is one drill-down level: an entity frame has action < 0.
type frame struct {
	topic  int
	action int
}

type frameStack struct {
	items []frame
}

func (s *frameStack) Push(f frame) {
	s.items = append(s.items, f)
}

func (s *frameStack) Pop() (frame, bool) {
	if len(s.items) == 0 {
		return frame{}, false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

func (s frameStack) Top() (frame, bool) {
	if len(s.items) == 0 {
		return frame{}, false
	}
	return s.items[len(s.items)-1], true
}

func (s frameStack) Len() int {
	return len(s.items)
}

func (s *frameStack) Reset() {
	s.items = s.items[:0]
}

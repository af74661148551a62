package collision

import "github.com/vovakirdan/tui-tanks/internal/scene"

// System is the set of colliders participating in detection.
// Participants keep registration order.
type System struct {
	participants []scene.Collider
	index        map[scene.Collider]int
}

// NewSystem creates an empty participant set.
func NewSystem() *System {
	return &System{index: make(map[scene.Collider]int)}
}

// Register adds c. The first registration calls Init on it; registering an
// already present collider does nothing.
func (s *System) Register(c scene.Collider) {
	if c == nil {
		return
	}
	if _, ok := s.index[c]; ok {
		return
	}
	c.Init()
	s.index[c] = len(s.participants)
	s.participants = append(s.participants, c)
}

// Unregister removes c. Unknown colliders are ignored.
func (s *System) Unregister(c scene.Collider) {
	i, ok := s.index[c]
	if !ok {
		return
	}
	delete(s.index, c)

	next := make([]scene.Collider, 0, len(s.participants)-1)
	next = append(next, s.participants[:i]...)
	next = append(next, s.participants[i+1:]...)
	s.participants = next
	for j := i; j < len(next); j++ {
		s.index[next[j]] = j
	}
}

// Registered returns true if c is a participant.
func (s *System) Registered(c scene.Collider) bool {
	_, ok := s.index[c]
	return ok
}

// Len returns the number of participants.
func (s *System) Len() int {
	return len(s.participants)
}

// Participants returns the colliders in registration order. The returned
// slice is not modified by later Register/Unregister calls.
func (s *System) Participants() []scene.Collider {
	return s.participants
}

// UpdateAll calls Update on every participant in registration order.
func (s *System) UpdateAll() {
	for _, c := range s.participants {
		c.Update()
	}
}

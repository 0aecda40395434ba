package ecs

// sparseSet stores one component kind keyed by entity id. Values are kept
// densely packed in insertion order; removal swaps the last element in.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func (s *sparseSet) has(e Entity) bool {
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx] == e
}

func (s *sparseSet) get(e Entity) (any, bool) {
	if !s.has(e) {
		return nil, false
	}
	return s.values[s.sparse[e.id()-1]], true
}

func (s *sparseSet) set(e Entity, v any) {
	id := int(e.id())
	if id <= 0 {
		return
	}
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.dense) && s.dense[idx].id() == e.id() {
		// same slot, possibly a stale generation
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet) remove(e Entity) bool {
	if !s.has(e) {
		return false
	}
	idx := s.sparse[e.id()-1]
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet) len() int {
	return len(s.dense)
}

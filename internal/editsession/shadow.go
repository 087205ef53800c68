package editsession

// patchFor is implemented by domain update types that can overlay a record.
type patchFor[T any] interface {
	Apply(*T)
}

type addition[T any] struct {
	key   string
	value T
}

// shadow holds one family's uncommitted deltas against its persisted snapshot.
// Additions, deletions and updates keep insertion order so views and operation
// lists are stable.
type shadow[T any, U patchFor[T]] struct {
	additions []addition[T]
	deletions []string
	updates   map[string]U
	updated   []string
}

func newShadow[T any, U patchFor[T]]() *shadow[T, U] {
	return &shadow[T, U]{updates: map[string]U{}}
}

func (s *shadow[T, U]) empty() bool {
	return len(s.additions) == 0 && len(s.deletions) == 0 && len(s.updates) == 0
}

func (s *shadow[T, U]) add(key string, value T) {
	s.additions = append(s.additions, addition[T]{key: key, value: value})
}

func (s *shadow[T, U]) additionIndex(key string) int {
	for i, a := range s.additions {
		if a.key == key {
			return i
		}
	}
	return -1
}

func (s *shadow[T, U]) isDeleted(key string) bool {
	for _, k := range s.deletions {
		if k == key {
			return true
		}
	}
	return false
}

// dropAddition forgets a pending addition. It reports whether key was pending.
func (s *shadow[T, U]) dropAddition(key string) bool {
	i := s.additionIndex(key)
	if i < 0 {
		return false
	}
	s.additions = append(s.additions[:i:i], s.additions[i+1:]...)
	return true
}

// markDeleted schedules a persisted record for removal and discards its update.
func (s *shadow[T, U]) markDeleted(key string) {
	s.dropUpdate(key)
	if !s.isDeleted(key) {
		s.deletions = append(s.deletions, key)
	}
}

func (s *shadow[T, U]) undelete(key string) {
	for i, k := range s.deletions {
		if k == key {
			s.deletions = append(s.deletions[:i:i], s.deletions[i+1:]...)
			return
		}
	}
}

// editAddition rewrites a pending addition in place.
func (s *shadow[T, U]) editAddition(key string, edit func(*T)) bool {
	i := s.additionIndex(key)
	if i < 0 {
		return false
	}
	edit(&s.additions[i].value)
	return true
}

// editUpdate merges further changes into the update for a persisted record.
func (s *shadow[T, U]) editUpdate(key string, edit func(*U)) {
	u, ok := s.updates[key]
	if !ok {
		s.updated = append(s.updated, key)
	}
	edit(&u)
	s.updates[key] = u
}

func (s *shadow[T, U]) dropUpdate(key string) {
	if _, ok := s.updates[key]; !ok {
		return
	}
	delete(s.updates, key)
	for i, k := range s.updated {
		if k == key {
			s.updated = append(s.updated[:i:i], s.updated[i+1:]...)
			return
		}
	}
}

func (s *shadow[T, U]) update(key string) (U, bool) {
	u, ok := s.updates[key]
	return u, ok
}

// overlay returns value with any pending update for key applied.
func (s *shadow[T, U]) overlay(key string, value T) (T, bool) {
	u, ok := s.updates[key]
	if ok {
		u.Apply(&value)
	}
	return value, ok
}

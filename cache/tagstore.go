package cache

import "sync"

type entry struct {
	value any
	tags  []string
}

// TagStore is an in-process memo for catalog reads. Every entry is filed
// under one or more tags; invalidating a tag drops every entry filed under
// it. Readers must tolerate misses at any time.
type TagStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewTagStore(inv *Invalidator) *TagStore {
	s := &TagStore{entries: make(map[string]entry)}
	inv.Subscribe(s.drop)
	return s
}

func (s *TagStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (s *TagStore) Set(key string, value any, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, tags: tags}
}

func (s *TagStore) drop(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		for _, t := range e.tags {
			if t == tag {
				delete(s.entries, key)
				break
			}
		}
	}
}

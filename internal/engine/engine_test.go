package engine

import (
	"fmt"
	"time"
)

// fakeStore is an in-memory storage adapter for tests
type fakeStore struct {
	data   map[string][]byte
	saves  int
	purges int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Load(key string) []byte {
	return s.data[key]
}

func (s *fakeStore) Save(key string, data []byte) {
	s.saves++
	s.data[key] = append([]byte(nil), data...)
}

func (s *fakeStore) Purge(key string) {
	s.purges++
	delete(s.data, key)
}

// fakeClock provides a controllable time source
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// newTestEngine returns a loaded engine with deterministic ids and clock
func newTestEngine() (*Engine, *fakeStore, *fakeClock) {
	store := newFakeStore()
	clock := newFakeClock()

	e := New(store)
	e.now = clock.Now
	n := 0
	e.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	e.Load()
	return e, store, clock
}

func runningCount(e *Engine) int {
	n := 0
	for _, t := range e.Tasks() {
		if t.Running() {
			n++
		}
	}
	return n
}

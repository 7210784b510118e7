package sink

import (
	"context"
	"sort"
	"sync"
)

// Memory keeps collections in process. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	sets  map[string][]string
	calls int
}

func (m *Memory) ReplaceSet(_ context.Context, name string, items []string) error {
	cp := append([]string(nil), items...)
	sort.Strings(cp)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets == nil {
		m.sets = make(map[string][]string)
	}
	m.sets[name] = cp
	m.calls++
	return nil
}

// Members returns the sorted members of name and whether it was ever set.
func (m *Memory) Members(name string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.sets[name]
	return append([]string(nil), v...), ok
}

// Calls returns how many replacements were made.
func (m *Memory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

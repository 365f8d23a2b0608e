package datagrid

import (
	"slices"
	"sync"
)

// KeySet is a set of row keys.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s KeySet) Add(key string) { s[key] = struct{}{} }

func (s KeySet) Remove(key string) { delete(s, key) }

func (s KeySet) Len() int { return len(s) }

// Keys returns the keys in sorted order.
func (s KeySet) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (s KeySet) Clone() KeySet {
	out := make(KeySet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// SelectionStore owns the raw selected key set. Hosts that control
// selection themselves supply their own implementation; otherwise the grid
// keeps the set internally.
type SelectionStore interface {
	SelectedKeys() KeySet
	SetSelectedKeys(keys KeySet)
}

type memorySelection struct {
	keys KeySet
}

func (m *memorySelection) SelectedKeys() KeySet { return m.keys }

func (m *memorySelection) SetSelectedKeys(keys KeySet) { m.keys = keys }

// PageStore is durable client storage for pagination state.
type PageStore interface {
	Load(key string) (string, bool)
	Save(key, value string) error
}

// MemoryStore is a PageStore kept in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

const storagePrefix = "customDataGrid_"

// PageStorageKey is the storage key of the persisted current page.
func PageStorageKey(namespace string) string {
	return storagePrefix + storageNamespace(namespace) + "_page"
}

// PageSizeStorageKey is the storage key of the persisted page size.
func PageSizeStorageKey(namespace string) string {
	return storagePrefix + storageNamespace(namespace) + "_pageSize"
}

func storageNamespace(ns string) string {
	if ns == "" {
		return "default"
	}
	return ns
}

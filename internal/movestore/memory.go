package movestore

import (
	"context"
	"strings"
	"sync"
)

// memstore keeps documents in process memory. Used when no backend is
// configured; contents are lost on restart.
type memstore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryStore() Store {
	return &memstore{docs: make(map[string]Document)}
}

func (m *memstore) Create(_ context.Context, text string) (*Document, error) {
	doc := Document{ID: newID(), Text: text, UpdatedAt: now()}

	m.mu.Lock()
	m.docs[doc.ID] = doc
	m.mu.Unlock()

	return &doc, nil
}

func (m *memstore) Load(_ context.Context, id string) (*Document, error) {
	m.mu.RLock()
	doc, ok := m.docs[strings.TrimSpace(id)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (m *memstore) Save(_ context.Context, id, text string) error {
	id = strings.TrimSpace(id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	m.docs[id] = Document{ID: id, Text: text, UpdatedAt: now()}
	return nil
}

func (m *memstore) Delete(_ context.Context, id string) error {
	id = strings.TrimSpace(id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

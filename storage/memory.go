package storage

import (
	"context"
	"sync"
)

type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]map[string]string{}}
}

func (m *Memory) Get(_ context.Context, session, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[session][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, session, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kv, ok := m.data[session]
	if !ok {
		kv = map[string]string{}
		m.data[session] = kv
	}
	kv[key] = value
	return nil
}

func (m *Memory) Clear(_ context.Context, session string) error {
	m.mu.Lock()
	delete(m.data, session)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(context.Context) error  { return nil }
func (m *Memory) Close(context.Context) error { return nil }

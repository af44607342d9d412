package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/rushteam/muserec/core"
)

// MemoryStore 是内存实现的 HashStore，进程重启后数据丢失。
// 写入与读出的 []byte 都会拷贝，调用方修改返回值不影响存储内容。
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	hashes map[string]map[string][]byte
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		hashes: make(map[string]map[string][]byte),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return core.ErrStoreNotSupported
	}
	m.data[key] = slices.Clone(value)
	return nil
}

// Delete 同时删除同名的普通 key 与 Hash，key 不存在不报错（与 Redis DEL 一致）。
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.hashes, key)
	return nil
}

func (m *MemoryStore) HSet(_ context.Context, key string, fields map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return core.ErrStoreNotSupported
	}
	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string][]byte, len(fields))
		m.hashes[key] = h
	}
	for f, v := range fields {
		h[f] = slices.Clone(v)
	}
	return nil
}

// HGetAll 返回 Hash 的全部字段；key 不存在时返回空 map（与 Redis HGETALL 一致）。
func (m *MemoryStore) HGetAll(_ context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.hashes[key]
	out := make(map[string][]byte, len(h))
	for f, v := range h {
		out[f] = slices.Clone(v)
	}
	return out, nil
}

// Keys 按字典序返回所有 key（普通 key 与 Hash），用于调试。
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := slices.Collect(maps.Keys(m.data))
	for k := range m.hashes {
		if _, dup := m.data[k]; !dup {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ core.HashStore = (*MemoryStore)(nil)

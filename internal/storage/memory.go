package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryCookieJar keeps cookies in process memory.
type MemoryCookieJar struct {
	mu      sync.Mutex
	cookies map[string]Cookie
	now     func() time.Time
}

func NewMemoryCookieJar() *MemoryCookieJar {
	return &MemoryCookieJar{cookies: make(map[string]Cookie), now: time.Now}
}

func (j *MemoryCookieJar) Get(_ context.Context, name string) (string, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.cookies[name]
	if !ok || c.Expired(j.now()) {
		return "", false, nil
	}
	return c.Value, true, nil
}

func (j *MemoryCookieJar) Set(_ context.Context, c Cookie) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies[c.Name] = c
	return nil
}

func (j *MemoryCookieJar) Delete(_ context.Context, name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.cookies, name)
	return nil
}

// Cookie returns the raw stored cookie, expired or not.
func (j *MemoryCookieJar) Cookie(name string) (Cookie, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	c, ok := j.cookies[name]
	return c, ok
}

type MemoryLocalStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{values: make(map[string]string)}
}

func (s *MemoryLocalStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryLocalStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryLocalStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

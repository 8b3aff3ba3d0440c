package state

import (
	"context"
	"fmt"
	"sync"
)

// Locker serializes work on a key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func CartKey(userID, productID uint) string {
	return fmt.Sprintf("cart:%d:%d", userID, productID)
}

func PointsKey(userID uint) string {
	return fmt.Sprintf("user:%d:points", userID)
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// Manager is an in-process Locker. Entries are dropped once no caller
// holds or waits for them.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewManager creates a new in-process lock manager
func NewManager() *Manager {
	return &Manager{locks: make(map[string]*keyLock)}
}

func (m *Manager) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			m.release(key, l)
		})
	}, nil
}

func (m *Manager) release(key string, l *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
}

// held reports how many keys are tracked; used by tests.
func (m *Manager) held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

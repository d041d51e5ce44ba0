package storage

import (
	"sync"
	"time"
)

type MemoryStorage struct {
	sessions map[int64]Session
	mutex    sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions: make(map[int64]Session),
	}
}

func (m *MemoryStorage) SetStyle(userId int64, styleKey string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessions[userId] = Session{
		UserId:    userId,
		StyleKey:  styleKey,
		UpdatedAt: time.Now(),
	}
	return nil
}

func (m *MemoryStorage) GetStyle(userId int64) (string, bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	session, ok := m.sessions[userId]
	if !ok || session.StyleKey == "" {
		return "", false, nil
	}
	return session.StyleKey, true, nil
}

func (m *MemoryStorage) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

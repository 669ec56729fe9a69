package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySnapshots is the in-process implementation of Snapshots, used in
// tests and for running without a database.
type MemorySnapshots struct {
	mu    sync.Mutex
	blobs map[Key][]byte

	// FailSave, when set, is returned from every Save. Lets tests exercise
	// the write-failure path of the entity store.
	FailSave error
}

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{blobs: make(map[Key][]byte)}
}

func (s *MemorySnapshots) Load(_ context.Context, key Key) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, true, nil
}

func (s *MemorySnapshots) Save(_ context.Context, key Key, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave != nil {
		return s.FailSave
	}
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[key] = stored
	return nil
}

// MemorySessions is the test double for Sessions.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]bool
	themes   map[uuid.UUID]string
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[uuid.UUID]bool),
		themes:   make(map[uuid.UUID]string),
	}
}

func (s *MemorySessions) SetCurrent(_ context.Context, userID uuid.UUID, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = true
	return nil
}

func (s *MemorySessions) IsCurrent(_ context.Context, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID], nil
}

func (s *MemorySessions) Clear(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *MemorySessions) SetTheme(_ context.Context, userID uuid.UUID, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[userID] = theme
	return nil
}

func (s *MemorySessions) Theme(_ context.Context, userID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.themes[userID]; ok {
		return t, nil
	}
	return "light", nil
}

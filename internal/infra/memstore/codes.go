package memstore

import (
	"context"
	"sync"
	"time"

	"court-reservations/internal/domain/verification"

	"github.com/google/uuid"
)

// CodeStore is a verification.Store held in a map.
type CodeStore struct {
	mu    sync.Mutex
	codes map[uuid.UUID]*verification.Code
}

func NewCodeStore() *CodeStore {
	return &CodeStore{codes: make(map[uuid.UUID]*verification.Code)}
}

func (s *CodeStore) Get(_ context.Context, subjectID uuid.UUID) (*verification.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[subjectID]
	if !ok {
		return nil, verification.ErrNoPendingSubject
	}
	return c, nil
}

func (s *CodeStore) Put(_ context.Context, code *verification.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.SubjectID()] = code
	return nil
}

func (s *CodeStore) Consume(_ context.Context, subjectID uuid.UUID, issuedAt, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[subjectID]
	if !ok || !c.IssuedAt().Equal(issuedAt) {
		return false, nil
	}
	delete(s.codes, subjectID)
	return true, nil
}

func (s *CodeStore) Delete(_ context.Context, subjectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, subjectID)
	return nil
}

// Package memstore is an in-process UnitOfWork used by command tests and
// local runs without a database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/infra"
	"court-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

// Store keeps committed state behind mu. Transactions stage writes and hold
// key locks until they finish, mirroring advisory and row locks in Postgres.
type Store struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*reservation.Reservation
	courts       map[uuid.UUID]shared.CourtSnapshot
	identities   map[uuid.UUID]shared.IdentitySnapshot

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New() *Store {
	return &Store{
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		courts:       make(map[uuid.UUID]shared.CourtSnapshot),
		identities:   make(map[uuid.UUID]shared.IdentitySnapshot),
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *Store) AddCourt(c shared.CourtSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courts[c.ID] = c
}

func (s *Store) AddIdentity(i shared.IdentitySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[i.ID] = i
}

func (s *Store) AddReservation(res *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[res.ID()] = res
}

// Reservations returns committed reservations ordered by date and start.
func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Date().Compare(out[j].Date()); c != 0 {
			return c < 0
		}
		return out[i].TimeSlot().Start() < out[j].TimeSlot().Start()
	})
	return out
}

func (s *Store) Identity(id uuid.UUID) (shared.IdentitySnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.identities[id]
	return i, ok
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &memTx{
		store:    s,
		staged:   make(map[uuid.UUID]*reservation.Reservation),
		held:     make(map[string]*sync.Mutex),
		activate: make(map[uuid.UUID]time.Time),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.committed = true
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{store: s}
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

func (s *Store) commit(tx *memTx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range tx.staged {
		s.reservations[id] = r
	}
	for id := range tx.activate {
		if i, ok := s.identities[id]; ok {
			i.IsActive = true
			s.identities[id] = i
		}
	}
}

type reads struct {
	store *Store
	tx    *memTx
}

func (r *reads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if r.tx != nil {
		r.tx.lock("reservation:" + id.String())
		if res, ok := r.tx.staged[id]; ok {
			return res, nil
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.NotFound("reservation not found")
	}
	return res, nil
}

func (r *reads) CourtByID(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.courts[id]
	if !ok {
		return nil, infra.NotFound("court not found")
	}
	return &c, nil
}

func (r *reads) IdentityByID(_ context.Context, id uuid.UUID) (*shared.IdentitySnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i, ok := r.store.identities[id]
	if !ok {
		return nil, infra.NotFound("identity not found")
	}
	return &i, nil
}

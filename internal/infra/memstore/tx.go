package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/infra"
	"court-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	store    *Store
	staged   map[uuid.UUID]*reservation.Reservation
	activate map[uuid.UUID]time.Time
	held     map[string]*sync.Mutex
	order    []string

	committed bool
}

func (t *memTx) lock(key string) {
	if _, ok := t.held[key]; ok {
		return
	}
	m := t.store.keyLock(key)
	m.Lock()
	t.held[key] = m
	t.order = append(t.order, key)
}

// release publishes staged writes before unlocking, so the next holder of a
// key sees them.
func (t *memTx) release() {
	if t.committed {
		t.store.commit(t)
	}
	for i := len(t.order) - 1; i >= 0; i-- {
		t.held[t.order[i]].Unlock()
	}
}

func (t *memTx) LockCourtDay(ctx context.Context, courtID uuid.UUID, date reservation.Date) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.lock(fmt.Sprintf("court-day:%s:%s", courtID, date))
	return nil
}

func (t *memTx) Calendar() reservation.SlotCalendar { return t }

func (t *memTx) FindConflicts(_ context.Context, courtID uuid.UUID, date reservation.Date, slot reservation.TimeSlot, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	t.store.mu.Lock()
	entries := make([]*reservation.Reservation, 0, len(t.store.reservations)+len(t.staged))
	for id, r := range t.store.reservations {
		if _, overridden := t.staged[id]; !overridden {
			entries = append(entries, r)
		}
	}
	t.store.mu.Unlock()
	for _, r := range t.staged {
		entries = append(entries, r)
	}
	return reservation.Conflicts(entries, courtID, date, slot, excludeID), nil
}

func (t *memTx) Reservations() shared.ReservationRepository { return (*txReservations)(t) }
func (t *memTx) Identities() shared.IdentityRepository      { return (*txIdentities)(t) }
func (t *memTx) Reads() shared.CommandReads                 { return &reads{store: t.store, tx: t} }

type txReservations memTx

func (r *txReservations) Create(_ context.Context, res *reservation.Reservation) error {
	t := (*memTx)(r)
	t.store.mu.Lock()
	_, exists := t.store.reservations[res.ID()]
	t.store.mu.Unlock()
	if _, staged := t.staged[res.ID()]; exists || staged {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "reservation already exists", nil)
	}
	t.staged[res.ID()] = res
	return nil
}

func (r *txReservations) UpdateStatus(ctx context.Context, res *reservation.Reservation) error {
	t := (*memTx)(r)
	if _, ok := t.staged[res.ID()]; !ok {
		if _, err := (&reads{store: t.store}).ReservationByID(ctx, res.ID()); err != nil {
			return err
		}
	}
	t.staged[res.ID()] = res
	return nil
}

type txIdentities memTx

func (r *txIdentities) Activate(ctx context.Context, id uuid.UUID, at time.Time) error {
	t := (*memTx)(r)
	if _, err := (&reads{store: t.store}).IdentityByID(ctx, id); err != nil {
		return err
	}
	t.activate[id] = at
	return nil
}

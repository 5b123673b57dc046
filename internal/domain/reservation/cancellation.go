package reservation

import "time"

const DefaultCancelCutoff = 2 * time.Hour

type CancellationPolicy struct {
	loc    *time.Location
	cutoff time.Duration
}

func NewCancellationPolicy(loc *time.Location, cutoff time.Duration) *CancellationPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return &CancellationPolicy{loc: loc, cutoff: cutoff}
}

// CanCancel applies the cancellation rules without changing anything.
// Only same-day reservations are subject to the cutoff; reservations on a
// past date pass unconditionally.
func (p *CancellationPolicy) CanCancel(res *Reservation, now time.Time) error {
	if !res.IsConfirmed() {
		return ErrAlreadyCancelled
	}
	local := now.In(p.loc)
	if res.date.Equal(DateOf(local)) && res.StartAt(p.loc).Sub(local) < p.cutoff {
		return ErrTooLateToCancel
	}
	return nil
}

// Cancel returns a cancelled copy of res stamped with now.
func (p *CancellationPolicy) Cancel(res *Reservation, now time.Time) (*Reservation, error) {
	if err := p.CanCancel(res, now); err != nil {
		return nil, err
	}
	return res.withStatus(StatusCancelled, now), nil
}

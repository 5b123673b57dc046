package notify

import (
	"encoding/json"

	"court-reservations/internal/pkg/errs"
)

// Routing keys on the events exchange.
const (
	RKReservationCreated   = "reservation.created"
	RKReservationCancelled = "reservation.cancelled"
	RKCodeIssued           = "verification.code_issued"
	RKCodeResent           = "verification.code_resent"
)

var RoutingKeys = []string{
	RKReservationCreated,
	RKReservationCancelled,
	RKCodeIssued,
	RKCodeResent,
}

func decode[T any](body []byte) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, errs.Wrap(err, "decode event")
	}
	return v, nil
}

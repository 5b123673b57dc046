package request

import (
	"court-reservations/internal/domain/reservation"
	"court-reservations/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CourtID   uuid.UUID `json:"court_id" binding:"required"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime string    `json:"start_time" binding:"required,starttime"`
	EndTime   string    `json:"end_time" binding:"required,endtime"`
}

func (r *CreateReservationRequest) ToInput(userID uuid.UUID) (commands.CreateReservationInput, error) {
	date, err := reservation.ParseDate(r.Date)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	start, err := reservation.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	end, err := reservation.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	return commands.CreateReservationInput{
		UserID:  userID,
		CourtID: r.CourtID,
		Date:    date,
		Slot:    slot,
	}, nil
}

type ListReservationsQuery struct {
	Scope string `form:"scope" binding:"omitempty,oneof=upcoming past cancelled"`
}

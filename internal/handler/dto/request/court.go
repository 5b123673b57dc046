package request

import "github.com/google/uuid"

type ListCourtsQuery struct {
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
}

func (q *ListCourtsQuery) LocationUUID() *uuid.UUID {
	if q.LocationID == "" {
		return nil
	}
	id, err := uuid.Parse(q.LocationID)
	if err != nil {
		return nil
	}
	return &id
}

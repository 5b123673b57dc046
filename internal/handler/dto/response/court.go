package response

import (
	"court-reservations/internal/pkg/errs"
	"court-reservations/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type LocationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zip_code"`
	PhoneNumber string  `json:"phone_number"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type CourtResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func FromLocationViews(views []*queries.LocationView) ([]*LocationResponse, error) {
	out := make([]*LocationResponse, 0, len(views))
	if len(views) == 0 {
		return out, nil
	}
	if err := copier.CopyWithOption(&out, views, copier.Option{Converters: uuidConverters}); err != nil {
		return nil, errs.Wrap(err, "map location views")
	}
	return out, nil
}

func FromCourtViews(views []*queries.CourtView) ([]*CourtResponse, error) {
	out := make([]*CourtResponse, 0, len(views))
	if len(views) == 0 {
		return out, nil
	}
	if err := copier.CopyWithOption(&out, views, copier.Option{Converters: uuidConverters}); err != nil {
		return nil, errs.Wrap(err, "map court views")
	}
	return out, nil
}

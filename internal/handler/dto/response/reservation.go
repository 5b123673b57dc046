package response

import (
	"court-reservations/internal/pkg/errs"
	"court-reservations/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	CourtID      string `json:"court_id"`
	CourtName    string `json:"court_name"`
	LocationName string `json:"location_name"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

// uuid and time fields are converted by hand; copier handles the rest by name.
func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	res := &ReservationResponse{}
	if err := copier.CopyWithOption(res, v, copier.Option{Converters: uuidConverters}); err != nil {
		return nil, errs.Wrap(err, "map reservation view")
	}
	res.CreatedAt = v.CreatedAt.Unix()
	res.UpdatedAt = v.UpdatedAt.Unix()
	return res, nil
}

func FromReservationViews(views []*queries.ReservationView) ([]*ReservationResponse, error) {
	out := make([]*ReservationResponse, len(views))
	for i, v := range views {
		res, err := FromReservationView(v)
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}

type CreateReservationResponse struct {
	ID string `json:"id"`
}

type CancelReservationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

var uuidConverters = []copier.TypeConverter{
	{
		SrcType: uuid.UUID{},
		DstType: copier.String,
		Fn: func(src any) (any, error) {
			return src.(uuid.UUID).String(), nil
		},
	},
}

package response

import (
	"time"

	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	ItemName   string    `json:"item_name"`
	BookerID   uuid.UUID `json:"booker_id"`
	BookerName string    `json:"booker_name"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:         v.ID,
		ItemID:     v.ItemID,
		ItemName:   v.ItemName,
		BookerID:   v.BookerID,
		BookerName: v.BookerName,
		Start:      v.Start,
		End:        v.End,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func FromBookingViews(vs []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(vs))
	for i, v := range vs {
		result[i] = FromBookingView(v)
	}
	return result
}

// BookingRefResponse is the short booking form embedded in item details.
type BookingRefResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func fromBookingRef(v *queries.BookingRef) *BookingRefResponse {
	if v == nil {
		return nil
	}
	return &BookingRefResponse{
		ID:       v.ID,
		BookerID: v.BookerID,
		Start:    v.Start,
		End:      v.End,
	}
}

package response

import (
	"time"

	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingRefResponse `json:"last_booking,omitempty"`
	NextBooking *BookingRefResponse `json:"next_booking,omitempty"`
	Comments    []*CommentResponse  `json:"comments"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromItemDetailsView(v *queries.ItemDetailsView) *ItemDetailsResponse {
	return &ItemDetailsResponse{
		ItemResponse: *FromItemView(&v.ItemView),
		LastBooking:  fromBookingRef(v.LastBooking),
		NextBooking:  fromBookingRef(v.NextBooking),
		Comments:     FromCommentViews(v.Comments),
	}
}

func FromItemDetailsViews(vs []*queries.ItemDetailsView) []*ItemDetailsResponse {
	result := make([]*ItemDetailsResponse, len(vs))
	for i, v := range vs {
		result[i] = FromItemDetailsView(v)
	}
	return result
}

package response

import (
	"time"

	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromCommentView(v *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         v.ID,
		ItemID:     v.ItemID,
		AuthorID:   v.AuthorID,
		AuthorName: v.AuthorName,
		Text:       v.Text,
		CreatedAt:  v.CreatedAt,
	}
}

func FromCommentViews(vs []*queries.CommentView) []*CommentResponse {
	result := make([]*CommentResponse, len(vs))
	for i, v := range vs {
		result[i] = FromCommentView(v)
	}
	return result
}

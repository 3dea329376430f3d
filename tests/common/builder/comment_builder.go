//go:build unit || e2e

package builder

import (
	"time"

	"gearshare/internal/domain/comment"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentBuilder struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	AuthorID   uuid.UUID
	AuthorName string
	Text       string
}

func NewCommentBuilder() *CommentBuilder {
	return &CommentBuilder{
		ID:         uuid.New(),
		ItemID:     uuid.New(),
		AuthorID:   uuid.New(),
		AuthorName: "Test Booker",
		Text:       "Worked great, easy pickup.",
	}
}

func (c *CommentBuilder) With(mutate func(*CommentBuilder)) *CommentBuilder {
	mutate(c)
	return c
}

func (c *CommentBuilder) BuildDomain() (*comment.Comment, error) {
	return comment.NewComment(c.ItemID, c.AuthorID, c.Text)
}

func (c *CommentBuilder) BuildView() *queries.CommentView {
	return &queries.CommentView{
		ID:         c.ID,
		ItemID:     c.ItemID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  time.Now(),
	}
}

func (c *CommentBuilder) WithItemID(itemID uuid.UUID) *CommentBuilder {
	c.ItemID = itemID
	return c
}

func (c *CommentBuilder) WithAuthorID(authorID uuid.UUID) *CommentBuilder {
	c.AuthorID = authorID
	return c
}

func (c *CommentBuilder) WithText(text string) *CommentBuilder {
	c.Text = text
	return c
}

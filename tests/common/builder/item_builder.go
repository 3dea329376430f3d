//go:build unit || e2e

package builder

import (
	"time"

	"gearshare/internal/domain/item"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Cordless Drill",
		Description: "18V cordless drill with two batteries",
		Available:   true,
	}
}

func (i *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(i)
	return i
}

func (i *ItemBuilder) BuildDomain() (*item.Item, error) {
	return item.NewItem(i.OwnerID, i.Name, i.Description, i.Available)
}

func (i *ItemBuilder) BuildView() *queries.ItemView {
	now := time.Now()
	return &queries.ItemView{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (i *ItemBuilder) BuildDetailsView() *queries.ItemDetailsView {
	return &queries.ItemDetailsView{
		ItemView: *i.BuildView(),
		Comments: []*queries.CommentView{},
	}
}

func (i *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	return reqdto.CreateItemRequest{
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
	}
}

func (i *ItemBuilder) WithOwnerID(ownerID uuid.UUID) *ItemBuilder {
	i.OwnerID = ownerID
	return i
}

func (i *ItemBuilder) WithName(name string) *ItemBuilder {
	i.Name = name
	return i
}

func (i *ItemBuilder) WithDescription(description string) *ItemBuilder {
	i.Description = description
	return i
}

func (i *ItemBuilder) AsUnavailable() *ItemBuilder {
	i.Available = false
	return i
}

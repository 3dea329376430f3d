package item

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyItemName          = errors.New("item name cannot be empty")
	ErrItemNameTooLong        = errors.New("item name is too long (max 255 characters)")
	ErrItemDescriptionTooLong = errors.New("item description is too long (max 2000 characters)")
)

const (
	MaxItemNameLength        = 255
	MaxItemDescriptionLength = 2000
)

type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewItem(ownerID uuid.UUID, name, description string, available bool) (*Item, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(description) > MaxItemDescriptionLength {
		return nil, ErrItemDescriptionTooLong
	}

	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
	}, nil
}

func ReconstructItem(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	i.name = name
	return nil
}

func (i *Item) Describe(description string) error {
	if len(description) > MaxItemDescriptionLength {
		return ErrItemDescriptionTooLong
	}
	i.description = description
	return nil
}

func (i *Item) SetAvailable(available bool) {
	i.available = available
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyItemName
	}
	if len(name) > MaxItemNameLength {
		return ErrItemNameTooLong
	}
	return nil
}

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) OwnerID() uuid.UUID   { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus mirrors the exchange lifecycle on the item side: an item is
// reserved (pending) while an exchange for it is open and completed once the
// exchange completes. Hidden/deleted are moderation states.
type ItemStatus string

const (
	ItemAvailable ItemStatus = "available"
	ItemPending   ItemStatus = "pending"
	ItemCompleted ItemStatus = "completed"
	ItemHidden    ItemStatus = "hidden"
	ItemDeleted   ItemStatus = "deleted"
)

type Item struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	OwnerID     uuid.UUID  `db:"owner_id" json:"owner_id"`
	CategoryID  uuid.UUID  `db:"category_id" json:"category_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Condition   string     `db:"condition" json:"condition"`
	Status      ItemStatus `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

type ItemImage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ItemID    uuid.UUID `db:"item_id" json:"item_id"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateItemInput struct {
	Title       string    `form:"title" binding:"required"`
	Description string    `form:"description"`
	Condition   string    `form:"condition" binding:"required"`
	CategoryID  uuid.UUID `form:"category_id"`
}

type UpdateItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
}

type ItemFilter struct {
	Keyword    string    `form:"keyword"`
	CategoryID uuid.UUID `form:"category_id"`
	Limit      int       `form:"limit"`
	Offset     int       `form:"offset"`
}

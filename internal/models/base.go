package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities. ID is a UUID string for API
// compatibility with the original MongoDB ObjectID format. Deletes are
// hard: the unique columns (slug, external id) must be reusable after a
// record is removed.
type Base struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Attachment is an uploaded file hosted in the external media store.
// ExternalID is the only handle needed to free the stored object.
type Attachment struct {
	URL        string `json:"url"`
	ExternalID string `json:"publicId"`
}

// Section is a structured content block inside a blog or story.
type Section struct {
	Heading   string `json:"heading"`
	Paragraph string `json:"paragraph"`
}

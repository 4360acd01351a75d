package domain

import "time"

// DocumentStatus is the moderation state of a catalog document.
type DocumentStatus string

const (
	DocumentDraft     DocumentStatus = "draft"
	DocumentPending   DocumentStatus = "pending"
	DocumentPublished DocumentStatus = "published"
	DocumentRejected  DocumentStatus = "rejected"
)

// EventDoc mirrors an event document owned by the content catalog.
type EventDoc struct {
	ID          string         `json:"_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug,omitempty"`
	Status      DocumentStatus `json:"status"`
	Featured    bool           `json:"featured"`
	Category    string         `json:"category,omitempty"`
	City        string         `json:"city,omitempty"`
	Date        *time.Time     `json:"date,omitempty"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency,omitempty"`
	OrganizerID string         `json:"organizerId,omitempty"`
	ApprovedAt  *time.Time     `json:"approvedAt,omitempty"`
}

// ListingDoc mirrors a business-listing document owned by the content catalog.
type ListingDoc struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug,omitempty"`
	Status      DocumentStatus `json:"status"`
	Featured    bool           `json:"featured"`
	Verified    bool           `json:"verified"`
	Category    string         `json:"category,omitempty"`
	City        string         `json:"city,omitempty"`
	ViewCount   int64          `json:"viewCount"`
	OwnerID     string         `json:"ownerId,omitempty"`
	ApprovedAt  *time.Time     `json:"approvedAt,omitempty"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
}

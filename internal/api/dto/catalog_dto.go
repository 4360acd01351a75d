package dto

import "time"

// EventPatchRequest is the admin PATCH allow-list for event documents.
type EventPatchRequest struct {
	Status     *string    `json:"status"`
	Featured   *bool      `json:"featured"`
	ApprovedAt *time.Time `json:"approvedAt"`
}

// ListingPatchRequest is the admin PATCH allow-list for listing documents.
type ListingPatchRequest struct {
	Status     *string    `json:"status"`
	Featured   *bool      `json:"featured"`
	Verified   *bool      `json:"verified"`
	ApprovedAt *time.Time `json:"approvedAt"`
}

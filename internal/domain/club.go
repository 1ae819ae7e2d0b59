package domain

import (
	"context"
	"time"
)

// Club is a student club that owns events within an organization.
// swagger:model Club
type Club struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	OrganizationID string    `json:"organization_id"`
	PresidentID    string    `json:"president_id"`
	Members        []string  `json:"members"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasMember reports whether the user is a listed member of the club.
func (c *Club) HasMember(userID string) bool {
	for _, m := range c.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// ClubRepository defines the interface for club storage.
type ClubRepository interface {
	GetByID(ctx context.Context, id string) (*Club, error)
}

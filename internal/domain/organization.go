package domain

import "context"

// Organization is the university or institution clubs and their events belong to.
// swagger:model Organization
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnknownOrganizationName is the denormalization fallback when no organization
// record can be resolved for a registration.
const UnknownOrganizationName = "Unknown Organization"

// OrganizationRepository defines the interface for organization lookups.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*Organization, error)
}

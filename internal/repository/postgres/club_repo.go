package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"clubevents/internal/domain"
)

type clubRepository struct {
	DB *sql.DB
}

func NewClubRepository(db *sql.DB) domain.ClubRepository {
	return &clubRepository{DB: db}
}

func (r *clubRepository) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	query := `
		SELECT id, name, organization_id, president_id, members, created_at, updated_at
		FROM clubs
		WHERE id = $1
	`
	c := &domain.Club{}
	var members []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.OrganizationID, &c.PresidentID, &members, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(members, &c.Members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	if c.Members == nil {
		c.Members = []string{}
	}
	return c, nil
}

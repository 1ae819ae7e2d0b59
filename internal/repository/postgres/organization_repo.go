package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clubevents/internal/domain"
)

type organizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) domain.OrganizationRepository {
	return &organizationRepository{DB: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `SELECT id, name FROM organizations WHERE id = $1`
	o := &domain.Organization{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

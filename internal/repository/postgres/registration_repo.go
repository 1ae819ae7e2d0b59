package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"clubevents/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

// Register appends the attendee to the event and inserts the audit row in one
// transaction. Capacity and duplicate membership are re-checked while holding
// a lock on the event row, so concurrent registrations near the capacity
// boundary serialize instead of both passing the check.
func (r *registrationRepository) Register(ctx context.Context, eventID string, attendee domain.Attendee, reg *domain.Registration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxAttendees sql.NullInt64
	var attendeesRaw []byte
	err = tx.QueryRowContext(ctx,
		`SELECT max_attendees, attendees FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&maxAttendees, &attendeesRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var attendees []domain.Attendee
	if err := json.Unmarshal(attendeesRaw, &attendees); err != nil {
		return fmt.Errorf("decode attendees: %w", err)
	}
	for _, a := range attendees {
		if a.UserID == attendee.UserID {
			return domain.ErrDuplicateRegistration
		}
	}
	if maxAttendees.Valid && int64(len(attendees)) >= maxAttendees.Int64 {
		return domain.ErrCapacityExceeded
	}

	attendees = append(attendees, attendee)
	encoded, err := json.Marshal(attendees)
	if err != nil {
		return fmt.Errorf("encode attendees: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE events SET attendees = $2, updated_at = $3 WHERE id = $1`,
		eventID, encoded, reg.RegisteredAt,
	)
	if err != nil {
		return err
	}

	reg.ID = uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO registrations (id, event_id, event_title, user_id, student_name,
			organization_id, organization_name, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		reg.ID, reg.EventID, reg.EventTitle, reg.UserID, reg.StudentName,
		reg.OrganizationID, reg.OrganizationName, reg.RegisteredAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

const registrationColumns = `id, event_id, event_title, user_id, student_name,
		organization_id, organization_name, registered_at`

func scanRegistrations(rows *sql.Rows) ([]*domain.Registration, error) {
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.EventTitle, &reg.UserID, &reg.StudentName,
			&reg.OrganizationID, &reg.OrganizationName, &reg.RegisteredAt,
		); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY registered_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE user_id = $1 ORDER BY registered_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func (r *registrationRepository) CountByEventAndUser(ctx context.Context, eventID, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&n)
	return n, err
}

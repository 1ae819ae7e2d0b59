package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clubevents/internal/domain"
)

// eventColumns is the column list shared by every event query, in scan order.
const eventColumns = `id, title, description, club_id, organization_id,
		start_date, end_date, start_time, end_time, venue,
		max_attendees, registration_required, registration_deadline, fee,
		attendees, reviews, organizers, public, status, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent reads one event row, decoding the embedded jsonb lists.
func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var maxAttendees sql.NullInt64
	var deadline sql.NullTime
	var attendees, reviews, organizers []byte
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.ClubID, &e.OrganizationID,
		&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime, &e.Venue,
		&maxAttendees, &e.RegistrationRequired, &deadline, &e.Fee,
		&attendees, &reviews, &organizers, &e.Public, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if maxAttendees.Valid {
		v := int(maxAttendees.Int64)
		e.MaxAttendees = &v
	}
	if deadline.Valid {
		t := deadline.Time
		e.RegistrationDeadline = &t
	}
	if err := json.Unmarshal(attendees, &e.Attendees); err != nil {
		return nil, fmt.Errorf("decode attendees: %w", err)
	}
	if err := json.Unmarshal(reviews, &e.Reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	if err := json.Unmarshal(organizers, &e.Organizers); err != nil {
		return nil, fmt.Errorf("decode organizers: %w", err)
	}
	if e.Attendees == nil {
		e.Attendees = []domain.Attendee{}
	}
	if e.Reviews == nil {
		e.Reviews = []domain.Review{}
	}
	if e.Organizers == nil {
		e.Organizers = []string{}
	}
	return e, nil
}

func encodeList(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		b = []byte("[]")
	}
	return b, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	attendees, err := encodeList(e.Attendees)
	if err != nil {
		return fmt.Errorf("encode attendees: %w", err)
	}
	reviews, err := encodeList(e.Reviews)
	if err != nil {
		return fmt.Errorf("encode reviews: %w", err)
	}
	organizers, err := encodeList(e.Organizers)
	if err != nil {
		return fmt.Errorf("encode organizers: %w", err)
	}
	query := `
		INSERT INTO events (title, description, club_id, organization_id,
			start_date, end_date, start_time, end_time, venue,
			max_attendees, registration_required, registration_deadline, fee,
			attendees, reviews, organizers, public, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.ClubID, e.OrganizationID,
		e.StartDate, e.EndDate, e.StartTime, e.EndTime, e.Venue,
		e.MaxAttendees, e.RegistrationRequired, e.RegistrationDeadline, e.Fee,
		attendees, reviews, organizers, e.Public, e.Status, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.ClubID != "" {
		where += " AND club_id = " + arg(filter.ClubID)
	}
	if filter.OrganizationID != "" {
		where += " AND organization_id = " + arg(filter.OrganizationID)
	}
	if filter.Status != "" {
		where += " AND status = " + arg(filter.Status)
	}
	if filter.PublicOnly {
		where += " AND public = true"
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + eventColumns + " FROM events" + where +
		" ORDER BY start_date ASC" +
		" LIMIT " + arg(params.PageSize) + " OFFSET " + arg(params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	organizers, err := encodeList(e.Organizers)
	if err != nil {
		return fmt.Errorf("encode organizers: %w", err)
	}
	query := `
		UPDATE events
		SET title = $2, description = $3,
			start_date = $4, end_date = $5, start_time = $6, end_time = $7, venue = $8,
			max_attendees = $9, registration_required = $10, registration_deadline = $11, fee = $12,
			organizers = $13, public = $14, status = $15, updated_at = $16
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.Description,
		e.StartDate, e.EndDate, e.StartTime, e.EndTime, e.Venue,
		e.MaxAttendees, e.RegistrationRequired, e.RegistrationDeadline, e.Fee,
		organizers, e.Public, e.Status, e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mutateLocked loads the event under FOR UPDATE, applies fn to it, and writes
// the attendee and review lists back. The row lock makes the check and the
// write a single serialization point per event.
func (r *eventRepository) mutateLocked(ctx context.Context, eventID string, fn func(e *domain.Event) error) (*domain.Event, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	e, err := scanEvent(tx.QueryRowContext(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := fn(e); err != nil {
		return nil, err
	}

	attendees, err := encodeList(e.Attendees)
	if err != nil {
		return nil, fmt.Errorf("encode attendees: %w", err)
	}
	reviews, err := encodeList(e.Reviews)
	if err != nil {
		return nil, fmt.Errorf("encode reviews: %w", err)
	}
	e.UpdatedAt = time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE events SET attendees = $2, reviews = $3, updated_at = $4 WHERE id = $1`,
		e.ID, attendees, reviews, e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) RemoveAttendee(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	return r.mutateLocked(ctx, eventID, func(e *domain.Event) error {
		for i, a := range e.Attendees {
			if a.UserID == userID {
				e.Attendees = append(e.Attendees[:i], e.Attendees[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *eventRepository) SetAttendance(ctx context.Context, eventID, userID string, attended bool) (*domain.Event, error) {
	return r.mutateLocked(ctx, eventID, func(e *domain.Event) error {
		a := e.FindAttendee(userID)
		if a == nil {
			return domain.ErrNotFound
		}
		a.Attended = attended
		return nil
	})
}

func (r *eventRepository) AppendReview(ctx context.Context, eventID string, review domain.Review) (*domain.Event, error) {
	return r.mutateLocked(ctx, eventID, func(e *domain.Event) error {
		a := e.FindAttendee(review.UserID)
		if a == nil || !a.Attended {
			return domain.ErrNotAttended
		}
		if e.HasReviewBy(review.UserID) {
			return domain.ErrDuplicateReview
		}
		e.Reviews = append(e.Reviews, review)
		return nil
	})
}

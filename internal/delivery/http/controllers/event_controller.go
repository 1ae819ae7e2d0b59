package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	ClubID               string     `json:"club_id"`
	StartDate            time.Time  `json:"start_date"`
	EndDate              time.Time  `json:"end_date"`
	StartTime            string     `json:"start_time"`
	EndTime              string     `json:"end_time"`
	Venue                string     `json:"venue"`
	MaxAttendees         *int       `json:"max_attendees"`
	RegistrationRequired bool       `json:"registration_required"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Fee                  int        `json:"fee"`
	Organizers           []string   `json:"organizers"`
	Public               bool       `json:"public"`
}

// Validate implements helpers.Validator.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs = append(errs, "title is required")
	}
	if !uuidRegex.MatchString(r.ClubID) {
		errs = append(errs, "club_id must be a valid UUID")
	}
	if r.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	if r.EndDate.IsZero() {
		errs = append(errs, "end_date is required")
	}
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		errs = append(errs, "end_date must not be before start_date")
	}
	if r.MaxAttendees != nil && *r.MaxAttendees < 1 {
		errs = append(errs, "max_attendees must be at least 1")
	}
	if r.Fee < 0 {
		errs = append(errs, "fee must not be negative")
	}
	for _, org := range r.Organizers {
		if !uuidRegex.MatchString(org) {
			errs = append(errs, "organizers must be valid UUIDs")
			break
		}
	}
	return errs
}

func (r *CreateEventRequest) toEvent() *domain.Event {
	return &domain.Event{
		Title:                r.Title,
		Description:          r.Description,
		ClubID:               r.ClubID,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Venue:                r.Venue,
		MaxAttendees:         r.MaxAttendees,
		RegistrationRequired: r.RegistrationRequired,
		RegistrationDeadline: r.RegistrationDeadline,
		Fee:                  r.Fee,
		Organizers:           r.Organizers,
		Public:               r.Public,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event under a club. Allowed for administrators of the club's organization, the club president, and club members.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateEventRequest true "Event details"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (club)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event := req.toEvent()
	if err := c.Service.Create(r.Context(), caller, event); err != nil {
		writeServiceError(w, r, c.Logger, "create event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "get event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEventsResponse is the success payload for GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEvents godoc
// @Summary List events
// @Description Lists events filtered by club, organization, status, and visibility, paginated.
// @Tags events
// @Produce json
// @Param club_id query string false "Filter by club ID"
// @Param organization_id query string false "Filter by organization ID"
// @Param status query string false "Filter by status (upcoming, completed, cancelled)"
// @Param public query bool false "Only public events"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	q := r.URL.Query()
	filter := domain.EventFilter{
		ClubID:         q.Get("club_id"),
		OrganizationID: q.Get("organization_id"),
		Status:         q.Get("status"),
		PublicOnly:     q.Get("public") == "true",
	}

	events, total, err := c.Service.List(r.Context(), filter, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, "list events", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// Omitted fields are left unchanged.
type UpdateEventRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	StartTime            *string    `json:"start_time"`
	EndTime              *string    `json:"end_time"`
	Venue                *string    `json:"venue"`
	MaxAttendees         *int       `json:"max_attendees"`
	RegistrationRequired *bool      `json:"registration_required"`
	RegistrationDeadline *time.Time `json:"registration_deadline"`
	Fee                  *int       `json:"fee"`
	Public               *bool      `json:"public"`
	Status               *string    `json:"status"`
}

// Validate implements helpers.Validator.
func (r *UpdateEventRequest) Validate() []string {
	var errs []string
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if r.MaxAttendees != nil && *r.MaxAttendees < 1 {
		errs = append(errs, "max_attendees must be at least 1")
	}
	if r.Fee != nil && *r.Fee < 0 {
		errs = append(errs, "fee must not be negative")
	}
	if r.Status != nil {
		switch *r.Status {
		case domain.EventStatusUpcoming, domain.EventStatusCompleted, domain.EventStatusCancelled:
		default:
			errs = append(errs, "status must be one of upcoming, completed, cancelled")
		}
	}
	return errs
}

func (r *UpdateEventRequest) toPatch() domain.EventPatch {
	return domain.EventPatch{
		Title:                r.Title,
		Description:          r.Description,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		StartTime:            r.StartTime,
		EndTime:              r.EndTime,
		Venue:                r.Venue,
		MaxAttendees:         r.MaxAttendees,
		RegistrationRequired: r.RegistrationRequired,
		RegistrationDeadline: r.RegistrationDeadline,
		Fee:                  r.Fee,
		Public:               r.Public,
		Status:               r.Status,
	}
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a partial update. Only the owning club's president or an administrator may update. max_attendees may not be lowered below the current attendee count.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.UpdateEventRequest true "Fields to update"
// @Success 200 {object} domain.Event
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.Service.Update(r.Context(), caller, eventID, req.toPatch())
	if err != nil {
		writeServiceError(w, r, c.Logger, "update event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Only an administrator, the owning club's president, or a listed organizer may delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.MessageResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	if err := c.Service.Delete(r.Context(), caller, eventID); err != nil {
		writeServiceError(w, r, c.Logger, "delete event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "event deleted"})
}

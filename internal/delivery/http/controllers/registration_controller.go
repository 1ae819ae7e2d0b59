package controllers

import (
	"log/slog"
	"net/http"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterResponse is the success payload for POST /events/{eventID}/register (201).
type RegisterResponse struct {
	Message      string               `json:"message"`
	Registration *domain.Registration `json:"registration"`
}

// Register godoc
// @Summary Register the caller for an event
// @Description Registers the authenticated user as an attendee. Fails when registration is not required, the deadline has passed, the event is full, or the user is already registered.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.RegisterResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_operation or deadline_passed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded or duplicate"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	reg, err := c.Service.Register(r.Context(), caller, eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "register", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegisterResponse{
		Message:      "registered successfully",
		Registration: reg,
	})
}

// MessageResponse is a success payload carrying only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Unregister godoc
// @Summary Unregister the caller from an event
// @Description Removes the caller's attendee entry. Only allowed before the event starts. Registration audit records are kept.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.MessageResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_operation (event already started)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or attendee entry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [delete]
func (c *RegistrationController) Unregister(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	if err := c.Service.Unregister(r.Context(), caller, eventID); err != nil {
		writeServiceError(w, r, c.Logger, "unregister", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "unregistered successfully"})
}

// MarkAttendanceRequest is the request body for PATCH /events/{eventID}/attendees/{userID}.
type MarkAttendanceRequest struct {
	Attended *bool `json:"attended"`
}

// Validate implements helpers.Validator.
func (r *MarkAttendanceRequest) Validate() []string {
	if r.Attended == nil {
		return []string{"attended is required"}
	}
	return nil
}

// MarkAttendance godoc
// @Summary Set an attendee's attended flag
// @Description Only the owning club's president or an administrator may mark attendance.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Param body body controllers.MarkAttendanceRequest true "Attended flag"
// @Success 200 {object} domain.Event
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or attendee entry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees/{userID} [patch]
func (c *RegistrationController) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req MarkAttendanceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.Service.MarkAttendance(r.Context(), caller, eventID, userID, *req.Attended)
	if err != nil {
		writeServiceError(w, r, c.Logger, "mark attendance", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// RemoveAttendee godoc
// @Summary Remove an attendee from an event
// @Description Only the owning club's president or an administrator may remove attendees. Registration audit records are kept.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} domain.Event
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or attendee entry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees/{userID} [delete]
func (c *RegistrationController) RemoveAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	event, err := c.Service.RemoveAttendee(r.Context(), caller, eventID, userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "remove attendee", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListMyRegistrations godoc
// @Summary List the caller's registration history
// @Description Returns the caller's registration audit records across all events, newest first, including events they later unregistered from.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Registration
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/registrations [get]
func (c *RegistrationController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	regs, err := c.Service.ListMyRegistrations(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, c.Logger, "list my registrations", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// ListRegistrations godoc
// @Summary List registration records for an event
// @Description Returns the append-only registration audit log for the event. Only the owning club's president or an administrator may read it. The list may include users who later unregistered.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {array} domain.Registration
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	regs, err := c.Service.ListRegistrations(r.Context(), caller, eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "list registrations", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

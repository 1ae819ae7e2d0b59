package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"
)

type ReviewController struct {
	Logger  *slog.Logger
	Service domain.ReviewService
}

func NewReviewController(logger *slog.Logger, svc domain.ReviewService) *ReviewController {
	return &ReviewController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitReviewRequest is the request body for POST /events/{eventID}/reviews.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate implements helpers.Validator.
func (r *SubmitReviewRequest) Validate() []string {
	var errs []string
	if r.Rating < 1 || r.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	r.Comment = strings.TrimSpace(r.Comment)
	if len(r.Comment) > 2000 {
		errs = append(errs, "comment must be at most 2000 characters")
	}
	return errs
}

// SubmitReviewResponse is the success payload for POST /events/{eventID}/reviews (200).
type SubmitReviewResponse struct {
	Message string          `json:"message"`
	Reviews []domain.Review `json:"reviews"`
}

// SubmitReview godoc
// @Summary Submit a review for an attended event
// @Description Appends the caller's review. The caller must have an attendee entry with confirmed attendance, and may review an event only once.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.SubmitReviewRequest true "Rating (1-5) and comment"
// @Success 200 {object} controllers.SubmitReviewResponse
// @Failure 400 {object} helpers.APIResponse "error.code: invalid_operation (attendance not confirmed)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/reviews [post]
func (c *ReviewController) SubmitReview(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	caller, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	reviews, err := c.Service.Submit(r.Context(), caller.UserID, eventID, req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, r, c.Logger, "submit review", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SubmitReviewResponse{
		Message: "review submitted",
		Reviews: reviews,
	})
}

// ListReviews godoc
// @Summary List reviews for an event
// @Description Returns the event's reviews with reviewer display names attached.
// @Tags reviews
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {array} domain.ReviewWithAuthor
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/reviews [get]
func (c *ReviewController) ListReviews(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}

	reviews, err := c.Service.ListByEventID(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "list reviews", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reviews)
}

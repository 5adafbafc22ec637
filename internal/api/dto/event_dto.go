package dto

import (
	"regexp"
	"time"

	"github.com/spec-kit/bakery-crew/internal/domain"
	"github.com/spec-kit/bakery-crew/pkg/util"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// CreateEventRequest payload for POST /api/events.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Shift       string `json:"shift"`
}

// Validate checks the payload. Date must be a plain YYYY-MM-DD string.
func (r CreateEventRequest) Validate() []util.FieldError {
	var fields []util.FieldError
	if r.Title == "" {
		fields = append(fields, util.FieldError{Msg: "Title is required", Path: "title"})
	}
	if r.Date == "" {
		fields = append(fields, util.FieldError{Msg: "Date is required", Path: "date"})
	} else if !isoDatePattern.MatchString(r.Date) {
		fields = append(fields, util.FieldError{Msg: "Valid ISO date required", Path: "date"})
	} else if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		fields = append(fields, util.FieldError{Msg: "Valid ISO date required", Path: "date"})
	}
	if r.Shift == "" {
		fields = append(fields, util.FieldError{Msg: "Shift is required", Path: "shift"})
	} else if !domain.ValidShift(r.Shift) {
		fields = append(fields, util.FieldError{Msg: "Invalid shift", Path: "shift"})
	}
	return fields
}

// ParsedDate returns the event date; Validate must have passed.
func (r CreateEventRequest) ParsedDate() time.Time {
	date, _ := time.Parse("2006-01-02", r.Date)
	return date
}

// EventResponse is the wire shape for an event.
type EventResponse struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        string       `json:"date"`
	Shift       domain.Shift `json:"shift"`
	CreatedBy   int64        `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewEventResponse maps a stored event.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date.Format("2006-01-02"),
		Shift:       event.Shift,
		CreatedBy:   event.CreatedBy,
		CreatedAt:   event.CreatedAt,
	}
}

// NewEventResponses maps a listing.
func NewEventResponses(eventList []domain.Event) []EventResponse {
	result := make([]EventResponse, 0, len(eventList))
	for i := range eventList {
		result = append(result, NewEventResponse(&eventList[i]))
	}
	return result
}

// ApplicantResponse is the wire shape for an event or donation applicant.
type ApplicantResponse struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Shift *domain.Shift `json:"shift"`
}

// NewApplicantResponses maps an applicant listing.
func NewApplicantResponses(applicants []domain.Applicant) []ApplicantResponse {
	result := make([]ApplicantResponse, 0, len(applicants))
	for _, applicant := range applicants {
		result = append(result, ApplicantResponse{
			ID:    applicant.ID,
			Name:  applicant.Name,
			Email: applicant.Email,
			Shift: applicant.Shift,
		})
	}
	return result
}

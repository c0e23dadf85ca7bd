package assignment

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kazi/core"
)

// Due-date status buckets
type Status string

const (
	StatusUrgent  Status = "urgent"  // less than 2 days left, overdue included
	StatusWarning Status = "warning" // 2 to 5 days left
	StatusNormal  Status = "normal"  // more than 5 days left
	StatusUnknown Status = "unknown" // unparseable due date
)

// Assignment is published by a teacher and never changes afterwards.
// JSON names follow the persisted layout.
type Assignment struct {
	ID          int64  `json:"id"` // creation time, Unix milliseconds
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"desc"`
	Link        string `json:"link"`
	DueDate     string `json:"date"` // core.DateLayout
}

// NewAssignment contains information needed to publish a new Assignment.
type NewAssignment struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Subject     string `json:"subject" form:"subject" validate:"required"`
	Description string `json:"desc" form:"desc"`
	Link        string `json:"link" form:"link" validate:"omitempty,url"`
	DueDate     string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Subject = core.CleanString(na.Subject)
	na.Description = core.CleanString(na.Description)
	na.Link = core.CleanString(na.Link)
	na.DueDate = core.CleanString(na.DueDate)
	return validate.Struct(na)
}

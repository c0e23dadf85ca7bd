package assignment

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kazi/core"
)

var (
	// errors
	ErrNotFound = errors.New("assignment not found")
)

type (
	Repository interface {
		// CreateAssignment stores a new Assignment. The ID is bumped past existing IDs if already taken.
		CreateAssignment(a Assignment) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id int64) (Assignment, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Publish validates na and stores it as a new Assignment with a timestamp-derived ID.
func (svc *Service) Publish(na NewAssignment) (Assignment, error) {
	if err := na.Validate(svc.validate); err != nil {
		return Assignment{}, err
	}
	a := Assignment{
		ID:          core.NowFunc().UnixMilli(),
		Title:       na.Title,
		Subject:     na.Subject,
		Description: na.Description,
		Link:        na.Link,
		DueDate:     na.DueDate,
	}
	return svc.repo.CreateAssignment(a)
}

func (svc *Service) QueryAll() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

func (svc *Service) GetByID(id int64) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

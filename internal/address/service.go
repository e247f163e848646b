package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
)

// Repository defines the persistence surface required by the address service.
type Repository interface {
	FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*models.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	Create(ctx context.Context, row *models.Address) (*models.Address, error)
	ClearDefaultForUser(ctx context.Context, userID uuid.UUID) error
}

// Service exposes shipping address operations.
type Service interface {
	FindDefault(ctx context.Context, userID uuid.UUID) (*models.Address, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	CreateDefault(ctx context.Context, userID uuid.UUID, input Input) (*models.Address, error)
}

type service struct {
	repo Repository
}

// NewService builds an address service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	return &service{repo: repo}, nil
}

// Input carries a shipping address form submission.
type Input struct {
	Name     string
	Phone    string
	Locality string
	Address  string
	City     string
	State    string
	Country  string
	Landmark string
	Zip      string
}

// FindDefault returns the user's default address, nil when none exists.
func (s *service) FindDefault(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	row, err := s.repo.FindDefaultByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default address")
	}
	return row, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return rows, nil
}

// CreateDefault validates the form input, persists the address and marks it
// the user's default, unsetting any previous default.
func (s *service) CreateDefault(ctx context.Context, userID uuid.UUID, input Input) (*models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := Validate(input); err != nil {
		return nil, err
	}

	if err := s.repo.ClearDefaultForUser(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default address")
	}

	row := &models.Address{
		UserID:    userID,
		Name:      input.Name,
		Phone:     input.Phone,
		Locality:  input.Locality,
		Address:   input.Address,
		City:      input.City,
		State:     input.State,
		Country:   input.Country,
		Landmark:  input.Landmark,
		Zip:       input.Zip,
		IsDefault: true,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return created, nil
}

// Validate checks a shipping address form: every field except country is
// required, phone must be 10 digits and zip 6 digits.
func Validate(input Input) error {
	details := map[string]string{}

	required := []struct {
		field string
		value string
	}{
		{"name", input.Name},
		{"phone", input.Phone},
		{"locality", input.Locality},
		{"address", input.Address},
		{"city", input.City},
		{"state", input.State},
		{"landmark", input.Landmark},
		{"zip", input.Zip},
	}
	for _, f := range required {
		if f.value == "" {
			details[f.field] = "is required"
		}
	}

	if input.Phone != "" && !isDigits(input.Phone, 10) {
		details["phone"] = "must be exactly 10 digits"
	}
	if input.Zip != "" && !isDigits(input.Zip, 6) {
		details["zip"] = "must be exactly 6 digits"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func isDigits(value string, length int) bool {
	if len(value) != length {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

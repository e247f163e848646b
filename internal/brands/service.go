package brands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db"
	"github.com/mcastellon/shopora-backend/pkg/db/models"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
	"github.com/mcastellon/shopora-backend/pkg/slug"
)

// Repository defines the persistence surface required by the brand service.
type Repository interface {
	List(ctx context.Context, offset, limit int) ([]models.Brand, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	Create(ctx context.Context, row *models.Brand) (*models.Brand, error)
	Update(ctx context.Context, row *models.Brand) (*models.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes brand catalog operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Brand, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	Create(ctx context.Context, input CreateInput) (*models.Brand, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a brand service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brand repository required")
	}
	return &service{repo: repo}, nil
}

// CreateInput carries the fields accepted when creating a brand.
type CreateInput struct {
	Name  string
	Image string
}

// UpdateInput carries the fields accepted when updating a brand.
type UpdateInput struct {
	Name  string
	Image string
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Brand, int64, error) {
	rows, total, err := s.repo.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return rows, total, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Brand, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name is required")
	}

	row := &models.Brand{
		Name:  input.Name,
		Slug:  slug.Make(input.Name),
		Image: input.Image,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Brand, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name is required")
	}

	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Name = input.Name
	row.Slug = slug.Make(input.Name)
	if input.Image != "" {
		row.Image = input.Image
	}

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "brand slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete brand")
	}
	return nil
}

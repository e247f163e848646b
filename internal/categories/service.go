package categories

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

// Repository defines the persistence surface required by the category service.
type Repository interface {
	List(ctx context.Context, offset, limit int) ([]models.Category, int64, error)
	ListAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, row *models.Category) (*models.Category, error)
	Update(ctx context.Context, row *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes category catalog operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Category, int64, error)
	ListAll(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, input CreateInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a category service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

// CreateInput carries the fields accepted when creating a category.
type CreateInput struct {
	Name  string
	Image string
}

// UpdateInput carries the fields accepted when updating a category.
type UpdateInput struct {
	Name  string
	Image string
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Category, int64, error) {
	rows, total, err := s.repo.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, total, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	row := &models.Category{
		Name:  input.Name,
		Slug:  slug.Make(input.Name),
		Image: input.Image,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
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
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
)

type stubCategoryRepo struct {
	row     *models.Category
	created *models.Category
}

func (s *stubCategoryRepo) List(ctx context.Context, offset, limit int) ([]models.Category, int64, error) {
	return nil, 0, nil
}

func (s *stubCategoryRepo) ListAll(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (s *stubCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if s.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.row, nil
}

func (s *stubCategoryRepo) Create(ctx context.Context, row *models.Category) (*models.Category, error) {
	s.created = row
	return row, nil
}

func (s *stubCategoryRepo) Update(ctx context.Context, row *models.Category) (*models.Category, error) {
	return row, nil
}

func (s *stubCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func TestServiceCreateGeneratesSlug(t *testing.T) {
	repo := &stubCategoryRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Create(context.Background(), CreateInput{Name: "Home Audio"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if created.Slug != "home-audio" {
		t.Fatalf("expected generated slug, got %q", created.Slug)
	}
}

func TestServiceCreateRequiresName(t *testing.T) {
	svc, _ := NewService(&stubCategoryRepo{})

	_, err := svc.Create(context.Background(), CreateInput{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc, _ := NewService(&stubCategoryRepo{})

	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Name: "Anything"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

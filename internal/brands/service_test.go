package brands

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
)

type stubBrandRepo struct {
	rows    []models.Brand
	row     *models.Brand
	err     error
	created *models.Brand
	updated *models.Brand
	deleted []uuid.UUID
}

func (s *stubBrandRepo) List(ctx context.Context, offset, limit int) ([]models.Brand, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.rows, int64(len(s.rows)), nil
}

func (s *stubBrandRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.row, nil
}

func (s *stubBrandRepo) Create(ctx context.Context, row *models.Brand) (*models.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = row
	return row, nil
}

func (s *stubBrandRepo) Update(ctx context.Context, row *models.Brand) (*models.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updated = row
	return row, nil
}

func (s *stubBrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateGeneratesSlug(t *testing.T) {
	repo := &stubBrandRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Create(context.Background(), CreateInput{Name: "Samsung Electronics", Image: "samsung.jpg"})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}
	if created.Slug != "samsung-electronics" {
		t.Fatalf("expected generated slug, got %q", created.Slug)
	}
	if repo.created == nil || repo.created.Image != "samsung.jpg" {
		t.Fatalf("expected brand persisted with image, got %+v", repo.created)
	}
}

func TestServiceCreateRequiresName(t *testing.T) {
	svc, _ := NewService(&stubBrandRepo{})

	_, err := svc.Create(context.Background(), CreateInput{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc, _ := NewService(&stubBrandRepo{})

	_, err := svc.Get(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceListDependencyError(t *testing.T) {
	svc, _ := NewService(&stubBrandRepo{err: errors.New("boom")})

	_, _, err := svc.List(context.Background(), pagination.Params{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceUpdateRegeneratesSlugKeepsImage(t *testing.T) {
	existing := &models.Brand{ID: uuid.New(), Name: "Old", Slug: "old", Image: "old.jpg"}
	repo := &stubBrandRepo{row: existing}
	svc, _ := NewService(repo)

	updated, err := svc.Update(context.Background(), existing.ID, UpdateInput{Name: "New Name"})
	if err != nil {
		t.Fatalf("update brand: %v", err)
	}
	if updated.Slug != "new-name" {
		t.Fatalf("expected regenerated slug, got %q", updated.Slug)
	}
	if updated.Image != "old.jpg" {
		t.Fatalf("expected image preserved, got %q", updated.Image)
	}
}

func TestServiceDeleteRequiresExisting(t *testing.T) {
	repo := &stubBrandRepo{}
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("expected no delete call, got %v", repo.deleted)
	}
}

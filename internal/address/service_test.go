package address

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
)

type stubAddressRepo struct {
	defaultAddr    *models.Address
	created        *models.Address
	clearedDefault bool
}

func (s *stubAddressRepo) FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	if s.defaultAddr == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.defaultAddr, nil
}

func (s *stubAddressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return nil, nil
}

func (s *stubAddressRepo) Create(ctx context.Context, row *models.Address) (*models.Address, error) {
	s.created = row
	return row, nil
}

func (s *stubAddressRepo) ClearDefaultForUser(ctx context.Context, userID uuid.UUID) error {
	s.clearedDefault = true
	return nil
}

func validInput() Input {
	return Input{
		Name:     "Ada Lovelace",
		Phone:    "9876543210",
		Locality: "MG Road",
		Address:  "12 Baker Street",
		City:     "Bengaluru",
		State:    "Karnataka",
		Landmark: "Near the park",
		Zip:      "560001",
	}
}

func TestFindDefaultAbsentReturnsNil(t *testing.T) {
	svc, _ := NewService(&stubAddressRepo{})

	addr, err := svc.FindDefault(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("find default: %v", err)
	}
	if addr != nil {
		t.Fatalf("expected nil for missing default, got %+v", addr)
	}
}

func TestCreateDefaultMarksDefault(t *testing.T) {
	repo := &stubAddressRepo{}
	svc, _ := NewService(repo)
	userID := uuid.New()

	created, err := svc.CreateDefault(context.Background(), userID, validInput())
	if err != nil {
		t.Fatalf("create default: %v", err)
	}
	if !created.IsDefault {
		t.Fatal("expected created address marked default")
	}
	if created.UserID != userID {
		t.Fatalf("expected owner %s, got %s", userID, created.UserID)
	}
	if !repo.clearedDefault {
		t.Fatal("expected previous default cleared first")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Input)
		wantField string
	}{
		{name: "missing name", mutate: func(i *Input) { i.Name = "" }, wantField: "name"},
		{name: "short phone", mutate: func(i *Input) { i.Phone = "12345" }, wantField: "phone"},
		{name: "alpha phone", mutate: func(i *Input) { i.Phone = "98765abcde" }, wantField: "phone"},
		{name: "short zip", mutate: func(i *Input) { i.Zip = "5600" }, wantField: "zip"},
		{name: "missing landmark", mutate: func(i *Input) { i.Landmark = "" }, wantField: "landmark"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			err := Validate(input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			details := typed.Details().(map[string]string)
			if _, present := details[tc.wantField]; !present {
				t.Fatalf("expected field error for %q, got %v", tc.wantField, details)
			}
		})
	}

	if err := Validate(validInput()); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}
}

func TestCountryIsOptional(t *testing.T) {
	input := validInput()
	input.Country = ""
	if err := Validate(input); err != nil {
		t.Fatalf("country must be optional, got %v", err)
	}
}

package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
	"github.com/mcastellon/shopora-backend/pkg/enums"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
)

type stubTx struct {
	calls int
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

type stubOrderRepo struct {
	byID    map[uuid.UUID]*models.Order
	rows    []models.Order
	updated *models.Order
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) List(ctx context.Context, offset, limit int) ([]models.Order, int64, error) {
	return s.rows, int64(len(s.rows)), nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	var out []models.Order
	for _, row := range s.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubOrderRepo) Create(ctx context.Context, row *models.Order) (*models.Order, error) {
	row.ID = uuid.New()
	s.byID[row.ID] = row
	return row, nil
}

func (s *stubOrderRepo) Update(ctx context.Context, row *models.Order) (*models.Order, error) {
	s.byID[row.ID] = row
	s.updated = row
	return row, nil
}

type stubTxnRepo struct {
	byOrder map[uuid.UUID]*models.Transaction
	updated *models.Transaction
}

func (s *stubTxnRepo) WithTx(tx *gorm.DB) TxnRepository { return s }

func (s *stubTxnRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Transaction, error) {
	row, ok := s.byOrder[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubTxnRepo) Create(ctx context.Context, row *models.Transaction) (*models.Transaction, error) {
	row.ID = uuid.New()
	s.byOrder[row.OrderID] = row
	return row, nil
}

func (s *stubTxnRepo) Update(ctx context.Context, row *models.Transaction) (*models.Transaction, error) {
	s.byOrder[row.OrderID] = row
	s.updated = row
	return row, nil
}

func seedOrder(repo *stubOrderRepo, txns *stubTxnRepo, status enums.OrderStatus, withTxn bool) *models.Order {
	order := &models.Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: status,
	}
	repo.byID[order.ID] = order
	if withTxn {
		txns.byOrder[order.ID] = &models.Transaction{
			ID:      uuid.New(),
			UserID:  order.UserID,
			OrderID: order.ID,
			Mode:    "cod",
			Status:  enums.TransactionStatusPending,
		}
	}
	return order
}

func newTestService(t *testing.T) (Service, *stubOrderRepo, *stubTxnRepo, *stubTx) {
	t.Helper()

	repo := &stubOrderRepo{byID: map[uuid.UUID]*models.Order{}}
	txns := &stubTxnRepo{byOrder: map[uuid.UUID]*models.Transaction{}}
	tx := &stubTx{}

	svc, err := NewService(repo, txns, tx)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, txns, tx
}

func TestDetailNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Detail(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListByUserFilters(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	mine := uuid.New()
	repo.rows = []models.Order{
		{ID: uuid.New(), UserID: mine},
		{ID: uuid.New(), UserID: uuid.New()},
		{ID: uuid.New(), UserID: mine},
	}

	rows, total, err := svc.ListByUser(context.Background(), mine, pagination.Params{Page: 1})
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(rows) != 2 || total != 2 {
		t.Fatalf("expected 2 orders, got %d (total %d)", len(rows), total)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc, repo, txns, tx := newTestService(t)
	seedOrder(repo, txns, enums.OrderStatusPending, true)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "returned")
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if tx.calls != 0 {
		t.Fatal("invalid status must not open a transaction")
	}
}

func TestUpdateStatusStoresPlainTransition(t *testing.T) {
	svc, repo, txns, _ := newTestService(t)
	order := seedOrder(repo, txns, enums.OrderStatusPending, true)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "processing")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != enums.OrderStatusProcessing {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	if updated.DeliveredDate != nil || updated.CanceledDate != nil {
		t.Fatal("non-terminal transitions must not stamp dates")
	}
	if txns.updated != nil {
		t.Fatal("transaction must be untouched")
	}
}

func TestUpdateStatusDeliveredCascades(t *testing.T) {
	svc, repo, txns, tx := newTestService(t)
	order := seedOrder(repo, txns, enums.OrderStatusShipped, true)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "delivered")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != enums.OrderStatusDelivered {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	if updated.DeliveredDate == nil {
		t.Fatal("expected delivered date stamp")
	}
	if txns.updated == nil || txns.updated.Status != enums.TransactionStatusApproved {
		t.Fatalf("expected transaction approved, got %+v", txns.updated)
	}
	if tx.calls != 1 {
		t.Fatalf("expected a single transaction, got %d", tx.calls)
	}
}

func TestUpdateStatusDeliveredWithoutTransaction(t *testing.T) {
	svc, repo, txns, _ := newTestService(t)
	order := seedOrder(repo, txns, enums.OrderStatusShipped, false)

	_, err := svc.UpdateStatus(context.Background(), order.ID, "delivered")
	if !pkgerrors.IsCode(err, pkgerrors.CodeIntegrity) {
		t.Fatalf("expected integrity error, got %v", err)
	}
}

func TestUpdateStatusCanceledStampsDate(t *testing.T) {
	svc, repo, txns, _ := newTestService(t)
	order := seedOrder(repo, txns, enums.OrderStatusPending, true)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, "canceled")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.CanceledDate == nil {
		t.Fatal("expected canceled date stamp")
	}
	if updated.DeliveredDate != nil {
		t.Fatal("canceled must not stamp delivery")
	}
	if txns.updated != nil {
		t.Fatal("canceled must not touch the transaction")
	}
}

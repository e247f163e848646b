package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/internal/address"
	authsvc "github.com/mcastellon/shopora-backend/internal/auth"
	"github.com/mcastellon/shopora-backend/internal/brands"
	"github.com/mcastellon/shopora-backend/internal/cart"
	"github.com/mcastellon/shopora-backend/internal/categories"
	checkoutsvc "github.com/mcastellon/shopora-backend/internal/checkout"
	"github.com/mcastellon/shopora-backend/internal/coupons"
	"github.com/mcastellon/shopora-backend/internal/products"
	pkgauth "github.com/mcastellon/shopora-backend/pkg/auth"
	"github.com/mcastellon/shopora-backend/pkg/config"
	"github.com/mcastellon/shopora-backend/pkg/db/models"
	"github.com/mcastellon/shopora-backend/pkg/enums"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/logger"
	"github.com/mcastellon/shopora-backend/pkg/metrics"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
)

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, input authsvc.RegisterInput) (*models.User, error) {
	return &models.User{ID: uuid.New(), Email: input.Email}, nil
}

func (stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

type stubBrandService struct{}

func (stubBrandService) List(ctx context.Context, params pagination.Params) ([]models.Brand, int64, error) {
	return []models.Brand{}, 0, nil
}

func (stubBrandService) Get(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
}

func (stubBrandService) Create(ctx context.Context, input brands.CreateInput) (*models.Brand, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubBrandService) Update(ctx context.Context, id uuid.UUID, input brands.UpdateInput) (*models.Brand, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubBrandService) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

type stubCategoryService struct{}

func (stubCategoryService) List(ctx context.Context, params pagination.Params) ([]models.Category, int64, error) {
	return []models.Category{}, 0, nil
}

func (stubCategoryService) ListAll(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubCategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
}

func (stubCategoryService) Create(ctx context.Context, input categories.CreateInput) (*models.Category, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubCategoryService) Update(ctx context.Context, id uuid.UUID, input categories.UpdateInput) (*models.Category, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

type stubProductService struct{}

func (stubProductService) List(ctx context.Context, params pagination.Params) ([]models.Product, int64, error) {
	return []models.Product{}, 0, nil
}

func (stubProductService) ListShop(ctx context.Context, sort products.ShopSort, params pagination.Params) ([]models.Product, int64, error) {
	return []models.Product{}, 0, nil
}

func (stubProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubProductService) GetDetail(ctx context.Context, slug string) (*products.Detail, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubProductService) Create(ctx context.Context, input products.CreateInput) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubProductService) Update(ctx context.Context, id uuid.UUID, input products.UpdateInput) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

type stubCouponService struct{}

func (stubCouponService) List(ctx context.Context, params pagination.Params) ([]models.Coupon, int64, error) {
	return []models.Coupon{}, 0, nil
}

func (stubCouponService) Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
}

func (stubCouponService) Create(ctx context.Context, input coupons.Input) (*models.Coupon, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubCouponService) Update(ctx context.Context, id uuid.UUID, input coupons.Input) (*models.Coupon, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

func (stubCouponService) Validate(ctx context.Context, code string, cartTotal decimal.Decimal, today time.Time) (*coupons.Validation, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon is invalid or expired")
}

type stubCartService struct{}

func (stubCartService) Content(ctx context.Context, sessionID string) (*cart.Content, error) {
	return &cart.Content{Lines: []cart.Line{}}, nil
}

func (stubCartService) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*cart.Content, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCartService) IncreaseItem(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.Content, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCartService) DecreaseItem(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.Content, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*cart.Content, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCartService) Empty(ctx context.Context, sessionID string) error {
	return nil
}

func (stubCartService) ApplyCoupon(ctx context.Context, sessionID, code string, today time.Time) (*cart.ApplyResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon is invalid or expired")
}

func (stubCartService) RemoveCoupon(ctx context.Context, sessionID string) (*cart.Amounts, error) {
	return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no coupon applied")
}

func (stubCartService) SetCheckoutAmounts(ctx context.Context, sessionID string) (*cart.Amounts, error) {
	return nil, nil
}

type stubAddressService struct{}

func (stubAddressService) FindDefault(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	return nil, nil
}

func (stubAddressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return []models.Address{}, nil
}

func (stubAddressService) CreateDefault(ctx context.Context, userID uuid.UUID, input address.Input) (*models.Address, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not implemented")
}

type stubCheckoutService struct{}

func (stubCheckoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, sessionID string, input checkoutsvc.PlaceOrderInput) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
}

func (stubCheckoutService) ConfirmationOrderID(ctx context.Context, sessionID string) (uuid.UUID, error) {
	return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "no order placed in this session")
}

type stubOrderService struct{}

func (stubOrderService) List(ctx context.Context, params pagination.Params) ([]models.Order, int64, error) {
	return []models.Order{}, 0, nil
}

func (stubOrderService) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	return []models.Order{}, 0, nil
}

func (stubOrderService) Detail(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (stubOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "router-test-secret",
		Issuer:            "shopora-test",
		ExpirationMinutes: 15,
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = testJWTConfig()

	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	return NewRouter(cfg, logg, registry, httpMetrics, Services{
		Auth:       stubAuthService{},
		Brands:     stubBrandService{},
		Categories: stubCategoryService{},
		Products:   stubProductService{},
		Coupons:    stubCouponService{},
		Cart:       stubCartService{},
		Addresses:  stubAddressService{},
		Checkout:   stubCheckoutService{},
		Orders:     stubOrderService{},
	})
}

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestMetricsExposed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartMintsSessionHeader(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	sid := resp.Header().Get("X-Session-Id")
	if sid == "" {
		t.Fatal("expected a minted session id header")
	}
	if _, err := uuid.Parse(sid); err != nil {
		t.Fatalf("session id is not a uuid: %q", sid)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/brands/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminRoutesRejectUserRole(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/brands/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestAdminRoutesAllowAdmin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/brands/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPlaceOrderRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/place-order", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestShopListingIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/products?sort=price", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

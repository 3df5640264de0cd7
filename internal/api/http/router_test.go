package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/givehub/marketplace-api/internal/api/http"
	"github.com/givehub/marketplace-api/internal/api/http/handlers"
	"github.com/givehub/marketplace-api/internal/auth"
	"github.com/givehub/marketplace-api/internal/config"
	"github.com/givehub/marketplace-api/internal/domain"
	"github.com/givehub/marketplace-api/internal/events"
	"github.com/givehub/marketplace-api/internal/observability"
	"github.com/givehub/marketplace-api/internal/repository"
	"github.com/givehub/marketplace-api/internal/service"
)

const testSecret = "router-test-secret"

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	for _, existing := range r.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return repository.ErrDuplicateEmail
		}
		if existing.Username == account.Username {
			return repository.ErrDuplicateUsername
		}
	}
	r.nextID++
	account.ID = fmt.Sprintf("acc-%03d", r.nextID)
	account.CreatedAt = time.Now()
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if account, ok := r.accounts[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if strings.EqualFold(account.Email, email) {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) SetVerified(_ context.Context, id string, verified bool) error {
	account, ok := r.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	account.Verified = verified
	return nil
}

func (r *fakeAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, account := range r.accounts {
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

type fakeProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.nextID++
	product.ID = fmt.Sprintf("prod-%03d", r.nextID)
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if product, ok := r.products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProductRepo) ListByStatus(_ context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	var products []domain.Product
	for _, product := range r.products {
		if product.Status == status {
			products = append(products, *product)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) ListBySeller(_ context.Context, sellerID string) ([]domain.Product, error) {
	var products []domain.Product
	for _, product := range r.products {
		if product.SellerID == sellerID {
			products = append(products, *product)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) SetStatus(_ context.Context, id string, status domain.ProductStatus) error {
	product, ok := r.products[id]
	if !ok {
		return pgx.ErrNoRows
	}
	product.Status = status
	return nil
}

type fakeCharityRepo struct {
	charities map[string]*domain.Charity
	nextID    int
}

func (r *fakeCharityRepo) Create(_ context.Context, charity *domain.Charity) error {
	r.nextID++
	charity.ID = fmt.Sprintf("char-%03d", r.nextID)
	stored := *charity
	r.charities[charity.ID] = &stored
	return nil
}

func (r *fakeCharityRepo) GetByID(_ context.Context, id string) (*domain.Charity, error) {
	if charity, ok := r.charities[id]; ok {
		copied := *charity
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCharityRepo) ListApproved(_ context.Context) ([]domain.Charity, error) {
	var charities []domain.Charity
	for _, charity := range r.charities {
		if charity.Approved {
			charities = append(charities, *charity)
		}
	}
	return charities, nil
}

type fakeCategoryRepo struct{}

func (fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "cat-001", Name: "Books", Slug: "books"}}, nil
}

type testEnv struct {
	app       *fiber.App
	accounts  *fakeAccountRepo
	charities *fakeCharityRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accounts := &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
	products := &fakeProductRepo{products: make(map[string]*domain.Product)}
	charities := &fakeCharityRepo{charities: make(map[string]*domain.Charity)}

	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:     testSecret,
		TokenTTLHours: 24,
		BcryptCost:    bcrypt.MinCost,
	}, accounts, dispatcher)

	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ProductRepo:  products,
		CharityRepo:  charities,
		CategoryRepo: fakeCategoryRepo{},
		Dispatcher:   dispatcher,
		Logger:       logger,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Admin:          handlers.NewAdminHandler(authService, catalogService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})

	return &testEnv{app: app, accounts: accounts, charities: charities}
}

func (e *testEnv) seedAdmin(t *testing.T) {
	t.Helper()
	hash, err := auth.HashPassword("admin-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, e.accounts.Create(context.Background(), &domain.Account{
		Email:        "admin@givehub.example",
		Username:     "admin",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Verified:     true,
	}))
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func registerAlice(t *testing.T, env *testEnv) string {
	t.Helper()
	resp, body := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "a@b.com",
		"username": "alice",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func loginAdmin(t *testing.T, env *testEnv) string {
	t.Helper()
	resp, body := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "admin",
		"password":   "admin-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginAndProtectedAccess(t *testing.T) {
	env := newTestEnv(t)

	t1 := registerAlice(t, env)

	// duplicate registration, different email case
	resp, body := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "A@B.com",
		"username": "alice2",
		"password": "secret1",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.IsType(t, "", body["error"])

	// login with username identifier
	resp, body = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "alice",
		"password":   "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	t2, _ := body["token"].(string)
	require.NotEmpty(t, t2)

	// protected route returns alice's public identity
	resp, body = env.do(t, http.MethodGet, "/auth/me", t2, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, _ := body["user"].(map[string]interface{})
	require.Equal(t, "alice", user["username"])
	require.Equal(t, "a@b.com", user["email"])
	require.NotContains(t, user, "password_hash")

	// token from registration also works
	resp, _ = env.do(t, http.MethodGet, "/auth/me", t1, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// user token on an admin route: authenticated but wrong role
	resp, _ = env.do(t, http.MethodGet, "/admin/accounts", t2, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegisterValidationStatus(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "a@b.com",
		"username": "alice",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.IsType(t, "", body["error"])
}

func TestLoginInvalidCredentialsShape(t *testing.T) {
	env := newTestEnv(t)
	registerAlice(t, env)

	resp1, body1 := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "alice",
		"password":   "wrong-password",
	})
	resp2, body2 := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "nobody",
		"password":   "secret1",
	})

	require.Equal(t, http.StatusUnauthorized, resp1.StatusCode)
	require.Equal(t, resp1.StatusCode, resp2.StatusCode)
	require.Equal(t, body1["error"], body2["error"])
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.IsType(t, "", body["error"])
}

func TestProtectedRouteWithExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	registerAlice(t, env)

	// hand-craft a token that expired an hour ago, signed with the right secret
	claims := &auth.Claims{
		SubjectID: "acc-001",
		Email:     "a@b.com",
		Username:  "alice",
		Role:      domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc-001",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp, _ := env.do(t, http.MethodGet, "/auth/me", expired, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminModerationFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	userToken := registerAlice(t, env)
	adminToken := loginAdmin(t, env)

	// anonymous and user-role callers cannot reach admin routes
	resp, _ := env.do(t, http.MethodPost, "/admin/charities", "", map[string]string{"name": "x"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = env.do(t, http.MethodPost, "/admin/charities", userToken, map[string]string{"name": "x"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// admin registers a charity
	resp, body := env.do(t, http.MethodPost, "/admin/charities", adminToken, map[string]string{
		"name":    "Clean Water",
		"website": "https://cleanwater.example",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	charity, _ := body["charity"].(map[string]interface{})
	charityID, _ := charity["id"].(string)
	require.NotEmpty(t, charityID)

	// user lists a product; it enters moderation
	resp, body = env.do(t, http.MethodPost, "/products", userToken, map[string]interface{}{
		"charity_id":       charityID,
		"category_id":      "cat-001",
		"title":            "Handmade Mug",
		"price_cents":      1500,
		"donation_percent": 25,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product, _ := body["product"].(map[string]interface{})
	productID, _ := product["id"].(string)
	require.Equal(t, "PENDING", product["status"])

	// invisible to the public storefront until approved
	resp, body = env.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, body["products"])

	// admin approves
	resp, _ = env.do(t, http.MethodPatch, "/admin/products/"+productID+"/status", adminToken, map[string]string{
		"status": "APPROVED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed, _ := body["products"].([]interface{})
	require.Len(t, listed, 1)

	// seller sees their own listing regardless of status
	resp, body = env.do(t, http.MethodGet, "/me/products", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	own, _ := body["products"].([]interface{})
	require.Len(t, own, 1)
}

func TestAdminVerifyAccount(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)
	registerAlice(t, env)
	adminToken := loginAdmin(t, env)

	var aliceID string
	for id, account := range env.accounts.accounts {
		if account.Username == "alice" {
			aliceID = id
		}
	}
	require.NotEmpty(t, aliceID)

	resp, _ := env.do(t, http.MethodPatch, "/admin/accounts/"+aliceID+"/verify", adminToken, map[string]bool{
		"verified": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.accounts.accounts[aliceID].Verified)
}

func TestPublicCatalogRoutes(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	categories, _ := body["categories"].([]interface{})
	require.Len(t, categories, 1)

	resp, _ = env.do(t, http.MethodGet, "/charities", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/products/missing", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.IsType(t, "", body["error"])
}

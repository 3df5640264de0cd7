package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/givehub/marketplace-api/internal/domain"
	"github.com/givehub/marketplace-api/internal/events"
	"github.com/givehub/marketplace-api/internal/repository"
	apperrors "github.com/givehub/marketplace-api/pkg/util/errorutil"
)

const approvedProductsCacheKey = "catalog:products:approved"

// CatalogService covers listings, charities, categories and moderation.
type CatalogService struct {
	products   repository.ProductRepository
	charities  repository.CharityRepository
	categories repository.CategoryRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CatalogDependencies bundles what the catalog service needs.
type CatalogDependencies struct {
	ProductRepo  repository.ProductRepository
	CharityRepo  repository.CharityRepository
	CategoryRepo repository.CategoryRepository
	Cache        *redis.Client
	CacheTTL     time.Duration
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewCatalogService builds the service. Cache may be nil; reads then go
// straight to the database.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		products:   deps.ProductRepo,
		charities:  deps.CharityRepo,
		categories: deps.CategoryRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListApprovedProducts serves the public storefront, read-through cached.
func (s *CatalogService) ListApprovedProducts(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, approvedProductsCacheKey).Bytes(); err == nil {
			var products []domain.Product
			if err := json.Unmarshal(cached, &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.products.ListByStatus(ctx, domain.ProductStatusApproved)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, approvedProductsCacheKey, encoded, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return products, nil
}

// GetProduct fetches a single listing.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, err
	}
	return product, nil
}

// CreateProductInput carries a new listing request.
type CreateProductInput struct {
	SellerID        string
	CharityID       string
	CategoryID      string
	Title           string
	Description     string
	PriceCents      int64
	DonationPercent int
}

// CreateProduct lists a product for the seller; it enters moderation as
// PENDING and only shows publicly once approved.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Title) == "" || input.CharityID == "" || input.CategoryID == "" {
		return nil, apperrors.NewValidationError("title, charity_id and category_id are required")
	}
	if input.PriceCents < 0 {
		return nil, apperrors.NewValidationError("price must not be negative")
	}
	if input.DonationPercent < 0 || input.DonationPercent > 100 {
		return nil, apperrors.NewValidationError("donation percent must be between 0 and 100")
	}

	if _, err := s.charities.GetByID(ctx, input.CharityID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown charity")
		}
		return nil, err
	}

	product := &domain.Product{
		SellerID:        input.SellerID,
		CharityID:       input.CharityID,
		CategoryID:      input.CategoryID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		PriceCents:      input.PriceCents,
		DonationPercent: input.DonationPercent,
		Status:          domain.ProductStatusPending,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventProductListed, product.ID, events.ProductListedPayload{
		SellerID:  product.SellerID,
		CharityID: product.CharityID,
		Title:     product.Title,
	})
	return product, nil
}

// ListSellerProducts returns the caller's own listings in any status.
func (s *CatalogService) ListSellerProducts(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return s.products.ListBySeller(ctx, sellerID)
}

// ListPendingProducts returns the moderation queue.
func (s *CatalogService) ListPendingProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListByStatus(ctx, domain.ProductStatusPending)
}

// ModerateProduct moves a listing to APPROVED or REJECTED and invalidates
// the public cache.
func (s *CatalogService) ModerateProduct(ctx context.Context, adminID, productID string, status domain.ProductStatus) (*domain.Product, error) {
	if status != domain.ProductStatusApproved && status != domain.ProductStatusRejected {
		return nil, apperrors.NewValidationError("status must be APPROVED or REJECTED")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, err
	}

	oldStatus := product.Status
	if err := s.products.SetStatus(ctx, productID, status); err != nil {
		return nil, err
	}
	product.Status = status

	s.invalidateApprovedCache(ctx)
	s.publish(ctx, events.EventProductStatusChanged, product.ID, events.ProductStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: status,
		AdminID:   adminID,
	})
	return product, nil
}

// ListCharities returns approved charities for the storefront.
func (s *CatalogService) ListCharities(ctx context.Context) ([]domain.Charity, error) {
	return s.charities.ListApproved(ctx)
}

// CreateCharity registers a charity, admin only.
func (s *CatalogService) CreateCharity(ctx context.Context, adminID, name, description, website string) (*domain.Charity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("charity name is required")
	}

	charity := &domain.Charity{
		Name:        strings.TrimSpace(name),
		Description: description,
		Website:     website,
		Approved:    true,
	}
	if err := s.charities.Create(ctx, charity); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCharityCreated, charity.ID, events.CharityCreatedPayload{
		Name:    charity.Name,
		AdminID: adminID,
	})
	return charity, nil
}

// ListCategories returns browse categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) invalidateApprovedCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, approvedProductsCacheKey).Err(); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CatalogService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, subjectID, payload))
}

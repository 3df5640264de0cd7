package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/givehub/marketplace-api/internal/api/dto"
	"github.com/givehub/marketplace-api/internal/auth"
	"github.com/givehub/marketplace-api/internal/service"
	apperrors "github.com/givehub/marketplace-api/pkg/util/errorutil"
)

// CatalogHandler exposes public browsing and seller listing endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListApprovedProducts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

// GetProduct handles GET /products/:id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": product})
}

// CreateProduct handles POST /products for authenticated sellers.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	product, err := h.catalog.CreateProduct(c.Context(), service.CreateProductInput{
		SellerID:        claims.SubjectID,
		CharityID:       req.CharityID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DonationPercent: req.DonationPercent,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"product": product})
}

// ListOwnProducts handles GET /me/products.
func (h *CatalogHandler) ListOwnProducts(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	products, err := h.catalog.ListSellerProducts(c.Context(), claims.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

// ListCharities handles GET /charities.
func (h *CatalogHandler) ListCharities(c *fiber.Ctx) error {
	charities, err := h.catalog.ListCharities(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"charities": charities})
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": categories})
}

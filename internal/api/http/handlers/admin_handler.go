package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/givehub/marketplace-api/internal/api/dto"
	"github.com/givehub/marketplace-api/internal/auth"
	"github.com/givehub/marketplace-api/internal/domain"
	"github.com/givehub/marketplace-api/internal/service"
	apperrors "github.com/givehub/marketplace-api/pkg/util/errorutil"
)

// AdminHandler exposes moderation endpoints. All routes behind the admin gate.
type AdminHandler struct {
	auth    *service.AuthService
	catalog *service.CatalogService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, catalog *service.CatalogService) *AdminHandler {
	return &AdminHandler{auth: authService, catalog: catalog}
}

// ListPendingProducts handles GET /admin/products/pending.
func (h *AdminHandler) ListPendingProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListPendingProducts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

// ModerateProduct handles PATCH /admin/products/:id/status.
func (h *AdminHandler) ModerateProduct(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.ModerateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	product, err := h.catalog.ModerateProduct(c.Context(), claims.SubjectID, c.Params("id"), domain.ProductStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": product})
}

// CreateCharity handles POST /admin/charities.
func (h *AdminHandler) CreateCharity(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CreateCharityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	charity, err := h.catalog.CreateCharity(c.Context(), claims.SubjectID, req.Name, req.Description, req.Website)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"charity": charity})
}

// ListAccounts handles GET /admin/accounts.
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.auth.ListAccounts(c.Context())
	if err != nil {
		return err
	}

	public := make([]domain.PublicAccount, 0, len(accounts))
	for i := range accounts {
		public = append(public, accounts[i].Public())
	}
	return c.JSON(fiber.Map{"accounts": public})
}

// VerifyAccount handles PATCH /admin/accounts/:id/verify.
func (h *AdminHandler) VerifyAccount(c *fiber.Ctx) error {
	var req dto.VerifyAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.auth.SetVerified(c.Context(), c.Params("id"), req.Verified); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "account updated"})
}

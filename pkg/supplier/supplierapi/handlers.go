package supplierapi

import (
	"github.com/Abraxas-365/supplierportal/pkg/iam"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth"
	"github.com/Abraxas-365/supplierportal/pkg/supplier"
	"github.com/gofiber/fiber/v2"
)

// SupplierHandlers serves the dashboard data of the signed-in supplier
type SupplierHandlers struct {
	repo supplier.Repository
}

func NewSupplierHandlers(repo supplier.Repository) *SupplierHandlers {
	return &SupplierHandlers{repo: repo}
}

// RegisterRoutes mounts GET /getSupplierData behind authMiddleware
func (h *SupplierHandlers) RegisterRoutes(router fiber.Router, authMiddleware ...fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, authMiddleware...), h.GetSupplierData)
	router.Get("/getSupplierData", handlers...)
}

// GetSupplierData returns data for the account bound to the session only
func (h *SupplierHandlers) GetSupplierData(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	data, err := h.repo.FindByAccount(c.UserContext(), authCtx.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(data)
}

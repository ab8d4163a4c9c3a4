package reportapi

import (
	"github.com/Abraxas-365/supplierportal/pkg/iam"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth"
	"github.com/Abraxas-365/supplierportal/pkg/logx"
	"github.com/Abraxas-365/supplierportal/pkg/report"
	"github.com/gofiber/fiber/v2"
)

type ReportHandlers struct {
	provider report.Provider
}

func NewReportHandlers(provider report.Provider) *ReportHandlers {
	return &ReportHandlers{provider: provider}
}

// RegisterRoutes mounts GET /getPowerBIToken behind authMiddleware
func (h *ReportHandlers) RegisterRoutes(router fiber.Router, authMiddleware ...fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, authMiddleware...), h.GetPowerBIToken)
	router.Get("/getPowerBIToken", handlers...)
}

// GetPowerBIToken returns an embed configuration restricted to the session's account
func (h *ReportHandlers) GetPowerBIToken(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return iam.ErrUnauthorized()
	}

	cfg, err := h.provider.EmbedToken(c.UserContext(), report.Viewer{
		Email:     authCtx.Email,
		AccountID: authCtx.AccountID,
	})
	if err != nil {
		logx.WithContext(c.UserContext()).
			WithField("account_id", authCtx.AccountID).
			WithError(err).
			Error("Error generating PowerBI token")
		return err
	}
	return c.JSON(cfg)
}

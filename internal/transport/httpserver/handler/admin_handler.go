package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"arena-feed-service/internal/app/service"
	"arena-feed-service/internal/transport/httpserver/dto"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	syncService     *service.HighlightSyncService
	trendingService *service.TrendingService
	logger          *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(syncSvc *service.HighlightSyncService, trendingSvc *service.TrendingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		syncService:     syncSvc,
		trendingService: trendingSvc,
		logger:          logger,
	}
}

// SyncAll handles POST /api/v1/admin/sync
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.Context())

	return c.JSON(dto.FromSyncResults(results))
}

// SyncProvider handles POST /api/v1/admin/sync/:provider
func (h *AdminHandler) SyncProvider(c *fiber.Ctx) error {
	providerName := c.Params("provider")
	if providerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "provider name is required",
			Code:  "MISSING_PROVIDER",
		})
	}

	h.logger.Info("manual provider sync triggered", zap.String("provider", providerName))

	result, err := h.syncService.SyncProvider(c.Context(), providerName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "SYNC_FAILED",
		})
	}

	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "provider not found",
			Code:  "PROVIDER_NOT_FOUND",
		})
	}

	return c.JSON(dto.SyncResultResponse{
		Provider: result.Provider,
		Count:    result.Count,
		Duration: result.Duration.String(),
	})
}

// GetProviders handles GET /api/v1/admin/providers
func (h *AdminHandler) GetProviders(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"providers": h.syncService.GetProviderNames(),
	})
}

// RefreshTrending handles POST /api/v1/admin/trending/refresh
func (h *AdminHandler) RefreshTrending(c *fiber.Ctx) error {
	h.logger.Info("manual trending refresh triggered")

	updated, err := h.trendingService.Refresh(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(fiber.Map{
		"updated": updated,
	})
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"arena-feed-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.StatsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		statsService: svc,
		logger:       logger,
	}
}

// Render handles GET /dashboard
// Renders the operator dashboard using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	overview, err := h.statsService.Overview(c.Context())
	if err != nil {
		h.logger.Error("dashboard overview failed", zap.Error(err))

		return fiber.NewError(fiber.StatusInternalServerError, "failed to load dashboard")
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":       "Arena Feed Dashboard",
		"Posts":       overview.Counts["posts"],
		"Videos":      overview.Counts["videos"],
		"Profiles":    overview.Counts["profiles"],
		"TopTrending": overview.TopTrending,
	}, "layouts/base")
}

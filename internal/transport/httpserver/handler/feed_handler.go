// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"arena-feed-service/internal/app/service"
	"arena-feed-service/internal/transport/httpserver/dto"
	"arena-feed-service/internal/validator"
)

// FeedHandler handles feed-related HTTP requests.
type FeedHandler struct {
	service   *service.FeedService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(svc *service.FeedService, v *validator.Validator, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Feed handles GET /feed
func (h *FeedHandler) Feed(c *fiber.Ctx) error {
	var req dto.FeedRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	page, err := h.service.Feed(c.Context(), req.ToFeedParams())
	if err != nil {
		h.logger.Error("feed request failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to assemble feed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromFeedPage(page, req.Paginated))
}

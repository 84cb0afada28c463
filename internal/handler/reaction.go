package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ritik0027/SnapTube-Backend/internal/middleware"
	"github.com/ritik0027/SnapTube-Backend/internal/model"
	"github.com/ritik0027/SnapTube-Backend/internal/service"
)

type ReactionHandler struct {
	reactions  *service.ReactionService
	engagement *service.EngagementService
}

func NewReactionHandler(reactions *service.ReactionService, engagement *service.EngagementService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions, engagement: engagement}
}

// Set handles PUT /api/reactions/:kind/:id
func (h *ReactionHandler) Set(c fiber.Ctx) error {
	target, ok, err := parseTarget(c)
	if !ok {
		return err
	}

	var req model.ReactionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	state, errMsg := middleware.ValidateReactionState(req.State)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	summary, err := h.reactions.SetReaction(c.Context(), target, middleware.CallerID(c), state)
	if err != nil {
		return writeError(c, err, "Failed to set reaction")
	}
	return c.JSON(summary)
}

// Get handles GET /api/reactions/:kind/:id
func (h *ReactionHandler) Get(c fiber.Ctx) error {
	target, ok, err := parseTarget(c)
	if !ok {
		return err
	}

	view, err := h.engagement.View(c.Context(), target, middleware.CallerID(c))
	if err != nil {
		return writeError(c, err, "Failed to load reactions")
	}
	return c.JSON(view)
}

// parseTarget reads :kind and :id. When ok is false the error response has
// already been written and err is what the handler returns.
func parseTarget(c fiber.Ctx) (model.Target, bool, error) {
	kind, errMsg := middleware.ValidateTargetKind(c.Params("kind"))
	if errMsg != "" {
		return model.Target{}, false, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	id, errMsg := middleware.ValidateID("id", c.Params("id"))
	if errMsg != "" {
		return model.Target{}, false, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	return model.Target{Kind: kind, ID: id}, true, nil
}

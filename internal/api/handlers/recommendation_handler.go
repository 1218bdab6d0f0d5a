package handlers

import (
	"errors"
	"strconv"
	"time"

	"content-recsys/internal/service"
	"content-recsys/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// timeLayouts are the accepted formats of the time query parameter.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

// GetRecommendations godoc
// @Summary Get post recommendations for a user
// @Description Returns the posts the user is most likely to like, excluding posts already liked
// @Tags recommendations
// @Produce json
// @Param id query int true "User ID"
// @Param time query string true "Request timestamp (RFC3339 or 'YYYY-MM-DD HH:MM:SS')"
// @Param limit query int false "Maximum number of posts" default(10)
// @Success 200 {array} dto.PostResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /post/recommendations/ [get]
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	idParam := c.Query("id")
	if idParam == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id query parameter is required")
	}
	userID, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id must be an integer")
	}

	at, err := parseTime(c.Query("time"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	limit := 10
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be an integer")
		}
		if limit < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must not be negative")
		}
	}

	posts, err := h.recService.Recommend(c.Context(), userID, at, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User ID not found")
		}
		h.logger.Error("Failed to compute recommendations",
			zap.Int64("user_id", userID),
			zap.Any("request_id", c.Locals(middleware.RequestIDKey)),
			zap.Error(err),
		)
		return fiber.ErrInternalServerError
	}

	return c.JSON(posts)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("time query parameter is required")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("time must be a valid timestamp")
}

package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ritik0027/SnapTube-Backend/internal/middleware"
	"github.com/ritik0027/SnapTube-Backend/internal/model"
	"github.com/ritik0027/SnapTube-Backend/internal/service"
)

type FeedHandler struct {
	svc             *service.FeedService
	defaultPageSize int
}

func NewFeedHandler(svc *service.FeedService, defaultPageSize int) *FeedHandler {
	return &FeedHandler{svc: svc, defaultPageSize: defaultPageSize}
}

// Video handles GET /api/videos/:videoId
func (h *FeedHandler) Video(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID("videoId", c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.svc.Video(c.Context(), videoID, middleware.CallerID(c))
	if err != nil {
		return writeError(c, err, "Failed to load video")
	}
	return c.JSON(video)
}

// VideoComments handles GET /api/videos/:videoId/comments
func (h *FeedHandler) VideoComments(c fiber.Ctx) error {
	return h.listByParent(c, model.KindComment, "videoId")
}

// UserVideos handles GET /api/users/:userId/videos
func (h *FeedHandler) UserVideos(c fiber.Ctx) error {
	return h.listByParent(c, model.KindVideo, "userId")
}

// UserTweets handles GET /api/users/:userId/tweets
func (h *FeedHandler) UserTweets(c fiber.Ctx) error {
	return h.listByParent(c, model.KindTweet, "userId")
}

func (h *FeedHandler) listByParent(c fiber.Ctx, kind model.TargetKind, param string) error {
	parentID, errMsg := middleware.ValidateID(param, c.Params(param))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	page, ok, err := h.paging(c)
	if !ok {
		return err
	}

	res, err := h.svc.ListByTarget(c.Context(), kind, parentID, middleware.CallerID(c), page)
	if err != nil {
		return writeError(c, err, "Failed to load feed")
	}
	return c.JSON(res)
}

// Subscriptions handles GET /api/feed/subscriptions?kind=video|tweet
func (h *FeedHandler) Subscriptions(c fiber.Ctx) error {
	kind := model.KindVideo
	if raw := c.Query("kind"); raw != "" {
		var errMsg string
		if kind, errMsg = middleware.ValidateTargetKind(raw); errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}
	page, ok, err := h.paging(c)
	if !ok {
		return err
	}

	res, err := h.svc.ListBySubscription(c.Context(), kind, middleware.CallerID(c), page)
	if err != nil {
		return writeError(c, err, "Failed to load subscriptions feed")
	}
	return c.JSON(res)
}

// Search handles GET /api/videos?query&userId&sortBy&sortType
func (h *FeedHandler) Search(c fiber.Ctx) error {
	query, errMsg := middleware.ValidateQuery(c.Query("query"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	var ownerID string
	if raw := c.Query("userId"); raw != "" {
		if ownerID, errMsg = middleware.ValidateID("userId", raw); errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
	}
	sortField, sortOrder, errMsg := middleware.ValidateSort(c.Query("sortBy"), c.Query("sortType"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	page, ok, err := h.paging(c)
	if !ok {
		return err
	}

	res, err := h.svc.Search(c.Context(), service.SearchRequest{
		Query:     query,
		OwnerID:   ownerID,
		SortField: sortField,
		SortOrder: sortOrder,
		Caller:    middleware.CallerID(c),
		Page:      page,
	})
	if err != nil {
		return writeError(c, err, "Failed to search videos")
	}
	return c.JSON(res)
}

// LikedVideos handles GET /api/users/me/liked-videos
func (h *FeedHandler) LikedVideos(c fiber.Ctx) error {
	page, ok, err := h.paging(c)
	if !ok {
		return err
	}

	res, err := h.svc.LikedVideos(c.Context(), middleware.CallerID(c), page)
	if err != nil {
		return writeError(c, err, "Failed to load liked videos")
	}
	return c.JSON(res)
}

func (h *FeedHandler) paging(c fiber.Ctx) (service.PageRequest, bool, error) {
	page, size, errMsg := middleware.ParsePaging(c, h.defaultPageSize)
	if errMsg != "" {
		return service.PageRequest{}, false, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	return service.PageRequest{Page: page, PageSize: size}, true, nil
}

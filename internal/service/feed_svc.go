package service

import (
	"context"
	"fmt"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// SearchRequest describes a video search.
type SearchRequest struct {
	Query     string
	OwnerID   string
	SortField string
	SortOrder string
	Caller    *string
	Page      PageRequest
}

// FeedService orders, filters and paginates content, then annotates each page
// with engagement views.
type FeedService struct {
	content     ContentStore
	reactions   ReactionStore
	engagement  *EngagementService
	maxPageSize int
}

func NewFeedService(content ContentStore, reactions ReactionStore, engagement *EngagementService, maxPageSize int) *FeedService {
	return &FeedService{
		content:     content,
		reactions:   reactions,
		engagement:  engagement,
		maxPageSize: maxPageSize,
	}
}

// Video returns a single published video with its engagement view.
func (s *FeedService) Video(ctx context.Context, videoID string, caller *string) (*model.AnnotatedItem, error) {
	video, err := s.content.GetContentItem(ctx, model.KindVideo, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished {
		return nil, fmt.Errorf("video %s: %w", videoID, model.ErrNotFound)
	}
	annotated, err := s.engagement.Annotate(ctx, []model.ContentItem{*video}, AnnotateOptions{
		Caller:           caller,
		HighlightLikesBy: video.OwnerID,
	})
	if err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// ListByTarget lists the comments of a video, or the videos or tweets of a user,
// newest first. Comments flag the ones liked by the video's owner.
func (s *FeedService) ListByTarget(ctx context.Context, kind model.TargetKind, parentID string, caller *string, page PageRequest) (*model.PagedResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown target kind %q", model.ErrInvalidInput, kind)
	}
	if parentID == "" {
		return nil, fmt.Errorf("%w: parent id is required", model.ErrInvalidInput)
	}
	if err := page.validate(s.maxPageSize); err != nil {
		return nil, err
	}

	opts := AnnotateOptions{Caller: caller}
	if kind == model.KindComment {
		video, err := s.content.GetContentItem(ctx, model.KindVideo, parentID)
		if err != nil {
			return nil, err
		}
		if !video.IsPublished {
			return nil, fmt.Errorf("video %s: %w", parentID, model.ErrNotFound)
		}
		opts.HighlightLikesBy = video.OwnerID
	}

	items, total, err := s.content.ListByParent(ctx, kind, parentID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return s.annotatePage(ctx, items, total, page, opts)
}

// ListBySubscription lists videos or tweets published by channels the caller
// subscribes to, newest first.
func (s *FeedService) ListBySubscription(ctx context.Context, kind model.TargetKind, caller *string, page PageRequest) (*model.PagedResult, error) {
	if kind != model.KindVideo && kind != model.KindTweet {
		return nil, fmt.Errorf("%w: subscription feed supports videos and tweets", model.ErrInvalidInput)
	}
	userID, ok := callerID(caller)
	if !ok {
		return nil, fmt.Errorf("%w: sign in to see your subscriptions", model.ErrUnauthorized)
	}
	if err := page.validate(s.maxPageSize); err != nil {
		return nil, err
	}

	channels, err := s.content.GetSubscribedChannelIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return buildPage(nil, 0, page), nil
	}

	items, total, err := s.content.ListByOwners(ctx, kind, channels, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return s.annotatePage(ctx, items, total, page, AnnotateOptions{Caller: caller})
}

// Search ranks published videos against a free-text query.
func (s *FeedService) Search(ctx context.Context, req SearchRequest) (*model.PagedResult, error) {
	if err := req.Page.validate(s.maxPageSize); err != nil {
		return nil, err
	}
	spec, explicit, err := parseSort(req.SortField, req.SortOrder)
	if err != nil {
		return nil, err
	}

	tokens := tokenizeQuery(req.Query)
	videos, err := s.content.ListVideos(ctx, req.OwnerID, tokens)
	if err != nil {
		return nil, err
	}

	var order *sortSpec
	if explicit {
		order = &spec
	}
	ranked := rankVideos(videos, tokens, order)

	return s.annotatePage(ctx, pageSlice(ranked, req.Page), len(ranked), req.Page, AnnotateOptions{Caller: req.Caller})
}

// LikedVideos lists the videos the caller liked, most recently liked first.
// Unpublished videos are left out of the page; TotalItems still counts every
// like the caller holds, so such a page can be shorter than PageSize.
func (s *FeedService) LikedVideos(ctx context.Context, caller *string, page PageRequest) (*model.PagedResult, error) {
	userID, ok := callerID(caller)
	if !ok {
		return nil, fmt.Errorf("%w: sign in to see liked videos", model.ErrUnauthorized)
	}
	if err := page.validate(s.maxPageSize); err != nil {
		return nil, err
	}

	ids, total, err := s.reactions.ListTargetIDsByUser(ctx, model.KindVideo, userID, model.StateLiked, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return buildPage(nil, total, page), nil
	}

	videos, err := s.content.GetContentItems(ctx, model.KindVideo, ids)
	if err != nil {
		return nil, err
	}
	published := videos[:0]
	for _, v := range videos {
		if v.IsPublished {
			published = append(published, v)
		}
	}
	return s.annotatePage(ctx, published, total, page, AnnotateOptions{Caller: caller})
}

func (s *FeedService) annotatePage(ctx context.Context, items []model.ContentItem, total int, page PageRequest, opts AnnotateOptions) (*model.PagedResult, error) {
	annotated, err := s.engagement.Annotate(ctx, items, opts)
	if err != nil {
		return nil, err
	}
	return buildPage(annotated, total, page), nil
}

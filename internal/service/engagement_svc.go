package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ritik0027/SnapTube-Backend/internal/metrics"
	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// AnnotateOptions carries the caller-relative inputs of an engagement view.
type AnnotateOptions struct {
	// Caller is the resolved identity, nil for anonymous requests.
	Caller *string
	// HighlightLikesBy sets LikedByContentOwner on items this user liked.
	// Empty disables the flag.
	HighlightLikesBy string
}

// reactorSets holds the user ids per state for one target.
type reactorSets struct {
	liked    map[string]struct{}
	disliked map[string]struct{}
}

func (r *reactorSets) add(state model.ReactionState, userIDs []string) {
	var set map[string]struct{}
	switch state {
	case model.StateLiked:
		if r.liked == nil {
			r.liked = make(map[string]struct{}, len(userIDs))
		}
		set = r.liked
	case model.StateDisliked:
		if r.disliked == nil {
			r.disliked = make(map[string]struct{}, len(userIDs))
		}
		set = r.disliked
	default:
		return
	}
	for _, id := range userIDs {
		set[id] = struct{}{}
	}
}

func (r *reactorSets) has(state model.ReactionState, userID string) bool {
	if r == nil || userID == "" {
		return false
	}
	var ok bool
	switch state {
	case model.StateLiked:
		_, ok = r.liked[userID]
	case model.StateDisliked:
		_, ok = r.disliked[userID]
	}
	return ok
}

// EngagementService joins content against reactions and owner profiles.
type EngagementService struct {
	reactions ReactionStore
	content   ContentStore
	log       zerolog.Logger
}

func NewEngagementService(reactions ReactionStore, content ContentStore, log zerolog.Logger) *EngagementService {
	return &EngagementService{
		reactions: reactions,
		content:   content,
		log:       log.With().Str("component", "engagement").Logger(),
	}
}

// Annotate attaches owner profiles and engagement views to items, preserving
// their order. Reactions are fetched with one grouped lookup per target kind and
// owners with one batched lookup. A failed owner lookup leaves owners empty; a
// failed reaction lookup fails the call.
func (s *EngagementService) Annotate(ctx context.Context, items []model.ContentItem, opts AnnotateOptions) ([]model.AnnotatedItem, error) {
	out := make([]model.AnnotatedItem, len(items))
	if len(items) == 0 {
		return out, nil
	}
	metrics.AnnotateBatchSize.Observe(float64(len(items)))

	var kinds []model.TargetKind
	idsByKind := make(map[model.TargetKind][]string)
	for _, it := range items {
		if _, seen := idsByKind[it.Kind]; !seen {
			kinds = append(kinds, it.Kind)
		}
		idsByKind[it.Kind] = append(idsByKind[it.Kind], it.ID)
	}

	reactors := make(map[model.Target]*reactorSets, len(items))
	for _, kind := range kinds {
		groups, err := s.reactions.GroupByTargets(ctx, kind, idsByKind[kind])
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			key := model.Target{Kind: kind, ID: g.TargetID}
			sets, ok := reactors[key]
			if !ok {
				sets = &reactorSets{}
				reactors[key] = sets
			}
			sets.add(g.State, g.UserIDs)
		}
	}

	owners := s.lookupOwners(ctx, items)

	for i, it := range items {
		out[i] = model.AnnotatedItem{
			ContentItem: it,
			Owner:       owners[it.OwnerID],
			Engagement:  computeView(it, reactors[it.Target()], opts),
		}
	}
	return out, nil
}

// View returns the engagement view of a single target. For videos the owner's
// own like is highlighted.
func (s *EngagementService) View(ctx context.Context, target model.Target, caller *string) (*model.EngagementView, error) {
	item, err := s.content.GetContentItem(ctx, target.Kind, target.ID)
	if err != nil {
		return nil, err
	}
	opts := AnnotateOptions{Caller: caller}
	if item.Kind == model.KindVideo {
		opts.HighlightLikesBy = item.OwnerID
	}
	annotated, err := s.Annotate(ctx, []model.ContentItem{*item}, opts)
	if err != nil {
		return nil, err
	}
	return &annotated[0].Engagement, nil
}

func (s *EngagementService) lookupOwners(ctx context.Context, items []model.ContentItem) map[string]model.OwnerProfile {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.OwnerID == "" {
			continue
		}
		if _, ok := seen[it.OwnerID]; ok {
			continue
		}
		seen[it.OwnerID] = struct{}{}
		ids = append(ids, it.OwnerID)
	}
	if len(ids) == 0 {
		return nil
	}

	profiles, err := s.content.GetOwnerProfiles(ctx, ids)
	if err != nil {
		metrics.OwnerLookupFailures.Inc()
		s.log.Warn().Err(err).Int("owners", len(ids)).Msg("owner lookup failed, returning items without owners")
		return nil
	}
	if missing := len(ids) - len(profiles); missing > 0 {
		s.log.Debug().Int("missing", missing).Msg("owner profiles not found")
	}
	return profiles
}

// computeView derives the engagement view of one item from its reactor sets.
// sets may be nil when nobody reacted.
func computeView(item model.ContentItem, sets *reactorSets, opts AnnotateOptions) model.EngagementView {
	view := model.EngagementView{CallerReaction: model.StateNone}
	if sets != nil {
		view.LikeCount = len(sets.liked)
		view.DislikeCount = len(sets.disliked)
	}

	if caller, ok := callerID(opts.Caller); ok {
		switch {
		case sets.has(model.StateLiked, caller):
			view.CallerReaction = model.StateLiked
		case sets.has(model.StateDisliked, caller):
			view.CallerReaction = model.StateDisliked
		}
		view.IsOwner = caller == item.OwnerID
	}

	view.LikedByContentOwner = sets.has(model.StateLiked, opts.HighlightLikesBy)
	return view
}

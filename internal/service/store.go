package service

import (
	"context"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// ReactionStore is the persistence contract for reaction rows. Implementations
// enforce uniqueness of (kind, target id, user id) and report violations as
// model.ErrConflict.
type ReactionStore interface {
	// Find returns the caller's reaction on target, or model.ErrNotFound.
	Find(ctx context.Context, target model.Target, userID string) (*model.Reaction, error)
	FindAllByTarget(ctx context.Context, target model.Target) ([]model.Reaction, error)
	// GroupByTargets returns, in one lookup, the reactor ids per target and state.
	GroupByTargets(ctx context.Context, kind model.TargetKind, targetIDs []string) ([]model.ReactorGroup, error)
	Create(ctx context.Context, r *model.Reaction) error
	// UpdateState flips a row only if it still holds from.
	UpdateState(ctx context.Context, id string, from, to model.ReactionState) error
	// Delete removes a row only if it still holds state.
	Delete(ctx context.Context, id string, state model.ReactionState) error
	ListTargetIDsByUser(ctx context.Context, kind model.TargetKind, userID string, state model.ReactionState, limit, offset int) ([]string, int, error)
}

// ContentStore gives read access to videos, comments, tweets, user profiles and
// subscription edges.
type ContentStore interface {
	GetContentItem(ctx context.Context, kind model.TargetKind, id string) (*model.ContentItem, error)
	// GetContentItems returns the items found, in the order of ids.
	GetContentItems(ctx context.Context, kind model.TargetKind, ids []string) ([]model.ContentItem, error)
	GetOwnerProfiles(ctx context.Context, userIDs []string) (map[string]model.OwnerProfile, error)
	GetSubscribedChannelIDs(ctx context.Context, userID string) ([]string, error)
	// ListByParent lists comments of a video, or videos/tweets of a user, newest first.
	ListByParent(ctx context.Context, kind model.TargetKind, parentID string, limit, offset int) ([]model.ContentItem, int, error)
	ListByOwners(ctx context.Context, kind model.TargetKind, ownerIDs []string, limit, offset int) ([]model.ContentItem, int, error)
	// ListVideos returns published videos, optionally restricted to one owner.
	// With tokens, only videos whose title or description contains at least one
	// token as a substring are returned; callers refine to whole words.
	ListVideos(ctx context.Context, ownerID string, tokens []string) ([]model.ContentItem, error)
}

// callerID unwraps an optional caller identity.
func callerID(caller *string) (string, bool) {
	if caller == nil || *caller == "" {
		return "", false
	}
	return *caller, true
}

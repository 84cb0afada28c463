package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
	"github.com/ritik0027/SnapTube-Backend/internal/repository"
)

const testMaxPageSize = 50

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// fixture is a seeded in-memory store with the services built on top of it.
type fixture struct {
	store      *repository.MemoryStore
	reactions  *ReactionService
	engagement *EngagementService
	feed       *FeedService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	return newFixtureWith(store, store)
}

func newFixtureWith(store *repository.MemoryStore, content ContentStore) *fixture {
	engagement := NewEngagementService(store, content, zerolog.Nop())
	return &fixture{
		store:      store,
		reactions:  NewReactionService(store, content, zerolog.Nop()),
		engagement: engagement,
		feed:       NewFeedService(content, store, engagement, testMaxPageSize),
	}
}

func (f *fixture) user(id string) {
	f.store.AddUser(model.OwnerProfile{ID: id, Username: "user" + id, FullName: "User " + id})
}

// video adds a published video created minutesAgo before baseTime.
func (f *fixture) video(id, owner, title, description string, minutesAgo int) model.ContentItem {
	it := model.ContentItem{
		ID:          id,
		Kind:        model.KindVideo,
		OwnerID:     owner,
		Title:       title,
		Description: description,
		IsPublished: true,
		CreatedAt:   baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
	}
	f.store.AddContent(it)
	return it
}

func (f *fixture) comment(id, videoID, owner string, minutesAgo int) {
	f.store.AddContent(model.ContentItem{
		ID:        id,
		Kind:      model.KindComment,
		OwnerID:   owner,
		ParentID:  videoID,
		Content:   "comment " + id,
		CreatedAt: baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
	})
}

func (f *fixture) tweet(id, owner string, minutesAgo int) {
	f.store.AddContent(model.ContentItem{
		ID:        id,
		Kind:      model.KindTweet,
		OwnerID:   owner,
		Content:   "tweet " + id,
		CreatedAt: baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
	})
}

func (f *fixture) react(t *testing.T, kind model.TargetKind, id, user string, state model.ReactionState) *model.ReactionSummary {
	t.Helper()
	sum, err := f.reactions.SetReaction(context.Background(), model.Target{Kind: kind, ID: id}, strPtr(user), state)
	if err != nil {
		t.Fatalf("SetReaction(%s %s, %s, %s) error = %v", kind, id, user, state, err)
	}
	return sum
}

func ids(items []model.AnnotatedItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// failingOwners wraps a content store and fails every owner lookup.
type failingOwners struct {
	ContentStore
}

func (failingOwners) GetOwnerProfiles(context.Context, []string) (map[string]model.OwnerProfile, error) {
	return nil, fmt.Errorf("users table: %w", model.ErrStorageUnavailable)
}

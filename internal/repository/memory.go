package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

type reactionKey struct {
	target model.Target
	userID string
}

// MemoryStore is an in-process reaction and content store with the same
// semantics as the Postgres repositories, including the uniqueness of
// (kind, target id, user id). It backs the --in-memory and --seed server
// modes and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	reactions map[string]model.Reaction
	byKey     map[reactionKey]string
	users     map[string]model.OwnerProfile
	items     map[model.Target]model.ContentItem
	subs      map[string]map[string]struct{}
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reactions: make(map[string]model.Reaction),
		byKey:     make(map[reactionKey]string),
		users:     make(map[string]model.OwnerProfile),
		items:     make(map[model.Target]model.ContentItem),
		subs:      make(map[string]map[string]struct{}),
		now:       time.Now,
	}
}

// AddUser stores a user profile.
func (m *MemoryStore) AddUser(p model.OwnerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[p.ID] = p
}

// AddContent stores a video, comment or tweet.
func (m *MemoryStore) AddContent(it model.ContentItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[it.Target()] = it
}

// Subscribe records subscriberID following channelID.
func (m *MemoryStore) Subscribe(subscriberID, channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.subs[subscriberID]
	if !ok {
		set = make(map[string]struct{})
		m.subs[subscriberID] = set
	}
	set[channelID] = struct{}{}
}

// Reactions returns a snapshot of all stored reactions.
func (m *MemoryStore) Reactions() []model.Reaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Reaction, 0, len(m.reactions))
	for _, r := range m.reactions {
		out = append(out, r)
	}
	sortReactions(out)
	return out
}

func sortReactions(rs []model.Reaction) {
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].CreatedAt.Equal(rs[j].CreatedAt) {
			return rs[i].CreatedAt.Before(rs[j].CreatedAt)
		}
		return rs[i].ID < rs[j].ID
	})
}

// --- reactions ---

func (m *MemoryStore) Find(_ context.Context, target model.Target, userID string) (*model.Reaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byKey[reactionKey{target, userID}]
	if !ok {
		return nil, fmt.Errorf("find reaction: %w", model.ErrNotFound)
	}
	r := m.reactions[id]
	return &r, nil
}

func (m *MemoryStore) FindAllByTarget(_ context.Context, target model.Target) ([]model.Reaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Reaction
	for _, r := range m.reactions {
		if r.Target == target {
			out = append(out, r)
		}
	}
	sortReactions(out)
	return out, nil
}

func (m *MemoryStore) GroupByTargets(_ context.Context, kind model.TargetKind, targetIDs []string) ([]model.ReactorGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[string]struct{}, len(targetIDs))
	for _, id := range targetIDs {
		wanted[id] = struct{}{}
	}

	var matched []model.Reaction
	for _, r := range m.reactions {
		if _, ok := wanted[r.Target.ID]; ok && r.Target.Kind == kind {
			matched = append(matched, r)
		}
	}
	sortReactions(matched)

	type groupKey struct {
		targetID string
		state    model.ReactionState
	}
	index := make(map[groupKey]int)
	var groups []model.ReactorGroup
	for _, r := range matched {
		k := groupKey{r.Target.ID, r.State}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, model.ReactorGroup{TargetID: r.Target.ID, State: r.State})
		}
		groups[i].UserIDs = append(groups[i].UserIDs, r.UserID)
	}
	return groups, nil
}

func (m *MemoryStore) Create(_ context.Context, r *model.Reaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := reactionKey{r.Target, r.UserID}
	if _, dup := m.byKey[key]; dup {
		return fmt.Errorf("create reaction: %w (reactions_target_user_key)", model.ErrConflict)
	}
	if _, dup := m.reactions[r.ID]; dup {
		return fmt.Errorf("create reaction: %w (reactions_pkey)", model.ErrConflict)
	}
	m.reactions[r.ID] = *r
	m.byKey[key] = r.ID
	return nil
}

func (m *MemoryStore) UpdateState(_ context.Context, id string, from, to model.ReactionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reactions[id]
	if !ok || r.State != from {
		return fmt.Errorf("update reaction %s: %w: state changed concurrently", id, model.ErrConflict)
	}
	r.State = to
	r.UpdatedAt = m.now().UTC()
	m.reactions[id] = r
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string, state model.ReactionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reactions[id]
	if !ok || r.State != state {
		return fmt.Errorf("delete reaction %s: %w: state changed concurrently", id, model.ErrConflict)
	}
	delete(m.reactions, id)
	delete(m.byKey, reactionKey{r.Target, r.UserID})
	return nil
}

func (m *MemoryStore) ListTargetIDsByUser(_ context.Context, kind model.TargetKind, userID string, state model.ReactionState, limit, offset int) ([]string, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []model.Reaction
	for _, r := range m.reactions {
		if r.Target.Kind == kind && r.UserID == userID && r.State == state {
			matched = append(matched, r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	var ids []string
	for _, r := range window(matched, limit, offset) {
		ids = append(ids, r.Target.ID)
	}
	return ids, len(matched), nil
}

// --- content ---

func (m *MemoryStore) GetContentItem(_ context.Context, kind model.TargetKind, id string) (*model.ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[model.Target{Kind: kind, ID: id}]
	if !ok {
		return nil, fmt.Errorf("get %s %s: %w", kind, id, model.ErrNotFound)
	}
	it = m.withCounts(it)
	return &it, nil
}

func (m *MemoryStore) GetContentItems(_ context.Context, kind model.TargetKind, ids []string) ([]model.ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.ContentItem
	for _, id := range ids {
		if it, ok := m.items[model.Target{Kind: kind, ID: id}]; ok {
			out = append(out, m.withCounts(it))
		}
	}
	return out, nil
}

func (m *MemoryStore) GetOwnerProfiles(_ context.Context, userIDs []string) (map[string]model.OwnerProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]model.OwnerProfile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := m.users[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *MemoryStore) GetSubscribedChannelIDs(_ context.Context, userID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id := range m.subs[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) ListByParent(_ context.Context, kind model.TargetKind, parentID string, limit, offset int) ([]model.ContentItem, int, error) {
	return m.list(kind, limit, offset, func(it model.ContentItem) bool {
		if kind == model.KindComment {
			return it.ParentID == parentID
		}
		return it.OwnerID == parentID
	})
}

func (m *MemoryStore) ListByOwners(_ context.Context, kind model.TargetKind, ownerIDs []string, limit, offset int) ([]model.ContentItem, int, error) {
	owners := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = struct{}{}
	}
	return m.list(kind, limit, offset, func(it model.ContentItem) bool {
		_, ok := owners[it.OwnerID]
		return ok
	})
}

func (m *MemoryStore) ListVideos(_ context.Context, ownerID string, tokens []string) ([]model.ContentItem, error) {
	items, _, err := m.list(model.KindVideo, -1, 0, func(it model.ContentItem) bool {
		if ownerID != "" && it.OwnerID != ownerID {
			return false
		}
		return containsAny(strings.ToLower(it.Title+" "+it.Description), tokens)
	})
	return items, err
}

// containsAny reports whether text contains one of tokens. No tokens matches everything.
func containsAny(text string, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// list filters items of kind newest first; unpublished videos are skipped.
// A negative limit returns everything from offset on.
func (m *MemoryStore) list(kind model.TargetKind, limit, offset int, keep func(model.ContentItem) bool) ([]model.ContentItem, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []model.ContentItem
	for t, it := range m.items {
		if t.Kind != kind || !keep(it) {
			continue
		}
		if kind == model.KindVideo && !it.IsPublished {
			continue
		}
		matched = append(matched, m.withCounts(it))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return window(matched, limit, offset), len(matched), nil
}

// withCounts fills derived counters. Callers hold m.mu.
func (m *MemoryStore) withCounts(it model.ContentItem) model.ContentItem {
	if it.Kind != model.KindVideo {
		return it
	}
	it.CommentCount = 0
	for t, c := range m.items {
		if t.Kind == model.KindComment && c.ParentID == it.ID {
			it.CommentCount++
		}
	}
	return it
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

package service

import (
	"context"
	"testing"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

func TestComputeView(t *testing.T) {
	item := model.ContentItem{ID: "v1", Kind: model.KindVideo, OwnerID: "owner"}
	sets := &reactorSets{}
	sets.add(model.StateLiked, []string{"a", "owner"})
	sets.add(model.StateDisliked, []string{"b"})

	tests := []struct {
		name string
		sets *reactorSets
		opts AnnotateOptions
		want model.EngagementView
	}{
		{
			name: "anonymous",
			sets: sets,
			want: model.EngagementView{LikeCount: 2, DislikeCount: 1, CallerReaction: model.StateNone},
		},
		{
			name: "caller liked",
			sets: sets,
			opts: AnnotateOptions{Caller: strPtr("a")},
			want: model.EngagementView{LikeCount: 2, DislikeCount: 1, CallerReaction: model.StateLiked},
		},
		{
			name: "caller disliked",
			sets: sets,
			opts: AnnotateOptions{Caller: strPtr("b")},
			want: model.EngagementView{LikeCount: 2, DislikeCount: 1, CallerReaction: model.StateDisliked},
		},
		{
			name: "owner with highlight",
			sets: sets,
			opts: AnnotateOptions{Caller: strPtr("owner"), HighlightLikesBy: "owner"},
			want: model.EngagementView{LikeCount: 2, DislikeCount: 1, CallerReaction: model.StateLiked, IsOwner: true, LikedByContentOwner: true},
		},
		{
			name: "highlight user did not like",
			sets: sets,
			opts: AnnotateOptions{HighlightLikesBy: "b"},
			want: model.EngagementView{LikeCount: 2, DislikeCount: 1, CallerReaction: model.StateNone},
		},
		{
			name: "no reactions",
			opts: AnnotateOptions{Caller: strPtr("a"), HighlightLikesBy: "owner"},
			want: model.EngagementView{CallerReaction: model.StateNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeView(item, tt.sets, tt.opts); got != tt.want {
				t.Errorf("computeView() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAnnotate_AnonymousCaller(t *testing.T) {
	f := newFixture(t)
	f.user("owner")
	v1 := f.video("v1", "owner", "One", "", 2)
	v2 := f.video("v2", "owner", "Two", "", 1)
	f.react(t, model.KindVideo, "v1", "a", model.StateLiked)
	f.react(t, model.KindVideo, "v1", "b", model.StateLiked)
	f.react(t, model.KindVideo, "v2", "a", model.StateDisliked)

	got, err := f.engagement.Annotate(context.Background(), []model.ContentItem{v2, v1}, AnnotateOptions{})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if !equalStrings(ids(got), []string{"v2", "v1"}) {
		t.Fatalf("order = %v, want input order", ids(got))
	}
	for _, it := range got {
		if it.Engagement.CallerReaction != model.StateNone || it.Engagement.IsOwner {
			t.Errorf("%s: anonymous view = %+v, want no caller state", it.ID, it.Engagement)
		}
		if it.Owner.Username != "userowner" {
			t.Errorf("%s: owner = %+v, want userowner profile", it.ID, it.Owner)
		}
	}
	if got[1].Engagement.LikeCount != 2 || got[0].Engagement.DislikeCount != 1 {
		t.Errorf("counts = %+v / %+v", got[0].Engagement, got[1].Engagement)
	}
}

func TestAnnotate_MixedKinds(t *testing.T) {
	f := newFixture(t)
	f.video("v1", "owner", "One", "", 0)
	f.comment("c1", "v1", "owner", 0)
	f.tweet("t1", "owner", 0)
	f.react(t, model.KindComment, "c1", "u1", model.StateLiked)
	f.react(t, model.KindTweet, "t1", "u1", model.StateDisliked)

	items := make([]model.ContentItem, 0, 3)
	for _, target := range []model.Target{
		{Kind: model.KindTweet, ID: "t1"},
		{Kind: model.KindVideo, ID: "v1"},
		{Kind: model.KindComment, ID: "c1"},
	} {
		it, err := f.store.GetContentItem(context.Background(), target.Kind, target.ID)
		if err != nil {
			t.Fatal(err)
		}
		items = append(items, *it)
	}

	got, err := f.engagement.Annotate(context.Background(), items, AnnotateOptions{Caller: strPtr("u1")})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := []model.ReactionState{model.StateDisliked, model.StateNone, model.StateLiked}
	for i, it := range got {
		if it.Engagement.CallerReaction != want[i] {
			t.Errorf("%s: caller reaction = %s, want %s", it.ID, it.Engagement.CallerReaction, want[i])
		}
	}
}

func TestAnnotate_OwnerLookupFailureTolerated(t *testing.T) {
	f := newFixture(t)
	f.user("owner")
	v1 := f.video("v1", "owner", "One", "", 0)
	f.react(t, model.KindVideo, "v1", "u1", model.StateLiked)

	degraded := newFixtureWith(f.store, failingOwners{ContentStore: f.store})
	got, err := degraded.engagement.Annotate(context.Background(), []model.ContentItem{v1}, AnnotateOptions{Caller: strPtr("u1")})
	if err != nil {
		t.Fatalf("Annotate() error = %v, want owner failure tolerated", err)
	}
	if got[0].Owner != (model.OwnerProfile{}) {
		t.Errorf("owner = %+v, want empty", got[0].Owner)
	}
	if got[0].Engagement.LikeCount != 1 || got[0].Engagement.CallerReaction != model.StateLiked {
		t.Errorf("engagement = %+v, want one like by caller", got[0].Engagement)
	}
}

func TestAnnotate_Empty(t *testing.T) {
	f := newFixture(t)
	got, err := f.engagement.Annotate(context.Background(), nil, AnnotateOptions{})
	if err != nil || len(got) != 0 {
		t.Fatalf("Annotate(nil) = %v, %v; want empty, nil", got, err)
	}
}

func TestView_HighlightsVideoOwner(t *testing.T) {
	f := newFixture(t)
	f.video("v1", "owner", "One", "", 0)
	f.react(t, model.KindVideo, "v1", "owner", model.StateLiked)

	view, err := f.engagement.View(context.Background(), model.Target{Kind: model.KindVideo, ID: "v1"}, strPtr("owner"))
	if err != nil {
		t.Fatalf("View() error = %v", err)
	}
	want := model.EngagementView{LikeCount: 1, CallerReaction: model.StateLiked, IsOwner: true, LikedByContentOwner: true}
	if *view != want {
		t.Errorf("View() = %+v, want %+v", *view, want)
	}
}

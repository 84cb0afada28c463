package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

func TestSearch_QuickFox(t *testing.T) {
	f := newFixture(t)
	f.user("owner")
	f.video("fox-only", "owner", "Fox-Only Adventures", "", 1)
	f.video("quick-fox", "owner", "Quick Fox Adventures", "", 5)
	f.video("cooking", "owner", "Cooking", "pasta night", 0)

	res, err := f.feed.Search(context.Background(), SearchRequest{
		Query: "the quick fox",
		Page:  PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"quick-fox", "fox-only"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("Search() = %v, want %v", ids(res.Items), want)
	}
	if res.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", res.TotalItems)
	}
}

func TestSearch_SecondPageOfTwentyFive(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 25; i++ {
		f.video(fmt.Sprintf("v%02d", i), "owner", fmt.Sprintf("Match %d", i), "", i)
	}

	res, err := f.feed.Search(context.Background(), SearchRequest{
		Query: "match",
		Page:  PageRequest{Page: 2, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Items) != 10 {
		t.Errorf("len(Items) = %d, want 10", len(res.Items))
	}
	if !res.HasNextPage || !res.HasPrevPage || res.TotalPages != 3 {
		t.Errorf("paging = next:%v prev:%v pages:%d, want true true 3", res.HasNextPage, res.HasPrevPage, res.TotalPages)
	}
	// newest first among equal relevance: v00 is newest, page 2 starts at v10
	if res.Items[0].ID != "v10" {
		t.Errorf("first item = %s, want v10", res.Items[0].ID)
	}
}

func TestSearch_SkipsUnpublishedAndFiltersOwner(t *testing.T) {
	f := newFixture(t)
	f.video("mine", "alice", "Fox clip", "", 0)
	f.video("theirs", "bob", "Fox clip", "", 1)
	hidden := f.video("hidden", "alice", "Fox clip", "", 2)
	hidden.IsPublished = false
	f.store.AddContent(hidden)

	res, err := f.feed.Search(context.Background(), SearchRequest{
		Query:   "fox",
		OwnerID: "alice",
		Page:    PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if want := []string{"mine"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("Search() = %v, want %v", ids(res.Items), want)
	}
}

func TestSearch_InvalidInput(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		req  SearchRequest
	}{
		{"bad sort", SearchRequest{SortField: "likes", Page: PageRequest{Page: 1, PageSize: 10}}},
		{"bad page", SearchRequest{Page: PageRequest{Page: 0, PageSize: 10}}},
		{"page too large", SearchRequest{Page: PageRequest{Page: 1, PageSize: testMaxPageSize + 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.feed.Search(context.Background(), tt.req); !errors.Is(err, model.ErrInvalidInput) {
				t.Errorf("error = %v, want invalid input", err)
			}
		})
	}
}

func TestVideo(t *testing.T) {
	f := newFixture(t)
	f.user("owner")
	f.video("v1", "owner", "Clip", "", 0)
	f.comment("c1", "v1", "u1", 0)
	hidden := f.video("v2", "owner", "Draft", "", 0)
	hidden.IsPublished = false
	f.store.AddContent(hidden)
	f.react(t, model.KindVideo, "v1", "u1", model.StateLiked)

	got, err := f.feed.Video(context.Background(), "v1", strPtr("u1"))
	if err != nil {
		t.Fatalf("Video() error = %v", err)
	}
	if got.Engagement.LikeCount != 1 || got.Engagement.CallerReaction != model.StateLiked || got.Engagement.IsOwner {
		t.Errorf("engagement = %+v", got.Engagement)
	}
	if got.CommentCount != 1 {
		t.Errorf("CommentCount = %d, want 1", got.CommentCount)
	}
	if got.Owner.ID != "owner" {
		t.Errorf("Owner = %+v", got.Owner)
	}

	if _, err := f.feed.Video(context.Background(), "v2", nil); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("unpublished video error = %v, want not found", err)
	}
	if _, err := f.feed.Video(context.Background(), "missing", nil); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("missing video error = %v, want not found", err)
	}
}

func TestListByTarget_CommentsHighlightCreator(t *testing.T) {
	f := newFixture(t)
	f.video("v1", "creator", "Clip", "", 10)
	f.comment("c-old", "v1", "u1", 3)
	f.comment("c-new", "v1", "u2", 1)
	f.comment("elsewhere", "v2", "u2", 0)
	f.react(t, model.KindComment, "c-old", "creator", model.StateLiked)
	f.react(t, model.KindComment, "c-new", "u1", model.StateLiked)

	res, err := f.feed.ListByTarget(context.Background(), model.KindComment, "v1", strPtr("u2"), PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListByTarget() error = %v", err)
	}
	if want := []string{"c-new", "c-old"}; !equalStrings(ids(res.Items), want) {
		t.Fatalf("comments = %v, want %v", ids(res.Items), want)
	}
	if res.Items[0].Engagement.LikedByContentOwner {
		t.Error("c-new flagged as liked by creator")
	}
	if !res.Items[1].Engagement.LikedByContentOwner {
		t.Error("c-old not flagged as liked by creator")
	}
	if !res.Items[0].Engagement.IsOwner {
		t.Error("caller u2 should own c-new")
	}
}

func TestListByTarget_UserVideosAndTweets(t *testing.T) {
	f := newFixture(t)
	f.video("v1", "alice", "One", "", 2)
	f.video("v2", "alice", "Two", "", 1)
	f.video("v3", "bob", "Three", "", 0)
	f.tweet("t1", "alice", 0)

	res, err := f.feed.ListByTarget(context.Background(), model.KindVideo, "alice", nil, PageRequest{Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("ListByTarget(video) error = %v", err)
	}
	if want := []string{"v2"}; !equalStrings(ids(res.Items), want) || res.TotalItems != 2 || !res.HasNextPage {
		t.Errorf("videos = %v total=%d next=%v", ids(res.Items), res.TotalItems, res.HasNextPage)
	}

	res, err = f.feed.ListByTarget(context.Background(), model.KindTweet, "alice", nil, PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListByTarget(tweet) error = %v", err)
	}
	if want := []string{"t1"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("tweets = %v, want %v", ids(res.Items), want)
	}
}

func TestListByTarget_Errors(t *testing.T) {
	f := newFixture(t)
	page := PageRequest{Page: 1, PageSize: 10}

	if _, err := f.feed.ListByTarget(context.Background(), model.KindComment, "missing", nil, page); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("comments of missing video: error = %v, want not found", err)
	}
	if _, err := f.feed.ListByTarget(context.Background(), "playlist", "x", nil, page); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("unknown kind: error = %v, want invalid input", err)
	}
	if _, err := f.feed.ListByTarget(context.Background(), model.KindVideo, "x", nil, PageRequest{Page: 1}); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("zero page size: error = %v, want invalid input", err)
	}
}

func TestListBySubscription(t *testing.T) {
	f := newFixture(t)
	f.video("v1", "alice", "One", "", 2)
	f.video("v2", "bob", "Two", "", 1)
	f.video("v3", "carol", "Three", "", 0)
	f.tweet("t1", "bob", 0)
	f.store.Subscribe("me", "alice")
	f.store.Subscribe("me", "bob")

	res, err := f.feed.ListBySubscription(context.Background(), model.KindVideo, strPtr("me"), PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListBySubscription() error = %v", err)
	}
	if want := []string{"v2", "v1"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("videos = %v, want %v", ids(res.Items), want)
	}

	res, err = f.feed.ListBySubscription(context.Background(), model.KindTweet, strPtr("me"), PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListBySubscription(tweet) error = %v", err)
	}
	if want := []string{"t1"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("tweets = %v, want %v", ids(res.Items), want)
	}

	res, err = f.feed.ListBySubscription(context.Background(), model.KindVideo, strPtr("loner"), PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListBySubscription(no subs) error = %v", err)
	}
	if len(res.Items) != 0 || res.TotalItems != 0 || res.TotalPages != 1 {
		t.Errorf("empty feed = %+v", res)
	}

	if _, err := f.feed.ListBySubscription(context.Background(), model.KindVideo, nil, PageRequest{Page: 1, PageSize: 10}); !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("anonymous: error = %v, want unauthorized", err)
	}
	if _, err := f.feed.ListBySubscription(context.Background(), model.KindComment, strPtr("me"), PageRequest{Page: 1, PageSize: 10}); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("comment kind: error = %v, want invalid input", err)
	}
}

func TestLikedVideos(t *testing.T) {
	f := newFixture(t)
	f.video("v1", "alice", "One", "", 0)
	f.video("v2", "alice", "Two", "", 0)
	f.video("v3", "alice", "Three", "", 0)
	f.react(t, model.KindVideo, "v1", "me", model.StateLiked)
	f.react(t, model.KindVideo, "v2", "me", model.StateDisliked)
	f.react(t, model.KindVideo, "v3", "other", model.StateLiked)

	res, err := f.feed.LikedVideos(context.Background(), strPtr("me"), PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("LikedVideos() error = %v", err)
	}
	if want := []string{"v1"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("liked = %v, want %v", ids(res.Items), want)
	}
	if res.Items[0].Engagement.CallerReaction != model.StateLiked {
		t.Errorf("caller reaction = %s, want liked", res.Items[0].Engagement.CallerReaction)
	}

	if _, err := f.feed.LikedVideos(context.Background(), nil, PageRequest{Page: 1, PageSize: 10}); !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("anonymous: error = %v, want unauthorized", err)
	}
}

func TestUnpublishedVideoHiddenFromLikesAndComments(t *testing.T) {
	f := newFixture(t)
	f.video("live", "alice", "Live", "", 1)
	draft := f.video("draft", "alice", "Draft", "", 0)
	f.comment("c1", "draft", "bob", 0)
	f.react(t, model.KindVideo, "live", "me", model.StateLiked)
	f.react(t, model.KindVideo, "draft", "me", model.StateLiked)

	draft.IsPublished = false
	f.store.AddContent(draft)

	res, err := f.feed.LikedVideos(context.Background(), strPtr("me"), PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("LikedVideos() error = %v", err)
	}
	if want := []string{"live"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("liked = %v, want %v", ids(res.Items), want)
	}

	_, err = f.feed.ListByTarget(context.Background(), model.KindComment, "draft", nil, PageRequest{Page: 1, PageSize: 10})
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("comments of unpublished video: error = %v, want not found", err)
	}
}

func TestSearch_SubstringPrefilterKeepsWholeWordRanking(t *testing.T) {
	f := newFixture(t)
	f.video("foxes", "alice", "Foxglove garden", "", 0)
	f.video("fox", "alice", "Red fox", "", 1)

	res, err := f.feed.Search(context.Background(), SearchRequest{
		Query: "fox",
		Page:  PageRequest{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	// "foxglove" passes the store's substring scan but is not a word match
	if want := []string{"fox"}; !equalStrings(ids(res.Items), want) {
		t.Errorf("Search() = %v, want %v", ids(res.Items), want)
	}
}

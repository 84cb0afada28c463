package model

// EngagementView is the caller-relative engagement summary of one item.
// It is derived at read time and never stored.
type EngagementView struct {
	LikeCount           int           `json:"likeCount"`
	DislikeCount        int           `json:"dislikeCount"`
	CallerReaction      ReactionState `json:"callerReaction"`
	IsOwner             bool          `json:"isOwner"`
	LikedByContentOwner bool          `json:"likedByContentOwner"`
}

// AnnotatedItem is a content item with its owner profile and engagement view.
type AnnotatedItem struct {
	ContentItem
	Owner      OwnerProfile   `json:"owner"`
	Engagement EngagementView `json:"engagement"`
}

// PagedResult is one page of a feed.
type PagedResult struct {
	Items       []AnnotatedItem `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalPages  int             `json:"totalPages"`
	Page        int             `json:"page"`
	PageSize    int             `json:"pageSize"`
	HasPrevPage bool            `json:"hasPrevPage"`
	HasNextPage bool            `json:"hasNextPage"`
	PrevPage    *int            `json:"prevPage"`
	NextPage    *int            `json:"nextPage"`
}

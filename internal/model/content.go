package model

import "time"

// ContentItem is a video, comment or tweet as read from the content store.
// Kind-specific fields are left zero for the other kinds.
type ContentItem struct {
	ID        string     `json:"id"`
	Kind      TargetKind `json:"kind"`
	OwnerID   string     `json:"ownerId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Video
	Title        string  `json:"title,omitempty"`
	Description  string  `json:"description,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	VideoURL     string  `json:"videoUrl,omitempty"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
	Views        int64   `json:"views,omitempty"`
	IsPublished  bool    `json:"isPublished,omitempty"`
	CommentCount int     `json:"commentCount,omitempty"`

	// Comment, Tweet
	Content string `json:"content,omitempty"`
	// ParentID is the video a comment belongs to.
	ParentID string `json:"parentId,omitempty"`
}

// Target returns the reaction target for this item.
func (c ContentItem) Target() Target {
	return Target{Kind: c.Kind, ID: c.ID}
}

// OwnerProfile is the public profile embedded next to content.
type OwnerProfile struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

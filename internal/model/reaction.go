package model

import "time"

// TargetKind identifies which kind of content a reaction points at.
type TargetKind string

const (
	KindVideo   TargetKind = "video"
	KindComment TargetKind = "comment"
	KindTweet   TargetKind = "tweet"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case KindVideo, KindComment, KindTweet:
		return true
	}
	return false
}

// ReactionState is a user's reaction on a target. StateNone is never persisted;
// it describes the absence of a row.
type ReactionState string

const (
	StateNone     ReactionState = "none"
	StateLiked    ReactionState = "liked"
	StateDisliked ReactionState = "disliked"
)

// Settable reports whether s can be requested by a caller or stored.
func (s ReactionState) Settable() bool {
	return s == StateLiked || s == StateDisliked
}

// Target is the tagged reference {kind, id} a reaction applies to.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// Reaction is one row of the reactions table.
type Reaction struct {
	ID        string        `json:"id"`
	Target    Target        `json:"target"`
	UserID    string        `json:"userId"`
	State     ReactionState `json:"state"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ReactorGroup lists the users holding one state on one target.
type ReactorGroup struct {
	TargetID string
	State    ReactionState
	UserIDs  []string
}

// ReactionRequest is the API request body for setting a reaction.
type ReactionRequest struct {
	State string `json:"state"`
}

// ReactionSummary is the API response after setting a reaction.
type ReactionSummary struct {
	Target         Target        `json:"target"`
	CallerReaction ReactionState `json:"callerReaction"`
	LikeCount      int           `json:"likeCount"`
	DislikeCount   int           `json:"dislikeCount"`
}

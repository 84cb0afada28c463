package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ritik0027/SnapTube-Backend/internal/metrics"
	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

type transitionOp int

const (
	opCreate transitionOp = iota + 1
	opUpdate
	opDelete
)

func (op transitionOp) String() string {
	switch op {
	case opCreate:
		return "create"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	}
	return "unknown"
}

// transition is the single write a toggle resolves to.
type transition struct {
	op   transitionOp
	next model.ReactionState
}

// nextTransition applies the toggle table:
//
//	none     + X -> create X
//	X        + X -> delete (toggle-off)
//	liked    + disliked, disliked + liked -> update
func nextTransition(current, desired model.ReactionState) transition {
	switch {
	case current == model.StateNone:
		return transition{op: opCreate, next: desired}
	case current == desired:
		return transition{op: opDelete, next: model.StateNone}
	default:
		return transition{op: opUpdate, next: desired}
	}
}

// ReactionService owns the one-reaction-per-user-per-target rule.
type ReactionService struct {
	reactions ReactionStore
	content   ContentStore
	log       zerolog.Logger
	now       func() time.Time
}

func NewReactionService(reactions ReactionStore, content ContentStore, log zerolog.Logger) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		content:   content,
		log:       log.With().Str("component", "reactions").Logger(),
		now:       time.Now,
	}
}

// SetReaction moves the caller's reaction on target towards desired and returns
// the counts read back after the write.
func (s *ReactionService) SetReaction(ctx context.Context, target model.Target, caller *string, desired model.ReactionState) (*model.ReactionSummary, error) {
	if !target.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown target kind %q", model.ErrInvalidInput, target.Kind)
	}
	if target.ID == "" {
		return nil, fmt.Errorf("%w: target id is required", model.ErrInvalidInput)
	}
	if !desired.Settable() {
		return nil, fmt.Errorf("%w: state must be liked or disliked", model.ErrInvalidInput)
	}
	userID, ok := callerID(caller)
	if !ok {
		return nil, fmt.Errorf("%w: sign in to react", model.ErrUnauthorized)
	}

	if _, err := s.content.GetContentItem(ctx, target.Kind, target.ID); err != nil {
		return nil, err
	}

	current := model.StateNone
	existing, err := s.reactions.Find(ctx, target, userID)
	switch {
	case err == nil:
		current = existing.State
	case errors.Is(err, model.ErrNotFound):
	default:
		return nil, err
	}

	t := nextTransition(current, desired)
	switch t.op {
	case opCreate:
		now := s.now().UTC()
		err = s.reactions.Create(ctx, &model.Reaction{
			ID:        uuid.NewString(),
			Target:    target,
			UserID:    userID,
			State:     t.next,
			CreatedAt: now,
			UpdatedAt: now,
		})
	case opUpdate:
		err = s.reactions.UpdateState(ctx, existing.ID, current, t.next)
	case opDelete:
		err = s.reactions.Delete(ctx, existing.ID, current)
	}
	if err != nil {
		return nil, err
	}
	metrics.ReactionsTotal.WithLabelValues(string(target.Kind), t.op.String()).Inc()

	// Recount from the rows rather than trusting an increment.
	records, err := s.reactions.FindAllByTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	likes, dislikes := countStates(records)

	s.log.Debug().
		Str("kind", string(target.Kind)).
		Str("target_id", target.ID).
		Str("from", string(current)).
		Str("to", string(t.next)).
		Msg("reaction applied")

	return &model.ReactionSummary{
		Target:         target,
		CallerReaction: t.next,
		LikeCount:      likes,
		DislikeCount:   dislikes,
	}, nil
}

func countStates(records []model.Reaction) (likes, dislikes int) {
	for _, r := range records {
		switch r.State {
		case model.StateLiked:
			likes++
		case model.StateDisliked:
			dislikes++
		}
	}
	return likes, dislikes
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

type ReactionRepo struct {
	pool *pgxpool.Pool
}

func NewReactionRepo(pool *pgxpool.Pool) *ReactionRepo {
	return &ReactionRepo{pool: pool}
}

const reactionColumns = `id::text, target_kind, target_id::text, user_id::text, state, created_at, updated_at`

func scanReaction(row pgx.Row) (*model.Reaction, error) {
	var r model.Reaction
	err := row.Scan(&r.ID, &r.Target.Kind, &r.Target.ID, &r.UserID, &r.State, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Find returns the reaction of userID on target.
func (r *ReactionRepo) Find(ctx context.Context, target model.Target, userID string) (*model.Reaction, error) {
	query := `
		SELECT ` + reactionColumns + `
		FROM reactions
		WHERE target_kind = $1 AND target_id = $2 AND user_id = $3`

	rec, err := scanReaction(r.pool.QueryRow(ctx, query, target.Kind, target.ID, userID))
	if err != nil {
		return nil, translate(err, "find reaction")
	}
	return rec, nil
}

// FindAllByTarget returns every reaction on target, oldest first.
func (r *ReactionRepo) FindAllByTarget(ctx context.Context, target model.Target) ([]model.Reaction, error) {
	query := `
		SELECT ` + reactionColumns + `
		FROM reactions
		WHERE target_kind = $1 AND target_id = $2
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, target.Kind, target.ID)
	if err != nil {
		return nil, translate(err, "list reactions")
	}
	defer rows.Close()

	var out []model.Reaction
	for rows.Next() {
		rec, err := scanReaction(rows)
		if err != nil {
			return nil, translate(err, "scan reaction")
		}
		out = append(out, *rec)
	}
	return out, translate(rows.Err(), "list reactions")
}

// GroupByTargets returns the reactor ids per (target, state) for all targetIDs
// of one kind in a single query. Targets without reactions are absent.
func (r *ReactionRepo) GroupByTargets(ctx context.Context, kind model.TargetKind, targetIDs []string) ([]model.ReactorGroup, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT target_id::text, state, array_agg(user_id::text ORDER BY created_at)
		FROM reactions
		WHERE target_kind = $1 AND target_id = ANY($2::uuid[])
		GROUP BY target_id, state`

	rows, err := r.pool.Query(ctx, query, kind, targetIDs)
	if err != nil {
		return nil, translate(err, "group reactions")
	}
	defer rows.Close()

	var groups []model.ReactorGroup
	for rows.Next() {
		var g model.ReactorGroup
		if err := rows.Scan(&g.TargetID, &g.State, &g.UserIDs); err != nil {
			return nil, translate(err, "scan reaction group")
		}
		groups = append(groups, g)
	}
	return groups, translate(rows.Err(), "group reactions")
}

// Create inserts a new reaction. A second row for the same user and target is
// rejected by the unique constraint and reported as model.ErrConflict.
func (r *ReactionRepo) Create(ctx context.Context, rec *model.Reaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reactions (id, target_kind, target_id, user_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Target.Kind, rec.Target.ID, rec.UserID, rec.State, rec.CreatedAt, rec.UpdatedAt)
	return translate(err, "create reaction")
}

// UpdateState flips a reaction from one state to another. If the row changed or
// vanished since it was read, nothing is written and model.ErrConflict is returned.
func (r *ReactionRepo) UpdateState(ctx context.Context, id string, from, to model.ReactionState) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reactions SET state = $3, updated_at = NOW()
		WHERE id = $1 AND state = $2`,
		id, from, to)
	if err != nil {
		return translate(err, "update reaction")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update reaction %s: %w: state changed concurrently", id, model.ErrConflict)
	}
	return nil
}

// Delete removes a reaction if it still holds state.
func (r *ReactionRepo) Delete(ctx context.Context, id string, state model.ReactionState) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reactions WHERE id = $1 AND state = $2`, id, state)
	if err != nil {
		return translate(err, "delete reaction")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete reaction %s: %w: state changed concurrently", id, model.ErrConflict)
	}
	return nil
}

// ListTargetIDsByUser pages through the targets of one kind that userID reacted
// to with state, most recent reaction first. It also returns the total count.
func (r *ReactionRepo) ListTargetIDsByUser(ctx context.Context, kind model.TargetKind, userID string, state model.ReactionState, limit, offset int) ([]string, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reactions
		WHERE target_kind = $1 AND user_id = $2 AND state = $3`,
		kind, userID, state).Scan(&total)
	if err != nil {
		return nil, 0, translate(err, "count user reactions")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT target_id::text FROM reactions
		WHERE target_kind = $1 AND user_id = $2 AND state = $3
		ORDER BY updated_at DESC, id
		LIMIT $4 OFFSET $5`,
		kind, userID, state, limit, offset)
	if err != nil {
		return nil, 0, translate(err, "list user reactions")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, 0, translate(err, "scan user reaction")
		}
		ids = append(ids, id)
	}
	return ids, total, translate(rows.Err(), "list user reactions")
}

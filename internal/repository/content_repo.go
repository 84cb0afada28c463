package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// ContentRepo reads videos, comments, tweets, users and subscriptions.
type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

// kindTable describes how one content kind is selected and scanned.
type kindTable struct {
	// selectSQL selects the columns consumed by scan, up to and including FROM.
	selectSQL    string
	// published is an extra predicate applied to listings.
	published    string
	// parentColumn is the column ListByParent filters on.
	parentColumn string
	scan         func(row pgx.Row, it *model.ContentItem) error
}

var kindTables = map[model.TargetKind]kindTable{
	model.KindVideo: {
		selectSQL: `
			SELECT v.id::text, v.owner_id::text, v.title, v.description, v.duration,
			       v.video_url, v.thumbnail_url, v.views, v.is_published, v.created_at, v.updated_at,
			       (SELECT COUNT(*) FROM comments c WHERE c.video_id = v.id)
			FROM videos v`,
		published:    "v.is_published",
		parentColumn: "v.owner_id",
		scan: func(row pgx.Row, it *model.ContentItem) error {
			return row.Scan(&it.ID, &it.OwnerID, &it.Title, &it.Description, &it.Duration,
				&it.VideoURL, &it.ThumbnailURL, &it.Views, &it.IsPublished, &it.CreatedAt, &it.UpdatedAt,
				&it.CommentCount)
		},
	},
	model.KindComment: {
		selectSQL: `
			SELECT v.id::text, v.owner_id::text, v.video_id::text, v.content, v.created_at, v.updated_at
			FROM comments v`,
		parentColumn: "v.video_id",
		scan: func(row pgx.Row, it *model.ContentItem) error {
			return row.Scan(&it.ID, &it.OwnerID, &it.ParentID, &it.Content, &it.CreatedAt, &it.UpdatedAt)
		},
	},
	model.KindTweet: {
		selectSQL: `
			SELECT v.id::text, v.owner_id::text, v.content, v.created_at, v.updated_at
			FROM tweets v`,
		parentColumn: "v.owner_id",
		scan: func(row pgx.Row, it *model.ContentItem) error {
			return row.Scan(&it.ID, &it.OwnerID, &it.Content, &it.CreatedAt, &it.UpdatedAt)
		},
	},
}

func tableFor(kind model.TargetKind) (kindTable, error) {
	t, ok := kindTables[kind]
	if !ok {
		return kindTable{}, fmt.Errorf("%w: unknown content kind %q", model.ErrInvalidInput, kind)
	}
	return t, nil
}

// GetContentItem returns one item by kind and id.
func (r *ContentRepo) GetContentItem(ctx context.Context, kind model.TargetKind, id string) (*model.ContentItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	it := model.ContentItem{Kind: kind}
	if err := t.scan(r.pool.QueryRow(ctx, t.selectSQL+` WHERE v.id = $1`, id), &it); err != nil {
		return nil, translate(err, fmt.Sprintf("get %s %s", kind, id))
	}
	return &it, nil
}

// GetContentItems returns the items of ids that exist, in the order of ids.
func (r *ContentRepo) GetContentItems(ctx context.Context, kind model.TargetKind, ids []string) ([]model.ContentItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	found, err := r.query(ctx, kind, t, t.selectSQL+` WHERE v.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.ContentItem, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}
	out := make([]model.ContentItem, 0, len(found))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// GetOwnerProfiles returns the public profiles of userIDs keyed by id.
// Unknown ids are absent from the map.
func (r *ContentRepo) GetOwnerProfiles(ctx context.Context, userIDs []string) (map[string]model.OwnerProfile, error) {
	profiles := make(map[string]model.OwnerProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, username, full_name, avatar
		FROM users
		WHERE id = ANY($1::uuid[])`, userIDs)
	if err != nil {
		return nil, translate(err, "get owner profiles")
	}
	defer rows.Close()

	for rows.Next() {
		var p model.OwnerProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.FullName, &p.Avatar); err != nil {
			return nil, translate(err, "scan owner profile")
		}
		profiles[p.ID] = p
	}
	return profiles, translate(rows.Err(), "get owner profiles")
}

// GetSubscribedChannelIDs returns the channels userID subscribes to.
func (r *ContentRepo) GetSubscribedChannelIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT channel_id::text FROM subscriptions WHERE subscriber_id = $1`, userID)
	if err != nil {
		return nil, translate(err, "get subscriptions")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translate(err, "scan subscription")
		}
		ids = append(ids, id)
	}
	return ids, translate(rows.Err(), "get subscriptions")
}

// ListByParent pages through the comments of a video, or the videos or tweets
// of a user, newest first.
func (r *ContentRepo) ListByParent(ctx context.Context, kind model.TargetKind, parentID string, limit, offset int) ([]model.ContentItem, int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}
	return r.page(ctx, kind, t, t.parentColumn+` = $1`, parentID, limit, offset)
}

// ListByOwners pages through items of kind owned by any of ownerIDs, newest first.
func (r *ContentRepo) ListByOwners(ctx context.Context, kind model.TargetKind, ownerIDs []string, limit, offset int) ([]model.ContentItem, int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}
	return r.page(ctx, kind, t, `v.owner_id = ANY($1::uuid[])`, ownerIDs, limit, offset)
}

// ListVideos returns published videos, or those of ownerID when set. Tokens
// narrow the scan to videos whose title or description contains one of them;
// without tokens every published video is returned.
func (r *ContentRepo) ListVideos(ctx context.Context, ownerID string, tokens []string) ([]model.ContentItem, error) {
	t := kindTables[model.KindVideo]
	query := t.selectSQL + ` WHERE ` + t.published + ` AND ($1::text = '' OR v.owner_id::text = $1)
		AND (cardinality($2::text[]) = 0 OR (v.title || ' ' || v.description) ILIKE ANY($2::text[]))
		ORDER BY v.created_at DESC, v.id DESC`
	return r.query(ctx, model.KindVideo, t, query, ownerID, likePatterns(tokens))
}

// likePatterns turns search tokens into ILIKE substring patterns. Tokens hold
// only letters and digits, so no escaping is needed.
func likePatterns(tokens []string) []string {
	patterns := make([]string, len(tokens))
	for i, tok := range tokens {
		patterns[i] = "%" + tok + "%"
	}
	return patterns
}

// page runs a filtered count and a LIMIT/OFFSET select. filter uses $1 for arg.
func (r *ContentRepo) page(ctx context.Context, kind model.TargetKind, t kindTable, filter string, arg any, limit, offset int) ([]model.ContentItem, int, error) {
	where := filter
	if t.published != "" {
		where += ` AND ` + t.published
	}

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM (%s WHERE %s) AS matched`, t.selectSQL, where)
	if err := r.pool.QueryRow(ctx, countSQL, arg).Scan(&total); err != nil {
		return nil, 0, translate(err, fmt.Sprintf("count %s", kind))
	}

	listSQL := fmt.Sprintf(`%s WHERE %s ORDER BY v.created_at DESC, v.id DESC LIMIT $2 OFFSET $3`, t.selectSQL, where)
	items, err := r.query(ctx, kind, t, listSQL, arg, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ContentRepo) query(ctx context.Context, kind model.TargetKind, t kindTable, sql string, args ...any) ([]model.ContentItem, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("list %s", kind))
	}
	defer rows.Close()

	var items []model.ContentItem
	for rows.Next() {
		it := model.ContentItem{Kind: kind}
		if err := t.scan(rows, &it); err != nil {
			return nil, translate(err, fmt.Sprintf("scan %s", kind))
		}
		items = append(items, it)
	}
	return items, translate(rows.Err(), fmt.Sprintf("list %s", kind))
}

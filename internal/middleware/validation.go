package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// Input limits.
const (
	MaxQueryLen     = 200
	MaxSortFieldLen = 32
)

// sortFieldRe matches sort field names such as createdAt.
var sortFieldRe = regexp.MustCompile(`^[A-Za-z]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that an id is a UUID and returns its canonical form.
// name is used in the error message.
func ValidateID(name, id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", name + " is required"
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", name + " must be a UUID"
	}
	return parsed.String(), ""
}

// ValidateTargetKind accepts video, comment or tweet, case-insensitively.
func ValidateTargetKind(raw string) (model.TargetKind, string) {
	kind := model.TargetKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", "kind must be one of video, comment, tweet"
	}
	// raw may alias the request buffer; the kind outlives the request
	return model.TargetKind(strings.Clone(string(kind))), ""
}

// ValidateReactionState accepts liked or disliked, case-insensitively.
func ValidateReactionState(raw string) (model.ReactionState, string) {
	state := model.ReactionState(strings.ToLower(strings.TrimSpace(raw)))
	if !state.Settable() {
		return "", "state must be liked or disliked"
	}
	return model.ReactionState(strings.Clone(string(state))), ""
}

// ParsePaging reads the page and limit query parameters. Missing values take
// page 1 and defaultSize; range checks against the maximum page size happen in
// the service.
func ParsePaging(c fiber.Ctx, defaultSize int) (page, size int, msg string) {
	page, size = 1, defaultSize
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, "page must be an integer"
		}
		page = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, "limit must be an integer"
		}
		size = n
	}
	return page, size, ""
}

// ValidateSort normalizes the sortBy and sortType parameters. The set of
// sortable fields is checked by the search service.
func ValidateSort(field, order string) (string, string, string) {
	field = strings.TrimSpace(field)
	order = strings.ToLower(strings.TrimSpace(order))
	if field != "" && (len(field) > MaxSortFieldLen || !sortFieldRe.MatchString(field)) {
		return "", "", "sortBy contains invalid characters"
	}
	switch order {
	case "", "asc", "desc", "1", "-1":
	default:
		return "", "", "sortType must be asc or desc"
	}
	return field, order, ""
}

// ValidateQuery trims a search query and enforces its length limit.
func ValidateQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLen {
		return "", "query must be at most 200 characters"
	}
	return q, ""
}

package service

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// stopWords are dropped from search queries before ranking.
var stopWords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "did", "do", "does", "doing", "down",
	"during", "each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "hers", "herself", "him", "himself", "his",
	"how", "i", "if", "in", "into", "is", "it", "its", "itself", "just", "me",
	"more", "most", "my", "myself", "no", "nor", "not", "now", "of", "off", "on",
	"once", "only", "or", "other", "our", "ours", "ourselves", "out", "over",
	"own", "same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these", "they",
	"this", "those", "through", "to", "too", "under", "until", "up", "very",
	"was", "we", "were", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "you", "your", "yours", "yourself", "yourselves",
)

// Sort fields accepted by Search.
const (
	SortCreatedAt = "createdAt"
	SortViews     = "views"
	SortDuration  = "duration"
	SortTitle     = "title"
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// splitWords lowercases text and splits it on anything that is not a letter or digit.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// tokenizeQuery returns the distinct non-stop-word tokens of q in query order.
func tokenizeQuery(q string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, w := range splitWords(q) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
	}
	return tokens
}

func matchCount(tokens []string, text string) int {
	if len(tokens) == 0 || text == "" {
		return 0
	}
	words := toSet(splitWords(text)...)
	n := 0
	for _, t := range tokens {
		if _, ok := words[t]; ok {
			n++
		}
	}
	return n
}

// sortSpec is an explicit ordering requested by the caller.
type sortSpec struct {
	field string
	desc  bool
}

// parseSort validates sortBy/sortType. ok is false when no explicit sort was asked for.
func parseSort(field, order string) (spec sortSpec, ok bool, err error) {
	if field == "" {
		return sortSpec{}, false, nil
	}
	switch field {
	case SortCreatedAt, SortViews, SortDuration, SortTitle:
	default:
		return sortSpec{}, false, fmt.Errorf("%w: cannot sort by %q", model.ErrInvalidInput, field)
	}
	switch strings.ToLower(order) {
	case "", "desc", "-1":
		spec = sortSpec{field: field, desc: true}
	case "asc", "1":
		spec = sortSpec{field: field}
	default:
		return sortSpec{}, false, fmt.Errorf("%w: sort order must be asc or desc", model.ErrInvalidInput)
	}
	return spec, true, nil
}

type scoredVideo struct {
	item      model.ContentItem
	titleHits int
	descHits  int
}

// rankVideos filters and orders videos for a search. With tokens only videos
// matching at least one token in title or description are kept. An explicit sort
// wins over relevance; without tokens or sort, newest first.
func rankVideos(videos []model.ContentItem, tokens []string, explicit *sortSpec) []model.ContentItem {
	scored := make([]scoredVideo, 0, len(videos))
	for _, v := range videos {
		sv := scoredVideo{item: v}
		if len(tokens) > 0 {
			sv.titleHits = matchCount(tokens, v.Title)
			sv.descHits = matchCount(tokens, v.Description)
			if sv.titleHits == 0 && sv.descHits == 0 {
				continue
			}
		}
		scored = append(scored, sv)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if explicit != nil {
			if c := compareField(a.item, b.item, explicit.field); c != 0 {
				if explicit.desc {
					return c > 0
				}
				return c < 0
			}
		} else {
			if a.titleHits != b.titleHits {
				return a.titleHits > b.titleHits
			}
			if a.descHits != b.descHits {
				return a.descHits > b.descHits
			}
		}
		if !a.item.CreatedAt.Equal(b.item.CreatedAt) {
			return a.item.CreatedAt.After(b.item.CreatedAt)
		}
		return a.item.ID > b.item.ID
	})

	out := make([]model.ContentItem, len(scored))
	for i, sv := range scored {
		out[i] = sv.item
	}
	return out
}

func compareField(a, b model.ContentItem, field string) int {
	switch field {
	case SortViews:
		return cmpOrdered(a.Views, b.Views)
	case SortDuration:
		return cmpOrdered(a.Duration, b.Duration)
	case SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/ritik0027/SnapTube-Backend/internal/model"
)

// Seed is a fixture of users, content and subscriptions for the in-memory
// store. All ids are UUIDs, as the API rejects anything else.
type Seed struct {
	Users         []SeedUser         `mapstructure:"users"`
	Videos        []SeedItem         `mapstructure:"videos"`
	Comments      []SeedItem         `mapstructure:"comments"`
	Tweets        []SeedItem         `mapstructure:"tweets"`
	Subscriptions []SeedSubscription `mapstructure:"subscriptions"`
}

type SeedUser struct {
	ID       string `mapstructure:"id"`
	Username string `mapstructure:"username"`
	FullName string `mapstructure:"full_name"`
	Avatar   string `mapstructure:"avatar"`
}

// SeedItem holds a video, comment or tweet. Video is the parent of a comment.
type SeedItem struct {
	ID           string    `mapstructure:"id"`
	Owner        string    `mapstructure:"owner"`
	Video        string    `mapstructure:"video"`
	Title        string    `mapstructure:"title"`
	Description  string    `mapstructure:"description"`
	Duration     float64   `mapstructure:"duration"`
	VideoURL     string    `mapstructure:"video_url"`
	ThumbnailURL string    `mapstructure:"thumbnail_url"`
	Views        int64     `mapstructure:"views"`
	Published    *bool     `mapstructure:"published"`
	Content      string    `mapstructure:"content"`
	CreatedAt    time.Time `mapstructure:"created_at"`
}

type SeedSubscription struct {
	Subscriber string `mapstructure:"subscriber"`
	Channel    string `mapstructure:"channel"`
}

// LoadSeedFile reads a seed fixture from a YAML or JSON file.
func LoadSeedFile(path string) (*Seed, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	s := &Seed{}
	if err := v.Unmarshal(s, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
	))); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return s, nil
}

// Load validates the fixture and adds it to the store. Nothing is stored when
// validation fails. Videos are published unless published is false, and a
// missing created_at takes the current time.
func (m *MemoryStore) Load(s *Seed) error {
	now := m.now()
	users := make(map[string]model.OwnerProfile, len(s.Users))
	for i, u := range s.Users {
		id, err := seedID(fmt.Sprintf("users[%d].id", i), u.ID)
		if err != nil {
			return err
		}
		users[id] = model.OwnerProfile{ID: id, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
	}
	owner := func(field, raw string) (string, error) {
		id, err := seedID(field, raw)
		if err != nil {
			return "", err
		}
		if _, ok := users[id]; !ok {
			return "", fmt.Errorf("%s: unknown user %s: %w", field, id, model.ErrInvalidInput)
		}
		return id, nil
	}

	var items []model.ContentItem
	videos := make(map[string]struct{}, len(s.Videos))
	add := func(kind model.TargetKind, list []SeedItem) error {
		for i, it := range list {
			field := fmt.Sprintf("%ss[%d]", kind, i)
			id, err := seedID(field+".id", it.ID)
			if err != nil {
				return err
			}
			ownerID, err := owner(field+".owner", it.Owner)
			if err != nil {
				return err
			}
			item := model.ContentItem{
				ID:        id,
				Kind:      kind,
				OwnerID:   ownerID,
				CreatedAt: it.CreatedAt,
				Content:   it.Content,
			}
			if item.CreatedAt.IsZero() {
				item.CreatedAt = now
			}
			item.UpdatedAt = item.CreatedAt
			switch kind {
			case model.KindVideo:
				item.Title = it.Title
				item.Description = it.Description
				item.Duration = it.Duration
				item.VideoURL = it.VideoURL
				item.ThumbnailURL = it.ThumbnailURL
				item.Views = it.Views
				item.IsPublished = it.Published == nil || *it.Published
				videos[id] = struct{}{}
			case model.KindComment:
				parent, err := seedID(field+".video", it.Video)
				if err != nil {
					return err
				}
				if _, ok := videos[parent]; !ok {
					return fmt.Errorf("%s.video: unknown video %s: %w", field, parent, model.ErrInvalidInput)
				}
				item.ParentID = parent
			}
			items = append(items, item)
		}
		return nil
	}
	if err := add(model.KindVideo, s.Videos); err != nil {
		return err
	}
	if err := add(model.KindComment, s.Comments); err != nil {
		return err
	}
	if err := add(model.KindTweet, s.Tweets); err != nil {
		return err
	}

	subs := make([][2]string, 0, len(s.Subscriptions))
	for i, sub := range s.Subscriptions {
		field := fmt.Sprintf("subscriptions[%d]", i)
		subscriber, err := owner(field+".subscriber", sub.Subscriber)
		if err != nil {
			return err
		}
		channel, err := owner(field+".channel", sub.Channel)
		if err != nil {
			return err
		}
		subs = append(subs, [2]string{subscriber, channel})
	}

	for _, u := range users {
		m.AddUser(u)
	}
	for _, it := range items {
		m.AddContent(it)
	}
	for _, sub := range subs {
		m.Subscribe(sub[0], sub[1])
	}
	return nil
}

func seedID(field, raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %q is not a UUID: %w", field, raw, model.ErrInvalidInput)
	}
	return id.String(), nil
}

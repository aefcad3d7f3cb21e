package services

import (
	"fmt"
	"strings"

	"moodlog/internal/models/db_models"
	"moodlog/pkg/utils"
)

type TagServiceInterface interface {
	ListMoodTags() []string
	// NormalizeTags lowercases, splits comma lists, drops duplicates and rejects unknown tags.
	NormalizeTags(tags []string) ([]string, error)
}

type TagService struct{}

func NewTagService() TagServiceInterface {
	return &TagService{}
}

func (t *TagService) ListMoodTags() []string {
	return append([]string(nil), db_models.MoodTags...)
}

func (t *TagService) NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, raw := range tags {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			if !db_models.IsMoodTag(tag) {
				return nil, fmt.Errorf("%w: %q", utils.ErrInvalidTag, tag)
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}

	return out, nil
}

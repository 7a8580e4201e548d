package services

import (
	"hash/fnv"

	"news-reader/models"
)

const defaultCoverFolder = "default"

// CoverPicker supplies artwork for articles that arrive without an image.
// The choice depends only on the article ID, so it does not change between
// renders.
type CoverPicker struct {
	folders map[string][]string
}

func NewCoverPicker(folders map[string][]string) *CoverPicker {
	return &CoverPicker{folders: folders}
}

// Pick returns n.ImageURL when set, otherwise an image from the folder of
// topicSlug, falling back to the default folder. It returns "" when no
// folder has images.
func (p *CoverPicker) Pick(n models.News, topicSlug string) string {
	if n.ImageURL != "" {
		return n.ImageURL
	}
	if p == nil {
		return ""
	}
	images := p.folders[topicSlug]
	if len(images) == 0 {
		images = p.folders[defaultCoverFolder]
	}
	if len(images) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(n.ID))
	return images[h.Sum32()%uint32(len(images))]
}

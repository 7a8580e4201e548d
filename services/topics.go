package services

import "news-reader/models"

var topicPlaceholder = map[Language]string{
	English: "General",
	Amharic: "አጠቃላይ",
}

// TopicIndex resolves topic IDs and slugs. The zero value is an empty index.
type TopicIndex struct {
	byID   map[string]models.Topic
	bySlug map[string]models.Topic
}

func NewTopicIndex(topics []models.Topic) TopicIndex {
	idx := TopicIndex{
		byID:   make(map[string]models.Topic, len(topics)),
		bySlug: make(map[string]models.Topic, len(topics)),
	}
	for _, t := range topics {
		idx.byID[t.ID] = t
		if t.Slug != "" {
			idx.bySlug[t.Slug] = t
		}
	}
	return idx
}

func (idx TopicIndex) Get(id string) (models.Topic, bool) {
	t, ok := idx.byID[id]
	return t, ok
}

func (idx TopicIndex) BySlug(slug string) (models.Topic, bool) {
	t, ok := idx.bySlug[slug]
	return t, ok
}

// Label never fails: unknown IDs get the placeholder label.
func (idx TopicIndex) Label(id string, lang Language) string {
	t, ok := idx.byID[id]
	if !ok {
		return topicPlaceholder[lang]
	}
	return TopicLabel(t, lang)
}

func TopicLabel(t models.Topic, lang Language) string {
	var s string
	if lang == Amharic {
		s = firstNonBlank(t.LabelAM, t.LabelEN)
	} else {
		s = firstNonBlank(t.LabelEN, t.LabelAM)
	}
	if s == "" {
		return topicPlaceholder[lang]
	}
	return s
}

type TopicView struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// Views resolves ids in order; unknown ids keep their id and get the placeholder.
func (idx TopicIndex) Views(ids []string, lang Language) []TopicView {
	out := make([]TopicView, 0, len(ids))
	for _, id := range ids {
		t := idx.byID[id]
		out = append(out, TopicView{ID: id, Slug: t.Slug, Label: idx.Label(id, lang)})
	}
	return out
}

func TopicViews(topics []models.Topic, lang Language) []TopicView {
	out := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		out = append(out, TopicView{ID: t.ID, Slug: t.Slug, Label: TopicLabel(t, lang)})
	}
	return out
}

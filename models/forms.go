package models

import "time"

// SourceInput is the admin form for registering a source.
type SourceInput struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
	Language    string `json:"language" binding:"omitempty,oneof=en am"`
}

type TopicInput struct {
	Slug    string `json:"slug" binding:"required"`
	LabelEN string `json:"label_en" binding:"required"`
	LabelAM string `json:"label_am"`
}

// NewsInput is the admin form for publishing an article. At least one title
// is required; the handler checks that since binding tags cannot express it.
type NewsInput struct {
	TitleEN     string    `json:"title_en"`
	TitleAM     string    `json:"title_am"`
	BodyEN      string    `json:"body_en"`
	BodyAM      string    `json:"body_am"`
	SummaryEN   string    `json:"summary_en"`
	SummaryAM   string    `json:"summary_am"`
	TopicIDs    []string  `json:"topics"`
	SourceID    string    `json:"source" binding:"required"`
	ImageURL    string    `json:"image_url" binding:"omitempty,url"`
	PublishedAt time.Time `json:"published_at"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

package models

import "time"

// News is an article as served by the content API. Text fields come in an
// English (_en) and an Amharic (_am) variant; either may be empty.
type News struct {
	ID           string    `bson:"id" json:"id"`
	TitleEN      string    `bson:"title_en" json:"title_en"`
	TitleAM      string    `bson:"title_am" json:"title_am"`
	BodyEN       string    `bson:"body_en" json:"body_en"`
	BodyAM       string    `bson:"body_am" json:"body_am"`
	SummaryEN    string    `bson:"summary_en" json:"summary_en"`
	SummaryAM    string    `bson:"summary_am" json:"summary_am"`
	TopicIDs     []string  `bson:"topics" json:"topics"`
	SourceID     string    `bson:"source" json:"source"`
	ImageURL     string    `bson:"image_url" json:"image_url"`
	PublishedAt  time.Time `bson:"published_at" json:"published_at"`
	IsBookmarked bool      `bson:"-" json:"is_bookmarked"`
}

// Topic is a content category with a bilingual label.
type Topic struct {
	ID      string `bson:"id" json:"id"`
	Slug    string `bson:"slug" json:"slug"`
	LabelEN string `bson:"label_en" json:"label_en"`
	LabelAM string `bson:"label_am" json:"label_am"`
}

// Source is a publisher that news items reference by ID.
type Source struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	URL         string `bson:"url" json:"url"`
	Description string `bson:"description" json:"description"`
	Language    string `bson:"language" json:"language"`
}

package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"news-reader/models"
)

func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthSession, error) {
	var out models.AuthSession
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &out)
	return out, err
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (models.AuthSession, error) {
	var out models.AuthSession
	err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, map[string]string{"refresh_token": refreshToken}, &out)
	return out, err
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateInterests(ctx context.Context, topicIDs []string) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPut, "/users/me/interests", nil, map[string][]string{"interests": topicIDs}, &out)
	return out, err
}

// ListNews returns the latest news; limit <= 0 leaves paging to the server.
func (c *Client) ListNews(ctx context.Context, limit int) ([]models.News, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var out list[models.News]
	err := c.do(ctx, http.MethodGet, "/news", q, nil, &out)
	return out, err
}

func (c *Client) GetNews(ctx context.Context, id string) (models.News, error) {
	var out models.News
	err := c.do(ctx, http.MethodGet, "/news/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) NewsByTopic(ctx context.Context, topicID string) ([]models.News, error) {
	var out list[models.News]
	err := c.do(ctx, http.MethodGet, "/news/topic/"+url.PathEscape(topicID), nil, nil, &out)
	return out, err
}

// ForYou is the personalised feed built from the user's interests.
func (c *Client) ForYou(ctx context.Context) ([]models.News, error) {
	var out list[models.News]
	err := c.do(ctx, http.MethodGet, "/news/for-you", nil, nil, &out)
	return out, err
}

func (c *Client) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var out list[models.Topic]
	err := c.do(ctx, http.MethodGet, "/topics", nil, nil, &out)
	return out, err
}

func (c *Client) ListSources(ctx context.Context) ([]models.Source, error) {
	var out list[models.Source]
	err := c.do(ctx, http.MethodGet, "/sources", nil, nil, &out)
	return out, err
}

// ListBookmarks returns the saved articles of the authenticated user.
func (c *Client) ListBookmarks(ctx context.Context) ([]models.News, error) {
	var out list[models.News]
	err := c.do(ctx, http.MethodGet, "/bookmarks", nil, nil, &out)
	return out, err
}

// AddBookmark answers 409 when the article is already saved.
func (c *Client) AddBookmark(ctx context.Context, newsID string) error {
	return c.do(ctx, http.MethodPost, "/bookmarks", nil, map[string]string{"news_id": newsID}, nil)
}

func (c *Client) RemoveBookmark(ctx context.Context, newsID string) error {
	return c.do(ctx, http.MethodDelete, "/bookmarks/"+url.PathEscape(newsID), nil, nil, nil)
}

func (c *Client) CreateSource(ctx context.Context, in models.SourceInput) (models.Source, error) {
	var out models.Source
	err := c.do(ctx, http.MethodPost, "/sources", nil, in, &out)
	return out, err
}

func (c *Client) CreateTopic(ctx context.Context, in models.TopicInput) (models.Topic, error) {
	var out models.Topic
	err := c.do(ctx, http.MethodPost, "/topics", nil, in, &out)
	return out, err
}

func (c *Client) CreateNews(ctx context.Context, in models.NewsInput) (models.News, error) {
	var out models.News
	err := c.do(ctx, http.MethodPost, "/news", nil, in, &out)
	return out, err
}

type chatRequest struct {
	Message string               `json:"message"`
	History []models.ChatMessage `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat sends one user message with the prior conversation and returns the
// assistant's reply.
func (c *Client) Chat(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	var out chatResponse
	err := c.do(ctx, http.MethodPost, "/chat", nil, chatRequest{Message: message, History: history}, &out)
	return out.Reply, err
}

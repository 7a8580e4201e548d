package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"news-reader/models"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// AdminService handles the admin submission forms.
type AdminService struct {
	http   *http.Client
	logger *zap.Logger
}

func NewAdminService(logger *zap.Logger) *AdminService {
	return &AdminService{
		http:   &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// SubmitSource registers a source. A missing description is filled from
// the source's homepage when it can be read.
func (a *AdminService) SubmitSource(ctx context.Context, st *SessionState, in models.SourceInput) (models.Source, error) {
	if err := st.RequireAdmin(); err != nil {
		return models.Source{}, err
	}
	if strings.TrimSpace(in.Description) == "" {
		desc, err := a.describe(ctx, in.URL)
		if err != nil {
			a.logger.Warn("source description lookup failed", zap.String("url", in.URL), zap.Error(err))
		} else {
			in.Description = desc
		}
	}
	return st.API().CreateSource(ctx, in)
}

// describe reads the meta description of a page, then og:description, then
// its <title>.
func (a *AdminService) describe(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html")
	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v, nil
		}
	}
	if v := strings.TrimSpace(doc.Find("title").First().Text()); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("no description found")
}

func (a *AdminService) SubmitTopic(ctx context.Context, st *SessionState, in models.TopicInput) (models.Topic, error) {
	if err := st.RequireAdmin(); err != nil {
		return models.Topic{}, err
	}
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if in.Slug == "" || strings.ContainsAny(in.Slug, " /") {
		return models.Topic{}, fmt.Errorf("%w: slug must be a single path segment", ErrInvalidInput)
	}
	return st.API().CreateTopic(ctx, in)
}

func (a *AdminService) SubmitNews(ctx context.Context, st *SessionState, in models.NewsInput) (models.News, error) {
	if err := st.RequireAdmin(); err != nil {
		return models.News{}, err
	}
	if strings.TrimSpace(in.TitleEN) == "" && strings.TrimSpace(in.TitleAM) == "" {
		return models.News{}, fmt.Errorf("%w: a title in English or Amharic is required", ErrInvalidInput)
	}
	if in.PublishedAt.IsZero() {
		in.PublishedAt = time.Now().UTC()
	}
	return st.API().CreateNews(ctx, in)
}

package services

import (
	"context"
	"time"

	"news-reader/apiclient"
	"news-reader/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PageStatus string

const (
	PageReady PageStatus = "ready"
	// PageEmpty is an expected empty result, e.g. no saved news.
	PageEmpty PageStatus = "empty"
	PageError PageStatus = "error"
)

const (
	PageHome   = "home"
	PageTopic  = "topic"
	PageForYou = "for_you"
	PageSaved  = "saved"
	PageDetail = "detail"
)

type ArticleView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Body        string      `json:"body,omitempty"`
	ImageURL    string      `json:"image_url"`
	Source      string      `json:"source"`
	Topics      []TopicView `json:"topics"`
	PublishedAt time.Time   `json:"published_at"`
	Bookmarked  bool        `json:"bookmarked"`
}

// Page is everything a screen needs to render: either an error string or
// its content.
type Page struct {
	Name     string        `json:"page"`
	Status   PageStatus    `json:"status"`
	Error    string        `json:"error,omitempty"`
	Message  string        `json:"message,omitempty"`
	Language Language      `json:"language"`
	Topic    *TopicView    `json:"topic,omitempty"`
	Topics   []TopicView   `json:"topics,omitempty"`
	Articles []ArticleView `json:"articles,omitempty"`
	Article  *ArticleView  `json:"article,omitempty"`
}

var pageErrors = map[string]string{
	PageHome:   "Failed to load news. Please try again.",
	PageTopic:  "Failed to load news for this topic. Please try again.",
	PageForYou: "Failed to load your feed. Please try again.",
	PageSaved:  "Failed to load saved news. Please try again.",
	PageDetail: "Failed to load this article. Please try again.",
}

var pageEmpty = map[string]string{
	PageHome:   "No news yet.",
	PageTopic:  "No news for this topic yet.",
	PageForYou: "No news matches your interests yet.",
	PageSaved:  "You have not saved any news yet.",
}

// PageLoader fetches the data of each screen. Every load issues its requests
// together and fails as a whole if any of them fails; nothing is cached
// between loads.
type PageLoader struct {
	covers *CoverPicker
	logger *zap.Logger
}

func NewPageLoader(covers *CoverPicker, logger *zap.Logger) *PageLoader {
	return &PageLoader{covers: covers, logger: logger}
}

// pageData is the raw result of one load before it is rendered.
type pageData struct {
	news      []models.News
	topics    []models.Topic
	sources   []models.Source
	bookmarks []models.News
}

func (l *PageLoader) fail(st *SessionState, name string, err error) Page {
	l.logger.Warn("page load failed",
		zap.String("page", name),
		zap.String("session", st.ID),
		zap.Error(err))
	return Page{Name: name, Status: PageError, Error: pageErrors[name], Language: st.Language()}
}

// loadBookmarks only asks the server when the session is logged in;
// anonymous sessions have no bookmarks.
func loadBookmarks(ctx context.Context, st *SessionState, dst *[]models.News) error {
	if !st.LoggedIn() {
		return nil
	}
	items, err := st.API().ListBookmarks(ctx)
	*dst = items
	return err
}

func bookmarkIDs(items []models.News) []string {
	ids := make([]string, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	return ids
}

// render turns raw data into a ready or empty page and resets the session's
// bookmark set from the freshly loaded list.
func (l *PageLoader) render(st *SessionState, name string, d pageData) Page {
	st.Bookmarks.Reset(bookmarkIDs(d.bookmarks))

	lang := st.Language()
	idx := NewTopicIndex(d.topics)
	page := Page{
		Name:     name,
		Status:   PageReady,
		Language: lang,
		Topics:   TopicViews(d.topics, lang),
		Articles: make([]ArticleView, 0, len(d.news)),
	}
	sources := make(map[string]string, len(d.sources))
	for _, s := range d.sources {
		sources[s.ID] = s.Name
	}
	for _, n := range d.news {
		page.Articles = append(page.Articles, l.view(n, lang, idx, sources, st.Bookmarks, false))
	}
	if len(page.Articles) == 0 {
		page.Status = PageEmpty
		page.Message = pageEmpty[name]
	}
	return page
}

func (l *PageLoader) view(n models.News, lang Language, idx TopicIndex, sources map[string]string, bm *BookmarkSet, withBody bool) ArticleView {
	topics := idx.Views(n.TopicIDs, lang)
	slug := ""
	if len(topics) > 0 {
		slug = topics[0].Slug
	}
	v := ArticleView{
		ID:          n.ID,
		Title:       Title(n, lang),
		Summary:     Summary(n, lang),
		ImageURL:    l.covers.Pick(n, slug),
		Source:      sources[n.SourceID],
		Topics:      topics,
		PublishedAt: n.PublishedAt,
		Bookmarked:  bm.Has(n.ID),
	}
	if v.Source == "" {
		v.Source = n.SourceID
	}
	if withBody {
		v.Body = Body(n, lang)
	}
	return v
}

// Home lists the latest news, narrowed to the active category when one is
// selected and known.
func (l *PageLoader) Home(ctx context.Context, st *SessionState) Page {
	var d pageData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.news, err = st.API().ListNews(gctx, 0); return })
	g.Go(func() (err error) { d.topics, err = st.API().ListTopics(gctx); return })
	g.Go(func() (err error) { d.sources, err = st.API().ListSources(gctx); return })
	g.Go(func() error { return loadBookmarks(gctx, st, &d.bookmarks) })
	if err := g.Wait(); err != nil {
		return l.fail(st, PageHome, err)
	}

	var active *models.Topic
	if slug := st.Preferences().Category; slug != "" {
		if t, ok := NewTopicIndex(d.topics).BySlug(slug); ok {
			active = &t
			d.news = filterByTopic(d.news, t.ID)
		}
	}
	page := l.render(st, PageHome, d)
	if active != nil {
		tv := TopicView{ID: active.ID, Slug: active.Slug, Label: TopicLabel(*active, page.Language)}
		page.Topic = &tv
	}
	return page
}

func filterByTopic(news []models.News, topicID string) []models.News {
	out := make([]models.News, 0, len(news))
	for _, n := range news {
		for _, id := range n.TopicIDs {
			if id == topicID {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// Topic resolves slug against the topic list and then loads that topic's
// news; bookmarks load alongside.
func (l *PageLoader) Topic(ctx context.Context, st *SessionState, slug string) Page {
	var (
		d     pageData
		topic models.Topic
		found bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		topics, err := st.API().ListTopics(gctx)
		if err != nil {
			return err
		}
		d.topics = topics
		if topic, found = NewTopicIndex(topics).BySlug(slug); !found {
			return nil
		}
		d.news, err = st.API().NewsByTopic(gctx, topic.ID)
		return err
	})
	g.Go(func() error { return loadBookmarks(gctx, st, &d.bookmarks) })
	if err := g.Wait(); err != nil {
		return l.fail(st, PageTopic, err)
	}
	if !found {
		return Page{Name: PageTopic, Status: PageError, Error: "Topic not found.", Language: st.Language()}
	}

	page := l.render(st, PageTopic, d)
	tv := TopicView{ID: topic.ID, Slug: topic.Slug, Label: TopicLabel(topic, page.Language)}
	page.Topic = &tv
	return page
}

// ForYou is the personalised feed; it needs a logged in session.
func (l *PageLoader) ForYou(ctx context.Context, st *SessionState) Page {
	if !st.LoggedIn() {
		return Page{Name: PageForYou, Status: PageError, Error: "Log in to see news picked for you.", Language: st.Language()}
	}
	var d pageData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.news, err = st.API().ForYou(gctx); return })
	g.Go(func() (err error) { d.topics, err = st.API().ListTopics(gctx); return })
	g.Go(func() error { return loadBookmarks(gctx, st, &d.bookmarks) })
	if err := g.Wait(); err != nil {
		return l.fail(st, PageForYou, err)
	}
	return l.render(st, PageForYou, d)
}

// Saved lists the bookmarked articles themselves.
func (l *PageLoader) Saved(ctx context.Context, st *SessionState) Page {
	if !st.LoggedIn() {
		return Page{Name: PageSaved, Status: PageError, Error: "Log in to see your saved news.", Language: st.Language()}
	}
	var d pageData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.bookmarks, err = st.API().ListBookmarks(gctx); return })
	g.Go(func() (err error) { d.topics, err = st.API().ListTopics(gctx); return })
	if err := g.Wait(); err != nil {
		return l.fail(st, PageSaved, err)
	}
	d.news = d.bookmarks
	return l.render(st, PageSaved, d)
}

func (l *PageLoader) Detail(ctx context.Context, st *SessionState, id string) Page {
	var (
		d    pageData
		item models.News
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { item, err = st.API().GetNews(gctx, id); return })
	g.Go(func() (err error) { d.topics, err = st.API().ListTopics(gctx); return })
	g.Go(func() (err error) { d.sources, err = st.API().ListSources(gctx); return })
	g.Go(func() error { return loadBookmarks(gctx, st, &d.bookmarks) })
	if err := g.Wait(); err != nil {
		if apiclient.IsNotFound(err) {
			return Page{Name: PageDetail, Status: PageError, Error: "This article could not be found.", Language: st.Language()}
		}
		return l.fail(st, PageDetail, err)
	}

	page := l.render(st, PageDetail, d)
	sources := make(map[string]string, len(d.sources))
	for _, s := range d.sources {
		sources[s.ID] = s.Name
	}
	v := l.view(item, page.Language, NewTopicIndex(d.topics), sources, st.Bookmarks, true)
	page.Status = PageReady
	page.Message = ""
	page.Article = &v
	return page
}

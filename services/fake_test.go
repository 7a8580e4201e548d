package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"news-reader/apiclient"
	"news-reader/models"
	"news-reader/storage"

	"go.uber.org/zap"
)

// fakeAPI is an in-memory content API. Errors set in errs are returned by
// the method of the same name.
type fakeAPI struct {
	mu sync.Mutex

	news      []models.News
	topics    []models.Topic
	sources   []models.Source
	bookmarks map[string]bool
	user      models.User
	auth      models.AuthSession
	reply     string

	errs  map[string]error
	calls map[string]int
	token string

	created []any
	history []models.ChatMessage
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		bookmarks: map[string]bool{},
		errs:      map[string]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeAPI) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) Login(_ context.Context, creds models.Credentials) (models.AuthSession, error) {
	if err := f.hit("Login"); err != nil {
		return models.AuthSession{}, err
	}
	return f.auth, nil
}

func (f *fakeAPI) Refresh(_ context.Context, refresh string) (models.AuthSession, error) {
	if err := f.hit("Refresh"); err != nil {
		return models.AuthSession{}, err
	}
	return models.AuthSession{AccessToken: "acc-2"}, nil
}

func (f *fakeAPI) Profile(context.Context) (models.User, error) {
	return f.user, f.hit("Profile")
}

func (f *fakeAPI) UpdateInterests(_ context.Context, ids []string) (models.User, error) {
	u := f.user
	u.Interests = ids
	return u, f.hit("UpdateInterests")
}

func (f *fakeAPI) ListNews(context.Context, int) ([]models.News, error) {
	return f.news, f.hit("ListNews")
}

func (f *fakeAPI) GetNews(_ context.Context, id string) (models.News, error) {
	if err := f.hit("GetNews"); err != nil {
		return models.News{}, err
	}
	for _, n := range f.news {
		if n.ID == id {
			return n, nil
		}
	}
	return models.News{}, &apiclient.APIError{StatusCode: http.StatusNotFound}
}

func (f *fakeAPI) NewsByTopic(_ context.Context, topicID string) ([]models.News, error) {
	if err := f.hit("NewsByTopic"); err != nil {
		return nil, err
	}
	return filterByTopic(f.news, topicID), nil
}

func (f *fakeAPI) ForYou(context.Context) ([]models.News, error) {
	return f.news, f.hit("ForYou")
}

func (f *fakeAPI) ListTopics(context.Context) ([]models.Topic, error) {
	return f.topics, f.hit("ListTopics")
}

func (f *fakeAPI) ListSources(context.Context) ([]models.Source, error) {
	return f.sources, f.hit("ListSources")
}

func (f *fakeAPI) ListBookmarks(context.Context) ([]models.News, error) {
	if err := f.hit("ListBookmarks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.News{}
	for _, n := range f.news {
		if f.bookmarks[n.ID] {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeAPI) AddBookmark(_ context.Context, id string) error {
	if err := f.hit("AddBookmark"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookmarks[id] {
		return &apiclient.APIError{StatusCode: http.StatusConflict}
	}
	f.bookmarks[id] = true
	return nil
}

func (f *fakeAPI) RemoveBookmark(_ context.Context, id string) error {
	if err := f.hit("RemoveBookmark"); err != nil {
		return err
	}
	f.mu.Lock()
	delete(f.bookmarks, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) CreateSource(_ context.Context, in models.SourceInput) (models.Source, error) {
	f.created = append(f.created, in)
	return models.Source{ID: "src-new", Name: in.Name, URL: in.URL, Description: in.Description}, f.hit("CreateSource")
}

func (f *fakeAPI) CreateTopic(_ context.Context, in models.TopicInput) (models.Topic, error) {
	f.created = append(f.created, in)
	return models.Topic{ID: "t-new", Slug: in.Slug, LabelEN: in.LabelEN}, f.hit("CreateTopic")
}

func (f *fakeAPI) CreateNews(_ context.Context, in models.NewsInput) (models.News, error) {
	f.created = append(f.created, in)
	return models.News{ID: "n-new", TitleEN: in.TitleEN, PublishedAt: in.PublishedAt}, f.hit("CreateNews")
}

func (f *fakeAPI) Chat(_ context.Context, msg string, history []models.ChatMessage) (string, error) {
	f.mu.Lock()
	f.history = history
	f.mu.Unlock()
	return f.reply, f.hit("Chat")
}

// testSessions wires a Sessions registry to f over memory storage. The fake
// records the token the session would send.
func testSessions(t *testing.T, f *fakeAPI) (*Sessions, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	factory := func(ts apiclient.TokenSource) ContentAPI {
		return &tokenRecorder{fakeAPI: f, ts: ts}
	}
	return NewSessions(store, factory, zap.NewNop(), time.Hour), store
}

type tokenRecorder struct {
	*fakeAPI
	ts apiclient.TokenSource
}

func (r *tokenRecorder) ListBookmarks(ctx context.Context) ([]models.News, error) {
	tok, err := r.ts.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	r.fakeAPI.mu.Lock()
	r.fakeAPI.token = tok
	r.fakeAPI.mu.Unlock()
	return r.fakeAPI.ListBookmarks(ctx)
}

func loggedIn(t *testing.T, m *Sessions, f *fakeAPI, id string, role string) *SessionState {
	t.Helper()
	f.auth = models.AuthSession{
		AccessToken:  "acc-" + id,
		RefreshToken: "ref-" + id,
		User:         &models.User{ID: "u-" + id, Name: "Selam", Role: role},
	}
	st, err := m.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Login(context.Background(), st, models.Credentials{Email: "s@example.com", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	return st
}

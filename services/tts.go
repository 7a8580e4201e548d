package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"news-reader/config"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Audio is a synthesized clip.
type Audio struct {
	ContentType string
	Data        []byte
}

// TTSRelay forwards text to the speech provider. Concurrent requests for the
// same text and voice share one upstream call.
type TTSRelay struct {
	baseURL      string
	apiKey       string
	defaultVoice string
	http         *http.Client
	logger       *zap.Logger

	group singleflight.Group
}

func NewTTSRelay(cfg config.TTSConfig, logger *zap.Logger) *TTSRelay {
	return &TTSRelay{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		defaultVoice: cfg.VoiceID,
		http:         &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}
}

type ttsRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

func (r *TTSRelay) Synthesize(ctx context.Context, text, voice string) (Audio, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Audio{}, fmt.Errorf("%w: text is empty", ErrInvalidInput)
	}
	if r.baseURL == "" {
		return Audio{}, fmt.Errorf("tts: provider URL not configured")
	}
	if voice == "" {
		voice = r.defaultVoice
	}

	key := voice + "\x00" + text
	// the shared call must not die with whichever caller started it
	ch := r.group.DoChan(key, func() (any, error) {
		return r.fetch(context.WithoutCancel(ctx), text, voice)
	})
	select {
	case <-ctx.Done():
		return Audio{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Audio{}, res.Err
		}
		if res.Shared {
			r.logger.Debug("tts request shared", zap.String("voice", voice))
		}
		return res.Val.(Audio), nil
	}
}

func (r *TTSRelay) fetch(ctx context.Context, text, voice string) (Audio, error) {
	b, err := json.Marshal(ttsRequest{Text: text, VoiceID: voice})
	if err != nil {
		return Audio{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(b))
	if err != nil {
		return Audio{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	if r.apiKey != "" {
		req.Header.Set("xi-api-key", r.apiKey)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return Audio{}, fmt.Errorf("tts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return Audio{}, fmt.Errorf("tts: provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Audio{}, fmt.Errorf("tts: read audio: %w", err)
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" || strings.HasPrefix(ct, "application/json") {
		ct = "audio/mpeg"
	}
	return Audio{ContentType: ct, Data: data}, nil
}

// NarrateNews reads an article aloud in the session's language. Asking for
// the article that is already playing returns ErrAlreadyPlaying.
func (r *TTSRelay) NarrateNews(ctx context.Context, st *SessionState, newsID, voice string) (Audio, error) {
	if !st.Playback.Begin(newsID) {
		return Audio{}, ErrAlreadyPlaying
	}
	n, err := st.API().GetNews(ctx, newsID)
	if err != nil {
		st.Playback.End(newsID)
		return Audio{}, err
	}
	lang := st.Language()
	audio, err := r.Synthesize(ctx, Title(n, lang)+". "+Body(n, lang), voice)
	if err != nil {
		st.Playback.End(newsID)
		return Audio{}, err
	}
	return audio, nil
}

// Playback tracks the article whose audio the client is playing. Only one
// article plays at a time.
type Playback struct {
	mu      sync.Mutex
	current string
}

// Begin marks id as playing. It reports false when id is already playing.
func (p *Playback) Begin(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == id {
		return false
	}
	p.current = id
	return true
}

func (p *Playback) End(id string) {
	p.mu.Lock()
	if p.current == id {
		p.current = ""
	}
	p.mu.Unlock()
}

func (p *Playback) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

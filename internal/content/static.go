package content

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StaticService provides deterministic content suitable for local development and tests.
type StaticService struct {
	mu       sync.RWMutex
	now      func() time.Time
	photos   []Photo
	videos   []Video
	press    []PressArticle
	messages []Message
}

// StaticOption customises a StaticService.
type StaticOption func(*StaticService)

// WithClock overrides the time source used for seeded timestamps and new messages.
func WithClock(now func() time.Time) StaticOption {
	return func(s *StaticService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStaticService returns a StaticService populated with representative campaign content.
func NewStaticService(opts ...StaticOption) *StaticService {
	s := &StaticService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

func (s *StaticService) seed() {
	now := s.now()
	day := 24 * time.Hour

	s.photos = []Photo{
		{ID: "42", Title: "Town hall in Riverside", Caption: "Answering questions on transit funding.", ImageURL: "/public/static/img/townhall.jpg", TakenAt: now.Add(-3 * day), CreatedAt: now.Add(-3 * day)},
		{ID: "41", Title: "Volunteer kickoff", Caption: "Over two hundred volunteers joined the first canvass.", ImageURL: "/public/static/img/kickoff.jpg", TakenAt: now.Add(-10 * day), CreatedAt: now.Add(-9 * day)},
		{ID: "40", Title: "Farmers market", Caption: "Saturday morning conversations.", ImageURL: "/public/static/img/market.jpg", TakenAt: now.Add(-17 * day), CreatedAt: now.Add(-16 * day)},
	}
	s.videos = []Video{
		{ID: "99", Title: "Why I am running", Description: "A short introduction to the campaign.", VideoURL: "/public/static/video/announcement.mp4", PosterURL: "/public/static/img/announcement.jpg", DurationSeconds: 154, PublishedAt: now.Add(-30 * day)},
		{ID: "98", Title: "Debate highlights", Description: "Closing statement from the regional debate.", VideoURL: "/public/static/video/debate.mp4", DurationSeconds: 212, PublishedAt: now.Add(-6 * day)},
	}
	s.press = []PressArticle{
		{ID: "7", Title: "Candidate unveils housing plan", Outlet: "The Daily Ledger", URL: "https://example.com/ledger/housing", Summary: "A five point plan to expand affordable housing.", Body: "## Housing first\n\nThe plan focuses on **zoning reform** and new rental assistance.\n\n- Faster permits\n- Tenant protections\n- Public land for homes", PublishedAt: now.Add(-2 * day)},
		{ID: "6", Title: "Statement on the transit vote", Outlet: "Campaign Office", Summary: "Our response to the council decision.", Body: "We welcome the council vote and will keep pushing for **late night service**.", PublishedAt: now.Add(-12 * day)},
	}
	s.messages = []Message{
		{ID: "m-3", Name: "Dana Ortiz", Email: "dana@example.com", Subject: "Volunteering", Body: "How can I help with weekend canvassing?", ReceivedAt: now.Add(-2 * time.Hour)},
		{ID: "m-2", Name: "Lee Park", Email: "lee@example.com", Subject: "Town hall", Body: "Will there be a town hall on the east side?", Read: true, ReceivedAt: now.Add(-26 * time.Hour)},
		{ID: "m-1", Name: "Sam Reyes", Email: "sam@example.com", Body: "Thank you for visiting our school.", ReceivedAt: now.Add(-4 * day)},
	}
}

// ListPhotos returns photos ordered newest first.
func (s *StaticService) ListPhotos(_ context.Context, _ string) ([]Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]Photo(nil), s.photos...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetPhoto returns the photo with the given id.
func (s *StaticService) GetPhoto(_ context.Context, _ string, id string) (*Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.photos {
		if p.ID == strings.TrimSpace(id) {
			photo := p
			return &photo, nil
		}
	}
	return nil, ErrNotFound
}

// ListVideos returns videos ordered newest first.
func (s *StaticService) ListVideos(_ context.Context, _ string) ([]Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]Video(nil), s.videos...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

// GetVideo returns the video with the given id.
func (s *StaticService) GetVideo(_ context.Context, _ string, id string) (*Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.videos {
		if v.ID == strings.TrimSpace(id) {
			video := v
			return &video, nil
		}
	}
	return nil, ErrNotFound
}

// ListPress returns press articles ordered newest first.
func (s *StaticService) ListPress(_ context.Context, _ string) ([]PressArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]PressArticle(nil), s.press...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

// GetPress returns the press article with the given id.
func (s *StaticService) GetPress(_ context.Context, _ string, id string) (*PressArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.press {
		if a.ID == strings.TrimSpace(id) {
			article := a
			return &article, nil
		}
	}
	return nil, ErrNotFound
}

// ListMessages returns the inbox ordered newest first.
func (s *StaticService) ListMessages(_ context.Context, _ string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]Message(nil), s.messages...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out, nil
}

// GetMessage returns the message with the given id.
func (s *StaticService) GetMessage(_ context.Context, _ string, id string) (*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.messageIndex(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	msg := s.messages[idx]
	return &msg, nil
}

// MarkMessageRead flags the message as read.
func (s *StaticService) MarkMessageRead(_ context.Context, _ string, id string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.messageIndex(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	s.messages[idx].Read = true
	msg := s.messages[idx]
	return &msg, nil
}

// DeleteMessage removes the message from the inbox.
func (s *StaticService) DeleteMessage(_ context.Context, _ string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.messageIndex(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.messages = append(s.messages[:idx], s.messages[idx+1:]...)
	return nil
}

// SubmitContact validates the submission and stores it as an unread message.
func (s *StaticService) SubmitContact(_ context.Context, submission ContactSubmission) (*Message, error) {
	submission = submission.Normalize()
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:         uuid.NewString(),
		Name:       submission.Name,
		Email:      submission.Email,
		Subject:    submission.Subject,
		Body:       submission.Body,
		ReceivedAt: s.now(),
	}
	s.messages = append(s.messages, msg)
	return &msg, nil
}

func (s *StaticService) messageIndex(id string) int {
	id = strings.TrimSpace(id)
	for i, m := range s.messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}

package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL bounds how long a cached query result is served.
const DefaultCacheTTL = 30 * time.Second

// CachedService decorates a Service with a per-query cache. Entries are scoped to the
// caller's bearer token, so one staff member's results are never served to another token.
// Concurrent identical queries share one backend call and mutations invalidate the queries
// they affect for every token.
type CachedService struct {
	next Service
	ttl  time.Duration
	now  func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	gen     uint64
	entries map[string]cacheEntry
	scopes  map[string]struct{}
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// CacheOption customises a CachedService.
type CacheOption func(*CachedService)

// WithCacheClock overrides the clock used for expiry.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *CachedService) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCachedService wraps next. A non-positive ttl falls back to DefaultCacheTTL.
func NewCachedService(next Service, ttl time.Duration, opts ...CacheOption) *CachedService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &CachedService{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
		scopes:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPhotos implements Service.
func (c *CachedService) ListPhotos(ctx context.Context, token string) ([]Photo, error) {
	return query(ctx, c, token, "photos", func(ctx context.Context) ([]Photo, error) {
		return c.next.ListPhotos(ctx, token)
	}, cloneSlice[Photo])
}

// GetPhoto implements Service.
func (c *CachedService) GetPhoto(ctx context.Context, token, id string) (*Photo, error) {
	return query(ctx, c, token, "photo/"+strings.TrimSpace(id), func(ctx context.Context) (*Photo, error) {
		return c.next.GetPhoto(ctx, token, id)
	}, clonePtr[Photo])
}

// ListVideos implements Service.
func (c *CachedService) ListVideos(ctx context.Context, token string) ([]Video, error) {
	return query(ctx, c, token, "videos", func(ctx context.Context) ([]Video, error) {
		return c.next.ListVideos(ctx, token)
	}, cloneSlice[Video])
}

// GetVideo implements Service.
func (c *CachedService) GetVideo(ctx context.Context, token, id string) (*Video, error) {
	return query(ctx, c, token, "video/"+strings.TrimSpace(id), func(ctx context.Context) (*Video, error) {
		return c.next.GetVideo(ctx, token, id)
	}, clonePtr[Video])
}

// ListPress implements Service.
func (c *CachedService) ListPress(ctx context.Context, token string) ([]PressArticle, error) {
	return query(ctx, c, token, "press", func(ctx context.Context) ([]PressArticle, error) {
		return c.next.ListPress(ctx, token)
	}, cloneSlice[PressArticle])
}

// GetPress implements Service.
func (c *CachedService) GetPress(ctx context.Context, token, id string) (*PressArticle, error) {
	return query(ctx, c, token, "press/"+strings.TrimSpace(id), func(ctx context.Context) (*PressArticle, error) {
		return c.next.GetPress(ctx, token, id)
	}, clonePtr[PressArticle])
}

// ListMessages implements Service.
func (c *CachedService) ListMessages(ctx context.Context, token string) ([]Message, error) {
	return query(ctx, c, token, "messages", func(ctx context.Context) ([]Message, error) {
		return c.next.ListMessages(ctx, token)
	}, cloneSlice[Message])
}

// GetMessage implements Service.
func (c *CachedService) GetMessage(ctx context.Context, token, id string) (*Message, error) {
	return query(ctx, c, token, messageKey(id), func(ctx context.Context) (*Message, error) {
		return c.next.GetMessage(ctx, token, id)
	}, clonePtr[Message])
}

// MarkMessageRead forwards the mutation and drops the inbox queries it affects.
func (c *CachedService) MarkMessageRead(ctx context.Context, token, id string) (*Message, error) {
	msg, err := c.next.MarkMessageRead(ctx, token, id)
	c.Invalidate("messages", messageKey(id))
	return msg, err
}

// DeleteMessage forwards the mutation and drops the inbox queries it affects.
func (c *CachedService) DeleteMessage(ctx context.Context, token, id string) error {
	err := c.next.DeleteMessage(ctx, token, id)
	c.Invalidate("messages", messageKey(id))
	return err
}

// SubmitContact forwards the submission and drops the cached inbox listing.
func (c *CachedService) SubmitContact(ctx context.Context, submission ContactSubmission) (*Message, error) {
	msg, err := c.next.SubmitContact(ctx, submission)
	if err == nil {
		c.Invalidate("messages")
	}
	return msg, err
}

// Invalidate drops the given query keys under every token scope. Loads already in flight
// for those keys are not stored.
func (c *CachedService) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for scope := range c.scopes {
		for _, key := range keys {
			scoped := scope + "|" + key
			delete(c.entries, scoped)
			c.group.Forget(scoped)
		}
	}
}

// Purge drops every cached query.
func (c *CachedService) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for key := range c.entries {
		c.group.Forget(key)
	}
	c.entries = make(map[string]cacheEntry)
}

func (c *CachedService) lookup(key string) (any, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if scope, _, found := strings.Cut(key, "|"); found {
		c.scopes[scope] = struct{}{}
	}
	entry, ok := c.entries[key]
	if ok && c.now().Before(entry.expires) {
		return entry.value, c.gen, true
	}
	if ok {
		delete(c.entries, key)
	}
	return nil, c.gen, false
}

func (c *CachedService) store(key string, value any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	c.entries[key] = cacheEntry{value: value, expires: c.now().Add(c.ttl)}
}

func query[T any](ctx context.Context, c *CachedService, token, key string, load func(context.Context) (T, error), clone func(T) T) (T, error) {
	key = scopedKey(token, key)
	cached, gen, ok := c.lookup(key)
	if ok {
		return clone(cached.(T)), nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// The shared load outlives any single caller's cancellation.
		value, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, value, gen)
		return value, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return clone(res.Val.(T)), nil
	}
}

// scopedKey prefixes key with a fingerprint of token. Public callers share the "public" scope.
func scopedKey(token, key string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return "public|" + key
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8]) + "|" + key
}

func messageKey(id string) string {
	return "message/" + strings.TrimSpace(id)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append([]T(nil), in...)
}

func clonePtr[T any](in *T) *T {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
